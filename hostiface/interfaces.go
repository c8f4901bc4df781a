// Package hostiface declares the surface the host runtime exposes to the
// delegate. Nothing here binds to a concrete host; every type is an
// interface or a plain value type so the delegate can be built and tested
// against fakes, and wired to a real host elsewhere without this package
// changing.
package hostiface

// DataType is the source tensor's element type, as the host runtime
// reports it. Unsupported is returned by a host that has no mapping for
// some internal type rather than panicking.
type DataType int

const (
	Unsupported DataType = iota
	Float32
	Float16
	Float64
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Int4
	Bool
)

// AllocationClass tells the delegate how a tensor's backing memory
// behaves, which governs whether it becomes a constant node, an input
// parameter, or neither.
type AllocationClass int

const (
	// Dynamic tensors are runtime-allocated and have no data until Eval
	// copies into them; they are never constant-foldable.
	Dynamic AllocationClass = iota
	// MmapRo tensors are read-only for the life of the model and are
	// folded into constant nodes at build time.
	MmapRo
	// PersistentRo tensors are read-only across Eval calls but owned by
	// the host's arena rather than memory-mapped; treated like MmapRo
	// for constant folding.
	PersistentRo
	// Arena tensors are scratch space the host manages; the delegate
	// never reads or writes them directly.
	Arena
)

// SourceTensor is a single tensor in the host's subgraph: its shape,
// element type, allocation behavior and, for constant tensors, its raw
// backing bytes.
type SourceTensor interface {
	// Shape returns the tensor's dimensions, outermost first.
	Shape() []int64
	// Type returns the tensor's element type.
	Type() DataType
	// Allocation reports how this tensor's memory behaves.
	Allocation() AllocationClass
	// Raw returns the tensor's backing bytes: read-only content for
	// MmapRo/PersistentRo tensors, a read-write scratch buffer for
	// Dynamic tensors (Eval copies into and out of it), and nil for
	// Arena tensors, which the delegate never touches directly.
	// Callers must not retain the slice past the host's own lifetime
	// guarantees.
	Raw() []byte
}

// SourceNode is a single operator node in the host's subgraph: its op
// kind, its input and output tensor indices, and any builtin attributes
// the op needs to translate.
type SourceNode interface {
	// OpKind returns the builtin operator this node represents.
	OpKind() OpKind
	// Inputs returns the indices (into the owning SourceContext) of this
	// node's input tensors, in the positional order the op defines.
	Inputs() []int
	// Outputs returns the indices of this node's output tensors. The
	// delegate's translators only ever produce a single output; a node
	// reporting more than one is rejected with MultipleOutputsUnsupported.
	Outputs() []int
	// Attrs returns the node's builtin attributes (padding, strides,
	// activation, axis, and so on) as a type appropriate to OpKind; each
	// translator asserts it to the concrete attribute struct it expects.
	Attrs() interface{}
}

// SourceContext is the host's view of the subgraph being considered for
// delegation: the full tensor table plus the partition's nodes, each
// addressed by its own index.
type SourceContext interface {
	// Tensor returns the tensor at index idx.
	Tensor(idx int) SourceTensor
	// TensorCount returns the number of tensors in the context.
	TensorCount() int
	// Node returns the node at index idx within the partition the host
	// is asking the delegate to build.
	Node(idx int) SourceNode
	// NodeCount returns the number of nodes in the partition.
	NodeCount() int
}

// OpKind enumerates the builtin operators the delegate's translators
// recognize. Anything else is UnsupportedOp at probe time.
type OpKind int

const (
	OpUnsupported OpKind = iota
	OpAdd
	OpMul
	OpAveragePool2D
	OpMaxPool2D
	OpConv2D
	OpDepthwiseConv2D
	OpTransposeConv
	OpConcatenation
	OpReshape
	OpSoftmax
	OpResizeBilinear
	OpMean
	OpPad
	OpDequantize
	OpRelu
	OpRelu6
	OpLogistic
	OpHardSwish
	OpTanh
)
