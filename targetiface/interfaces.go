// Package targetiface declares the surface the target inference library
// exposes to the delegate's Graph Builder and operator translators.
// Nothing here binds to a concrete target library; every type is an
// interface so translators can be built and tested against an in-memory
// fake and wired to a real target library elsewhere without this package
// changing.
package targetiface

import "time"

// ElementType is a target graph node's element type. Produced by
// typemap from a hostiface.DataType.
type ElementType int

const (
	Unsupported ElementType = iota
	F32
	F16
	F64
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	I4
	Bool
)

// AutoPad is the target library's padding mode, translated from the
// host's builtin padding enum by layout.TranslatePadding.
type AutoPad int

const (
	PadExplicit AutoPad = iota
	PadSameUpper
	PadValid
)

// PadMode selects the Pad operator's fill behavior. The delegate only
// ever emits PadConstantMode (zero-fill), per the translated ops' contract.
type PadMode int

const (
	PadConstantMode PadMode = iota
)

// InterpolateAttrs carries ResizeBilinear's translated attributes: the
// target library's interpolation mode is fixed (linear, sizes-driven);
// only the coordinate transformation mode varies with the source op's
// align_corners/half_pixel_centers flags.
type InterpolateAttrs struct {
	CoordinateMode CoordinateMode
}

// CoordinateMode selects how the Interpolate node maps output
// coordinates back to input coordinates.
type CoordinateMode int

const (
	CoordAsymmetric CoordinateMode = iota
	CoordHalfPixel
	CoordAlignCorners
)

// GraphNode is a handle to a single-output node in the target graph.
// Translators pass it to further Factory calls or collect it as a
// result/input node; the only thing they read from it is its shape.
type GraphNode interface {
	// Shape returns the node's output shape. Translators read it to
	// derive values such as Conv2D's group count and Softmax's axis.
	Shape() []int64
	// Type returns the node's output element type.
	Type() ElementType
}

// Factory builds target graph nodes. Every op translator is, in the
// end, a sequence of calls into a Factory plus the bookkeeping to wire
// results into the Node Manager.
type Factory interface {
	Parameter(shape []int64, t ElementType) (GraphNode, error)
	Constant(shape []int64, t ElementType, data []byte) (GraphNode, error)

	Transpose(input GraphNode, order []int64) (GraphNode, error)
	Reshape(input, shape GraphNode, specialZero bool) (GraphNode, error)

	Add(a, b GraphNode) (GraphNode, error)
	Multiply(a, b GraphNode) (GraphNode, error)

	Convolution(input, filter GraphNode, strides, dilations []int64, pad AutoPad) (GraphNode, error)
	GroupConvolution(input, filter GraphNode, strides, dilations []int64, pad AutoPad) (GraphNode, error)
	ConvolutionBackpropData(input, filter, outputShape GraphNode, strides, dilations []int64, pad AutoPad) (GraphNode, error)

	AvgPool(input GraphNode, kernel, strides []int64, pad AutoPad, excludePad bool) (GraphNode, error)
	MaxPool(input GraphNode, kernel, strides []int64, pad AutoPad) (GraphNode, error)

	Concat(inputs []GraphNode, axis int64) (GraphNode, error)
	Softmax(input GraphNode, axis int64) (GraphNode, error)
	ReduceMean(input, axes GraphNode, keepDims bool) (GraphNode, error)
	Pad(input, padsBegin, padsEnd GraphNode, mode PadMode) (GraphNode, error)
	Convert(input GraphNode, t ElementType) (GraphNode, error)
	Interpolate(input, sizes, axes GraphNode, attrs InterpolateAttrs) (GraphNode, error)

	Relu(input GraphNode) (GraphNode, error)
	Clamp(input GraphNode, lo, hi float64) (GraphNode, error)
	Tanh(input GraphNode) (GraphNode, error)
	Sigmoid(input GraphNode) (GraphNode, error)
	HardSwish(input GraphNode) (GraphNode, error)
}

// Core manages devices, model construction from a built graph or a
// cached artifact, and compilation.
type Core interface {
	// AvailableDevices lists the device identifiers the target library
	// can currently see. Init rejects with DeviceUnavailable if "CPU"
	// is not among them.
	AvailableDevices() ([]string, error)
	// BuildModel constructs a Model from the result nodes and input
	// parameter nodes the Graph Builder collected.
	BuildModel(resultNodes, inputParams []GraphNode) (Model, error)
	// ReadModel loads a previously serialized model from an on-disk
	// artifact (the cache hit path).
	ReadModel(xmlPath string) (Model, error)
	// CompileModel compiles m for the named device.
	CompileModel(m Model, device string) (CompiledModel, error)
}

// Model is a constructed, uncompiled target graph.
type Model interface{}

// CompiledModel is a model compiled for a specific device, ready to
// create infer requests and to be serialized to the on-disk cache.
type CompiledModel interface {
	CreateInferRequest() (InferRequest, error)
	// SerializeTo writes the compiled model's sibling artifact files
	// (xml structure, bin weights) to xmlPath and binPath, the full
	// paths cache.Paths derives from the cache directory and model token.
	SerializeTo(xmlPath, binPath string) error
}

// Port is a single input or output buffer on an InferRequest. Bytes
// exposes the buffer the delegate's Eval memcpys into or out of.
type Port interface {
	Bytes() []byte
}

// InferRequest executes one compiled model's forward pass.
type InferRequest interface {
	InputPort(i int) (Port, error)
	OutputPort(i int) (Port, error)
	StartAsync() error
	Wait(timeout time.Duration) error
}
