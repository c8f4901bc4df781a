// Package ops implements the Operator Translators: one file per builtin
// op kind, each a pure function from a source node's attributes and
// resolved input nodes to a single target graph node (plus any fused
// activation). Translators are dispatched through a closed catalog
// (Catalog) rather than an open interface hierarchy, since the op set
// is fixed and small; see DESIGN.md for the tradeoff.
package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// Context bundles everything a translator needs that it does not own
// itself: read access to the source subgraph for attribute-tensor data,
// the target Factory to emit nodes through, and a Resolve callback the
// Graph Builder supplies to turn a source tensor index into its target
// producer node (materializing a constant node on first reference, or
// returning MissingProducer if the tensor is neither a constant nor an
// already-registered parameter).
type Context struct {
	Src     hostiface.SourceContext
	Factory targetiface.Factory
	Resolve func(tensorIdx int) (targetiface.GraphNode, error)
}

// input resolves node's i'th input tensor to its target producer node.
func (c *Context) input(node hostiface.SourceNode, i int) (targetiface.GraphNode, error) {
	ins := node.Inputs()
	if i >= len(ins) {
		return nil, diag.Newf(diag.KindUnsupportedAttribute, "ops: input index %d out of range (have %d)", i, len(ins))
	}
	return c.Resolve(ins[i])
}

// sourceTensor returns the hostiface.SourceTensor backing node's i'th
// input, for translators (Pad, TransposeConv) that need to read an attribute tensor's
// raw values rather than resolve it to a target producer node.
func (c *Context) sourceTensor(node hostiface.SourceNode, i int) (hostiface.SourceTensor, error) {
	ins := node.Inputs()
	if i >= len(ins) {
		return nil, diag.Newf(diag.KindUnsupportedAttribute, "ops: input index %d out of range (have %d)", i, len(ins))
	}
	t := c.Src.Tensor(ins[i])
	if t == nil {
		return nil, diag.Newf(diag.KindUnsupportedAttribute, "ops: tensor %d not found in source context", ins[i])
	}
	return t, nil
}

// optionalInput resolves node's i'th input if present (TFLite encodes
// "no tensor" as a negative or out-of-range index for optional inputs
// like TransposeConv's bias); returns nil, nil if absent.
func (c *Context) optionalInput(node hostiface.SourceNode, i int) (targetiface.GraphNode, error) {
	ins := node.Inputs()
	if i >= len(ins) || ins[i] < 0 {
		return nil, nil
	}
	return c.Resolve(ins[i])
}

// Translator is the signature every op file implements exactly once.
type Translator func(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error)

// Catalog dispatches a hostiface.OpKind to its Translator. Closed: an
// OpKind with no entry is a probe-time UnsupportedOp, never a panic.
var Catalog = map[hostiface.OpKind]Translator{
	hostiface.OpAdd:             translateAdd,
	hostiface.OpMul:             translateMul,
	hostiface.OpAveragePool2D:   translateAveragePool2D,
	hostiface.OpMaxPool2D:       translateMaxPool2D,
	hostiface.OpConv2D:          translateConv2D,
	hostiface.OpDepthwiseConv2D: translateDepthwiseConv2D,
	hostiface.OpTransposeConv:   translateTransposeConv,
	hostiface.OpConcatenation:   translateConcatenation,
	hostiface.OpReshape:         translateReshape,
	hostiface.OpSoftmax:         translateSoftmax,
	hostiface.OpResizeBilinear:  translateResizeBilinear,
	hostiface.OpMean:            translateMean,
	hostiface.OpPad:             translatePad,
	hostiface.OpDequantize:      translateDequantize,
	hostiface.OpRelu:            translateRelu,
	hostiface.OpRelu6:           translateRelu6,
	hostiface.OpLogistic:        translateLogistic,
	hostiface.OpHardSwish:       translateHardSwish,
	hostiface.OpTanh:            translateTanh,
}

// Lookup returns the Translator for k, or nil, false if k has none.
func Lookup(k hostiface.OpKind) (Translator, bool) {
	t, ok := Catalog[k]
	return t, ok
}
