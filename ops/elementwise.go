package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/activation"
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateAdd grounds on operations/src/add.cc: a plain numpy-broadcast
// Add, since the target library's Add node already implements
// broadcasting the way TFLite's ADD does, followed by the fused
// activation.
func translateAdd(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	attrs, ok := node.Attrs().(AddAttrs)
	if !ok {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: Add expects AddAttrs")
	}
	a, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	b, err := ctx.input(node, 1)
	if err != nil {
		return nil, err
	}
	sum, err := ctx.Factory.Add(a, b)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Add")
	}
	out, err := activation.Apply(ctx.Factory, sum, attrs.Activation)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// translateMul grounds on the same broadcasting contract as Add, using
// Multiply instead.
func translateMul(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	attrs, ok := node.Attrs().(MulAttrs)
	if !ok {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: Mul expects MulAttrs")
	}
	a, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	b, err := ctx.input(node, 1)
	if err != nil {
		return nil, err
	}
	prod, err := ctx.Factory.Multiply(a, b)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Mul")
	}
	out, err := activation.Apply(ctx.Factory, prod, attrs.Activation)
	if err != nil {
		return nil, err
	}
	return out, nil
}
