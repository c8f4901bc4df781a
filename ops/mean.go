package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateMean grounds on operations/src/mean.cc: the reduction axes
// arrive as the node's second input tensor, resolved like any other
// constant and passed straight to ReduceMean.
func translateMean(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	attrs, ok := node.Attrs().(MeanAttrs)
	if !ok {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: Mean expects MeanAttrs")
	}
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	axes, err := ctx.input(node, 1)
	if err != nil {
		return nil, err
	}
	out, err := ctx.Factory.ReduceMean(input, axes, attrs.KeepDims)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Mean")
	}
	return out, nil
}
