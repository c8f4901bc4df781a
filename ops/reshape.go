package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateReshape grounds on operations/src/reshape.cc: the shape
// tensor is the node's second input, and special_zero is always false
// for this operator — a literal zero dimension in the target shape
// means "zero-size dimension", never "copy from input", unlike
// conv_2d.cc/depthwise_conv2d.cc's internal filter-reshape special_zero
// values, which are a distinct, unrelated use of Reshape.
func translateReshape(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	shape, err := ctx.input(node, 1)
	if err != nil {
		return nil, err
	}
	out, err := ctx.Factory.Reshape(input, shape, false)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Reshape")
	}
	return out, nil
}
