package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateDequantize grounds on operations/src/dequantize.cc: a plain
// Convert to f32, the only output type this delegate ever needs from a
// quantized source tensor.
func translateDequantize(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	out, err := ctx.Factory.Convert(input, targetiface.F32)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Dequantize")
	}
	return out, nil
}
