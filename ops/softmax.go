package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateSoftmax grounds on operations/src/softmax.cc. Beta is
// validated at probe time (rejected unless it equals 1.0, since the
// target Softmax node has no beta scaling parameter) and is otherwise
// not read here. The axis defaults to the source layout's last
// dimension; the original does not transpose its input before calling
// Softmax despite a comment suggesting the channel dimension shifts to
// axis 1, so this translator follows the code, not the comment.
func translateSoftmax(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	shape := input.Shape()
	if len(shape) == 0 {
		return nil, diag.New(diag.KindUnsupportedRank, "ops: Softmax requires a known-rank input")
	}
	axis := int64(len(shape) - 1)
	out, err := ctx.Factory.Softmax(input, axis)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Softmax")
	}
	return out, nil
}
