package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translatePad grounds on operations/src/pad.cc: the padding tensor is
// shaped [rank, 2], i32 or i64, with the begin/end pad counts
// interleaved per axis; this translator splits the even and odd
// indices into two separate pads_begin/pads_end constants, the shape
// the target Pad node requires, and always uses constant (zero) fill.
func translatePad(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	padTensor, err := ctx.sourceTensor(node, 1)
	if err != nil {
		return nil, err
	}
	shape := padTensor.Shape()
	if len(shape) != 2 || shape[1] != 2 {
		return nil, diag.Newf(diag.KindUnsupportedAttribute, "ops: Pad expects a [rank,2] padding tensor, got shape %v", shape)
	}
	rank := int(shape[0])

	begin := make([]int64, rank)
	end := make([]int64, rank)
	switch padTensor.Type() {
	case hostiface.Int32:
		vals := hostiface.ViewInt32(padTensor.Raw())
		if len(vals) < rank*2 {
			return nil, diag.New(diag.KindUnsupportedAttribute, "ops: Pad padding tensor truncated")
		}
		for i := 0; i < rank; i++ {
			begin[i] = int64(vals[i*2])
			end[i] = int64(vals[i*2+1])
		}
	case hostiface.Int64:
		vals := hostiface.ViewInt64(padTensor.Raw())
		if len(vals) < rank*2 {
			return nil, diag.New(diag.KindUnsupportedAttribute, "ops: Pad padding tensor truncated")
		}
		for i := 0; i < rank; i++ {
			begin[i] = vals[i*2]
			end[i] = vals[i*2+1]
		}
	default:
		return nil, diag.Newf(diag.KindUnsupportedType, "ops: Pad padding tensor has unsupported type %v", padTensor.Type())
	}

	beginNode, err := shapeConstant(ctx.Factory, begin)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Pad pads_begin constant")
	}
	endNode, err := shapeConstant(ctx.Factory, end)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Pad pads_end constant")
	}
	out, err := ctx.Factory.Pad(input, beginNode, endNode, targetiface.PadConstantMode)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Pad")
	}
	return out, nil
}
