package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/layout"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// Input positions for TransposeConv, grounded on
// operations/operations_base.h's Index enum: the output shape tensor
// comes first, ahead of the weights, which is unusual among the other
// translated ops (everywhere else, index 0 is the data input).
const (
	transposeConvOutputShape = 0
	transposeConvWeights     = 1
	transposeConvInput       = 2
	transposeConvBias        = 3
)

// translateTransposeConv grounds on operations/src/transpose_conv.cc.
// Dilations are fixed to 1; there is no fused-activation attribute on
// this op in the original, so none is applied here either.
func translateTransposeConv(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	attrs, ok := node.Attrs().(TransposeConvAttrs)
	if !ok {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: TransposeConv expects TransposeConvAttrs")
	}

	spatialShape, err := transposeConvSpatialOutputShape(ctx, node)
	if err != nil {
		return nil, err
	}
	weights, err := ctx.input(node, transposeConvWeights)
	if err != nil {
		return nil, err
	}
	input, err := ctx.input(node, transposeConvInput)
	if err != nil {
		return nil, err
	}
	bias, err := ctx.optionalInput(node, transposeConvBias)
	if err != nil {
		return nil, err
	}
	pad, err := layout.TranslatePadding(attrs.Padding)
	if err != nil {
		return nil, err
	}

	nchwInput, err := layout.Transpose(ctx.Factory, input, layout.NHWCToNCHW)
	if err != nil {
		return nil, err
	}
	oihwFilter, err := layout.Transpose(ctx.Factory, weights, layout.IHWOToOIHW)
	if err != nil {
		return nil, err
	}

	conv, err := ctx.Factory.ConvolutionBackpropData(nchwInput, oihwFilter, spatialShape, []int64{attrs.StrideH, attrs.StrideW}, []int64{1, 1}, pad)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: TransposeConv")
	}

	nhwc, err := layout.Transpose(ctx.Factory, conv, layout.NCHWToNHWC)
	if err != nil {
		return nil, err
	}

	if bias == nil {
		return nhwc, nil
	}
	out, err := ctx.Factory.Add(nhwc, bias)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: TransposeConv bias add")
	}
	return out, nil
}

// transposeConvSpatialOutputShape grounds on
// operations/src/transpose_conv.cc:41-47: the output_shape input is the
// full NHWC vector [batch, out_h, out_w, out_channels], but
// ConvolutionBackpropData only takes the two spatial dims. This reads
// the tensor's raw values directly (it is never itself the output of
// another node) and builds a fresh 2-element constant from indices 1
// and 2, rather than forwarding the whole 4-element tensor.
func transposeConvSpatialOutputShape(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	t, err := ctx.sourceTensor(node, transposeConvOutputShape)
	if err != nil {
		return nil, err
	}
	shape := t.Shape()
	if len(shape) != 1 || shape[0] != 4 {
		return nil, diag.Newf(diag.KindUnsupportedAttribute, "ops: TransposeConv output_shape expects a length-4 vector, got shape %v", shape)
	}

	var outH, outW int64
	switch t.Type() {
	case hostiface.Int32:
		vals := hostiface.ViewInt32(t.Raw())
		if len(vals) < 4 {
			return nil, diag.New(diag.KindUnsupportedAttribute, "ops: TransposeConv output_shape tensor truncated")
		}
		outH, outW = int64(vals[1]), int64(vals[2])
	case hostiface.Int64:
		vals := hostiface.ViewInt64(t.Raw())
		if len(vals) < 4 {
			return nil, diag.New(diag.KindUnsupportedAttribute, "ops: TransposeConv output_shape tensor truncated")
		}
		outH, outW = vals[1], vals[2]
	default:
		return nil, diag.Newf(diag.KindUnsupportedType, "ops: TransposeConv output_shape tensor has unsupported type %v", t.Type())
	}

	node2, err := shapeConstant(ctx.Factory, []int64{outH, outW})
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: TransposeConv spatial output shape constant")
	}
	return node2, nil
}
