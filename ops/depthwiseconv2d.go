package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/activation"
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/layout"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateDepthwiseConv2D grounds on
// operations/src/depthwise_conv2d.cc. The filter arrives IHWO (input
// channels fixed at 1 for a true depthwise filter, output channels
// carrying channels*depth_multiplier); transposed to OIHW its
// input-channel dimension is the per-group channel count the same way
// conv_2d.cc's is, so the group count follows the identical ratio
// computation. Unlike conv_2d.cc, the original's internal filter
// reshape uses special_zero=true rather than false; that distinction
// is preserved here rather than unified, since it is the original's
// actual behavior and not a typo this translation should silently fix.
func translateDepthwiseConv2D(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	attrs, ok := node.Attrs().(DepthwiseConv2DAttrs)
	if !ok {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: DepthwiseConv2D expects DepthwiseConv2DAttrs")
	}

	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	filter, err := ctx.input(node, 1)
	if err != nil {
		return nil, err
	}
	bias, err := ctx.optionalInput(node, 2)
	if err != nil {
		return nil, err
	}
	pad, err := layout.TranslatePadding(attrs.Padding)
	if err != nil {
		return nil, err
	}

	inShape := input.Shape()
	if len(inShape) != 4 {
		return nil, diag.New(diag.KindUnsupportedRank, "ops: DepthwiseConv2D requires rank-4 input")
	}
	cin := inShape[3]

	nchwInput, err := layout.Transpose(ctx.Factory, input, layout.NHWCToNCHW)
	if err != nil {
		return nil, err
	}
	oihwFilter, err := layout.Transpose(ctx.Factory, filter, layout.IHWOToOIHW)
	if err != nil {
		return nil, err
	}
	filtShape := oihwFilter.Shape()
	if len(filtShape) != 4 || filtShape[1] == 0 {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: DepthwiseConv2D filter has zero input channels")
	}
	cinPerGroup := filtShape[1]
	groups := cin / cinPerGroup
	cout := filtShape[0]

	var conv targetiface.GraphNode
	if groups <= 1 {
		conv, err = ctx.Factory.Convolution(nchwInput, oihwFilter, []int64{attrs.StrideH, attrs.StrideW}, []int64{attrs.DilationH, attrs.DilationW}, pad)
	} else {
		grouped, rerr := shapeConstant(ctx.Factory, []int64{groups, cout / groups, cinPerGroup, filtShape[2], filtShape[3]})
		if rerr != nil {
			return nil, diag.Wrap(rerr, diag.KindTargetCompileError, "ops: DepthwiseConv2D group-reshape shape constant")
		}
		reshaped, rerr := ctx.Factory.Reshape(oihwFilter, grouped, true)
		if rerr != nil {
			return nil, diag.Wrap(rerr, diag.KindTargetCompileError, "ops: DepthwiseConv2D group-reshape filter")
		}
		conv, err = ctx.Factory.GroupConvolution(nchwInput, reshaped, []int64{attrs.StrideH, attrs.StrideW}, []int64{attrs.DilationH, attrs.DilationW}, pad)
	}
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: DepthwiseConv2D")
	}

	nhwc, err := layout.Transpose(ctx.Factory, conv, layout.NCHWToNHWC)
	if err != nil {
		return nil, err
	}

	result := nhwc
	if bias != nil {
		result, err = ctx.Factory.Add(nhwc, bias)
		if err != nil {
			return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: DepthwiseConv2D bias add")
		}
	}
	out, err := activation.Apply(ctx.Factory, result, attrs.Activation)
	if err != nil {
		return nil, err
	}
	return out, nil
}
