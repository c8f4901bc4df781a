package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/activation"
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/layout"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateConv2D grounds on operations/src/conv_2d.cc. The filter
// arrives OHWI; TFLite encodes a grouped convolution by shrinking the
// filter's trailing (input-channel) dimension to in_channels/groups
// rather than by splitting the node, so the group count is recovered
// from the ratio of the input's channel count to the filter's. A
// group count of 1 takes the plain Convolution path; anything larger
// reshapes the OIHW filter to GroupConvolution's
// [groups, out/groups, in/groups, H, W] layout first.
func translateConv2D(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	attrs, ok := node.Attrs().(Conv2DAttrs)
	if !ok {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: Conv2D expects Conv2DAttrs")
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

	inShape := input.Shape()   // NHWC
	filtShape := filter.Shape() // OHWI
	if len(inShape) != 4 || len(filtShape) != 4 {
		return nil, diag.New(diag.KindUnsupportedRank, "ops: Conv2D requires rank-4 input and filter")
	}
	cin := inShape[3]
	cinPerGroup := filtShape[3]
	if cinPerGroup == 0 {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: Conv2D filter has zero input channels")
	}
	groups := cin / cinPerGroup

	nchwInput, err := layout.Transpose(ctx.Factory, input, layout.NHWCToNCHW)
	if err != nil {
		return nil, err
	}
	oihwFilter, err := layout.Transpose(ctx.Factory, filter, layout.OHWIToOIHW)
	if err != nil {
		return nil, err
	}

	strides := []int64{attrs.StrideH, attrs.StrideW}
	dilations := []int64{attrs.DilationH, attrs.DilationW}

	var conv targetiface.GraphNode
	if groups <= 1 {
		conv, err = ctx.Factory.Convolution(nchwInput, oihwFilter, strides, dilations, pad)
	} else {
		cout := filtShape[0]
		grouped, rerr := shapeConstant(ctx.Factory, []int64{groups, cout / groups, cinPerGroup, filtShape[1], filtShape[2]})
		if rerr != nil {
			return nil, diag.Wrap(rerr, diag.KindTargetCompileError, "ops: Conv2D group-reshape shape constant")
		}
		reshaped, rerr := ctx.Factory.Reshape(oihwFilter, grouped, false)
		if rerr != nil {
			return nil, diag.Wrap(rerr, diag.KindTargetCompileError, "ops: Conv2D group-reshape filter")
		}
		conv, err = ctx.Factory.GroupConvolution(nchwInput, reshaped, strides, dilations, pad)
	}
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Conv2D")
	}

	nhwc, err := layout.Transpose(ctx.Factory, conv, layout.NCHWToNHWC)
	if err != nil {
		return nil, err
	}

	result := nhwc
	if bias != nil {
		result, err = ctx.Factory.Add(nhwc, bias)
		if err != nil {
			return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Conv2D bias add")
		}
	}
	out, err := activation.Apply(ctx.Factory, result, attrs.Activation)
	if err != nil {
		return nil, err
	}
	return out, nil
}
