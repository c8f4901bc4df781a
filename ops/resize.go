package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/layout"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateResizeBilinear grounds on
// operations/src/resize_bilinear.cc: LINEAR_ONNX interpolation driven
// by an explicit output size tensor, wrapped in NHWC->NCHW->NHWC
// transposes since the target Interpolate node operates over the
// spatial axes that sit at positions 2 and 3 once the input is in
// NCHW. The coordinate transformation mode is chosen from
// align_corners/half_pixel_centers in that priority order.
func translateResizeBilinear(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	attrs, ok := node.Attrs().(ResizeBilinearAttrs)
	if !ok {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: ResizeBilinear expects ResizeBilinearAttrs")
	}
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	sizes, err := ctx.input(node, 1)
	if err != nil {
		return nil, err
	}

	nchw, err := layout.Transpose(ctx.Factory, input, layout.NHWCToNCHW)
	if err != nil {
		return nil, err
	}
	axes, err := shapeConstant(ctx.Factory, []int64{2, 3})
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: ResizeBilinear axes constant")
	}

	var coord targetiface.CoordinateMode
	switch {
	case attrs.AlignCorners:
		coord = targetiface.CoordAlignCorners
	case attrs.HalfPixelCenters:
		coord = targetiface.CoordHalfPixel
	default:
		coord = targetiface.CoordAsymmetric
	}

	resized, err := ctx.Factory.Interpolate(nchw, sizes, axes, targetiface.InterpolateAttrs{CoordinateMode: coord})
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: ResizeBilinear")
	}
	out, err := layout.Transpose(ctx.Factory, resized, layout.NCHWToNHWC)
	if err != nil {
		return nil, err
	}
	return out, nil
}
