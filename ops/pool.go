package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/activation"
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/layout"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateAveragePool2D grounds on operations/src/average_pool_2d.cc:
// transpose NHWC to NCHW, pool with exclude_pad and floor rounding,
// transpose back, then the fused activation.
func translateAveragePool2D(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	return translatePool2D(ctx, node, false)
}

// translateMaxPool2D mirrors AveragePool2D but with no exclude_pad
// concept (max pooling ignores padded cells regardless).
func translateMaxPool2D(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	return translatePool2D(ctx, node, true)
}

func translatePool2D(ctx *Context, node hostiface.SourceNode, isMax bool) (targetiface.GraphNode, error) {
	attrs, ok := node.Attrs().(Pool2DAttrs)
	if !ok {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: pool expects Pool2DAttrs")
	}
	in, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	pad, err := layout.TranslatePadding(attrs.Padding)
	if err != nil {
		return nil, err
	}
	nchw, err := layout.Transpose(ctx.Factory, in, layout.NHWCToNCHW)
	if err != nil {
		return nil, err
	}
	kernel := []int64{attrs.FilterH, attrs.FilterW}
	strides := []int64{attrs.StrideH, attrs.StrideW}

	var pooled targetiface.GraphNode
	if isMax {
		pooled, err = ctx.Factory.MaxPool(nchw, kernel, strides, pad)
	} else {
		pooled, err = ctx.Factory.AvgPool(nchw, kernel, strides, pad, true)
	}
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: pool")
	}

	nhwc, err := layout.Transpose(ctx.Factory, pooled, layout.NCHWToNHWC)
	if err != nil {
		return nil, err
	}
	out, err := activation.Apply(ctx.Factory, nhwc, attrs.Activation)
	if err != nil {
		return nil, err
	}
	return out, nil
}
