package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/activation"
	"github.com/anikulk/tflite-openvino-delegate/layout"
)

// AddAttrs is OpAdd's builtin attributes.
type AddAttrs struct {
	Activation activation.Kind
}

// MulAttrs is OpMul's builtin attributes.
type MulAttrs struct {
	Activation activation.Kind
}

// Pool2DAttrs is shared by OpAveragePool2D and OpMaxPool2D.
type Pool2DAttrs struct {
	Padding    layout.PaddingKind
	FilterH    int64
	FilterW    int64
	StrideH    int64
	StrideW    int64
	Activation activation.Kind
}

// Conv2DAttrs is OpConv2D's builtin attributes.
type Conv2DAttrs struct {
	Padding     layout.PaddingKind
	StrideH     int64
	StrideW     int64
	DilationH   int64
	DilationW   int64
	Activation  activation.Kind
}

// DepthwiseConv2DAttrs is OpDepthwiseConv2D's builtin attributes.
type DepthwiseConv2DAttrs struct {
	Padding         layout.PaddingKind
	StrideH         int64
	StrideW         int64
	DilationH       int64
	DilationW       int64
	DepthMultiplier int64
	Activation      activation.Kind
}

// TransposeConvAttrs is OpTransposeConv's builtin attributes. Dilations
// are fixed to 1 per the original operator's contract.
type TransposeConvAttrs struct {
	Padding layout.PaddingKind
	StrideH int64
	StrideW int64
}

// ConcatenationAttrs is OpConcatenation's builtin attributes.
type ConcatenationAttrs struct {
	Axis       int64
	Activation activation.Kind
}

// SoftmaxAttrs is OpSoftmax's builtin attributes. Beta is read and
// validated at probe time (non-1.0 is rejected there) but otherwise
// ignored by the translator, since the target Softmax node has no beta
// parameter; see DESIGN.md's note on the Open Question this resolves.
type SoftmaxAttrs struct {
	Beta float64
}

// ResizeBilinearAttrs is OpResizeBilinear's builtin attributes.
type ResizeBilinearAttrs struct {
	AlignCorners     bool
	HalfPixelCenters bool
}

// MeanAttrs is OpMean's builtin attributes.
type MeanAttrs struct {
	KeepDims bool
}
