// Package layout implements the two primitives every spatial-op
// translator shares: the fixed NHWC/NCHW/IHWO/OHWI transpose
// permutations the target library's convolution and pooling nodes
// require, and the translation from the host's builtin padding enum to
// the target library's AutoPad.
package layout

import (
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// Conversion names a fixed transpose permutation between the source
// runtime's tensor layout and the target library's.
type Conversion int

const (
	NHWCToNCHW Conversion = iota
	NCHWToNHWC
	IHWOToOIHW
	OHWIToOIHW
)

// order returns the permutation axis order for a Conversion, matching
// the exact order vectors used by every spatial translator.
func order(c Conversion) []int64 {
	switch c {
	case NHWCToNCHW:
		return []int64{0, 3, 1, 2}
	case NCHWToNHWC:
		return []int64{0, 2, 3, 1}
	case IHWOToOIHW:
		return []int64{3, 0, 1, 2}
	case OHWIToOIHW:
		return []int64{0, 3, 1, 2}
	default:
		return nil
	}
}

// Transpose emits a Transpose node converting input's layout per c.
func Transpose(f targetiface.Factory, input targetiface.GraphNode, c Conversion) (targetiface.GraphNode, error) {
	perm := order(c)
	if perm == nil {
		return nil, diag.Newf(diag.KindUnsupportedAttribute, "layout: unknown conversion %d", c)
	}
	out, err := f.Transpose(input, perm)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "layout: emit transpose")
	}
	return out, nil
}

// PaddingKind is the host's builtin padding enum.
type PaddingKind int

const (
	PaddingSame PaddingKind = iota
	PaddingValid
)

// TranslatePadding maps the host's builtin padding enum to the target
// library's AutoPad. Any value other than PaddingSame/PaddingValid is
// an UnsupportedAttribute error.
func TranslatePadding(p PaddingKind) (targetiface.AutoPad, error) {
	switch p {
	case PaddingSame:
		return targetiface.PadSameUpper, nil
	case PaddingValid:
		return targetiface.PadValid, nil
	default:
		return targetiface.PadExplicit, diag.Newf(diag.KindUnsupportedAttribute, "layout: unsupported padding kind %d", p)
	}
}
