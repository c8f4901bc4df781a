package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

type recordingFactory struct {
	targetiface.Factory
	lastOrder []int64
}

type stubNode struct {
	shape []int64
	typ   targetiface.ElementType
}

func (n stubNode) Shape() []int64              { return n.shape }
func (n stubNode) Type() targetiface.ElementType { return n.typ }

func (f *recordingFactory) Transpose(input targetiface.GraphNode, order []int64) (targetiface.GraphNode, error) {
	f.lastOrder = order
	return stubNode{}, nil
}

func TestTransposeOrders(t *testing.T) {
	cases := []struct {
		name string
		conv Conversion
		want []int64
	}{
		{"NHWC to NCHW", NHWCToNCHW, []int64{0, 3, 1, 2}},
		{"NCHW to NHWC", NCHWToNHWC, []int64{0, 2, 3, 1}},
		{"IHWO to OIHW", IHWOToOIHW, []int64{3, 0, 1, 2}},
		{"OHWI to OIHW", OHWIToOIHW, []int64{0, 3, 1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &recordingFactory{}
			_, err := Transpose(f, stubNode{}, tc.conv)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.lastOrder)
		})
	}
}

func TestTransposeUnknownConversion(t *testing.T) {
	f := &recordingFactory{}
	_, err := Transpose(f, stubNode{}, Conversion(99))
	require.Error(t, err)
	assert.Equal(t, diag.KindUnsupportedAttribute, diag.Kind(err))
}

func TestTranslatePadding(t *testing.T) {
	p, err := TranslatePadding(PaddingSame)
	require.NoError(t, err)
	assert.Equal(t, targetiface.PadSameUpper, p)

	p, err = TranslatePadding(PaddingValid)
	require.NoError(t, err)
	assert.Equal(t, targetiface.PadValid, p)

	_, err = TranslatePadding(PaddingKind(99))
	require.Error(t, err)
	assert.Equal(t, diag.KindUnsupportedAttribute, diag.Kind(err))
}
