package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

type stubNode struct{ tag string }

func (stubNode) Shape() []int64                { return nil }
func (stubNode) Type() targetiface.ElementType { return targetiface.F32 }

type spyFactory struct {
	targetiface.Factory
	called string
	lo, hi float64
}

func (f *spyFactory) Relu(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	f.called = "relu"
	return stubNode{"relu"}, nil
}
func (f *spyFactory) Clamp(input targetiface.GraphNode, lo, hi float64) (targetiface.GraphNode, error) {
	f.called = "clamp"
	f.lo, f.hi = lo, hi
	return stubNode{"clamp"}, nil
}
func (f *spyFactory) Tanh(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	f.called = "tanh"
	return stubNode{"tanh"}, nil
}
func (f *spyFactory) Sigmoid(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	f.called = "sigmoid"
	return stubNode{"sigmoid"}, nil
}

func TestApplyNoneIsPassthrough(t *testing.T) {
	f := &spyFactory{}
	in := stubNode{"in"}
	out, err := Apply(f, in, None)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Empty(t, f.called)
}

func TestApplyRelu6IsClamp0To6(t *testing.T) {
	f := &spyFactory{}
	_, err := Apply(f, stubNode{}, Relu6)
	require.NoError(t, err)
	assert.Equal(t, "clamp", f.called)
	assert.Equal(t, 0.0, f.lo)
	assert.Equal(t, 6.0, f.hi)
}

func TestApplyReluN1To1IsClampMinus1To1(t *testing.T) {
	f := &spyFactory{}
	_, err := Apply(f, stubNode{}, ReluN1To1)
	require.NoError(t, err)
	assert.Equal(t, "clamp", f.called)
	assert.Equal(t, -1.0, f.lo)
	assert.Equal(t, 1.0, f.hi)
}

func TestApplyUnsupportedKind(t *testing.T) {
	f := &spyFactory{}
	_, err := Apply(f, stubNode{}, Kind(99))
	require.Error(t, err)
	assert.Equal(t, diag.KindUnsupportedAttribute, diag.Kind(err))
}
