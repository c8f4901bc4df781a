package graphbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anikulk/tflite-openvino-delegate/activation"
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/ops"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

type fakeTensor struct {
	shape []int64
	typ   hostiface.DataType
	alloc hostiface.AllocationClass
	raw   []byte
}

func (t fakeTensor) Shape() []int64                        { return t.shape }
func (t fakeTensor) Type() hostiface.DataType               { return t.typ }
func (t fakeTensor) Allocation() hostiface.AllocationClass { return t.alloc }
func (t fakeTensor) Raw() []byte                            { return t.raw }

type fakeNode struct {
	op    hostiface.OpKind
	ins   []int
	outs  []int
	attrs interface{}
}

func (n fakeNode) OpKind() hostiface.OpKind { return n.op }
func (n fakeNode) Inputs() []int            { return n.ins }
func (n fakeNode) Outputs() []int           { return n.outs }
func (n fakeNode) Attrs() interface{}       { return n.attrs }

type fakeSrc struct {
	tensors map[int]hostiface.SourceTensor
	nodes   []hostiface.SourceNode
}

func (s *fakeSrc) Tensor(idx int) hostiface.SourceTensor { return s.tensors[idx] }
func (s *fakeSrc) TensorCount() int                      { return len(s.tensors) }
func (s *fakeSrc) Node(idx int) hostiface.SourceNode      { return s.nodes[idx] }
func (s *fakeSrc) NodeCount() int                         { return len(s.nodes) }

type stubNode struct {
	tag   string
	shape []int64
}

func (s stubNode) Shape() []int64                { return s.shape }
func (s stubNode) Type() targetiface.ElementType { return targetiface.F32 }

// recordingFactory is a minimal, allocation-tagging targetiface.Factory
// sufficient to drive Add/Relu translators through Build.
type recordingFactory struct {
	paramCount int
	constCount int
}

func (f *recordingFactory) Parameter(shape []int64, t targetiface.ElementType) (targetiface.GraphNode, error) {
	f.paramCount++
	return stubNode{tag: "param", shape: shape}, nil
}
func (f *recordingFactory) Constant(shape []int64, t targetiface.ElementType, data []byte) (targetiface.GraphNode, error) {
	f.constCount++
	return stubNode{tag: "const", shape: shape}, nil
}
func (f *recordingFactory) Transpose(input targetiface.GraphNode, order []int64) (targetiface.GraphNode, error) {
	return stubNode{tag: "transpose"}, nil
}
func (f *recordingFactory) Reshape(input, shape targetiface.GraphNode, specialZero bool) (targetiface.GraphNode, error) {
	return stubNode{tag: "reshape"}, nil
}
func (f *recordingFactory) Add(a, b targetiface.GraphNode) (targetiface.GraphNode, error) {
	return stubNode{tag: "add"}, nil
}
func (f *recordingFactory) Multiply(a, b targetiface.GraphNode) (targetiface.GraphNode, error) {
	return stubNode{tag: "multiply"}, nil
}
func (f *recordingFactory) Convolution(input, filter targetiface.GraphNode, strides, dilations []int64, pad targetiface.AutoPad) (targetiface.GraphNode, error) {
	return stubNode{tag: "conv"}, nil
}
func (f *recordingFactory) GroupConvolution(input, filter targetiface.GraphNode, strides, dilations []int64, pad targetiface.AutoPad) (targetiface.GraphNode, error) {
	return stubNode{tag: "gconv"}, nil
}
func (f *recordingFactory) ConvolutionBackpropData(input, filter, outputShape targetiface.GraphNode, strides, dilations []int64, pad targetiface.AutoPad) (targetiface.GraphNode, error) {
	return stubNode{tag: "deconv"}, nil
}
func (f *recordingFactory) AvgPool(input targetiface.GraphNode, kernel, strides []int64, pad targetiface.AutoPad, excludePad bool) (targetiface.GraphNode, error) {
	return stubNode{tag: "avgpool"}, nil
}
func (f *recordingFactory) MaxPool(input targetiface.GraphNode, kernel, strides []int64, pad targetiface.AutoPad) (targetiface.GraphNode, error) {
	return stubNode{tag: "maxpool"}, nil
}
func (f *recordingFactory) Concat(inputs []targetiface.GraphNode, axis int64) (targetiface.GraphNode, error) {
	return stubNode{tag: "concat"}, nil
}
func (f *recordingFactory) Softmax(input targetiface.GraphNode, axis int64) (targetiface.GraphNode, error) {
	return stubNode{tag: "softmax"}, nil
}
func (f *recordingFactory) ReduceMean(input, axes targetiface.GraphNode, keepDims bool) (targetiface.GraphNode, error) {
	return stubNode{tag: "reduce_mean"}, nil
}
func (f *recordingFactory) Pad(input, padsBegin, padsEnd targetiface.GraphNode, mode targetiface.PadMode) (targetiface.GraphNode, error) {
	return stubNode{tag: "pad"}, nil
}
func (f *recordingFactory) Convert(input targetiface.GraphNode, t targetiface.ElementType) (targetiface.GraphNode, error) {
	return stubNode{tag: "convert"}, nil
}
func (f *recordingFactory) Interpolate(input, sizes, axes targetiface.GraphNode, attrs targetiface.InterpolateAttrs) (targetiface.GraphNode, error) {
	return stubNode{tag: "interpolate"}, nil
}
func (f *recordingFactory) Relu(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	return stubNode{tag: "relu"}, nil
}
func (f *recordingFactory) Clamp(input targetiface.GraphNode, lo, hi float64) (targetiface.GraphNode, error) {
	return stubNode{tag: "clamp"}, nil
}
func (f *recordingFactory) Tanh(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	return stubNode{tag: "tanh"}, nil
}
func (f *recordingFactory) Sigmoid(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	return stubNode{tag: "sigmoid"}, nil
}
func (f *recordingFactory) HardSwish(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	return stubNode{tag: "hard_swish"}, nil
}

func TestBuildAddThenRelu(t *testing.T) {
	src := &fakeSrc{
		tensors: map[int]hostiface.SourceTensor{
			0: fakeTensor{shape: []int64{1, 4}, typ: hostiface.Float32, alloc: hostiface.Dynamic},
			1: fakeTensor{shape: []int64{1, 4}, typ: hostiface.Float32, alloc: hostiface.MmapRo, raw: make([]byte, 16)},
		},
		nodes: []hostiface.SourceNode{
			fakeNode{op: hostiface.OpAdd, ins: []int{0, 1}, outs: []int{2}, attrs: ops.AddAttrs{Activation: activation.None}},
			fakeNode{op: hostiface.OpRelu, ins: []int{2}, outs: []int{3}},
		},
	}
	f := &recordingFactory{}
	result, err := Build(src, f, []int{3})
	require.NoError(t, err)
	assert.Len(t, result.ResultNodes, 1)
	assert.Len(t, result.InputParams, 1)
	assert.Len(t, result.ComputeInputs, 1)
	assert.Equal(t, 0, result.ComputeInputs[0])
	assert.Equal(t, 1, f.paramCount)
	assert.Equal(t, 1, f.constCount)
}

func TestBuildEmptyOutputsRejected(t *testing.T) {
	src := &fakeSrc{}
	f := &recordingFactory{}
	_, err := Build(src, f, nil)
	require.Error(t, err)
}

func TestBuildUnsupportedOp(t *testing.T) {
	src := &fakeSrc{
		tensors: map[int]hostiface.SourceTensor{
			0: fakeTensor{shape: []int64{1}, typ: hostiface.Float32, alloc: hostiface.Dynamic},
		},
		nodes: []hostiface.SourceNode{
			fakeNode{op: hostiface.OpUnsupported, ins: []int{0}, outs: []int{1}},
		},
	}
	f := &recordingFactory{}
	_, err := Build(src, f, []int{1})
	require.Error(t, err)
	assert.Equal(t, diag.KindUnsupportedOp, diag.Kind(err))
}

func TestBuildMultipleOutputsRejected(t *testing.T) {
	src := &fakeSrc{
		tensors: map[int]hostiface.SourceTensor{
			0: fakeTensor{shape: []int64{1}, typ: hostiface.Float32, alloc: hostiface.Dynamic},
		},
		nodes: []hostiface.SourceNode{
			fakeNode{op: hostiface.OpRelu, ins: []int{0}, outs: []int{1, 2}},
		},
	}
	f := &recordingFactory{}
	_, err := Build(src, f, []int{1})
	require.Error(t, err)
	assert.Equal(t, diag.KindMultipleOutputsUnsupported, diag.Kind(err))
}
