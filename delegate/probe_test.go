package delegate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/internal/fakeov"
	"github.com/anikulk/tflite-openvino-delegate/ops"
)

func newTestCore() *Core {
	return New(fakeov.NewCore(), fakeov.NewFactory(), diag.NewLogger("test"))
}

func TestProbeRejectsUnsupportedOp(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.nodes = []*fakeNode{{op: hostiface.OpUnsupported, ins: []int{}, outs: []int{0}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsUnsupportedType(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1}, typ: hostiface.Unsupported, alloc: hostiface.Dynamic}
	src.nodes = []*fakeNode{{op: hostiface.OpRelu, ins: []int{0}, outs: []int{1}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsZeroSizedDim(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1, 0}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.nodes = []*fakeNode{{op: hostiface.OpRelu, ins: []int{0}, outs: []int{1}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsSoftmaxBetaNotOne(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1, 4}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.nodes = []*fakeNode{{op: hostiface.OpSoftmax, ins: []int{0}, outs: []int{1}, attrs: ops.SoftmaxAttrs{Beta: 0.5}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeAcceptsSupportedNode(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1, 4}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.nodes = []*fakeNode{{op: hostiface.OpSoftmax, ins: []int{0}, outs: []int{1}, attrs: ops.SoftmaxAttrs{Beta: 1.0}}}
	assert.True(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeMissingNodeIsRejected(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsConv2DBiasRankNotOne(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1, 4, 4, 3}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.tensors[1] = &fakeTensor{shape: []int64{8, 1, 1, 3}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.tensors[2] = &fakeTensor{shape: []int64{1, 8}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.nodes = []*fakeNode{{op: hostiface.OpConv2D, ins: []int{0, 1, 2}, outs: []int{3}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeAcceptsConv2DWithRankOneBias(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1, 4, 4, 3}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.tensors[1] = &fakeTensor{shape: []int64{8, 1, 1, 3}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.tensors[2] = &fakeTensor{shape: []int64{8}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.nodes = []*fakeNode{{op: hostiface.OpConv2D, ins: []int{0, 1, 2}, outs: []int{3}}}
	assert.True(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsConv2DNonRank4Input(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{4, 3}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.tensors[1] = &fakeTensor{shape: []int64{8, 1, 1, 3}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.nodes = []*fakeNode{{op: hostiface.OpConv2D, ins: []int{0, 1}, outs: []int{2}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsDepthwiseConv2DBiasRankNotOne(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1, 4, 4, 3}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.tensors[1] = &fakeTensor{shape: []int64{1, 1, 1, 3}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.tensors[2] = &fakeTensor{shape: []int64{1, 1, 3}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.nodes = []*fakeNode{{op: hostiface.OpDepthwiseConv2D, ins: []int{0, 1, 2}, outs: []int{3}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeAcceptsTransposeConvWithRankOneBias(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{4}, typ: hostiface.Int32, alloc: hostiface.MmapRo}
	src.tensors[1] = &fakeTensor{shape: []int64{3, 1, 1, 8}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.tensors[2] = &fakeTensor{shape: []int64{1, 4, 4, 8}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.tensors[3] = &fakeTensor{shape: []int64{3}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.nodes = []*fakeNode{{op: hostiface.OpTransposeConv, ins: []int{0, 1, 2, 3}, outs: []int{4}}}
	assert.True(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsTransposeConvBiasRankNotOne(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{4}, typ: hostiface.Int32, alloc: hostiface.MmapRo}
	src.tensors[1] = &fakeTensor{shape: []int64{3, 1, 1, 8}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.tensors[2] = &fakeTensor{shape: []int64{1, 4, 4, 8}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.tensors[3] = &fakeTensor{shape: []int64{1, 3}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.nodes = []*fakeNode{{op: hostiface.OpTransposeConv, ins: []int{0, 1, 2, 3}, outs: []int{4}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsTransposeConvOutputShapeRankNotOne(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1, 4}, typ: hostiface.Int32, alloc: hostiface.MmapRo}
	src.tensors[1] = &fakeTensor{shape: []int64{3, 1, 1, 8}, typ: hostiface.Float32, alloc: hostiface.MmapRo}
	src.tensors[2] = &fakeTensor{shape: []int64{1, 4, 4, 8}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.nodes = []*fakeNode{{op: hostiface.OpTransposeConv, ins: []int{0, 1, 2}, outs: []int{3}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsReshapeShapeTensorRankNotOne(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1, 4}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.tensors[1] = &fakeTensor{shape: []int64{1, 2}, typ: hostiface.Int32, alloc: hostiface.MmapRo}
	src.nodes = []*fakeNode{{op: hostiface.OpReshape, ins: []int{0, 1}, outs: []int{2}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsMeanAxesRankNotOne(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1, 4, 4, 3}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.tensors[1] = &fakeTensor{shape: []int64{1, 2}, typ: hostiface.Int32, alloc: hostiface.MmapRo}
	src.nodes = []*fakeNode{{op: hostiface.OpMean, ins: []int{0, 1}, outs: []int{2}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeAcceptsAveragePool2DRank4(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1, 4, 4, 3}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.nodes = []*fakeNode{{op: hostiface.OpAveragePool2D, ins: []int{0}, outs: []int{1}}}
	assert.True(t, d.IsNodeSupportedByDelegate(src, 0))
}

func TestProbeRejectsMaxPool2DNonRank4(t *testing.T) {
	d := newTestCore()
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{4, 3}, typ: hostiface.Float32, alloc: hostiface.Dynamic}
	src.nodes = []*fakeNode{{op: hostiface.OpMaxPool2D, ins: []int{0}, outs: []int{1}}}
	assert.False(t, d.IsNodeSupportedByDelegate(src, 0))
}
