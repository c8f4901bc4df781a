package delegate

import (
	"encoding/binary"
	"math"

	"github.com/anikulk/tflite-openvino-delegate/hostiface"
)

// fakeTensor is a minimal hostiface.SourceTensor backed by a plain
// byte slice, shared across probe/lifecycle/eval tests.
type fakeTensor struct {
	shape []int64
	typ   hostiface.DataType
	alloc hostiface.AllocationClass
	raw   []byte
}

func (t *fakeTensor) Shape() []int64                      { return t.shape }
func (t *fakeTensor) Type() hostiface.DataType             { return t.typ }
func (t *fakeTensor) Allocation() hostiface.AllocationClass { return t.alloc }
func (t *fakeTensor) Raw() []byte                          { return t.raw }

// fakeNode is a minimal hostiface.SourceNode.
type fakeNode struct {
	op    hostiface.OpKind
	ins   []int
	outs  []int
	attrs interface{}
}

func (n *fakeNode) OpKind() hostiface.OpKind { return n.op }
func (n *fakeNode) Inputs() []int            { return n.ins }
func (n *fakeNode) Outputs() []int           { return n.outs }
func (n *fakeNode) Attrs() interface{}       { return n.attrs }

// fakeSrc is a minimal hostiface.SourceContext over an explicit tensor
// table and node list, addressed by index the way the host's own
// partition is.
type fakeSrc struct {
	tensors map[int]*fakeTensor
	nodes   []*fakeNode
}

func newFakeSrc() *fakeSrc {
	return &fakeSrc{tensors: make(map[int]*fakeTensor)}
}

func (s *fakeSrc) Tensor(idx int) hostiface.SourceTensor {
	t, ok := s.tensors[idx]
	if !ok {
		return nil
	}
	return t
}
func (s *fakeSrc) TensorCount() int { return len(s.tensors) }
func (s *fakeSrc) Node(idx int) hostiface.SourceNode {
	if idx < 0 || idx >= len(s.nodes) {
		return nil
	}
	return s.nodes[idx]
}
func (s *fakeSrc) NodeCount() int { return len(s.nodes) }

func f32Bytes(v ...float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

func bytesToF32Slice(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}
