package delegate

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/ops"
	"github.com/anikulk/tflite-openvino-delegate/typemap"
)

// IsNodeSupportedByDelegate grounds on openvino_delegate.cc's
// IsNodeSupportedByDelegate/CheckNodeSupportByOpenVINO chain: every
// rejection is silent to the host (no error surfaces beyond Trace) by
// design, since an unsupported node simply stays on the host's own
// interpreter rather than failing the whole delegation.
func (d *Core) IsNodeSupportedByDelegate(src hostiface.SourceContext, nodeIdx int) bool {
	node := src.Node(nodeIdx)
	if node == nil {
		return false
	}
	if err := checkNodeSupport(src, node); err != nil {
		if d.logger != nil {
			d.logger.LogProbeRejection(nodeIdx, err)
		}
		return false
	}
	return true
}

func checkNodeSupport(src hostiface.SourceContext, node hostiface.SourceNode) error {
	if _, ok := ops.Lookup(node.OpKind()); !ok {
		return diag.Newf(diag.KindUnsupportedOp, "probe: op kind %v is not in the translator catalog", node.OpKind())
	}
	if err := checkDataTypeSupported(src, node); err != nil {
		return err
	}
	if err := checkDims(src, node); err != nil {
		return err
	}
	if err := checkRanks(src, node); err != nil {
		return err
	}
	return checkAttributes(node)
}

// checkDataTypeSupported grounds on CheckDataTypeSupported: every
// input tensor's source type must have a target mapping; an input
// position referencing a tensor with no mapping rejects the whole
// node.
func checkDataTypeSupported(src hostiface.SourceContext, node hostiface.SourceNode) error {
	for _, idx := range node.Inputs() {
		if idx < 0 {
			continue
		}
		t := src.Tensor(idx)
		if t == nil {
			return diag.Newf(diag.KindUnsupportedAttribute, "probe: input tensor %d not found", idx)
		}
		if !typemap.Supported(t.Type()) {
			return diag.Newf(diag.KindUnsupportedType, "probe: input tensor %d has unsupported type %v", idx, t.Type())
		}
	}
	return nil
}

// checkDims grounds on CheckDims: every input tensor must have a
// known, non-degenerate shape — a dimension of zero anywhere rejects
// the node the same way the original does, since a zero-sized
// dimension signals a dynamically-shaped tensor the delegate cannot
// reason about at build time.
func checkDims(src hostiface.SourceContext, node hostiface.SourceNode) error {
	for _, idx := range node.Inputs() {
		if idx < 0 {
			continue
		}
		t := src.Tensor(idx)
		if t == nil {
			continue
		}
		shape := t.Shape()
		if len(shape) == 0 {
			return diag.Newf(diag.KindUnsupportedRank, "probe: input tensor %d has unknown rank", idx)
		}
		for _, dim := range shape {
			if dim == 0 {
				return diag.Newf(diag.KindUnsupportedRank, "probe: input tensor %d has a zero-sized dimension", idx)
			}
		}
	}
	return nil
}

// checkRanks grounds on spec.md section 6's per-op coverage table: each
// supported op kind constrains its inputs to a fixed rank or a small
// allowed set, and a bias input (Conv2D/DepthwiseConv2D/TransposeConv's
// optional third/fourth operand) must be rank 1 when present. Ops with
// no rank constraint in the table (Concatenation, Softmax,
// ResizeBilinear, Dequantize, the unary activations) are left
// unchecked here, same as the table marks them "any".
func checkRanks(src hostiface.SourceContext, node hostiface.SourceNode) error {
	ins := node.Inputs()
	switch node.OpKind() {
	case hostiface.OpAdd, hostiface.OpMul:
		if err := requireRankBetween(src, ins, 0, 1, 4); err != nil {
			return err
		}
		return requireRankBetween(src, ins, 1, 1, 4)
	case hostiface.OpConv2D, hostiface.OpDepthwiseConv2D:
		if err := requireRank(src, ins, 0, 4); err != nil {
			return err
		}
		if err := requireRank(src, ins, 1, 4); err != nil {
			return err
		}
		return requireOptionalRank(src, ins, 2, 1)
	case hostiface.OpTransposeConv:
		if err := requireRank(src, ins, 0, 1); err != nil {
			return err
		}
		if err := requireRank(src, ins, 1, 4); err != nil {
			return err
		}
		if err := requireRank(src, ins, 2, 4); err != nil {
			return err
		}
		return requireOptionalRank(src, ins, 3, 1)
	case hostiface.OpAveragePool2D, hostiface.OpMaxPool2D:
		return requireRank(src, ins, 0, 4)
	case hostiface.OpReshape:
		if err := requireRankBetween(src, ins, 0, 1, 4); err != nil {
			return err
		}
		return requireRank(src, ins, 1, 1)
	case hostiface.OpMean:
		if err := requireRank(src, ins, 0, 4); err != nil {
			return err
		}
		return requireRank(src, ins, 1, 1)
	case hostiface.OpPad:
		if err := requireRankBetween(src, ins, 0, 1, 4); err != nil {
			return err
		}
		return requireRank(src, ins, 1, 2)
	}
	return nil
}

// rankAt returns the rank of the tensor at ins[i], and false if that
// input position is absent (out of range or a negative/optional index
// with no tensor) or the tensor itself cannot be found.
func rankAt(src hostiface.SourceContext, ins []int, i int) (int, bool) {
	if i >= len(ins) || ins[i] < 0 {
		return 0, false
	}
	t := src.Tensor(ins[i])
	if t == nil {
		return 0, false
	}
	return len(t.Shape()), true
}

// requireRank rejects the node unless input i has exactly rank want.
func requireRank(src hostiface.SourceContext, ins []int, i, want int) error {
	rank, ok := rankAt(src, ins, i)
	if !ok {
		return diag.Newf(diag.KindUnsupportedRank, "probe: input %d is missing, expected rank %d", i, want)
	}
	if rank != want {
		return diag.Newf(diag.KindUnsupportedRank, "probe: input %d has rank %d, expected %d", i, rank, want)
	}
	return nil
}

// requireRankBetween rejects the node unless input i's rank falls
// within [lo, hi] inclusive.
func requireRankBetween(src hostiface.SourceContext, ins []int, i, lo, hi int) error {
	rank, ok := rankAt(src, ins, i)
	if !ok {
		return diag.Newf(diag.KindUnsupportedRank, "probe: input %d is missing, expected rank %d..%d", i, lo, hi)
	}
	if rank < lo || rank > hi {
		return diag.Newf(diag.KindUnsupportedRank, "probe: input %d has rank %d, expected %d..%d", i, rank, lo, hi)
	}
	return nil
}

// requireOptionalRank only checks input i's rank when that input is
// actually present; an absent optional input (TransposeConv's bias,
// Conv2D/DepthwiseConv2D's bias) is not an error.
func requireOptionalRank(src hostiface.SourceContext, ins []int, i, want int) error {
	if i >= len(ins) || ins[i] < 0 {
		return nil
	}
	return requireRank(src, ins, i, want)
}

// checkAttributes grounds on CheckNodeSupportByOpenVINO's per-op
// switch: the only attribute-level rejection this delegate enforces
// inline, rather than via the general type/dim checks above, is
// Softmax's beta, which the target library's Softmax node has no way
// to express.
func checkAttributes(node hostiface.SourceNode) error {
	if node.OpKind() != hostiface.OpSoftmax {
		return nil
	}
	attrs, ok := node.Attrs().(ops.SoftmaxAttrs)
	if !ok {
		return diag.New(diag.KindUnsupportedAttribute, "probe: Softmax node missing SoftmaxAttrs")
	}
	if attrs.Beta != 1.0 {
		return diag.Newf(diag.KindUnsupportedAttribute, "probe: Softmax beta %v unsupported, only 1.0", attrs.Beta)
	}
	return nil
}
