// Package graphbuilder implements the Graph Builder: it walks a source
// subgraph in the order the host already topologically sorted it,
// materializes constant and parameter nodes on first reference,
// dispatches each node to its Operator Translator, and collects the
// subgraph's declared outputs into the result node list the target
// library needs to construct a Model.
package graphbuilder

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/nodemgr"
	"github.com/anikulk/tflite-openvino-delegate/ops"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
	"github.com/anikulk/tflite-openvino-delegate/typemap"
)

// Result is everything Core.BuildModel needs: the subgraph's output
// nodes in the order the host asked for them, the parameter nodes
// standing in for the host's dynamic (runtime-supplied) input tensors,
// and the host tensor indices those parameters correspond to,
// positionally aligned 1:1 with InputParams — this is the
// |input_params| == |compute_inputs| invariant, held by construction
// rather than checked at runtime.
type Result struct {
	ResultNodes   []targetiface.GraphNode
	InputParams   []targetiface.GraphNode
	ComputeInputs []int
}

// Build translates every node in src (assumed already in topological
// order by the host) and collects outputTensors as the model's result
// nodes. outputTensors must be non-empty; an empty subgraph is a
// caller error, not something the builder silently tolerates.
func Build(src hostiface.SourceContext, factory targetiface.Factory, outputTensors []int) (*Result, error) {
	if len(outputTensors) == 0 {
		return nil, diag.New(diag.KindUnsupportedAttribute, "graphbuilder: subgraph has no output tensors")
	}

	nm := nodemgr.New()
	result := &Result{}

	computeInputs := ComputeInputs(src)

	octx := &ops.Context{
		Src:     src,
		Factory: factory,
		Resolve: func(idx int) (targetiface.GraphNode, error) {
			return resolve(src, factory, nm, idx)
		},
	}

	for _, in := range computeInputs {
		t := src.Tensor(in)
		elemType := typemap.Map(t.Type())
		if elemType == targetiface.Unsupported {
			return nil, diag.Newf(diag.KindUnsupportedType, "graphbuilder: tensor %d has unsupported type %v", in, t.Type())
		}
		param, err := factory.Parameter(t.Shape(), elemType)
		if err != nil {
			return nil, diag.Wrap(err, diag.KindTargetCompileError, "graphbuilder: build parameter")
		}
		if err := nm.Set(in, param); err != nil {
			return nil, err
		}
		result.InputParams = append(result.InputParams, param)
		result.ComputeInputs = append(result.ComputeInputs, in)
	}

	for i := 0; i < src.NodeCount(); i++ {
		n := src.Node(i)
		if len(n.Outputs()) != 1 {
			return nil, diag.Newf(diag.KindMultipleOutputsUnsupported, "graphbuilder: node %d has %d outputs, want 1", i, len(n.Outputs()))
		}
		translate, ok := ops.Lookup(n.OpKind())
		if !ok {
			return nil, diag.Newf(diag.KindUnsupportedOp, "graphbuilder: node %d has unsupported op kind %v", i, n.OpKind())
		}
		out, err := translate(octx, n)
		if err != nil {
			return nil, diag.Wrapf(err, diag.Kind(err), "graphbuilder: node %d", i)
		}
		if err := nm.Set(n.Outputs()[0], out); err != nil {
			return nil, err
		}
	}

	for _, idx := range outputTensors {
		node, err := nm.Get(idx)
		if err != nil {
			return nil, err
		}
		result.ResultNodes = append(result.ResultNodes, node)
	}

	return result, nil
}

// ComputeInputs scans src for the dynamic (runtime-supplied) tensors
// that feed some node but are not produced by any node in the
// partition, in first-reference order — the same scan Build's first
// pass performs, factored out so the cache-hit path in delegate can
// re-derive a compiled artifact's input ordering without invoking the
// translators, matching the original's BuildModelFromCache contract.
func ComputeInputs(src hostiface.SourceContext) []int {
	produced := make(map[int]bool, src.NodeCount())
	for i := 0; i < src.NodeCount(); i++ {
		n := src.Node(i)
		if len(n.Outputs()) == 1 {
			produced[n.Outputs()[0]] = true
		}
	}

	var seen = make(map[int]bool)
	var inputs []int
	for i := 0; i < src.NodeCount(); i++ {
		n := src.Node(i)
		for _, in := range n.Inputs() {
			if in < 0 || produced[in] || seen[in] {
				continue
			}
			t := src.Tensor(in)
			if t == nil || t.Allocation() != hostiface.Dynamic {
				continue
			}
			seen[in] = true
			inputs = append(inputs, in)
		}
	}
	return inputs
}

// resolve turns a source tensor index into its target producer node,
// materializing a constant node on first reference for read-only
// tensors. Dynamic tensors must already have been registered as
// parameters by Build's first pass; anything else is MissingProducer.
func resolve(src hostiface.SourceContext, factory targetiface.Factory, nm *nodemgr.Manager, idx int) (targetiface.GraphNode, error) {
	if nm.Has(idx) {
		return nm.Get(idx)
	}
	t := src.Tensor(idx)
	if t == nil {
		return nil, diag.Newf(diag.KindMissingProducer, "graphbuilder: tensor %d not found", idx)
	}
	switch t.Allocation() {
	case hostiface.MmapRo, hostiface.PersistentRo:
		elemType := typemap.Map(t.Type())
		if elemType == targetiface.Unsupported {
			return nil, diag.Newf(diag.KindUnsupportedType, "graphbuilder: tensor %d has unsupported type %v", idx, t.Type())
		}
		node, err := factory.Constant(t.Shape(), elemType, t.Raw())
		if err != nil {
			return nil, diag.Wrap(err, diag.KindTargetCompileError, "graphbuilder: build constant")
		}
		if err := nm.Set(idx, node); err != nil {
			return nil, err
		}
		return node, nil
	default:
		return nil, diag.Newf(diag.KindMissingProducer, "graphbuilder: tensor %d has no producer and is not constant", idx)
	}
}
