package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/activation"
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateConcatenation grounds on operations/src/concat.cc: a
// variadic input list (as many tensors as the node declares) collected
// in order and passed straight to the target library's Concat node.
func translateConcatenation(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	attrs, ok := node.Attrs().(ConcatenationAttrs)
	if !ok {
		return nil, diag.New(diag.KindUnsupportedAttribute, "ops: Concatenation expects ConcatenationAttrs")
	}
	ins := node.Inputs()
	if len(ins) < 2 {
		return nil, diag.Newf(diag.KindUnsupportedAttribute, "ops: Concatenation requires at least 2 inputs, got %d", len(ins))
	}
	nodes := make([]targetiface.GraphNode, len(ins))
	for i := range ins {
		n, err := ctx.input(node, i)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	concat, err := ctx.Factory.Concat(nodes, attrs.Axis)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Concatenation")
	}
	out, err := activation.Apply(ctx.Factory, concat, attrs.Activation)
	if err != nil {
		return nil, err
	}
	return out, nil
}
