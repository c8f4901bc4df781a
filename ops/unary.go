package ops

import (
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// translateRelu, translateRelu6, translateLogistic, translateTanh and
// translateHardSwish are the standalone activation ops: each is a
// single target node with no attributes of its own, grounded on
// operations_base.cc's ApplyActivation switch reused as a standalone
// translator rather than a fused post-op.

func translateRelu(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	out, err := ctx.Factory.Relu(input)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Relu")
	}
	return out, nil
}

func translateRelu6(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	out, err := ctx.Factory.Clamp(input, 0, 6)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Relu6")
	}
	return out, nil
}

// translateLogistic is TFLite's LOGISTIC op, i.e. the sigmoid function.
func translateLogistic(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	out, err := ctx.Factory.Sigmoid(input)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Logistic")
	}
	return out, nil
}

func translateTanh(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	out, err := ctx.Factory.Tanh(input)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: Tanh")
	}
	return out, nil
}

// translateHardSwish maps directly to the target library's dedicated
// HardSwish node (x * relu6(x+3) / 6 is its defined semantics; the
// target library implements it as a single fused node rather than
// requiring the translator to compose it).
func translateHardSwish(ctx *Context, node hostiface.SourceNode) (targetiface.GraphNode, error) {
	input, err := ctx.input(node, 0)
	if err != nil {
		return nil, err
	}
	out, err := ctx.Factory.HardSwish(input)
	if err != nil {
		return nil, diag.Wrap(err, diag.KindTargetCompileError, "ops: HardSwish")
	}
	return out, nil
}
