// Package activation implements the fused-activation chain every
// spatial and elementwise translator appends after its primary node:
// the host's builtin FusedActivation enum maps to either a passthrough
// or a single target library node appended on top of the primary
// result.
package activation

import (
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// Kind is the host's builtin fused-activation enum.
type Kind int

const (
	None Kind = iota
	Relu
	ReluN1To1
	Relu6
	Tanh
	Sigmoid
)

// Apply appends the node (if any) the given Kind requires on top of
// input, and returns the chain's final node. None returns input
// unchanged.
func Apply(f targetiface.Factory, input targetiface.GraphNode, k Kind) (targetiface.GraphNode, error) {
	switch k {
	case None:
		return input, nil
	case Relu:
		out, err := f.Relu(input)
		return out, wrap(err)
	case ReluN1To1:
		out, err := f.Clamp(input, -1, 1)
		return out, wrap(err)
	case Relu6:
		out, err := f.Clamp(input, 0, 6)
		return out, wrap(err)
	case Tanh:
		out, err := f.Tanh(input)
		return out, wrap(err)
	case Sigmoid:
		out, err := f.Sigmoid(input)
		return out, wrap(err)
	default:
		return nil, diag.Newf(diag.KindUnsupportedAttribute, "activation: unsupported fused activation kind %d", k)
	}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return diag.Wrap(err, diag.KindTargetCompileError, "activation: emit node")
}
