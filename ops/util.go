package ops

import "github.com/anikulk/tflite-openvino-delegate/targetiface"

// shapeConstant builds an I64 constant node holding shape as its data,
// for reshape/shape-input nodes the translator must synthesize itself
// rather than resolve from the source graph (e.g. conv2d's
// group-reshape target shape).
func shapeConstant(f targetiface.Factory, shape []int64) (targetiface.GraphNode, error) {
	return f.Constant([]int64{int64(len(shape))}, targetiface.I64, int64sToBytes(shape))
}

func int64sToBytes(v []int64) []byte {
	out := make([]byte, len(v)*8)
	for i, x := range v {
		u := uint64(x)
		for b := 0; b < 8; b++ {
			out[i*8+b] = byte(u >> (8 * b))
		}
	}
	return out
}
