// Package fakeov is an in-memory, numerically-evaluating stand-in for
// the target inference library, implementing targetiface's Factory,
// Core, Model, CompiledModel and InferRequest. It exists so delegate
// and graphbuilder tests can assert on actual output values rather
// than just call shape, the way the teacher's runtime.Engine executes
// a kernel catalog against real data instead of mocking computation
// away. It is not, and does not try to be, a general tensor compiler:
// shape inference and numerics are only as complete as the translated
// op set requires.
package fakeov

import (
	"encoding/binary"
	"math"
	"os"
	"time"

	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

type opKind int

const (
	opParameter opKind = iota
	opConstant
	opTranspose
	opReshape
	opAdd
	opMultiply
	opConvolution
	opGroupConvolution
	opConvBackpropData
	opAvgPool
	opMaxPool
	opConcat
	opSoftmax
	opReduceMean
	opPad
	opConvert
	opInterpolate
	opRelu
	opClamp
	opTanh
	opSigmoid
	opHardSwish
)

// node is both the GraphNode handle translators pass around and the
// lazily-evaluated computation it represents.
type node struct {
	op    opKind
	shape []int64
	dtype targetiface.ElementType

	inputs []*node
	ints   []int64
	floats []float64
	data   []byte // constant payload, or parameter scratch buffer
}

func (n *node) Shape() []int64                { return n.shape }
func (n *node) Type() targetiface.ElementType { return n.dtype }

func asNode(g targetiface.GraphNode) *node {
	n, _ := g.(*node)
	return n
}

func elemSize(t targetiface.ElementType) int {
	switch t {
	case targetiface.F64, targetiface.I64, targetiface.U64:
		return 8
	case targetiface.F32, targetiface.I32, targetiface.U32:
		return 4
	case targetiface.F16, targetiface.I16, targetiface.U16:
		return 2
	default:
		return 1
	}
}

func numel(shape []int64) int64 {
	n := int64(1)
	for _, d := range shape {
		n *= d
	}
	return n
}

// Factory builds nodes; it does no numeric work itself, only shape
// bookkeeping, the way a real graph-building API separates
// construction from execution.
type Factory struct{}

func NewFactory() *Factory { return &Factory{} }

func (f *Factory) Parameter(shape []int64, t targetiface.ElementType) (targetiface.GraphNode, error) {
	return &node{op: opParameter, shape: shape, dtype: t, data: make([]byte, int(numel(shape))*elemSize(t))}, nil
}

func (f *Factory) Constant(shape []int64, t targetiface.ElementType, data []byte) (targetiface.GraphNode, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &node{op: opConstant, shape: shape, dtype: t, data: cp}, nil
}

func (f *Factory) Transpose(input targetiface.GraphNode, order []int64) (targetiface.GraphNode, error) {
	in := asNode(input)
	shape := make([]int64, len(order))
	for i, axis := range order {
		shape[i] = in.shape[axis]
	}
	return &node{op: opTranspose, shape: shape, dtype: in.dtype, inputs: []*node{in}, ints: order}, nil
}

func (f *Factory) Reshape(input, shapeNode targetiface.GraphNode, specialZero bool) (targetiface.GraphNode, error) {
	in := asNode(input)
	shapeSrc := asNode(shapeNode)
	target := decodeInt64s(shapeSrc.data)
	out := make([]int64, len(target))
	copy(out, target)
	if specialZero {
		for i, v := range out {
			if v == 0 && i < len(in.shape) {
				out[i] = in.shape[i]
			}
		}
	}
	return &node{op: opReshape, shape: out, dtype: in.dtype, inputs: []*node{in}}, nil
}

func (f *Factory) Add(a, b targetiface.GraphNode) (targetiface.GraphNode, error) {
	an, bn := asNode(a), asNode(b)
	return &node{op: opAdd, shape: broadcastShape(an.shape, bn.shape), dtype: an.dtype, inputs: []*node{an, bn}}, nil
}

func (f *Factory) Multiply(a, b targetiface.GraphNode) (targetiface.GraphNode, error) {
	an, bn := asNode(a), asNode(b)
	return &node{op: opMultiply, shape: broadcastShape(an.shape, bn.shape), dtype: an.dtype, inputs: []*node{an, bn}}, nil
}

func (f *Factory) Convolution(input, filter targetiface.GraphNode, strides, dilations []int64, pad targetiface.AutoPad) (targetiface.GraphNode, error) {
	return f.buildConv(input, filter, strides, dilations, pad, 1)
}

func (f *Factory) GroupConvolution(input, filter targetiface.GraphNode, strides, dilations []int64, pad targetiface.AutoPad) (targetiface.GraphNode, error) {
	fn := asNode(filter)
	groups := fn.shape[0]
	return f.buildConv(input, filter, strides, dilations, pad, groups)
}

func (f *Factory) buildConv(input, filter targetiface.GraphNode, strides, dilations []int64, pad targetiface.AutoPad, groups int64) (targetiface.GraphNode, error) {
	in, fi := asNode(input), asNode(filter)
	if len(in.shape) != 4 {
		return nil, diag.New(diag.KindUnsupportedRank, "fakeov: Convolution expects NCHW input")
	}
	var cout, kh, kw int64
	if groups > 1 {
		cout, kh, kw = fi.shape[1]*groups, fi.shape[3], fi.shape[4]
	} else {
		cout, kh, kw = fi.shape[0], fi.shape[2], fi.shape[3]
	}
	oh := convOutDim(in.shape[2], kh, strides[0], dilations[0], pad)
	ow := convOutDim(in.shape[3], kw, strides[1], dilations[1], pad)
	outShape := []int64{in.shape[0], cout, oh, ow}
	attrs := append(append([]int64{}, strides...), dilations...)
	attrs = append(attrs, int64(pad), groups)
	return &node{op: pickConvOp(groups), shape: outShape, dtype: in.dtype, inputs: []*node{in, fi}, ints: attrs}, nil
}

func pickConvOp(groups int64) opKind {
	if groups > 1 {
		return opGroupConvolution
	}
	return opConvolution
}

func convOutDim(in, k, stride, dilation int64, pad targetiface.AutoPad) int64 {
	effK := (k-1)*dilation + 1
	switch pad {
	case targetiface.PadSameUpper:
		return (in + stride - 1) / stride
	default: // PadValid, PadExplicit (treated as valid)
		return (in-effK)/stride + 1
	}
}

func (f *Factory) ConvolutionBackpropData(input, filter, outputShape targetiface.GraphNode, strides, dilations []int64, pad targetiface.AutoPad) (targetiface.GraphNode, error) {
	in, fi, osh := asNode(input), asNode(filter), asNode(outputShape)
	vals := decodeInt64s(osh.data)
	shape := []int64{in.shape[0], fi.shape[1]}
	if len(vals) >= 2 {
		shape = append(shape, vals[0], vals[1])
	} else {
		shape = append(shape, in.shape[2]*strides[0], in.shape[3]*strides[1])
	}
	return &node{op: opConvBackpropData, shape: shape, dtype: in.dtype, inputs: []*node{in, fi}}, nil
}

func (f *Factory) AvgPool(input targetiface.GraphNode, kernel, strides []int64, pad targetiface.AutoPad, excludePad bool) (targetiface.GraphNode, error) {
	return f.buildPool(input, kernel, strides, pad, opAvgPool)
}

func (f *Factory) MaxPool(input targetiface.GraphNode, kernel, strides []int64, pad targetiface.AutoPad) (targetiface.GraphNode, error) {
	return f.buildPool(input, kernel, strides, pad, opMaxPool)
}

func (f *Factory) buildPool(input targetiface.GraphNode, kernel, strides []int64, pad targetiface.AutoPad, op opKind) (targetiface.GraphNode, error) {
	in := asNode(input)
	oh := convOutDim(in.shape[2], kernel[0], strides[0], 1, pad)
	ow := convOutDim(in.shape[3], kernel[1], strides[1], 1, pad)
	shape := []int64{in.shape[0], in.shape[1], oh, ow}
	ints := append(append([]int64{}, kernel...), strides...)
	return &node{op: op, shape: shape, dtype: in.dtype, inputs: []*node{in}, ints: ints}, nil
}

func (f *Factory) Concat(inputs []targetiface.GraphNode, axis int64) (targetiface.GraphNode, error) {
	ns := make([]*node, len(inputs))
	shape := append([]int64{}, asNode(inputs[0]).shape...)
	var total int64
	for i, g := range inputs {
		ns[i] = asNode(g)
		total += ns[i].shape[axis]
	}
	shape[axis] = total
	return &node{op: opConcat, shape: shape, dtype: ns[0].dtype, inputs: ns, ints: []int64{axis}}, nil
}

func (f *Factory) Softmax(input targetiface.GraphNode, axis int64) (targetiface.GraphNode, error) {
	in := asNode(input)
	return &node{op: opSoftmax, shape: in.shape, dtype: in.dtype, inputs: []*node{in}, ints: []int64{axis}}, nil
}

func (f *Factory) ReduceMean(input, axes targetiface.GraphNode, keepDims bool) (targetiface.GraphNode, error) {
	in, ax := asNode(input), asNode(axes)
	axisList := decodeInt64s(ax.data)
	reduce := make(map[int64]bool)
	for _, a := range axisList {
		reduce[a] = true
	}
	var shape []int64
	for i, d := range in.shape {
		if reduce[int64(i)] {
			if keepDims {
				shape = append(shape, 1)
			}
			continue
		}
		shape = append(shape, d)
	}
	kd := int64(0)
	if keepDims {
		kd = 1
	}
	return &node{op: opReduceMean, shape: shape, dtype: in.dtype, inputs: []*node{in}, ints: append(axisList, kd)}, nil
}

func (f *Factory) Pad(input, padsBegin, padsEnd targetiface.GraphNode, mode targetiface.PadMode) (targetiface.GraphNode, error) {
	in, pb, pe := asNode(input), asNode(padsBegin), asNode(padsEnd)
	begin := decodeInt64s(pb.data)
	end := decodeInt64s(pe.data)
	shape := make([]int64, len(in.shape))
	for i := range in.shape {
		shape[i] = in.shape[i] + begin[i] + end[i]
	}
	ints := append(append([]int64{}, begin...), end...)
	return &node{op: opPad, shape: shape, dtype: in.dtype, inputs: []*node{in}, ints: ints}, nil
}

func (f *Factory) Convert(input targetiface.GraphNode, t targetiface.ElementType) (targetiface.GraphNode, error) {
	in := asNode(input)
	return &node{op: opConvert, shape: in.shape, dtype: t, inputs: []*node{in}}, nil
}

func (f *Factory) Interpolate(input, sizes, axes targetiface.GraphNode, attrs targetiface.InterpolateAttrs) (targetiface.GraphNode, error) {
	in, sz := asNode(input), asNode(sizes)
	vals := decodeInt64s(sz.data)
	shape := append([]int64{}, in.shape...)
	if len(shape) == 4 && len(vals) >= 2 {
		shape[2], shape[3] = vals[0], vals[1]
	}
	return &node{op: opInterpolate, shape: shape, dtype: in.dtype, inputs: []*node{in}}, nil
}

func (f *Factory) Relu(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	return unary(input, opRelu, nil)
}

func (f *Factory) Clamp(input targetiface.GraphNode, lo, hi float64) (targetiface.GraphNode, error) {
	return unary(input, opClamp, []float64{lo, hi})
}

func (f *Factory) Tanh(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	return unary(input, opTanh, nil)
}

func (f *Factory) Sigmoid(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	return unary(input, opSigmoid, nil)
}

func (f *Factory) HardSwish(input targetiface.GraphNode) (targetiface.GraphNode, error) {
	return unary(input, opHardSwish, nil)
}

func unary(input targetiface.GraphNode, op opKind, floats []float64) (targetiface.GraphNode, error) {
	in := asNode(input)
	return &node{op: op, shape: in.shape, dtype: in.dtype, inputs: []*node{in}, floats: floats}, nil
}

func broadcastShape(a, b []int64) []int64 {
	if numel(a) >= numel(b) {
		return a
	}
	return b
}

func decodeInt64s(data []byte) []int64 {
	n := len(data) / 8
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return out
}

// --- evaluation ---

func evalF32(n *node, cache map[*node][]float32) []float32 {
	if v, ok := cache[n]; ok {
		return v
	}
	var out []float32
	switch n.op {
	case opParameter, opConstant:
		out = bytesToF32(n.data)
	case opTranspose:
		out = evalTranspose(n, cache)
	case opReshape:
		src := evalF32(n.inputs[0], cache)
		out = append([]float32{}, src...)
	case opAdd:
		out = broadcastBinary(evalF32(n.inputs[0], cache), evalF32(n.inputs[1], cache), func(a, b float32) float32 { return a + b })
	case opMultiply:
		out = broadcastBinary(evalF32(n.inputs[0], cache), evalF32(n.inputs[1], cache), func(a, b float32) float32 { return a * b })
	case opConvolution, opGroupConvolution:
		out = evalConv(n, cache)
	case opConvBackpropData:
		out = make([]float32, numel(n.shape))
	case opAvgPool, opMaxPool:
		out = evalPool(n, cache)
	case opConcat:
		out = evalConcat(n, cache)
	case opSoftmax:
		out = evalSoftmax(n, cache)
	case opReduceMean:
		out = evalReduceMean(n, cache)
	case opPad:
		out = evalPad(n, cache)
	case opConvert:
		out = append([]float32{}, evalF32(n.inputs[0], cache)...)
	case opInterpolate:
		out = evalInterpolateNearest(n, cache)
	case opRelu:
		out = mapF32(evalF32(n.inputs[0], cache), func(v float32) float32 {
			if v < 0 {
				return 0
			}
			return v
		})
	case opClamp:
		lo, hi := float32(n.floats[0]), float32(n.floats[1])
		out = mapF32(evalF32(n.inputs[0], cache), func(v float32) float32 {
			if v < lo {
				return lo
			}
			if v > hi {
				return hi
			}
			return v
		})
	case opTanh:
		out = mapF32(evalF32(n.inputs[0], cache), func(v float32) float32 { return float32(math.Tanh(float64(v))) })
	case opSigmoid:
		out = mapF32(evalF32(n.inputs[0], cache), func(v float32) float32 { return float32(1 / (1 + math.Exp(-float64(v)))) })
	case opHardSwish:
		out = mapF32(evalF32(n.inputs[0], cache), func(v float32) float32 {
			r6 := v + 3
			if r6 < 0 {
				r6 = 0
			}
			if r6 > 6 {
				r6 = 6
			}
			return v * r6 / 6
		})
	default:
		out = make([]float32, numel(n.shape))
	}
	cache[n] = out
	return out
}

func mapF32(in []float32, fn func(float32) float32) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func broadcastBinary(a, b []float32, fn func(a, b float32) float32) []float32 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		av := a[i%len(a)]
		bv := b[i%len(b)]
		out[i] = fn(av, bv)
	}
	return out
}

func evalTranspose(n *node, cache map[*node][]float32) []float32 {
	src := evalF32(n.inputs[0], cache)
	inShape := n.inputs[0].shape
	order := n.ints
	outShape := n.shape
	total := int(numel(outShape))
	out := make([]float32, total)
	inStrides := stridesOf(inShape)
	outStrides := stridesOf(outShape)
	idx := make([]int64, len(outShape))
	for o := 0; o < total; o++ {
		rem := o
		for d := 0; d < len(outShape); d++ {
			idx[d] = int64(rem) / outStrides[d]
			rem = rem % int(outStrides[d])
		}
		var inOffset int64
		for d, axis := range order {
			inOffset += idx[d] * inStrides[axis]
		}
		out[o] = src[inOffset]
	}
	return out
}

func stridesOf(shape []int64) []int64 {
	s := make([]int64, len(shape))
	acc := int64(1)
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

func evalConv(n *node, cache map[*node][]float32) []float32 {
	input := evalF32(n.inputs[0], cache)
	filter := evalF32(n.inputs[1], cache)
	inShape := n.inputs[0].shape
	filtShape := n.inputs[1].shape
	groups := n.ints[len(n.ints)-1]
	strideH, strideW := n.ints[0], n.ints[1]
	dilH, dilW := n.ints[2], n.ints[3]
	pad := targetiface.AutoPad(n.ints[4])

	batch, cin, ih, iw := inShape[0], inShape[1], inShape[2], inShape[3]
	var cout, cinPerGroup, kh, kw int64
	if groups > 1 {
		cout, cinPerGroup, kh, kw = filtShape[1]*groups, filtShape[2], filtShape[3], filtShape[4]
	} else {
		cout, cinPerGroup, kh, kw = filtShape[0], filtShape[1], filtShape[2], filtShape[3]
	}
	oh, ow := n.shape[2], n.shape[3]
	padH, padW := int64(0), int64(0)
	if pad == targetiface.PadSameUpper {
		padH = ((oh-1)*strideH + (kh-1)*dilH + 1 - ih) / 2
		padW = ((ow-1)*strideW + (kw-1)*dilW + 1 - iw) / 2
	}

	out := make([]float32, numel(n.shape))
	coutPerGroup := cout / groups
	for b := int64(0); b < batch; b++ {
		for g := int64(0); g < groups; g++ {
			for ocg := int64(0); ocg < coutPerGroup; ocg++ {
				oc := g*coutPerGroup + ocg
				for y := int64(0); y < oh; y++ {
					for x := int64(0); x < ow; x++ {
						var sum float32
						for icg := int64(0); icg < cinPerGroup; icg++ {
							ic := g*cinPerGroup + icg
							for fy := int64(0); fy < kh; fy++ {
								iy := y*strideH + fy*dilH - padH
								if iy < 0 || iy >= ih {
									continue
								}
								for fx := int64(0); fx < kw; fx++ {
									ix := x*strideW + fx*dilW - padW
									if ix < 0 || ix >= iw {
										continue
									}
									inIdx := ((b*cin+ic)*ih+iy)*iw + ix
									var filtIdx int64
									if groups > 1 {
										filtIdx := (((g*coutPerGroup+ocg)*cinPerGroup+icg)*kh+fy)*kw + fx
										sum += input[inIdx] * filter[filtIdx]
										continue
									}
									filtIdx = ((oc*cinPerGroup+icg)*kh+fy)*kw + fx
									sum += input[inIdx] * filter[filtIdx]
								}
							}
						}
						outIdx := ((b*cout+oc)*oh+y)*ow + x
						out[outIdx] = sum
					}
				}
			}
		}
	}
	return out
}

func evalPool(n *node, cache map[*node][]float32) []float32 {
	input := evalF32(n.inputs[0], cache)
	inShape := n.inputs[0].shape
	kh, kw := n.ints[0], n.ints[1]
	strideH, strideW := n.ints[2], n.ints[3]
	batch, ch, ih, iw := inShape[0], inShape[1], inShape[2], inShape[3]
	oh, ow := n.shape[2], n.shape[3]
	out := make([]float32, numel(n.shape))
	isMax := n.op == opMaxPool
	for b := int64(0); b < batch; b++ {
		for c := int64(0); c < ch; c++ {
			for y := int64(0); y < oh; y++ {
				for x := int64(0); x < ow; x++ {
					var sum float32
					var max float32
					count := 0
					first := true
					for fy := int64(0); fy < kh; fy++ {
						iy := y*strideH + fy
						if iy >= ih {
							continue
						}
						for fx := int64(0); fx < kw; fx++ {
							ix := x*strideW + fx
							if ix >= iw {
								continue
							}
							v := input[((b*ch+c)*ih+iy)*iw+ix]
							sum += v
							if first || v > max {
								max = v
								first = false
							}
							count++
						}
					}
					idx := ((b*ch+c)*oh+y)*ow + x
					if isMax {
						out[idx] = max
					} else if count > 0 {
						out[idx] = sum / float32(count)
					}
				}
			}
		}
	}
	return out
}

func evalConcat(n *node, cache map[*node][]float32) []float32 {
	axis := n.ints[0]
	parts := make([][]float32, len(n.inputs))
	for i, in := range n.inputs {
		parts[i] = evalF32(in, cache)
	}
	outer := int64(1)
	for i := int64(0); i < axis; i++ {
		outer *= n.shape[i]
	}
	inner := int64(1)
	for i := axis + 1; i < int64(len(n.shape)); i++ {
		inner *= n.shape[i]
	}
	out := make([]float32, numel(n.shape))
	var writeOffset int64
	for _, p := range parts {
		axisLen := int64(len(p)) / (outer * inner)
		for o := int64(0); o < outer; o++ {
			src := p[o*axisLen*inner : (o+1)*axisLen*inner]
			dstStart := o*numel(n.shape)/outer + writeOffset*inner
			copy(out[dstStart:dstStart+axisLen*inner], src)
		}
		writeOffset += axisLen
	}
	return out
}

func evalSoftmax(n *node, cache map[*node][]float32) []float32 {
	src := evalF32(n.inputs[0], cache)
	axis := n.ints[0]
	shape := n.shape
	axisLen := shape[axis]
	inner := int64(1)
	for i := axis + 1; i < int64(len(shape)); i++ {
		inner *= shape[i]
	}
	outer := numel(shape) / (axisLen * inner)
	out := make([]float32, len(src))
	for o := int64(0); o < outer; o++ {
		for in := int64(0); in < inner; in++ {
			base := o*axisLen*inner + in
			var maxV float32 = src[base]
			for a := int64(1); a < axisLen; a++ {
				v := src[base+a*inner]
				if v > maxV {
					maxV = v
				}
			}
			var sum float32
			for a := int64(0); a < axisLen; a++ {
				e := float32(math.Exp(float64(src[base+a*inner] - maxV)))
				out[base+a*inner] = e
				sum += e
			}
			for a := int64(0); a < axisLen; a++ {
				out[base+a*inner] /= sum
			}
		}
	}
	return out
}

func evalReduceMean(n *node, cache map[*node][]float32) []float32 {
	src := evalF32(n.inputs[0], cache)
	inShape := n.inputs[0].shape
	axes := n.ints[:len(n.ints)-1]
	keepDims := n.ints[len(n.ints)-1] == 1
	reduce := make(map[int64]bool)
	for _, a := range axes {
		reduce[a] = true
	}
	inStrides := stridesOf(inShape)
	outShape := n.shape
	outTotal := int(numel(outShape))
	sums := make([]float32, outTotal)
	counts := make([]int64, outTotal)
	outStrides := stridesOf(outShape)
	idx := make([]int64, len(inShape))
	for i := 0; i < len(src); i++ {
		rem := i
		for d := 0; d < len(inShape); d++ {
			idx[d] = int64(rem) / int(inStrides[d])
			rem = rem % int(inStrides[d])
		}
		var outIdx int64
		od := 0
		for d := range inShape {
			if reduce[int64(d)] {
				if keepDims {
					od++
				}
				continue
			}
			outIdx += idx[d] * outStrides[od]
			od++
		}
		sums[outIdx] += src[i]
		counts[outIdx]++
	}
	out := make([]float32, outTotal)
	for i := range out {
		if counts[i] > 0 {
			out[i] = sums[i] / float32(counts[i])
		}
	}
	return out
}

func evalPad(n *node, cache map[*node][]float32) []float32 {
	src := evalF32(n.inputs[0], cache)
	inShape := n.inputs[0].shape
	rank := len(inShape)
	begin := n.ints[:rank]
	outShape := n.shape
	out := make([]float32, numel(outShape))
	inStrides := stridesOf(inShape)
	outStrides := stridesOf(outShape)
	idx := make([]int64, rank)
	for i := 0; i < len(src); i++ {
		rem := i
		for d := 0; d < rank; d++ {
			idx[d] = int64(rem) / inStrides[d]
			rem = rem % int(inStrides[d])
		}
		var outIdx int64
		for d := 0; d < rank; d++ {
			outIdx += (idx[d] + begin[d]) * outStrides[d]
		}
		out[outIdx] = src[i]
	}
	return out
}

func evalInterpolateNearest(n *node, cache map[*node][]float32) []float32 {
	src := evalF32(n.inputs[0], cache)
	inShape := n.inputs[0].shape
	outShape := n.shape
	if len(inShape) != 4 {
		return append([]float32{}, src...)
	}
	batch, ch, ih, iw := inShape[0], inShape[1], inShape[2], inShape[3]
	oh, ow := outShape[2], outShape[3]
	out := make([]float32, numel(outShape))
	for b := int64(0); b < batch; b++ {
		for c := int64(0); c < ch; c++ {
			for y := int64(0); y < oh; y++ {
				sy := y * ih / oh
				for x := int64(0); x < ow; x++ {
					sx := x * iw / ow
					out[((b*ch+c)*oh+y)*ow+x] = src[((b*ch+c)*ih+sy)*iw+sx]
				}
			}
		}
	}
	return out
}

func bytesToF32(data []byte) []float32 {
	n := len(data) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}

func f32ToBytes(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// --- Core / Model / CompiledModel / InferRequest ---

// Core is the fake targetiface.Core: it always reports "CPU" as
// available and builds/compiles models synchronously.
type Core struct {
	serialized map[string]*Model
}

func NewCore() *Core { return &Core{serialized: make(map[string]*Model)} }

func (c *Core) AvailableDevices() ([]string, error) { return []string{"CPU"}, nil }

func (c *Core) BuildModel(resultNodes, inputParams []targetiface.GraphNode) (targetiface.Model, error) {
	m := &Model{}
	for _, n := range resultNodes {
		m.results = append(m.results, asNode(n))
	}
	for _, n := range inputParams {
		m.params = append(m.params, asNode(n))
	}
	return m, nil
}

func (c *Core) ReadModel(xmlPath string) (targetiface.Model, error) {
	m, ok := c.serialized[xmlPath]
	if !ok {
		return nil, diag.New(diag.KindCacheReadError, "fakeov: no serialized model at path")
	}
	return m, nil
}

func (c *Core) CompileModel(m targetiface.Model, device string) (targetiface.CompiledModel, error) {
	model, ok := m.(*Model)
	if !ok {
		return nil, diag.New(diag.KindTargetCompileError, "fakeov: CompileModel expects a fakeov Model")
	}
	return &CompiledModel{model: model, core: c}, nil
}

// Model is the fake targetiface.Model.
type Model struct {
	results []*node
	params  []*node
}

// CompiledModel is the fake targetiface.CompiledModel.
type CompiledModel struct {
	model *Model
	core  *Core
}

func (c *CompiledModel) CreateInferRequest() (targetiface.InferRequest, error) {
	return &InferRequest{model: c.model}, nil
}

func (c *CompiledModel) SerializeTo(xmlPath, binPath string) error {
	c.core.serialized[xmlPath] = c.model
	for _, p := range []string{xmlPath, binPath} {
		if err := os.WriteFile(p, []byte("fakeov"), 0o600); err != nil {
			return err
		}
	}
	return nil
}

// InferRequest is the fake targetiface.InferRequest: StartAsync
// evaluates the whole model synchronously and Wait simply reports
// whatever StartAsync recorded.
type InferRequest struct {
	model  *Model
	cache  map[*node][]float32
	ran    bool
	outBuf [][]byte
}

func (r *InferRequest) InputPort(i int) (targetiface.Port, error) {
	if i >= len(r.model.params) {
		return nil, diag.Newf(diag.KindInferError, "fakeov: input port %d out of range", i)
	}
	return &Port{node: r.model.params[i]}, nil
}

func (r *InferRequest) OutputPort(i int) (targetiface.Port, error) {
	if i >= len(r.model.results) {
		return nil, diag.Newf(diag.KindInferError, "fakeov: output port %d out of range", i)
	}
	if !r.ran {
		return nil, diag.New(diag.KindInferError, "fakeov: output requested before StartAsync/Wait")
	}
	return &Port{data: r.outBuf[i]}, nil
}

func (r *InferRequest) StartAsync() error {
	r.cache = make(map[*node][]float32)
	r.outBuf = make([][]byte, len(r.model.results))
	for i, res := range r.model.results {
		vals := evalF32(res, r.cache)
		r.outBuf[i] = f32ToBytes(vals)
	}
	r.ran = true
	return nil
}

func (r *InferRequest) Wait(timeout time.Duration) error {
	if !r.ran {
		return diag.New(diag.KindInferError, "fakeov: Wait called before StartAsync")
	}
	return nil
}

// Port is the fake targetiface.Port: for inputs it is the Parameter
// node's own scratch buffer, so Eval's copy-in writes land exactly
// where evaluation will read them; for outputs it is a snapshot taken
// at StartAsync time.
type Port struct {
	node *node
	data []byte
}

func (p *Port) Bytes() []byte {
	if p.node != nil {
		return p.node.data
	}
	return p.data
}
