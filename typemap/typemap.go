// Package typemap implements the total function from a host tensor's
// source element type to the target library's element type. Every
// DataType maps to exactly one ElementType or to Unsupported; there is
// no partial mapping and no panic path.
package typemap

import "github.com/anikulk/tflite-openvino-delegate/hostiface"
import "github.com/anikulk/tflite-openvino-delegate/targetiface"

var table = map[hostiface.DataType]targetiface.ElementType{
	hostiface.Float32: targetiface.F32,
	hostiface.Float16: targetiface.F16,
	hostiface.Float64: targetiface.F64,
	hostiface.Int8:    targetiface.I8,
	hostiface.Int16:   targetiface.I16,
	hostiface.Int32:   targetiface.I32,
	hostiface.Int64:   targetiface.I64,
	hostiface.Uint8:   targetiface.U8,
	hostiface.Uint16:  targetiface.U16,
	hostiface.Uint32:  targetiface.U32,
	hostiface.Uint64:  targetiface.U64,
	hostiface.Int4:    targetiface.I4,
	hostiface.Bool:    targetiface.Bool,
}

// Map translates a source DataType to the corresponding target
// ElementType. It returns targetiface.Unsupported for any DataType not
// in the table, including hostiface.Unsupported itself.
func Map(dt hostiface.DataType) targetiface.ElementType {
	if t, ok := table[dt]; ok {
		return t
	}
	return targetiface.Unsupported
}

// Supported reports whether dt has a target mapping.
func Supported(dt hostiface.DataType) bool {
	_, ok := table[dt]
	return ok
}

// ElementSize returns the width in bytes of one element of t, or 0 if
// t's width is not fixed (Bool and I4 are sub-byte/implementation
// defined and return 0; callers needing their storage width must ask
// the host/target library directly).
func ElementSize(t targetiface.ElementType) int {
	switch t {
	case targetiface.F32, targetiface.I32, targetiface.U32:
		return 4
	case targetiface.F16, targetiface.I16, targetiface.U16:
		return 2
	case targetiface.F64, targetiface.I64, targetiface.U64:
		return 8
	case targetiface.I8, targetiface.U8:
		return 1
	default:
		return 0
	}
}
