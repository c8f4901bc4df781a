package hostiface

import "unsafe"

// ViewFloat32 reinterprets raw as a []float32 without copying. It returns
// nil if raw is empty or not a multiple of 4 bytes. No translator calls
// it at present: filter weights and bias reach the target library as
// constant nodes built from the raw bytes.
//
// Adapted from the teacher's Sublate.AsFloat32Prev: same unsafe.Slice
// cast, generalized to arbitrary byte slices instead of a fixed payload
// field.
func ViewFloat32(raw []byte) []float32 {
	if len(raw)%4 != 0 || len(raw) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&raw[0])), len(raw)/4)
}

// ViewInt32 reinterprets raw as a []int32 without copying. Used to read
// int32-typed padding tensors (Pad) and TransposeConv's output shape.
func ViewInt32(raw []byte) []int32 {
	if len(raw)%4 != 0 || len(raw) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&raw[0])), len(raw)/4)
}

// ViewInt64 reinterprets raw as a []int64 without copying. Used to read
// int64-typed padding and shape tensors.
func ViewInt64(raw []byte) []int64 {
	if len(raw)%8 != 0 || len(raw) == 0 {
		return nil
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&raw[0])), len(raw)/8)
}

// ViewUint8 is the identity view: raw bytes as-is, named for symmetry
// with the typed views above so callers don't special-case the
// byte-typed case.
func ViewUint8(raw []byte) []uint8 {
	return raw
}
