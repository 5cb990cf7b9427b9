package array

import "github.com/Daniel-Alievsky/algart-sub004/kind"

// New allocates a zero-filled, mutable array of the given kind and
// length, dispatching to the right generic monomorphization.
func New(k kind.Kind, length int64, resizable bool) Array {
	switch k {
	case kind.Bit:
		return NewBitArray(length, resizable)
	case kind.U8Byte:
		return NewNumericArray[uint8](k, length, resizable)
	case kind.U16Char, kind.U16Short:
		return NewNumericArray[uint16](k, length, resizable)
	case kind.I32:
		return NewNumericArray[int32](k, length, resizable)
	case kind.I64:
		return NewNumericArray[int64](k, length, resizable)
	case kind.F32:
		return NewNumericArray[float32](k, length, resizable)
	case kind.F64:
		return NewNumericArray[float64](k, length, resizable)
	case kind.Object:
		return NewObjectArray(length, resizable)
	default:
		panic("array: unknown kind")
	}
}
