// Package kind enumerates the closed set of element kinds this module's
// arrays can hold, together with the widening/width rules each accessor
// relies on.
package kind

// Kind is a closed sum of the element representations an Array can store.
// It is the "tag" in the tag+payload encoding this module uses instead of
// a deep class hierarchy.
type Kind int

const (
	// Bit is a single packed bit, widened to bool by accessors.
	Bit Kind = iota
	// U8Byte is an unsigned 8-bit word, widened to int32 in [0,255].
	U8Byte
	// U16Char is an unsigned 16-bit word, widened to int32 in [0,65535].
	// Distinct tag from U16Short even though the storage is identical,
	// matching the source type system's char/short split.
	U16Char
	// U16Short is an unsigned 16-bit word, widened to int32 in [0,65535].
	U16Short
	// I32 is a signed 32-bit word.
	I32
	// I64 is a signed 64-bit word.
	I64
	// F32 is an IEEE-754 32-bit float.
	F32
	// F64 is an IEEE-754 64-bit float.
	F64
	// Object is an opaque reference element; widened accessor type is
	// caller-defined (any).
	Object
)

func (k Kind) String() string {
	switch k {
	case Bit:
		return "Bit"
	case U8Byte:
		return "U8Byte"
	case U16Char:
		return "U16Char"
	case U16Short:
		return "U16Short"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	case Object:
		return "Object"
	default:
		return "Unknown"
	}
}

// BitsPerElement returns the physical storage width of one element of this
// kind, or -1 for Object (reference-sized, not meaningfully measured in
// bits).
func (k Kind) BitsPerElement() int {
	switch k {
	case Bit:
		return 1
	case U8Byte:
		return 8
	case U16Char, U16Short:
		return 16
	case I32, F32:
		return 32
	case I64, F64:
		return 64
	default:
		return -1
	}
}

// IsNumeric reports whether the kind is one of the fixed-width numeric
// kinds (i.e. neither Bit nor Object).
func (k Kind) IsNumeric() bool {
	switch k {
	case U8Byte, U16Char, U16Short, I32, I64, F32, F64:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether the widened accessor type for this kind is
// an unsigned quantity.
func (k Kind) IsUnsigned() bool {
	switch k {
	case U8Byte, U16Char, U16Short:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the kind is one of the IEEE-754 float kinds.
func (k Kind) IsFloat() bool {
	return k == F32 || k == F64
}

// MaxValue returns the maximum representable value of a numeric kind,
// widened to float64 for uniform threshold comparisons. The second
// return value is false for Bit and Object, which have no numeric range.
func (k Kind) MaxValue() (float64, bool) {
	switch k {
	case U8Byte:
		return 255, true
	case U16Char, U16Short:
		return 65535, true
	case I32:
		return 2147483647, true
	case I64:
		return 9223372036854775807, true
	case F32:
		return 3.4028234663852886e+38, true
	case F64:
		return 1.7976931348623157e+308, true
	default:
		return 0, false
	}
}

// MinValue returns the minimum representable value of a numeric kind,
// widened to float64.
func (k Kind) MinValue() (float64, bool) {
	switch k {
	case U8Byte, U16Char, U16Short:
		return 0, true
	case I32:
		return -2147483648, true
	case I64:
		return -9223372036854775808, true
	case F32:
		return -3.4028234663852886e+38, true
	case F64:
		return -1.7976931348623157e+308, true
	default:
		return 0, false
	}
}
