package bitops

// PackPredicate writes n bits into dst starting at dOff, where bit k is
// pred(k). It is the bit-level engine behind the per-kind
// packBitsGreater/Less/GreaterOrEqual/LessOrEqual family in package bulk:
// callers resolve the kind-specific threshold, saturation, and rounding
// rules (see §4.7 of the design notes) into a single predicate over the
// element index, and this function turns that predicate into packed bits
// a block at a time.
func PackPredicate(dst []uint64, dOff int64, n int64, pred func(i int64) bool) {
	var i int64
	for ; i < n; i++ {
		SetBitNoSync(dst, dOff+i, pred(i))
	}
}

// UnpackVisit reads n bits from src starting at sOff and invokes visit(i,
// bit) for each one. It is the bit-level engine behind unpackBits /
// unpackZeroBits / unpackUnitBits in package bulk, which supply a visitor
// that writes fillers into a numeric or bit destination.
func UnpackVisit(src []uint64, sOff int64, n int64, visit func(i int64, bit bool)) {
	for i := int64(0); i < n; i++ {
		visit(i, GetBit(src, sOff+i))
	}
}
