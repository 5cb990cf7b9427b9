package bitops_test

import (
	"testing"

	"github.com/Daniel-Alievsky/algart-sub004/bitops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetBit(t *testing.T) {
	words := make([]uint64, 2)
	bitops.SetBit(words, 0, true)
	bitops.SetBit(words, 63, true)
	bitops.SetBit(words, 64, true)
	bitops.SetBit(words, 100, true)

	assert.True(t, bitops.GetBit(words, 0))
	assert.True(t, bitops.GetBit(words, 63))
	assert.True(t, bitops.GetBit(words, 64))
	assert.True(t, bitops.GetBit(words, 100))
	assert.False(t, bitops.GetBit(words, 1))

	bitops.SetBit(words, 0, false)
	assert.False(t, bitops.GetBit(words, 0))
}

func TestGetSetBits64RoundTrip(t *testing.T) {
	for _, off := range []int64{0, 1, 7, 37, 63, 64, 65, 127} {
		for _, count := range []int{1, 7, 32, 63, 64} {
			words := make([]uint64, 4)
			want := uint64(0xABCD1234) & ((uint64(1) << uint(count)) - 1)
			if count == 64 {
				want = 0xDEADBEEFCAFEBABE
			}
			bitops.SetBits64(words, off, want, count)
			got := bitops.GetBits64(words, off, count)
			assert.Equalf(t, want, got, "off=%d count=%d", off, count)
		}
	}
}

func TestCardinality(t *testing.T) {
	words := make([]uint64, 2)
	for i := int64(0); i < 100; i += 3 {
		bitops.SetBit(words, i, true)
	}
	var want int64
	for i := int64(0); i < 128; i++ {
		if bitops.GetBit(words, i) {
			want++
		}
	}
	got := bitops.Cardinality(words, 0, 128)
	assert.Equal(t, want, got)

	// Sub-range.
	got = bitops.Cardinality(words, 10, 20)
	var want2 int64
	for i := int64(10); i < 20; i++ {
		if bitops.GetBit(words, i) {
			want2++
		}
	}
	assert.Equal(t, want2, got)
}

func TestIndexOfLastIndexOf(t *testing.T) {
	words := make([]uint64, 1)
	bitops.SetBit(words, 5, true)
	bitops.SetBit(words, 40, true)

	require.Equal(t, int64(5), bitops.IndexOf(words, 0, 64, true))
	require.Equal(t, int64(40), bitops.LastIndexOf(words, 0, 64, true))
	require.Equal(t, int64(-1), bitops.IndexOf(words, 6, 40, true))
	require.Equal(t, int64(0), bitops.IndexOf(words, 0, 64, false))
}

func TestCopyBitsAscendingOverlap(t *testing.T) {
	words := make([]uint64, 2)
	for i := int64(0); i < 10; i++ {
		bitops.SetBit(words, i, i%2 == 0)
	}
	// shift left by 2 within the same slice (dOff < sOff): ascending copy.
	bitops.CopyBits(words, 0, words, 2, 8)
	for i := int64(0); i < 8; i++ {
		want := (i+2)%2 == 0
		assert.Equalf(t, want, bitops.GetBit(words, i), "i=%d", i)
	}
}

func TestCopyBitsDescendingOverlap(t *testing.T) {
	words := make([]uint64, 2)
	pattern := []bool{true, false, true, true, false, false, true, false}
	for i, v := range pattern {
		bitops.SetBit(words, int64(i), v)
	}
	// shift right by 2 within the same slice (dOff > sOff): must copy
	// high-to-low to avoid clobbering source bits before they are read.
	bitops.CopyBits(words, 2, words, 0, 8)
	for i := 0; i < 8; i++ {
		assert.Equalf(t, pattern[i], bitops.GetBit(words, int64(i+2)), "i=%d", i)
	}
}

func TestCopyBitsWordAligned(t *testing.T) {
	src := []uint64{0x1111111111111111, 0x2222222222222222, 0x3333333333333333}
	dst := make([]uint64, 3)
	bitops.CopyBits(dst, 64, src, 0, 128)
	assert.Equal(t, uint64(0), dst[0])
	assert.Equal(t, src[0], dst[1])
	assert.Equal(t, src[1], dst[2])
}

func TestFillBits(t *testing.T) {
	words := make([]uint64, 3)
	bitops.FillBits(words, 5, 150, true)
	for i := int64(0); i < 192; i++ {
		want := i >= 5 && i < 155
		assert.Equalf(t, want, bitops.GetBit(words, i), "i=%d", i)
	}
}

func TestBitwiseCombine(t *testing.T) {
	dst := []uint64{0b1010}
	src := []uint64{0b0110}
	bitops.AndBits(dst, 0, src, 0, 4)
	assert.Equal(t, uint64(0b0010), dst[0])

	dst = []uint64{0b1010}
	bitops.OrBits(dst, 0, src, 0, 4)
	assert.Equal(t, uint64(0b1110), dst[0])

	dst = []uint64{0b1010}
	bitops.AndNotBits(dst, 0, src, 0, 4)
	assert.Equal(t, uint64(0b1000), dst[0])

	dst = []uint64{0b00001010}
	bitops.NotBits(dst, 0, src, 0, 4)
	// not(0b0110) low 4 bits = 0b1001
	assert.Equal(t, uint64(0b1001), dst[0]&0xF)

	// Untouched tail bits beyond n must survive bitwise combine.
	dst = []uint64{0xFF00}
	bitops.AndBits(dst, 0, src, 0, 4)
	assert.Equal(t, uint64(0xFF00), dst[0]&0xFFF0)
}

func TestReverseBitsOrderRoundTrip(t *testing.T) {
	src := []uint64{0b1011001011010110}
	dst := make([]uint64, 1)
	bitops.ReverseBitsOrder(dst, 0, src, 0, 16)
	bitops.ReverseBitsOrder(dst, 0, dst, 0, 16)
	assert.Equal(t, src[0]&0xFFFF, dst[0]&0xFFFF)
}

func TestReverseBitsOrderContent(t *testing.T) {
	words := make([]uint64, 1)
	pattern := []bool{true, false, false, true, true}
	for i, v := range pattern {
		bitops.SetBit(words, int64(i), v)
	}
	dst := make([]uint64, 1)
	bitops.ReverseBitsOrder(dst, 0, words, 0, int64(len(pattern)))
	for i, v := range pattern {
		assert.Equal(t, v, bitops.GetBit(dst, int64(len(pattern)-1-i)))
	}
}

func TestPackPredicateAndUnpackVisit(t *testing.T) {
	values := []float64{0, 50, 255, 10, 300}
	packed := make([]uint64, 1)
	bitops.PackPredicate(packed, 0, int64(len(values)), func(i int64) bool {
		return values[i] > 20
	})

	var got []bool
	bitops.UnpackVisit(packed, 0, int64(len(values)), func(i int64, bit bool) {
		got = append(got, bit)
	})
	want := []bool{false, true, true, false, true}
	assert.Equal(t, want, got)
}
