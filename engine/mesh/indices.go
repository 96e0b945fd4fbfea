package mesh

import (
	"iter"
	"slices"
)

// IndexFormat is the width of the values stored in an index buffer.
type IndexFormat uint8

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

func (f IndexFormat) String() string {
	if f == IndexFormatUint16 {
		return "Uint16"
	}
	return "Uint32"
}

// MaxIndex returns the largest vertex index representable in this format.
func (f IndexFormat) MaxIndex() uint64 {
	if f == IndexFormatUint16 {
		return 0xFFFF
	}
	return 0xFFFFFFFF
}

// Indices is an index buffer of either 16 or 32 bit values.
type Indices interface {
	Format() IndexFormat
	Len() int
	At(i int) uint32
	All() iter.Seq2[int, uint32]

	cloneIndices() Indices
}

type (
	IndicesU16 []uint16
	IndicesU32 []uint32
)

func (ix IndicesU16) Format() IndexFormat   { return IndexFormatUint16 }
func (ix IndicesU16) Len() int              { return len(ix) }
func (ix IndicesU16) At(i int) uint32       { return uint32(ix[i]) }
func (ix IndicesU16) cloneIndices() Indices { return slices.Clone(ix) }

func (ix IndicesU16) All() iter.Seq2[int, uint32] {
	return func(yield func(int, uint32) bool) {
		for i, v := range ix {
			if !yield(i, uint32(v)) {
				return
			}
		}
	}
}

func (ix IndicesU32) Format() IndexFormat   { return IndexFormatUint32 }
func (ix IndicesU32) Len() int              { return len(ix) }
func (ix IndicesU32) At(i int) uint32       { return ix[i] }
func (ix IndicesU32) cloneIndices() Indices { return slices.Clone(ix) }

func (ix IndicesU32) All() iter.Seq2[int, uint32] {
	return func(yield func(int, uint32) bool) {
		for i, v := range ix {
			if !yield(i, v) {
				return
			}
		}
	}
}

// maxIndex returns the largest value in ix, or false for an empty buffer.
func maxIndex(ix Indices) (uint32, bool) {
	if ix == nil || ix.Len() == 0 {
		return 0, false
	}
	var hi uint32
	for _, v := range ix.All() {
		hi = max(hi, v)
	}
	return hi, true
}
