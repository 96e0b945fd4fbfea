package mesh

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

// Append concatenates src onto dest. Indices from src are offset by the
// vertex count dest had before the call and stored at dest's index width;
// channels are appended in dest's channel order.
//
// Every check runs before dest is touched, so on error dest is unchanged:
//   - each channel of dest must exist in src (*AttributeNotFoundError) with
//     the same format (*AttributeFormatError);
//   - src must be a valid mesh (ErrInvalidMesh);
//   - both meshes need an index buffer once src has vertices (ErrMissingIndices);
//   - rebased indices must fit dest's index format (ErrIndexOverflow).
//
// Channels present only in src are ignored.
func Append(dest, src *Mesh) error {
	for _, a := range dest.attributes {
		values, ok := src.Attribute(a.id)
		if !ok {
			return &AttributeNotFoundError{Attribute: a.id}
		}
		if values.Format() != a.values.Format() {
			return &AttributeFormatError{Attribute: a.id, Want: a.values.Format(), Got: values.Format()}
		}
	}

	if err := src.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	destCount := dest.CountVertices()
	srcIndices := src.Indices()
	if srcIndices == nil && src.CountVertices() > 0 {
		return fmt.Errorf("%w: source mesh is not indexed", ErrMissingIndices)
	}
	if dest.indices == nil && (destCount > 0 || srcIndices != nil) {
		return fmt.Errorf("%w: destination mesh is not indexed", ErrMissingIndices)
	}
	if hi, ok := maxIndex(srcIndices); ok {
		if uint64(hi)+uint64(destCount) > dest.indices.Format().MaxIndex() {
			return fmt.Errorf("%w: index %d + offset %d exceeds %s", ErrIndexOverflow, hi, destCount, dest.indices.Format())
		}
	}

	if srcIndices != nil {
		switch dst := dest.indices.(type) {
		case IndicesU16:
			dest.indices = rebase(dst, srcIndices, uint32(destCount))
		case IndicesU32:
			dest.indices = rebase(dst, srcIndices, uint32(destCount))
		}
	}

	for i, a := range dest.attributes {
		values, _ := src.Attribute(a.id)
		merged, _ := a.values.appendValues(values)
		dest.attributes[i].values = merged
	}
	return nil
}

// AppendAll appends every mesh of srcs to dest in order, stopping at the
// first error. Meshes appended before the failing one stay in dest.
func AppendAll(dest *Mesh, srcs ...*Mesh) error {
	for i, src := range srcs {
		if err := Append(dest, src); err != nil {
			return fmt.Errorf("append mesh %d: %w", i, err)
		}
	}
	return nil
}

func rebase[S ~[]T, T constraints.Unsigned](dst S, src Indices, offset uint32) S {
	dst = slices.Grow(dst, src.Len())
	for _, v := range src.All() {
		dst = append(dst, T(v+offset))
	}
	return dst
}
