package mesh

import (
	"fmt"
	"slices"
)

// VertexFormat is the numeric encoding of one element of an attribute channel.
// Snorm and Unorm formats are normalized integers; they share their Go element
// type with the matching Sint and Uint formats but are distinct encodings.
type VertexFormat uint8

const (
	VertexFormatUnknown VertexFormat = iota
	VertexFormatFloat32
	VertexFormatSint32
	VertexFormatUint32
	VertexFormatFloat32x2
	VertexFormatSint32x2
	VertexFormatUint32x2
	VertexFormatFloat32x3
	VertexFormatSint32x3
	VertexFormatUint32x3
	VertexFormatFloat32x4
	VertexFormatSint32x4
	VertexFormatUint32x4
	VertexFormatSint16x2
	VertexFormatSnorm16x2
	VertexFormatUint16x2
	VertexFormatUnorm16x2
	VertexFormatSint16x4
	VertexFormatSnorm16x4
	VertexFormatUint16x4
	VertexFormatUnorm16x4
	VertexFormatSint8x2
	VertexFormatSnorm8x2
	VertexFormatUint8x2
	VertexFormatUnorm8x2
	VertexFormatSint8x4
	VertexFormatSnorm8x4
	VertexFormatUint8x4
	VertexFormatUnorm8x4
)

var vertexFormatNames = map[VertexFormat]string{
	VertexFormatUnknown:   "Unknown",
	VertexFormatFloat32:   "Float32",
	VertexFormatSint32:    "Sint32",
	VertexFormatUint32:    "Uint32",
	VertexFormatFloat32x2: "Float32x2",
	VertexFormatSint32x2:  "Sint32x2",
	VertexFormatUint32x2:  "Uint32x2",
	VertexFormatFloat32x3: "Float32x3",
	VertexFormatSint32x3:  "Sint32x3",
	VertexFormatUint32x3:  "Uint32x3",
	VertexFormatFloat32x4: "Float32x4",
	VertexFormatSint32x4:  "Sint32x4",
	VertexFormatUint32x4:  "Uint32x4",
	VertexFormatSint16x2:  "Sint16x2",
	VertexFormatSnorm16x2: "Snorm16x2",
	VertexFormatUint16x2:  "Uint16x2",
	VertexFormatUnorm16x2: "Unorm16x2",
	VertexFormatSint16x4:  "Sint16x4",
	VertexFormatSnorm16x4: "Snorm16x4",
	VertexFormatUint16x4:  "Uint16x4",
	VertexFormatUnorm16x4: "Unorm16x4",
	VertexFormatSint8x2:   "Sint8x2",
	VertexFormatSnorm8x2:  "Snorm8x2",
	VertexFormatUint8x2:   "Uint8x2",
	VertexFormatUnorm8x2:  "Unorm8x2",
	VertexFormatSint8x4:   "Sint8x4",
	VertexFormatSnorm8x4:  "Snorm8x4",
	VertexFormatUint8x4:   "Uint8x4",
	VertexFormatUnorm8x4:  "Unorm8x4",
}

func (f VertexFormat) String() string {
	if name, ok := vertexFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("VertexFormat(%d)", uint8(f))
}

// Components returns the number of scalars in one element.
func (f VertexFormat) Components() int {
	switch f {
	case VertexFormatFloat32, VertexFormatSint32, VertexFormatUint32:
		return 1
	case VertexFormatFloat32x2, VertexFormatSint32x2, VertexFormatUint32x2, VertexFormatSint16x2,
		VertexFormatSnorm16x2, VertexFormatUint16x2, VertexFormatUnorm16x2, VertexFormatSint8x2,
		VertexFormatSnorm8x2, VertexFormatUint8x2, VertexFormatUnorm8x2:
		return 2
	case VertexFormatFloat32x3, VertexFormatSint32x3, VertexFormatUint32x3:
		return 3
	case VertexFormatFloat32x4, VertexFormatSint32x4, VertexFormatUint32x4, VertexFormatSint16x4,
		VertexFormatSnorm16x4, VertexFormatUint16x4, VertexFormatUnorm16x4, VertexFormatSint8x4,
		VertexFormatSnorm8x4, VertexFormatUint8x4, VertexFormatUnorm8x4:
		return 4
	}
	return 0
}

// Size returns the size in bytes of one element.
func (f VertexFormat) Size() int {
	return f.Components() * f.scalarSize()
}

func (f VertexFormat) scalarSize() int {
	switch f {
	case VertexFormatSint8x2, VertexFormatSnorm8x2, VertexFormatUint8x2, VertexFormatUnorm8x2,
		VertexFormatSint8x4, VertexFormatSnorm8x4, VertexFormatUint8x4, VertexFormatUnorm8x4:
		return 1
	case VertexFormatSint16x2, VertexFormatSnorm16x2, VertexFormatUint16x2, VertexFormatUnorm16x2,
		VertexFormatSint16x4, VertexFormatSnorm16x4, VertexFormatUint16x4, VertexFormatUnorm16x4:
		return 2
	}
	return 4
}

// VertexAttributeValues is the storage of one attribute channel. Every
// VertexFormat has exactly one implementation, so a type switch on the
// concrete slice type is equivalent to a switch on Format.
type VertexAttributeValues interface {
	Format() VertexFormat
	Len() int

	cloneValues() VertexAttributeValues
	appendValues(src VertexAttributeValues) (VertexAttributeValues, bool)
}

type (
	Float32Values   []float32
	Sint32Values    []int32
	Uint32Values    []uint32
	Float32x2Values [][2]float32
	Sint32x2Values  [][2]int32
	Uint32x2Values  [][2]uint32
	Float32x3Values [][3]float32
	Sint32x3Values  [][3]int32
	Uint32x3Values  [][3]uint32
	Float32x4Values [][4]float32
	Sint32x4Values  [][4]int32
	Uint32x4Values  [][4]uint32
	Sint16x2Values  [][2]int16
	Snorm16x2Values [][2]int16
	Uint16x2Values  [][2]uint16
	Unorm16x2Values [][2]uint16
	Sint16x4Values  [][4]int16
	Snorm16x4Values [][4]int16
	Uint16x4Values  [][4]uint16
	Unorm16x4Values [][4]uint16
	Sint8x2Values   [][2]int8
	Snorm8x2Values  [][2]int8
	Uint8x2Values   [][2]uint8
	Unorm8x2Values  [][2]uint8
	Sint8x4Values   [][4]int8
	Snorm8x4Values  [][4]int8
	Uint8x4Values   [][4]uint8
	Unorm8x4Values  [][4]uint8
)

// appendSame appends src to dst only when src has exactly the type of dst.
func appendSame[S interface {
	~[]E
	VertexAttributeValues
}, E any](dst S, src VertexAttributeValues) (VertexAttributeValues, bool) {
	s, ok := src.(S)
	if !ok {
		return dst, false
	}
	return append(dst, s...), true
}

func (v Float32Values) Format() VertexFormat                 { return VertexFormatFloat32 }
func (v Float32Values) Len() int                             { return len(v) }
func (v Float32Values) cloneValues() VertexAttributeValues   { return slices.Clone(v) }
func (v Sint32Values) Format() VertexFormat                  { return VertexFormatSint32 }
func (v Sint32Values) Len() int                              { return len(v) }
func (v Sint32Values) cloneValues() VertexAttributeValues    { return slices.Clone(v) }
func (v Uint32Values) Format() VertexFormat                  { return VertexFormatUint32 }
func (v Uint32Values) Len() int                              { return len(v) }
func (v Uint32Values) cloneValues() VertexAttributeValues    { return slices.Clone(v) }
func (v Float32x2Values) Format() VertexFormat               { return VertexFormatFloat32x2 }
func (v Float32x2Values) Len() int                           { return len(v) }
func (v Float32x2Values) cloneValues() VertexAttributeValues { return slices.Clone(v) }
func (v Sint32x2Values) Format() VertexFormat                { return VertexFormatSint32x2 }
func (v Sint32x2Values) Len() int                            { return len(v) }
func (v Sint32x2Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Uint32x2Values) Format() VertexFormat                { return VertexFormatUint32x2 }
func (v Uint32x2Values) Len() int                            { return len(v) }
func (v Uint32x2Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Float32x3Values) Format() VertexFormat               { return VertexFormatFloat32x3 }
func (v Float32x3Values) Len() int                           { return len(v) }
func (v Float32x3Values) cloneValues() VertexAttributeValues { return slices.Clone(v) }
func (v Sint32x3Values) Format() VertexFormat                { return VertexFormatSint32x3 }
func (v Sint32x3Values) Len() int                            { return len(v) }
func (v Sint32x3Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Uint32x3Values) Format() VertexFormat                { return VertexFormatUint32x3 }
func (v Uint32x3Values) Len() int                            { return len(v) }
func (v Uint32x3Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Float32x4Values) Format() VertexFormat               { return VertexFormatFloat32x4 }
func (v Float32x4Values) Len() int                           { return len(v) }
func (v Float32x4Values) cloneValues() VertexAttributeValues { return slices.Clone(v) }
func (v Sint32x4Values) Format() VertexFormat                { return VertexFormatSint32x4 }
func (v Sint32x4Values) Len() int                            { return len(v) }
func (v Sint32x4Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Uint32x4Values) Format() VertexFormat                { return VertexFormatUint32x4 }
func (v Uint32x4Values) Len() int                            { return len(v) }
func (v Uint32x4Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Sint16x2Values) Format() VertexFormat                { return VertexFormatSint16x2 }
func (v Sint16x2Values) Len() int                            { return len(v) }
func (v Sint16x2Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Snorm16x2Values) Format() VertexFormat               { return VertexFormatSnorm16x2 }
func (v Snorm16x2Values) Len() int                           { return len(v) }
func (v Snorm16x2Values) cloneValues() VertexAttributeValues { return slices.Clone(v) }
func (v Uint16x2Values) Format() VertexFormat                { return VertexFormatUint16x2 }
func (v Uint16x2Values) Len() int                            { return len(v) }
func (v Uint16x2Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Unorm16x2Values) Format() VertexFormat               { return VertexFormatUnorm16x2 }
func (v Unorm16x2Values) Len() int                           { return len(v) }
func (v Unorm16x2Values) cloneValues() VertexAttributeValues { return slices.Clone(v) }
func (v Sint16x4Values) Format() VertexFormat                { return VertexFormatSint16x4 }
func (v Sint16x4Values) Len() int                            { return len(v) }
func (v Sint16x4Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Snorm16x4Values) Format() VertexFormat               { return VertexFormatSnorm16x4 }
func (v Snorm16x4Values) Len() int                           { return len(v) }
func (v Snorm16x4Values) cloneValues() VertexAttributeValues { return slices.Clone(v) }
func (v Uint16x4Values) Format() VertexFormat                { return VertexFormatUint16x4 }
func (v Uint16x4Values) Len() int                            { return len(v) }
func (v Uint16x4Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Unorm16x4Values) Format() VertexFormat               { return VertexFormatUnorm16x4 }
func (v Unorm16x4Values) Len() int                           { return len(v) }
func (v Unorm16x4Values) cloneValues() VertexAttributeValues { return slices.Clone(v) }
func (v Sint8x2Values) Format() VertexFormat                 { return VertexFormatSint8x2 }
func (v Sint8x2Values) Len() int                             { return len(v) }
func (v Sint8x2Values) cloneValues() VertexAttributeValues   { return slices.Clone(v) }
func (v Snorm8x2Values) Format() VertexFormat                { return VertexFormatSnorm8x2 }
func (v Snorm8x2Values) Len() int                            { return len(v) }
func (v Snorm8x2Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Uint8x2Values) Format() VertexFormat                 { return VertexFormatUint8x2 }
func (v Uint8x2Values) Len() int                             { return len(v) }
func (v Uint8x2Values) cloneValues() VertexAttributeValues   { return slices.Clone(v) }
func (v Unorm8x2Values) Format() VertexFormat                { return VertexFormatUnorm8x2 }
func (v Unorm8x2Values) Len() int                            { return len(v) }
func (v Unorm8x2Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Sint8x4Values) Format() VertexFormat                 { return VertexFormatSint8x4 }
func (v Sint8x4Values) Len() int                             { return len(v) }
func (v Sint8x4Values) cloneValues() VertexAttributeValues   { return slices.Clone(v) }
func (v Snorm8x4Values) Format() VertexFormat                { return VertexFormatSnorm8x4 }
func (v Snorm8x4Values) Len() int                            { return len(v) }
func (v Snorm8x4Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }
func (v Uint8x4Values) Format() VertexFormat                 { return VertexFormatUint8x4 }
func (v Uint8x4Values) Len() int                             { return len(v) }
func (v Uint8x4Values) cloneValues() VertexAttributeValues   { return slices.Clone(v) }
func (v Unorm8x4Values) Format() VertexFormat                { return VertexFormatUnorm8x4 }
func (v Unorm8x4Values) Len() int                            { return len(v) }
func (v Unorm8x4Values) cloneValues() VertexAttributeValues  { return slices.Clone(v) }

func (v Float32Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Sint32Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Uint32Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Float32x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Sint32x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Uint32x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Float32x3Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Sint32x3Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Uint32x3Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Float32x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Sint32x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Uint32x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Sint16x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Snorm16x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Uint16x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Unorm16x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Sint16x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Snorm16x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Uint16x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Unorm16x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Sint8x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Snorm8x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Uint8x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Unorm8x2Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Sint8x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Snorm8x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Uint8x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}

func (v Unorm8x4Values) appendValues(src VertexAttributeValues) (VertexAttributeValues, bool) {
	return appendSame(v, src)
}
