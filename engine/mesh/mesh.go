package mesh

import (
	"fmt"
	"iter"
)

// PrimitiveTopology describes how the index buffer (or vertex order) forms primitives.
type PrimitiveTopology uint8

const (
	TriangleList PrimitiveTopology = iota
	TriangleStrip
	LineList
	PointList
)

type attributeData struct {
	id     AttributeID
	values VertexAttributeValues
}

// Mesh is an indexed vertex buffer made of named attribute channels.
// Channel order is insertion order. The zero value is not usable, create
// meshes with New or EmptyDefault.
type Mesh struct {
	topology   PrimitiveTopology
	attributes []attributeData
	indices    Indices
}

func New(topology PrimitiveTopology) *Mesh {
	return &Mesh{
		topology:   topology,
		attributes: make([]attributeData, 0, 4),
	}
}

// EmptyDefault returns a triangle list with empty position, normal and uv
// channels and an empty 32 bit index buffer. It is the starting point for
// accumulating meshes with Append.
func EmptyDefault() *Mesh {
	m := New(TriangleList)
	m.attributes = append(m.attributes,
		attributeData{id: AttributePosition, values: Float32x3Values{}},
		attributeData{id: AttributeNormal, values: Float32x3Values{}},
		attributeData{id: AttributeUV0, values: Float32x2Values{}},
	)
	m.indices = IndicesU32{}
	return m
}

func (m *Mesh) PrimitiveTopology() PrimitiveTopology {
	return m.topology
}

// InsertAttribute sets the values of a channel, replacing any channel of the
// same name in place. The values must be stored in id.Format.
func (m *Mesh) InsertAttribute(id AttributeID, values VertexAttributeValues) error {
	if values == nil {
		return fmt.Errorf("%w: nil values for attribute %q", ErrInvalidMesh, id.Name)
	}
	if id.Format != VertexFormatUnknown && values.Format() != id.Format {
		return &AttributeFormatError{Attribute: id, Want: id.Format, Got: values.Format()}
	}
	if i := m.attributeIndex(id.Name); i >= 0 {
		m.attributes[i] = attributeData{id: id, values: values}
		return nil
	}
	m.attributes = append(m.attributes, attributeData{id: id, values: values})
	return nil
}

// Attribute returns the channel stored under id.Name. The returned values
// share storage with the mesh.
func (m *Mesh) Attribute(id AttributeID) (VertexAttributeValues, bool) {
	if i := m.attributeIndex(id.Name); i >= 0 {
		return m.attributes[i].values, true
	}
	return nil, false
}

func (m *Mesh) ContainsAttribute(id AttributeID) bool {
	return m.attributeIndex(id.Name) >= 0
}

func (m *Mesh) RemoveAttribute(id AttributeID) (VertexAttributeValues, bool) {
	i := m.attributeIndex(id.Name)
	if i < 0 {
		return nil, false
	}
	values := m.attributes[i].values
	m.attributes = append(m.attributes[:i], m.attributes[i+1:]...)
	return values, true
}

// Attributes iterates the channels in insertion order.
func (m *Mesh) Attributes() iter.Seq2[AttributeID, VertexAttributeValues] {
	return func(yield func(AttributeID, VertexAttributeValues) bool) {
		for _, a := range m.attributes {
			if !yield(a.id, a.values) {
				return
			}
		}
	}
}

func (m *Mesh) AttributeCount() int {
	return len(m.attributes)
}

func (m *Mesh) SetIndices(indices Indices) {
	m.indices = indices
}

// Indices returns the index buffer, or nil for a non-indexed mesh.
func (m *Mesh) Indices() Indices {
	return m.indices
}

// CountVertices returns the shortest channel length, which equals every
// channel length for a valid mesh.
func (m *Mesh) CountVertices() int {
	count := -1
	for _, a := range m.attributes {
		if count < 0 || a.values.Len() < count {
			count = a.values.Len()
		}
	}
	return max(count, 0)
}

// CountTriangles returns the number of triangles of a triangle list.
func (m *Mesh) CountTriangles() int {
	if m.indices != nil {
		return m.indices.Len() / 3
	}
	return m.CountVertices() / 3
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		topology:   m.topology,
		attributes: make([]attributeData, len(m.attributes)),
	}
	for i, a := range m.attributes {
		c.attributes[i] = attributeData{id: a.id, values: a.values.cloneValues()}
	}
	if m.indices != nil {
		c.indices = m.indices.cloneIndices()
	}
	return c
}

// Validate checks that all channels have the same length, that a triangle
// list index buffer holds whole triangles and that every index addresses an
// existing vertex.
func (m *Mesh) Validate() error {
	count := -1
	for _, a := range m.attributes {
		n := a.values.Len()
		if count >= 0 && n != count {
			return fmt.Errorf("%w: attribute %q has %d values, expected %d", ErrInvalidMesh, a.id.Name, n, count)
		}
		count = n
	}
	count = max(count, 0)

	if m.indices == nil {
		return nil
	}
	if m.topology == TriangleList && m.indices.Len()%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidMesh, m.indices.Len())
	}
	if hi, ok := maxIndex(m.indices); ok && int(hi) >= count {
		return fmt.Errorf("%w: index %d out of range for %d vertices", ErrInvalidMesh, hi, count)
	}
	return nil
}

func (m *Mesh) attributeIndex(name string) int {
	for i, a := range m.attributes {
		if a.id.Name == name {
			return i
		}
	}
	return -1
}
