package mesh

// AttributeID names a vertex attribute channel and the format it must be stored in.
// Channels are matched by Name.
type AttributeID struct {
	Name   string
	ID     uint64
	Format VertexFormat
}

var (
	// AttributePosition holds vertex positions in model space.
	AttributePosition = AttributeID{Name: "Vertex_Position", ID: 0, Format: VertexFormatFloat32x3}
	// AttributeNormal holds unit vertex normals.
	AttributeNormal = AttributeID{Name: "Vertex_Normal", ID: 1, Format: VertexFormatFloat32x3}
	// AttributeUV0 holds the first set of texture coordinates.
	AttributeUV0 = AttributeID{Name: "Vertex_Uv", ID: 2, Format: VertexFormatFloat32x2}
	// AttributeTangent holds xyz tangents with the bitangent sign in w.
	AttributeTangent = AttributeID{Name: "Vertex_Tangent", ID: 4, Format: VertexFormatFloat32x4}
	// AttributeColor holds linear RGBA vertex colors.
	AttributeColor = AttributeID{Name: "Vertex_Color", ID: 5, Format: VertexFormatFloat32x4}
	// AttributeJointWeight holds the four skinning weights of each vertex.
	AttributeJointWeight = AttributeID{Name: "Vertex_JointWeight", ID: 6, Format: VertexFormatFloat32x4}
	// AttributeJointIndex holds the four skin-binding joint indices of each vertex.
	AttributeJointIndex = AttributeID{Name: "Vertex_JointIndex", ID: 7, Format: VertexFormatUint16x4}
)

// NewAttributeID declares a custom attribute.
func NewAttributeID(name string, id uint64, format VertexFormat) AttributeID {
	return AttributeID{Name: name, ID: id, Format: format}
}

func (a AttributeID) String() string {
	return a.Name
}
