package meshes

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/buffers"
	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/materials"
)

// Mode is how the vertices of a primitive are assembled. Triangles is the default.
type Mode uint8

const (
	Mode_Triangles Mode = iota
	Mode_Points
	Mode_Lines
	Mode_LineLoop
	Mode_LineStrip
	Mode_TriangleStrip
	Mode_TriangleFan
)

func (m Mode) ToGL() uint32 {

	switch m {
	case Mode_Triangles:
		return glctx.TRIANGLES
	case Mode_Points:
		return glctx.POINTS
	case Mode_Lines:
		return glctx.LINES
	case Mode_LineLoop:
		return glctx.LINE_LOOP
	case Mode_LineStrip:
		return glctx.LINE_STRIP
	case Mode_TriangleStrip:
		return glctx.TRIANGLE_STRIP
	case Mode_TriangleFan:
		return glctx.TRIANGLE_FAN

	default:
		assert.T(false, "Unknown primitive mode passed. Mode '%d'", m)
		return 0
	}
}

func (m Mode) String() string {

	switch m {
	case Mode_Triangles:
		return "Triangles"
	case Mode_Points:
		return "Points"
	case Mode_Lines:
		return "Lines"
	case Mode_LineLoop:
		return "LineLoop"
	case Mode_LineStrip:
		return "LineStrip"
	case Mode_TriangleStrip:
		return "TriangleStrip"
	case Mode_TriangleFan:
		return "TriangleFan"
	default:
		return "Unknown"
	}
}

// Attribute semantics, as named by glTF
const (
	Attrib_Position  = "POSITION"
	Attrib_Normal    = "NORMAL"
	Attrib_Tangent   = "TANGENT"
	Attrib_TexCoord0 = "TEXCOORD_0"
	Attrib_Color0    = "COLOR_0"
)

/*
AttribLocations are the vertex shader locations each attribute is bound to:
  - Loc0: POSITION
  - Loc1: NORMAL
  - Loc2: TANGENT
  - Loc3: TEXCOORD_0
  - Loc4: COLOR_0

Attributes not in this map are not uploaded.
*/
var AttribLocations = map[string]uint32{
	Attrib_Position:  0,
	Attrib_Normal:    1,
	Attrib_Tangent:   2,
	Attrib_TexCoord0: 3,
	Attrib_Color0:    4,
}

// Primitive is a drawable piece of geometry: named attribute accessors, optional indices,
// a material and a draw mode. Accessors (and so their ByteBuffers) may be shared between primitives.
type Primitive struct {
	Attributes map[string]*buffers.Accessor
	// Indices is nil for non-indexed geometry
	Indices  *buffers.Accessor
	Material *materials.Material
	Mode     Mode
}

func NewPrimitive(attributes map[string]*buffers.Accessor, material *materials.Material, indices *buffers.Accessor, mode Mode) (*Primitive, error) {

	pos, ok := attributes[Attrib_Position]
	if !ok || pos == nil {
		return nil, ErrMissingPosition
	}

	for name, acc := range attributes {

		if acc == nil {
			return nil, &MissingArgumentError{Arg: "accessor of attribute " + name}
		}

		if acc.Count != pos.Count {
			return nil, &AttributeCountMismatchError{Attribute: name, Count: acc.Count, Expected: pos.Count}
		}
	}

	if indices != nil {

		if indices.Type != buffers.AccessorType_Scalar {
			return nil, &TypeMismatchError{Expected: "SCALAR indices", Got: indices.Type.String() + " indices"}
		}

		switch indices.ComponentType {
		case buffers.ComponentType_UnsignedByte, buffers.ComponentType_UnsignedShort, buffers.ComponentType_UnsignedInt:
		default:
			return nil, &TypeMismatchError{Expected: "unsigned integer indices", Got: indices.ComponentType.String() + " indices"}
		}
	}

	return &Primitive{
		Attributes: attributes,
		Indices:    indices,
		Material:   material,
		Mode:       mode,
	}, nil
}

// FromExisting returns a primitive that draws the geometry of src with a different material and mode.
// Accessors are shared, not copied. src must be a Primitive or *Primitive.
func FromExisting(src any, material *materials.Material, mode Mode) (*Primitive, error) {

	var p *Primitive
	switch v := src.(type) {
	case *Primitive:
		p = v
	case Primitive:
		p = &v
	}

	if p == nil {
		return nil, &TypeMismatchError{Expected: "*meshes.Primitive", Got: fmt.Sprintf("%T", src)}
	}

	attribs := make(map[string]*buffers.Accessor, len(p.Attributes))
	for k, v := range p.Attributes {
		attribs[k] = v
	}

	return &Primitive{
		Attributes: attribs,
		Indices:    p.Indices,
		Material:   material,
		Mode:       mode,
	}, nil
}

func (p *Primitive) VertexCount() int {

	pos, ok := p.Attributes[Attrib_Position]
	if !ok {
		return 0
	}

	return pos.Count
}

// IndexCount returns the number of indices, or zero if the primitive isn't indexed
func (p *Primitive) IndexCount() int {

	if p.Indices == nil {
		return 0
	}

	return p.Indices.Count
}

// Bounds returns the POSITION bounds. ok is false when the accessor carries no min/max.
func (p *Primitive) Bounds() (min, max gglm.Vec3, ok bool) {

	pos, found := p.Attributes[Attrib_Position]
	if !found || len(pos.Min) != 3 || len(pos.Max) != 3 {
		return min, max, false
	}

	min = gglm.NewVec3(pos.Min[0], pos.Min[1], pos.Min[2])
	max = gglm.NewVec3(pos.Max[0], pos.Max[1], pos.Max[2])
	return min, max, true
}
