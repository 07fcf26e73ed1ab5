package meshes

import (
	"math"
	"testing"

	"github.com/bloeys/nrend/buffers"
	"github.com/bloeys/nrend/materials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unitTol = 1e-6

func vec3At(t *testing.T, acc *buffers.Accessor, i int) [3]float32 {
	t.Helper()
	require.Equal(t, buffers.AccessorType_Vec3, acc.Type)
	off := acc.ByteOffset + i*12
	return [3]float32{acc.BufferView.Float32At(off), acc.BufferView.Float32At(off + 4), acc.BufferView.Float32At(off + 8)}
}

func length(v [3]float32) float64 {
	return math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
}

func TestPackAttributesRoundTrip(t *testing.T) {

	positions := []float32{0, 1, 2, 3, 4, 5}
	normals := []float32{0, 0, 1, 0, 1, 0}
	uvs := []float32{0.25, 0.5, 0.75, 1}

	bb, attribs, err := PackAttributes(positions, normals, uvs)
	require.NoError(t, err)
	assert.Equal(t, 4*(len(positions)+len(normals)+len(uvs)), bb.Len())

	assert.Equal(t, positions, attribs[Attrib_Position].Float32s())
	assert.Equal(t, normals, attribs[Attrib_Normal].Float32s())
	assert.Equal(t, uvs, attribs[Attrib_TexCoord0].Float32s())

	assert.Equal(t, 0, attribs[Attrib_Position].ByteOffset)
	assert.Equal(t, 24, attribs[Attrib_Normal].ByteOffset)
	assert.Equal(t, 48, attribs[Attrib_TexCoord0].ByteOffset)

	for _, acc := range attribs {
		assert.Same(t, bb, acc.BufferView)
		assert.Equal(t, 2, acc.Count)
	}

	assert.Equal(t, []float32{0, 1, 2}, attribs[Attrib_Position].Min)
	assert.Equal(t, []float32{3, 4, 5}, attribs[Attrib_Position].Max)
}

func TestPackAttributesCountMismatch(t *testing.T) {

	_, _, err := PackAttributes([]float32{0, 0, 0, 1, 1, 1}, []float32{0, 1, 0}, nil)
	var mismatch *AttributeCountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, Attrib_Normal, mismatch.Attribute)

	_, _, err = PackAttributes(nil, nil, nil)
	assert.ErrorIs(t, err, ErrMissingPosition)
}

func TestBoundingBox(t *testing.T) {

	min, max := BoundingBox([]float32{1, -2, 3, -4, 5, 0.5, 2, 2, -6})
	assert.Equal(t, [3]float32{-4, -2, -6}, min.Data)
	assert.Equal(t, [3]float32{2, 5, 3}, max.Data)

	min, max = BoundingBox(nil)
	assert.True(t, math.IsInf(float64(min.Data[0]), 1))
	assert.True(t, math.IsInf(float64(max.Data[0]), -1))
}

func TestIndexComponentTypeBoundaries(t *testing.T) {

	assert.Equal(t, buffers.ComponentType_UnsignedByte, IndexComponentType(0))
	assert.Equal(t, buffers.ComponentType_UnsignedByte, IndexComponentType(255))
	assert.Equal(t, buffers.ComponentType_UnsignedShort, IndexComponentType(256))
	assert.Equal(t, buffers.ComponentType_UnsignedShort, IndexComponentType(65535))
	assert.Equal(t, buffers.ComponentType_UnsignedInt, IndexComponentType(65536))
}

func TestPackIndices(t *testing.T) {

	acc, err := PackIndices([]uint32{0, 299, 5}, 300)
	require.NoError(t, err)
	assert.Equal(t, buffers.ComponentType_UnsignedShort, acc.ComponentType)
	assert.Equal(t, uint32(299), acc.Index(1))
	assert.Equal(t, 6, acc.BufferView.Len())

	_, err = PackIndices([]uint32{0, 3}, 3)
	var outOfRange *IndexOutOfRangeError
	assert.ErrorAs(t, err, &outOfRange)
}

func TestNewCube(t *testing.T) {

	mat := &materials.Material{}
	cube, err := NewCube(mat, false, Mode_Triangles)
	require.NoError(t, err)

	assert.Equal(t, 24, cube.VertexCount())
	assert.Equal(t, 36, cube.IndexCount())
	assert.Equal(t, buffers.ComponentType_UnsignedByte, cube.Indices.ComponentType)
	assert.Same(t, mat, cube.Material)

	normals := cube.Attributes[Attrib_Normal]
	for f := 0; f < 6; f++ {

		n0 := vec3At(t, normals, f*4)
		assert.InDelta(t, 1, length(n0), unitTol)

		for v := 1; v < 4; v++ {
			assert.Equal(t, n0, vec3At(t, normals, f*4+v))
		}
	}

	// First face is the +Z face
	assert.Equal(t, [3]float32{0, 0, 1}, vec3At(t, normals, 0))
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, []uint32{cube.Indices.Index(0), cube.Indices.Index(1), cube.Indices.Index(2), cube.Indices.Index(3), cube.Indices.Index(4), cube.Indices.Index(5)})

	min, max, ok := cube.Bounds()
	require.True(t, ok)
	assert.Equal(t, [3]float32{-0.5, -0.5, -0.5}, min.Data)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, max.Data)
}

func TestNewCubeFlipped(t *testing.T) {

	cube, err := NewCube(&materials.Material{}, true, Mode_Triangles)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 2, 1, 0, 3, 2}, []uint32{cube.Indices.Index(0), cube.Indices.Index(1), cube.Indices.Index(2), cube.Indices.Index(3), cube.Indices.Index(4), cube.Indices.Index(5)})
	assert.Equal(t, [3]float32{0, 0, -1}, vec3At(t, cube.Attributes[Attrib_Normal], 0))

	// Positions don't change
	unflipped, err := NewCube(&materials.Material{}, false, Mode_Triangles)
	require.NoError(t, err)
	assert.Equal(t, unflipped.Attributes[Attrib_Position].Float32s(), cube.Attributes[Attrib_Position].Float32s())
}

func TestNewPlane(t *testing.T) {

	plane, err := NewPlane(&materials.Material{}, Mode_Triangles)
	require.NoError(t, err)

	assert.Equal(t, 6, plane.VertexCount())
	assert.Nil(t, plane.Indices)
	assert.Equal(t, 0, plane.IndexCount())

	normals := plane.Attributes[Attrib_Normal]
	for i := 0; i < 6; i++ {
		assert.Equal(t, [3]float32{0, 1, 0}, vec3At(t, normals, i))
	}

	assert.Equal(t, []float32{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}, plane.Attributes[Attrib_TexCoord0].Float32s())

	_, err = NewPlane(nil, Mode_Triangles)
	var missing *MissingArgumentError
	assert.ErrorAs(t, err, &missing)
}

func TestNewSphere(t *testing.T) {

	cases := []struct{ lat, lon int }{
		{2, 3},
		{3, 4},
		{8, 16},
		{32, 32},
	}

	for _, c := range cases {

		sphere, err := NewSphere(&materials.Material{}, c.lat, c.lon, Mode_Triangles)
		require.NoError(t, err)

		expected := 3 * (2*(c.lat-2)*c.lon + 2*c.lon)
		require.Equal(t, expected, sphere.VertexCount(), "lat=%d lon=%d", c.lat, c.lon)
		assert.Nil(t, sphere.Indices)

		positions := sphere.Attributes[Attrib_Position]
		normals := sphere.Attributes[Attrib_Normal]
		for i := 0; i < sphere.VertexCount(); i++ {
			p := vec3At(t, positions, i)
			assert.InDelta(t, 1, length(p), unitTol)
			n := vec3At(t, normals, i)
			assert.InDeltaSlice(t, p[:], n[:], unitTol)
		}
	}
}

func TestNewSphereDefaultsAndLimits(t *testing.T) {

	sphere, err := NewSphere(&materials.Material{}, 0, -1, Mode_Triangles)
	require.NoError(t, err)
	assert.Equal(t, 3*(2*30*32+2*32), sphere.VertexCount())

	// First vertex is the north pole
	p := vec3At(t, sphere.Attributes[Attrib_Position], 0)
	assert.InDeltaSlice(t, []float32{0, 1, 0}, p[:], unitTol)

	_, err = NewSphere(&materials.Material{}, 1, 8, Mode_Triangles)
	assert.ErrorIs(t, err, ErrInvalidSegments)

	_, err = NewSphere(&materials.Material{}, 8, 2, Mode_Triangles)
	assert.ErrorIs(t, err, ErrInvalidSegments)
}

func TestFromExisting(t *testing.T) {

	cube, err := NewCube(&materials.Material{Name: "a"}, false, Mode_Triangles)
	require.NoError(t, err)

	other := &materials.Material{Name: "b"}
	wire, err := FromExisting(cube, other, Mode_Lines)
	require.NoError(t, err)

	assert.Same(t, other, wire.Material)
	assert.Equal(t, Mode_Lines, wire.Mode)
	assert.Same(t, cube.Indices, wire.Indices)
	for name, acc := range cube.Attributes {
		assert.Same(t, acc, wire.Attributes[name])
	}
	assert.Same(t, cube.Attributes[Attrib_Position].BufferView, wire.Attributes[Attrib_Position].BufferView)

	// By value works too
	_, err = FromExisting(*cube, other, Mode_Points)
	assert.NoError(t, err)

	_, err = FromExisting("not a primitive", other, Mode_Points)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "string", mismatch.Got)

	var nilPrim *Primitive
	_, err = FromExisting(nilPrim, other, Mode_Points)
	assert.ErrorAs(t, err, &mismatch)
}

func TestNewPrimitiveValidation(t *testing.T) {

	_, attribs, err := PackAttributes([]float32{0, 0, 0, 1, 1, 1}, []float32{0, 1, 0, 0, 1, 0}, nil)
	require.NoError(t, err)

	_, err = NewPrimitive(map[string]*buffers.Accessor{Attrib_Normal: attribs[Attrib_Normal]}, nil, nil, Mode_Triangles)
	assert.ErrorIs(t, err, ErrMissingPosition)

	short, err := buffers.NewAccessor(attribs[Attrib_Normal].BufferView, buffers.ComponentType_Float, buffers.AccessorType_Vec3, 1, 0, nil, nil)
	require.NoError(t, err)

	_, err = NewPrimitive(map[string]*buffers.Accessor{Attrib_Position: attribs[Attrib_Position], Attrib_Normal: short}, nil, nil, Mode_Triangles)
	var mismatch *AttributeCountMismatchError
	assert.ErrorAs(t, err, &mismatch)

	floatIndices, err := buffers.NewAccessor(attribs[Attrib_Normal].BufferView, buffers.ComponentType_Float, buffers.AccessorType_Scalar, 3, 0, nil, nil)
	require.NoError(t, err)

	_, err = NewPrimitive(attribs, nil, floatIndices, Mode_Triangles)
	var typeErr *TypeMismatchError
	assert.ErrorAs(t, err, &typeErr)
}
