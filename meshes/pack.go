package meshes

import (
	"encoding/binary"
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/buffers"
	"github.com/bloeys/nrend/materials"
)

// BoundingBox scans a flat xyz array and returns the component-wise min and max.
// An empty array returns min=+Inf and max=-Inf.
func BoundingBox(flat []float32) (min, max gglm.Vec3) {

	inf := float32(math.Inf(1))
	min = gglm.NewVec3(inf, inf, inf)
	max = gglm.NewVec3(-inf, -inf, -inf)

	for i := 0; i+2 < len(flat); i += 3 {
		for c := 0; c < 3; c++ {
			min.Data[c] = float32(math.Min(float64(min.Data[c]), float64(flat[i+c])))
			max.Data[c] = float32(math.Max(float64(max.Data[c]), float64(flat[i+c])))
		}
	}

	return min, max
}

// PackAttributes writes positions (xyz), normals (xyz) and uvs (uv) into a single ByteBuffer laid out
// as [positions][normals][uvs], and returns accessors over each section.
// normals and uvs may be nil, in which case their attribute is omitted.
func PackAttributes(positions, normals, uvs []float32) (*buffers.ByteBuffer, map[string]*buffers.Accessor, error) {

	if len(positions) == 0 {
		return nil, nil, ErrMissingPosition
	}

	if len(positions)%3 != 0 {
		return nil, nil, &AttributeCountMismatchError{Attribute: Attrib_Position, Count: len(positions), Expected: len(positions) - len(positions)%3}
	}

	vertexCount := len(positions) / 3
	if normals != nil && len(normals) != vertexCount*3 {
		return nil, nil, &AttributeCountMismatchError{Attribute: Attrib_Normal, Count: len(normals) / 3, Expected: vertexCount}
	}

	if uvs != nil && len(uvs) != vertexCount*2 {
		return nil, nil, &AttributeCountMismatchError{Attribute: Attrib_TexCoord0, Count: len(uvs) / 2, Expected: vertexCount}
	}

	bb := buffers.NewByteBuffer(4 * (len(positions) + len(normals) + len(uvs)))
	written := 0
	buffers.PutF32s(bb.Bytes(), &written, positions)
	buffers.PutF32s(bb.Bytes(), &written, normals)
	buffers.PutF32s(bb.Bytes(), &written, uvs)

	min, max := BoundingBox(positions)

	attribs := make(map[string]*buffers.Accessor, 3)

	var err error
	attribs[Attrib_Position], err = buffers.NewAccessor(bb, buffers.ComponentType_Float, buffers.AccessorType_Vec3, vertexCount, 0, min.Data[:], max.Data[:])
	if err != nil {
		return nil, nil, err
	}

	offset := len(positions) * 4
	if normals != nil {

		attribs[Attrib_Normal], err = buffers.NewAccessor(bb, buffers.ComponentType_Float, buffers.AccessorType_Vec3, vertexCount, offset, nil, nil)
		if err != nil {
			return nil, nil, err
		}

		offset += len(normals) * 4
	}

	if uvs != nil {

		attribs[Attrib_TexCoord0], err = buffers.NewAccessor(bb, buffers.ComponentType_Float, buffers.AccessorType_Vec2, vertexCount, offset, nil, nil)
		if err != nil {
			return nil, nil, err
		}
	}

	return bb, attribs, nil
}

// IndexComponentType returns the smallest index width able to address vertexCount vertices
func IndexComponentType(vertexCount int) buffers.ComponentType {

	if vertexCount < 1<<8 {
		return buffers.ComponentType_UnsignedByte
	}

	if vertexCount < 1<<16 {
		return buffers.ComponentType_UnsignedShort
	}

	return buffers.ComponentType_UnsignedInt
}

// PackIndices stores indices in their own ByteBuffer using IndexComponentType(vertexCount)
func PackIndices(indices []uint32, vertexCount int) (*buffers.Accessor, error) {

	ct := IndexComponentType(vertexCount)
	bb := buffers.NewByteBuffer(len(indices) * ct.Size())
	data := bb.Bytes()

	for i, index := range indices {

		if int(index) >= vertexCount {
			return nil, &IndexOutOfRangeError{Index: index, VertexCount: vertexCount}
		}

		switch ct {
		case buffers.ComponentType_UnsignedByte:
			data[i] = uint8(index)
		case buffers.ComponentType_UnsignedShort:
			binary.NativeEndian.PutUint16(data[i*2:], uint16(index))
		default:
			binary.NativeEndian.PutUint32(data[i*4:], index)
		}
	}

	return buffers.NewAccessor(bb, ct, buffers.AccessorType_Scalar, len(indices), 0, nil, nil)
}

func newPackedPrimitive(positions, normals, uvs []float32, indices []uint32, material *materials.Material, mode Mode) (*Primitive, error) {

	_, attribs, err := PackAttributes(positions, normals, uvs)
	if err != nil {
		return nil, err
	}

	var indicesAcc *buffers.Accessor
	if indices != nil {

		// Width is derived from the generated vertex count
		indicesAcc, err = PackIndices(indices, len(positions)/3)
		if err != nil {
			return nil, err
		}
	}

	return NewPrimitive(attribs, material, indicesAcc, mode)
}
