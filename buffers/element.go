package buffers

import (
	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/logging"
)

// ElementType is the type of an element thats makes up a uniform block (e.g. Vec3)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeUint32
	DataTypeInt32
	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4

	DataTypeMat2
	DataTypeMat3
	DataTypeMat4

	DataTypeStruct
)

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {

	switch dt {
	case DataTypeUint32, DataTypeFloat32, DataTypeInt32:
		return 1

	case DataTypeVec2:
		return 2
	case DataTypeVec3:
		return 3
	case DataTypeVec4:
		return 4

	case DataTypeMat2:
		return 2 * 2
	case DataTypeMat3:
		return 3 * 3
	case DataTypeMat4:
		return 4 * 4

	case DataTypeStruct:
		logging.ErrLog.Panicf("ElementType.CompCount of DataTypeStruct is not supported")
		return 0

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// Size returns the total size in bytes (e.g. for vec3 its 3*4=12 bytes)
func (dt ElementType) Size() int32 {

	if dt == DataTypeStruct {
		logging.ErrLog.Panicf("ElementType.Size of DataTypeStruct is not supported")
		return 0
	}

	// All non-struct types are made of 4 byte components
	return dt.CompCount() * 4
}

func (dt ElementType) GlStd140AlignmentBoundary() uint16 {

	switch dt {

	case DataTypeUint32, DataTypeFloat32, DataTypeInt32:
		return 4

	case DataTypeVec2:
		return 8

	case DataTypeVec3, DataTypeVec4, DataTypeMat2, DataTypeMat3, DataTypeMat4, DataTypeStruct:
		return 16

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

func (dt ElementType) String() string {

	switch dt {

	case DataTypeUint32:
		return "uint32"
	case DataTypeFloat32:
		return "float32"
	case DataTypeInt32:
		return "int32"

	case DataTypeVec2:
		return "Vec2"
	case DataTypeVec3:
		return "Vec3"
	case DataTypeVec4:
		return "Vec4"

	case DataTypeMat2:
		return "Mat2"
	case DataTypeMat3:
		return "Mat3"
	case DataTypeMat4:
		return "Mat4"

	case DataTypeStruct:
		return "Struct"

	default:
		return "Unknown"
	}
}
