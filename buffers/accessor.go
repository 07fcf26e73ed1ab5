package buffers

import (
	"fmt"
	"math"

	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/glctx"
)

// ComponentType is the type of a single component of an accessor element.
// Values match glTF (which match the GL enums).
type ComponentType uint32

const (
	ComponentType_Byte          ComponentType = 5120
	ComponentType_UnsignedByte  ComponentType = 5121
	ComponentType_Short         ComponentType = 5122
	ComponentType_UnsignedShort ComponentType = 5123
	ComponentType_UnsignedInt   ComponentType = 5125
	ComponentType_Float         ComponentType = 5126
)

func (ct ComponentType) IsValid() bool {
	switch ct {
	case ComponentType_Byte, ComponentType_UnsignedByte, ComponentType_Short, ComponentType_UnsignedShort, ComponentType_UnsignedInt, ComponentType_Float:
		return true
	default:
		return false
	}
}

// Size returns the size in bytes of one component
func (ct ComponentType) Size() int {

	switch ct {
	case ComponentType_Byte, ComponentType_UnsignedByte:
		return 1
	case ComponentType_Short, ComponentType_UnsignedShort:
		return 2
	case ComponentType_UnsignedInt, ComponentType_Float:
		return 4

	default:
		assert.T(false, "Unknown component type passed. ComponentType '%d'", ct)
		return 0
	}
}

func (ct ComponentType) GLType() uint32 {

	switch ct {
	case ComponentType_Byte:
		return glctx.BYTE
	case ComponentType_UnsignedByte:
		return glctx.UNSIGNED_BYTE
	case ComponentType_Short:
		return glctx.SHORT
	case ComponentType_UnsignedShort:
		return glctx.UNSIGNED_SHORT
	case ComponentType_UnsignedInt:
		return glctx.UNSIGNED_INT
	case ComponentType_Float:
		return glctx.FLOAT

	default:
		assert.T(false, "Unknown component type passed. ComponentType '%d'", ct)
		return 0
	}
}

func (ct ComponentType) String() string {

	switch ct {
	case ComponentType_Byte:
		return "BYTE"
	case ComponentType_UnsignedByte:
		return "UNSIGNED_BYTE"
	case ComponentType_Short:
		return "SHORT"
	case ComponentType_UnsignedShort:
		return "UNSIGNED_SHORT"
	case ComponentType_UnsignedInt:
		return "UNSIGNED_INT"
	case ComponentType_Float:
		return "FLOAT"
	default:
		return "Unknown"
	}
}

// AccessorType is the shape of an accessor element
type AccessorType uint8

const (
	AccessorType_Unknown AccessorType = iota
	AccessorType_Scalar
	AccessorType_Vec2
	AccessorType_Vec3
	AccessorType_Vec4
)

// CompCount returns the number of components per element (e.g. for Vec3 its 3)
func (at AccessorType) CompCount() int {

	switch at {
	case AccessorType_Scalar:
		return 1
	case AccessorType_Vec2:
		return 2
	case AccessorType_Vec3:
		return 3
	case AccessorType_Vec4:
		return 4
	default:
		return 0
	}
}

func (at AccessorType) String() string {

	switch at {
	case AccessorType_Scalar:
		return "SCALAR"
	case AccessorType_Vec2:
		return "VEC2"
	case AccessorType_Vec3:
		return "VEC3"
	case AccessorType_Vec4:
		return "VEC4"
	default:
		return "Unknown"
	}
}

// InvalidRangeError is returned when an accessor would read outside of its ByteBuffer,
// or its description is otherwise inconsistent.
type InvalidRangeError struct {
	ByteOffset   int
	ByteLength   int
	BufferLength int
	Reason       string
}

func (e *InvalidRangeError) Error() string {

	if e.Reason != "" {
		return "invalid accessor range: " + e.Reason
	}

	return fmt.Sprintf("invalid accessor range: bytes [%d, %d) are outside buffer of length %d", e.ByteOffset, e.ByteOffset+e.ByteLength, e.BufferLength)
}

// Accessor is a typed, read-only view into a ByteBuffer describing one attribute stream
// (or an index stream). It never copies buffer data.
type Accessor struct {
	BufferView    *ByteBuffer
	ComponentType ComponentType
	Type          AccessorType
	// Count is the number of elements (e.g. vertices), not components
	Count      int
	ByteOffset int

	// Min and Max are optional component-wise bounds with the same arity as Type
	Min []float32
	Max []float32
}

// NewAccessor validates that the described range fits inside bufferView
func NewAccessor(bufferView *ByteBuffer, componentType ComponentType, accessorType AccessorType, count, byteOffset int, min, max []float32) (*Accessor, error) {

	if bufferView == nil {
		return nil, &InvalidRangeError{ByteOffset: byteOffset, Reason: "buffer view is nil"}
	}

	if !componentType.IsValid() {
		return nil, &InvalidRangeError{ByteOffset: byteOffset, BufferLength: bufferView.Len(), Reason: fmt.Sprintf("unknown component type %d", componentType)}
	}

	compCount := accessorType.CompCount()
	if compCount == 0 {
		return nil, &InvalidRangeError{ByteOffset: byteOffset, BufferLength: bufferView.Len(), Reason: fmt.Sprintf("unknown accessor type %d", accessorType)}
	}

	if count < 0 || byteOffset < 0 {
		return nil, &InvalidRangeError{ByteOffset: byteOffset, BufferLength: bufferView.Len(), Reason: fmt.Sprintf("negative count (%d) or byte offset (%d)", count, byteOffset)}
	}

	if (min != nil && len(min) != compCount) || (max != nil && len(max) != compCount) {
		return nil, &InvalidRangeError{ByteOffset: byteOffset, BufferLength: bufferView.Len(), Reason: fmt.Sprintf("min/max must have %d components for %s", compCount, accessorType)}
	}

	// Compared by division so huge counts can't wrap around
	elemSize := compCount * componentType.Size()
	if byteOffset > bufferView.Len() || count > (bufferView.Len()-byteOffset)/elemSize {

		if count > math.MaxInt/elemSize {
			return nil, &InvalidRangeError{ByteOffset: byteOffset, BufferLength: bufferView.Len(), Reason: fmt.Sprintf("count %d of %d byte elements overflows", count, elemSize)}
		}

		return nil, &InvalidRangeError{ByteOffset: byteOffset, ByteLength: count * elemSize, BufferLength: bufferView.Len()}
	}

	return &Accessor{
		BufferView:    bufferView,
		ComponentType: componentType,
		Type:          accessorType,
		Count:         count,
		ByteOffset:    byteOffset,
		Min:           min,
		Max:           max,
	}, nil
}

// ElementSize is the tightly packed size in bytes of one element (e.g. 12 for a float Vec3)
func (a *Accessor) ElementSize() int {
	return a.Type.CompCount() * a.ComponentType.Size()
}

func (a *Accessor) ByteLength() int {
	return a.Count * a.ElementSize()
}

// Float32s reads all components of a float accessor
func (a *Accessor) Float32s() []float32 {

	assert.T(a.ComponentType == ComponentType_Float, "Float32s called on accessor of component type %s", a.ComponentType)

	n := a.Count * a.Type.CompCount()
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = a.BufferView.Float32At(a.ByteOffset + i*4)
	}

	return out
}

// Index reads element i of an unsigned scalar accessor (e.g. an index buffer)
func (a *Accessor) Index(i int) uint32 {

	assert.T(a.Type == AccessorType_Scalar, "Index called on accessor of type %s", a.Type)
	assert.T(i >= 0 && i < a.Count, "Index %d out of range of accessor with count %d", i, a.Count)

	offset := a.ByteOffset + i*a.ComponentType.Size()
	switch a.ComponentType {
	case ComponentType_UnsignedByte:
		return uint32(a.BufferView.Uint8At(offset))
	case ComponentType_UnsignedShort:
		return uint32(a.BufferView.Uint16At(offset))
	case ComponentType_UnsignedInt:
		return a.BufferView.Uint32At(offset)
	default:
		assert.T(false, "Index called on accessor of component type %s", a.ComponentType)
		return 0
	}
}

// Bytes returns the slice of the ByteBuffer this accessor views
func (a *Accessor) Bytes() []byte {
	return a.BufferView.Bytes()[a.ByteOffset : a.ByteOffset+a.ByteLength()]
}
