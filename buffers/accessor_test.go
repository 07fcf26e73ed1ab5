package buffers

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatBuffer(vals ...float32) *ByteBuffer {

	bb := NewByteBuffer(len(vals) * 4)
	written := 0
	PutF32s(bb.Bytes(), &written, vals)
	return bb
}

func TestByteBufferNativeEndianRoundTrip(t *testing.T) {

	bb := floatBuffer(1.5, -2, 3.25)
	assert.Equal(t, 12, bb.Len())
	assert.Equal(t, float32(1.5), bb.Float32At(0))
	assert.Equal(t, float32(-2), bb.Float32At(4))
	assert.Equal(t, float32(3.25), bb.Float32At(8))
}

func TestNewAccessorRangeChecks(t *testing.T) {

	bb := NewByteBuffer(36)

	acc, err := NewAccessor(bb, ComponentType_Float, AccessorType_Vec3, 3, 0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, acc.ElementSize())
	assert.Equal(t, 36, acc.ByteLength())

	// One vec3 too many
	_, err = NewAccessor(bb, ComponentType_Float, AccessorType_Vec3, 4, 0, nil, nil)
	var rangeErr *InvalidRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 48, rangeErr.ByteLength)
	assert.Equal(t, 36, rangeErr.BufferLength)

	// Offset pushes the last element past the end
	_, err = NewAccessor(bb, ComponentType_Float, AccessorType_Vec2, 4, 8, nil, nil)
	assert.ErrorAs(t, err, &rangeErr)

	// Exactly fits at an offset
	_, err = NewAccessor(bb, ComponentType_Float, AccessorType_Vec2, 3, 12, nil, nil)
	assert.NoError(t, err)

	_, err = NewAccessor(nil, ComponentType_Float, AccessorType_Vec2, 1, 0, nil, nil)
	assert.ErrorAs(t, err, &rangeErr)

	_, err = NewAccessor(bb, ComponentType(1234), AccessorType_Vec2, 1, 0, nil, nil)
	assert.ErrorAs(t, err, &rangeErr)

	_, err = NewAccessor(bb, ComponentType_Float, AccessorType_Unknown, 1, 0, nil, nil)
	assert.ErrorAs(t, err, &rangeErr)

	_, err = NewAccessor(bb, ComponentType_Float, AccessorType_Scalar, -1, 0, nil, nil)
	assert.ErrorAs(t, err, &rangeErr)

	_, err = NewAccessor(bb, ComponentType_Float, AccessorType_Vec3, 1, 0, []float32{0, 0}, []float32{1, 1, 1})
	assert.ErrorAs(t, err, &rangeErr)
}

func TestNewAccessorHugeCounts(t *testing.T) {

	bb := NewByteBuffer(16)
	var rangeErr *InvalidRangeError

	// count*size would wrap to a small number
	acc, err := NewAccessor(bb, ComponentType_Float, AccessorType_Scalar, 1<<62, 0, nil, nil)
	assert.Nil(t, acc)
	require.ErrorAs(t, err, &rangeErr)
	assert.NotEmpty(t, rangeErr.Reason)

	acc, err = NewAccessor(bb, ComponentType_Float, AccessorType_Vec4, math.MaxInt/8, 0, nil, nil)
	assert.Nil(t, acc)
	assert.ErrorAs(t, err, &rangeErr)

	acc, err = NewAccessor(bb, ComponentType_UnsignedByte, AccessorType_Scalar, 1, math.MaxInt, nil, nil)
	assert.Nil(t, acc)
	assert.ErrorAs(t, err, &rangeErr)

	// Zero elements at the very end is fine
	_, err = NewAccessor(bb, ComponentType_UnsignedByte, AccessorType_Scalar, 0, 16, nil, nil)
	assert.NoError(t, err)
}

func TestAccessorReads(t *testing.T) {

	bb := floatBuffer(0, 1, 2, 3, 4, 5)
	acc, err := NewAccessor(bb, ComponentType_Float, AccessorType_Vec2, 2, 8, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3, 4, 5}, acc.Float32s())
	assert.Len(t, acc.Bytes(), 16)

	idx := NewByteBuffer(6)
	idx.Bytes()[0] = 7
	idx.Bytes()[1] = 9
	u8, err := NewAccessor(idx, ComponentType_UnsignedByte, AccessorType_Scalar, 2, 0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), u8.Index(0))
	assert.Equal(t, uint32(9), u8.Index(1))

	u16, err := NewAccessor(idx, ComponentType_UnsignedShort, AccessorType_Scalar, 3, 0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(idx.Uint16At(2)), u16.Index(1))
}

func TestComponentTypeSizes(t *testing.T) {

	assert.Equal(t, 1, ComponentType_Byte.Size())
	assert.Equal(t, 1, ComponentType_UnsignedByte.Size())
	assert.Equal(t, 2, ComponentType_Short.Size())
	assert.Equal(t, 2, ComponentType_UnsignedShort.Size())
	assert.Equal(t, 4, ComponentType_UnsignedInt.Size())
	assert.Equal(t, 4, ComponentType_Float.Size())
	assert.False(t, ComponentType(5124).IsValid())
	assert.Equal(t, "VEC3", AccessorType_Vec3.String())
}
