package buffers

import (
	"encoding/binary"
	"math"
)

// ByteBuffer is a fixed size block of raw bytes shared by one or more accessors.
// It is the unit of upload to the GPU (one GPU buffer per ByteBuffer).
//
// Its length never changes after creation and nothing in this package writes to it
// once it has been handed to an accessor, so it is safe to read from many goroutines.
type ByteBuffer struct {
	data []byte
}

// NewByteBuffer allocates a zeroed buffer of sizeInBytes
func NewByteBuffer(sizeInBytes int) *ByteBuffer {
	return &ByteBuffer{data: make([]byte, sizeInBytes)}
}

// NewByteBufferFrom wraps b without copying it. The caller must not modify b afterwards.
func NewByteBufferFrom(b []byte) *ByteBuffer {
	return &ByteBuffer{data: b}
}

func (bb *ByteBuffer) Len() int {
	return len(bb.data)
}

// Bytes returns the backing store. It is meant for GPU upload and must be treated as read only.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.data
}

// Float32At reads a float32 stored in native byte order at byteOffset
func (bb *ByteBuffer) Float32At(byteOffset int) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(bb.data[byteOffset:]))
}

func (bb *ByteBuffer) Uint8At(byteOffset int) uint8 {
	return bb.data[byteOffset]
}

func (bb *ByteBuffer) Uint16At(byteOffset int) uint16 {
	return binary.NativeEndian.Uint16(bb.data[byteOffset:])
}

func (bb *ByteBuffer) Uint32At(byteOffset int) uint32 {
	return binary.NativeEndian.Uint32(bb.data[byteOffset:])
}

// PutF32s writes vals as float32s in native byte order starting at startIndex, and advances startIndex.
// This is the layout the GPU reads vertex data in, since uploads are a plain memory copy.
func PutF32s(buf []byte, startIndex *int, vals []float32) {

	for i := 0; i < len(vals); i++ {
		binary.NativeEndian.PutUint32(buf[*startIndex:], math.Float32bits(vals[i]))
		*startIndex += 4
	}
}
