package buffers

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/logging"
)

type UniformBufferFieldInput struct {
	Id   uint16
	Type ElementType
	// Count should be set in case this field is an array of type `[Count]Type`.
	// Count=0 is valid and is equivalent to Count=1, which means the type is NOT an array, but a single field.
	Count uint16

	// Subfields is used when type is a struct, in which case it holds the fields of the struct.
	// Ids do not have to be unique across structs.
	Subfields []UniformBufferFieldInput
}

type UniformBufferField struct {
	Id            uint16
	AlignedOffset uint16
	// Count should be set in case this field is an array of type `[Count]Type`.
	// Count=0 is valid and is equivalent to Count=1, which means the type is NOT an array, but a single field.
	Count uint16
	Type  ElementType

	// Subfields is used when type is a struct, in which case it holds the fields of the struct.
	// Ids do not have to be unique across structs.
	Subfields []UniformBufferField
}

// UniformBufferLayout is the std140 layout of a uniform block, independent of any GPU buffer
type UniformBufferLayout struct {
	// Size is the total size in bytes of the block
	Size   uint32
	Fields []UniformBufferField
}

type UniformBuffer struct {
	UniformBufferLayout
	Id  uint32
	ctx glctx.Context
}

func (ub *UniformBuffer) Bind() {
	ub.ctx.BindBuffer(glctx.UNIFORM_BUFFER, ub.Id)
}

func (ub *UniformBuffer) UnBind() {
	ub.ctx.BindBuffer(glctx.UNIFORM_BUFFER, 0)
}

func (ub *UniformBuffer) SetBindPoint(bindPointIndex uint32) {
	ub.ctx.BindBufferBase(glctx.UNIFORM_BUFFER, bindPointIndex, ub.Id)
}

func (ub *UniformBuffer) Delete() {

	if ub.Id == 0 {
		return
	}

	ub.ctx.DeleteBuffer(ub.Id)
	ub.Id = 0
}

// MaxUniformBufferSize is the largest layout the uint16 field offsets can describe
const MaxUniformBufferSize = math.MaxUint16

func addUniformBufferFieldsToArray(startAlignedOffset uint16, arrayToAddTo *[]UniformBufferField, fieldsToAdd []UniformBufferFieldInput) (totalSize uint32) {

	if len(fieldsToAdd) == 0 {
		return 0
	}

	// This function is recursive so only size the array once
	if cap(*arrayToAddTo) == 0 {
		*arrayToAddTo = make([]UniformBufferField, 0, len(fieldsToAdd))
	}

	var alignedOffset uint16 = 0
	fieldIdToTypeMap := make(map[uint16]ElementType, len(fieldsToAdd))

	for i := 0; i < len(fieldsToAdd); i++ {

		f := fieldsToAdd[i]
		if f.Count == 0 {
			f.Count = 1
		}

		existingFieldType, ok := fieldIdToTypeMap[f.Id]
		assert.T(!ok, "Uniform buffer field id is reused within the same uniform buffer. FieldId=%d was first used on a field with type=%s and then used on a different field with type=%s\n", f.Id, existingFieldType.String(), f.Type.String())
		fieldIdToTypeMap[f.Id] = f.Type

		// To understand this take an example. Say we have a total offset of 100 and we are adding a vec4.
		// Vec4s must be aligned to a 16 byte boundary but 100 is not (100 % 16 != 0).
		//
		// To fix this, we take the alignment error which is alignErr=100 % 16=4, but this is error to the nearest
		// boundary, which is below the offset.
		//
		// To get the nearest boundary larger than the offset we can:
		// offset + (boundary - alignErr) == 100 + (16 - 4) == 112; 112 % 16 == 0, meaning its a boundary
		//
		// Note that arrays of scalars/vectors are always aligned to 16 bytes, like a vec4
		var alignmentBoundary uint16 = 16
		if f.Count == 1 {
			alignmentBoundary = f.Type.GlStd140AlignmentBoundary()
		}

		alignmentError := alignedOffset % alignmentBoundary
		if alignmentError != 0 {
			alignedOffset += alignmentBoundary - alignmentError
		}

		newField := UniformBufferField{Id: f.Id, Type: f.Type, AlignedOffset: startAlignedOffset + alignedOffset, Count: f.Count}
		*arrayToAddTo = append(*arrayToAddTo, newField)

		// Matrices are treated as an array of column vectors, where each column is a vec4,
		// that's why we have a multiplier depending on how many columns we have when calculating
		// the offset
		multiplier := uint16(1)
		if f.Type == DataTypeMat2 {
			multiplier = 2
		} else if f.Type == DataTypeMat3 {
			multiplier = 3
		} else if f.Type == DataTypeMat4 {
			multiplier = 4
		}

		// Offsets are uint16, so the end is computed as int and checked before narrowing
		var fieldEnd int
		if f.Type == DataTypeStruct {

			subfieldsAlignedOffset := addUniformBufferFieldsToArray(startAlignedOffset+alignedOffset, arrayToAddTo, f.Subfields)

			// Pad structs to 16 byte boundary
			padTo16Boundary(&subfieldsAlignedOffset)
			fieldEnd = int(alignedOffset) + int(subfieldsAlignedOffset)*int(f.Count)

		} else if f.Count == 1 && multiplier == 1 {
			// Single scalars/vectors only take their real size, so a float can follow a vec3 in the same 16 bytes
			fieldEnd = int(alignedOffset) + int(f.Type.Size())
		} else {
			fieldEnd = int(alignedOffset) + int(alignmentBoundary)*int(f.Count)*int(multiplier)
		}

		assert.T(int(startAlignedOffset)+fieldEnd <= MaxUniformBufferSize, "Uniform buffer layout is larger than %d bytes at field id %d", MaxUniformBufferSize, f.Id)
		alignedOffset = uint16(fieldEnd)
	}

	return uint32(alignedOffset)
}

func padTo16Boundary[T uint16 | int | int32 | uint32](val *T) {
	alignmentError := *val % 16
	if alignmentError != 0 {
		*val += 16 - alignmentError
	}
}

func (ubl *UniformBufferLayout) getField(fieldId uint16, fieldType ElementType) UniformBufferField {

	for i := 0; i < len(ubl.Fields); i++ {

		f := ubl.Fields[i]

		if f.Id != fieldId {
			continue
		}

		assert.T(f.Type == fieldType, "Uniform buffer field id is reused within the same uniform buffer. FieldId=%d was first used on a field with type=%v, but is now being used on a field with type=%v\n", fieldId, f.Type.String(), fieldType.String())

		return f
	}

	logging.ErrLog.Panicf("couldn't find uniform buffer field of id=%d and type=%s\n", fieldId, fieldType.String())
	return UniformBufferField{}
}

func (ub *UniformBuffer) setBytes(f UniformBufferField, vals []float32) {

	buf := make([]byte, len(vals)*4)
	written := 0
	PutF32s(buf, &written, vals)

	ub.Bind()
	ub.ctx.BufferSubData(glctx.UNIFORM_BUFFER, int(f.AlignedOffset), buf)
}

func (ub *UniformBuffer) SetInt32(fieldId uint16, val int32) {

	f := ub.getField(fieldId, DataTypeInt32)

	buf := make([]byte, 4)
	written := 0
	Write32BitIntegerToByteBuf(buf, &written, val)

	ub.Bind()
	ub.ctx.BufferSubData(glctx.UNIFORM_BUFFER, int(f.AlignedOffset), buf)
}

func (ub *UniformBuffer) SetUint32(fieldId uint16, val uint32) {

	f := ub.getField(fieldId, DataTypeUint32)

	buf := make([]byte, 4)
	written := 0
	Write32BitIntegerToByteBuf(buf, &written, val)

	ub.Bind()
	ub.ctx.BufferSubData(glctx.UNIFORM_BUFFER, int(f.AlignedOffset), buf)
}

func (ub *UniformBuffer) SetFloat32(fieldId uint16, val float32) {
	ub.setBytes(ub.getField(fieldId, DataTypeFloat32), []float32{val})
}

func (ub *UniformBuffer) SetVec2(fieldId uint16, val *gglm.Vec2) {
	ub.setBytes(ub.getField(fieldId, DataTypeVec2), val.Data[:])
}

func (ub *UniformBuffer) SetVec3(fieldId uint16, val *gglm.Vec3) {
	ub.setBytes(ub.getField(fieldId, DataTypeVec3), val.Data[:])
}

func (ub *UniformBuffer) SetVec4(fieldId uint16, val *gglm.Vec4) {
	ub.setBytes(ub.getField(fieldId, DataTypeVec4), val.Data[:])
}

func (ub *UniformBuffer) SetMat4(fieldId uint16, val *gglm.Mat4) {

	f := ub.getField(fieldId, DataTypeMat4)

	vals := make([]float32, 0, 16)
	for col := 0; col < 4; col++ {
		vals = append(vals, val.Data[col][:]...)
	}

	ub.setBytes(f, vals)
}

// SetStruct uploads a whole struct whose fields (in order) match the uniform buffer fields
func (ub *UniformBuffer) SetStruct(inputStruct any) {

	buf, bytesWritten := ub.encodeStruct(inputStruct)
	if bytesWritten == 0 {
		return
	}

	ub.Bind()
	ub.ctx.BufferSubData(glctx.UNIFORM_BUFFER, 0, buf[:bytesWritten])
}

// EncodeStruct returns the std140 bytes of inputStruct laid out according to the layout.
// The returned slice is always Size bytes long.
func (ubl *UniformBufferLayout) EncodeStruct(inputStruct any) []byte {
	buf, _ := ubl.encodeStruct(inputStruct)
	return buf
}

func (ubl *UniformBufferLayout) encodeStruct(inputStruct any) (buf []byte, bytesWritten int) {

	buf = make([]byte, ubl.Size)
	if len(ubl.Fields) == 0 {
		return buf, 0
	}

	written, _ := setStruct(ubl.Fields, buf, inputStruct, 1000_000, 0)
	if written == 0 {
		return buf, 0
	}

	return buf, written + int(ubl.Fields[0].AlignedOffset)
}

func setStruct(fields []UniformBufferField, buf []byte, inputStruct any, maxFieldsToConsume int, writeOffset int) (bytesWritten, fieldsConsumed int) {

	if len(fields) == 0 {
		return
	}

	if inputStruct == nil {
		logging.ErrLog.Panicf("UniformBuffer.SetStruct called with a value that is nil")
	}

	structVal := reflect.ValueOf(inputStruct)
	if structVal.Kind() == reflect.Pointer {
		structVal = structVal.Elem()
	}

	if structVal.Kind() != reflect.Struct {
		logging.ErrLog.Panicf("UniformBuffer.SetStruct called with a value that is not a struct. Val=%v\n", inputStruct)
	}

	structFieldIndex := 0
	for fieldIndex := 0; fieldIndex < len(fields) && fieldIndex < maxFieldsToConsume; fieldIndex++ {

		ubField := &fields[fieldIndex]
		valField := structVal.Field(structFieldIndex)

		fieldsConsumed++
		structFieldIndex++

		kind := valField.Kind()
		if kind == reflect.Pointer {
			valField = valField.Elem()
			kind = valField.Kind()
		}

		var elementType reflect.Type
		isArray := kind == reflect.Slice || kind == reflect.Array
		if isArray {
			elementType = valField.Type().Elem()
			kind = elementType.Kind()
		} else {
			elementType = valField.Type()
		}

		if isArray {
			assert.T(valField.Len() == int(ubField.Count), "ubo field of id=%d is an array/slice field of length=%d but got input of length=%d\n", ubField.Id, ubField.Count, valField.Len())
		}

		typeMatches := false
		bytesWritten = int(ubField.AlignedOffset) + writeOffset

		switch ubField.Type {

		case DataTypeUint32:

			typeMatches = elementType.Name() == "uint32"
			if typeMatches {

				if isArray {
					for i := 0; i < valField.Len(); i++ {
						start := bytesWritten + i*16
						Write32BitIntegerToByteBuf(buf, &start, uint32(valField.Index(i).Uint()))
					}
					bytesWritten += valField.Len() * 16
				} else {
					Write32BitIntegerToByteBuf(buf, &bytesWritten, uint32(valField.Uint()))
				}
			}

		case DataTypeFloat32:

			typeMatches = elementType.Name() == "float32"
			if typeMatches {

				if isArray {
					for i := 0; i < valField.Len(); i++ {
						start := bytesWritten + i*16
						PutF32s(buf, &start, []float32{float32(valField.Index(i).Float())})
					}
					bytesWritten += valField.Len() * 16
				} else {
					PutF32s(buf, &bytesWritten, []float32{float32(valField.Float())})
				}
			}

		case DataTypeInt32:

			typeMatches = elementType.Name() == "int32"
			if typeMatches {

				if isArray {
					for i := 0; i < valField.Len(); i++ {
						start := bytesWritten + i*16
						Write32BitIntegerToByteBuf(buf, &start, int32(valField.Index(i).Int()))
					}
					bytesWritten += valField.Len() * 16
				} else {
					Write32BitIntegerToByteBuf(buf, &bytesWritten, int32(valField.Int()))
				}
			}

		case DataTypeVec2:

			typeMatches = elementType.Name() == "Vec2"
			if typeMatches {

				if isArray {
					for i := 0; i < valField.Len(); i++ {
						v := valField.Index(i).Interface().(gglm.Vec2)
						start := bytesWritten + i*16
						PutF32s(buf, &start, v.Data[:])
					}
					bytesWritten += valField.Len() * 16
				} else {
					v := valField.Interface().(gglm.Vec2)
					PutF32s(buf, &bytesWritten, v.Data[:])
				}
			}

		case DataTypeVec3:

			typeMatches = elementType.Name() == "Vec3"
			if typeMatches {

				if isArray {
					for i := 0; i < valField.Len(); i++ {
						v := valField.Index(i).Interface().(gglm.Vec3)
						start := bytesWritten + i*16
						PutF32s(buf, &start, v.Data[:])
					}
					bytesWritten += valField.Len() * 16
				} else {
					v := valField.Interface().(gglm.Vec3)
					PutF32s(buf, &bytesWritten, v.Data[:])
				}
			}

		case DataTypeVec4:

			typeMatches = elementType.Name() == "Vec4"
			if typeMatches {

				if isArray {
					for i := 0; i < valField.Len(); i++ {
						v := valField.Index(i).Interface().(gglm.Vec4)
						PutF32s(buf, &bytesWritten, v.Data[:])
					}
				} else {
					v := valField.Interface().(gglm.Vec4)
					PutF32s(buf, &bytesWritten, v.Data[:])
				}
			}

		case DataTypeMat4:

			typeMatches = elementType.Name() == "Mat4"
			if typeMatches {

				count := 1
				if isArray {
					count = valField.Len()
				}

				for i := 0; i < count; i++ {

					var m gglm.Mat4
					if isArray {
						m = valField.Index(i).Interface().(gglm.Mat4)
					} else {
						m = valField.Interface().(gglm.Mat4)
					}

					for col := 0; col < 4; col++ {
						PutF32s(buf, &bytesWritten, m.Data[col][:])
					}
				}
			}

		case DataTypeStruct:

			typeMatches = kind == reflect.Struct
			if typeMatches {

				if isArray {

					offset := 0
					arrSize := valField.Len()
					fieldsToUse := fields[fieldIndex+1:]
					for i := 0; i < arrSize; i++ {

						setStructBytesWritten, setStructFieldsConsumed := setStruct(fieldsToUse, buf, valField.Index(i).Interface(), elementType.NumField(), writeOffset+offset*i)

						if offset == 0 {
							offset = setStructBytesWritten
							padTo16Boundary(&offset)

							bytesWritten += offset * arrSize

							// Tracking consumed fields is needed because if we have a struct inside another struct
							// elementType.NumField() will only give us the fields consumed by the first struct,
							// but we need to count all fields of all nested structs inside this one
							fieldIndex += setStructFieldsConsumed
							fieldsConsumed += setStructFieldsConsumed
						}
					}

				} else {

					setStructBytesWritten, setStructFieldsConsumed := setStruct(fields[fieldIndex+1:], buf, valField.Interface(), valField.NumField(), writeOffset)

					bytesWritten += setStructBytesWritten
					fieldIndex += setStructFieldsConsumed
					fieldsConsumed += setStructFieldsConsumed
				}
			}

		default:
			logging.ErrLog.Panicf("Unsupported uniform buffer data type for SetStruct. DataType '%s'", ubField.Type)
		}

		if !typeMatches {
			logging.ErrLog.Panicf("Struct field ordering and types must match uniform buffer fields, but at field index %d got UniformBufferField=%v but a struct field of type %s\n", fieldIndex, ubField, valField.String())
		}
	}

	if bytesWritten == 0 {
		return 0, fieldsConsumed
	}

	return bytesWritten - int(fields[0].AlignedOffset) - writeOffset, fieldsConsumed
}

func Write32BitIntegerToByteBuf[T uint32 | int32](buf []byte, startIndex *int, val T) {

	assert.T(*startIndex+4 <= len(buf), "failed to write uint32/int32 to buffer because the buffer doesn't have enough space. Start index=%d, Buffer length=%d", *startIndex, len(buf))

	binary.NativeEndian.PutUint32(buf[*startIndex:], uint32(val))
	*startIndex += 4
}

// NewUniformBufferLayout computes the std140 layout of fields
func NewUniformBufferLayout(fields []UniformBufferFieldInput) UniformBufferLayout {

	ubl := UniformBufferLayout{}
	ubl.Size = addUniformBufferFieldsToArray(0, &ubl.Fields, fields)

	// Blocks are sized in multiples of vec4
	padTo16Boundary(&ubl.Size)
	return ubl
}

func NewUniformBuffer(ctx glctx.Context, fields []UniformBufferFieldInput) UniformBuffer {

	ub := UniformBuffer{
		UniformBufferLayout: NewUniformBufferLayout(fields),
		ctx:                 ctx,
	}

	ub.Id = ctx.GenBuffer()
	if ub.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer for a uniform buffer")
	}

	ub.Bind()
	ctx.BufferData(glctx.UNIFORM_BUFFER, int(ub.Size), nil, glctx.STATIC_DRAW)
	ub.UnBind()

	return ub
}
