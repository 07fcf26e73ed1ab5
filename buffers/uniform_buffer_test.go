package buffers

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/glctx/glctxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type std140Sample struct {
	A float32
	B gglm.Vec3
	C float32
	D gglm.Vec4
	E gglm.Mat4
	F [2]float32
}

var std140SampleFields = []UniformBufferFieldInput{
	{Id: 0, Type: DataTypeFloat32},
	{Id: 1, Type: DataTypeVec3},
	{Id: 2, Type: DataTypeFloat32},
	{Id: 3, Type: DataTypeVec4},
	{Id: 4, Type: DataTypeMat4},
	{Id: 5, Type: DataTypeFloat32, Count: 2},
}

func TestUniformBufferLayoutOffsets(t *testing.T) {

	ubl := NewUniformBufferLayout(std140SampleFields)
	require.Len(t, ubl.Fields, 6)

	offsets := make([]uint16, len(ubl.Fields))
	for i, f := range ubl.Fields {
		offsets[i] = f.AlignedOffset
	}

	// A float may share the last 4 bytes of a vec3
	assert.Equal(t, []uint16{0, 16, 28, 32, 48, 112}, offsets)
	assert.Equal(t, uint32(144), ubl.Size)
}

func TestUniformBufferLayoutTooLarge(t *testing.T) {

	// 4095 vec4s fit in uint16 offsets, 4100 do not
	ubl := NewUniformBufferLayout([]UniformBufferFieldInput{{Id: 0, Type: DataTypeVec4, Count: 4095}})
	assert.Equal(t, uint32(4095*16), ubl.Size)

	assert.Panics(t, func() {
		NewUniformBufferLayout([]UniformBufferFieldInput{{Id: 0, Type: DataTypeVec4, Count: 4100}})
	})

	assert.Panics(t, func() {
		NewUniformBufferLayout([]UniformBufferFieldInput{
			{Id: 0, Type: DataTypeVec4, Count: 4000},
			{Id: 1, Type: DataTypeMat4, Count: 100},
		})
	})
}

func TestUniformBufferLayoutStructArray(t *testing.T) {

	ubl := NewUniformBufferLayout([]UniformBufferFieldInput{
		{Id: 0, Type: DataTypeStruct, Count: 2, Subfields: []UniformBufferFieldInput{
			{Id: 0, Type: DataTypeVec3},
			{Id: 1, Type: DataTypeFloat32},
		}},
	})

	require.Len(t, ubl.Fields, 3)
	assert.Equal(t, uint16(0), ubl.Fields[1].AlignedOffset)
	assert.Equal(t, uint16(12), ubl.Fields[2].AlignedOffset)
	assert.Equal(t, uint32(32), ubl.Size)

	type item struct {
		A gglm.Vec3
		B float32
	}

	buf := ubl.EncodeStruct(struct{ Items [2]item }{
		Items: [2]item{
			{A: gglm.NewVec3(1, 2, 3), B: 4},
			{A: gglm.NewVec3(5, 6, 7), B: 8},
		},
	})

	bb := NewByteBufferFrom(buf)
	for i, want := range []float32{1, 2, 3, 4, 5, 6, 7, 8} {
		assert.Equal(t, want, bb.Float32At(i*4))
	}
}

func TestUniformBufferEncodeStruct(t *testing.T) {

	ubl := NewUniformBufferLayout(std140SampleFields)

	in := std140Sample{
		A: 1,
		B: gglm.NewVec3(2, 3, 4),
		C: 5,
		D: gglm.NewVec4(6, 7, 8, 9),
		E: gglm.Mat4{Data: [4][4]float32{{10, 11, 12, 13}, {14, 15, 16, 17}, {18, 19, 20, 21}, {22, 23, 24, 25}}},
		F: [2]float32{26, 27},
	}

	buf := ubl.EncodeStruct(&in)
	require.Len(t, buf, 144)

	bb := NewByteBufferFrom(buf)
	assert.Equal(t, float32(1), bb.Float32At(0))
	assert.Equal(t, float32(2), bb.Float32At(16))
	assert.Equal(t, float32(4), bb.Float32At(24))
	assert.Equal(t, float32(5), bb.Float32At(28))
	assert.Equal(t, float32(9), bb.Float32At(44))
	assert.Equal(t, float32(10), bb.Float32At(48))
	assert.Equal(t, float32(25), bb.Float32At(108))
	assert.Equal(t, float32(26), bb.Float32At(112))
	assert.Equal(t, float32(27), bb.Float32At(128))
}

func TestUniformBufferUploads(t *testing.T) {

	ctx := glctxtest.New()
	ub := NewUniformBuffer(ctx, std140SampleFields)
	require.NotZero(t, ub.Id)

	contents, ok := ctx.BufferContents(ub.Id)
	require.True(t, ok)
	assert.Len(t, contents, 144)

	ub.SetFloat32(2, 3.5)
	v4 := gglm.NewVec4(1, 2, 3, 4)
	ub.SetVec4(3, &v4)
	ub.SetBindPoint(1)

	contents, _ = ctx.BufferContents(ub.Id)
	bb := NewByteBufferFrom(contents)
	assert.Equal(t, float32(3.5), bb.Float32At(28))
	assert.Equal(t, float32(4), bb.Float32At(44))
	assert.Equal(t, ub.Id, ctx.UniformBufferAt(1))
	assert.Empty(t, ctx.Errors)

	v3 := gglm.NewVec3(0, 0, 0)
	assert.Panics(t, func() { ub.SetVec3(2, &v3) })

	id := ub.Id
	ub.Delete()
	ub.Delete()
	assert.Equal(t, 1, ctx.DeleteCalls[id])
}
