package lights

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/buffers"
	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/logging"
)

// LightBindPoint is the uniform buffer bind point the LIGHT block is bound to
const LightBindPoint uint32 = 0

// MaxLights keeps the LIGHT block within the 16KB every GL driver supports (GL_MAX_UNIFORM_BLOCK_SIZE)
const MaxLights = (16*1024 - 16) / (3 * 16)

const (
	lightFieldPosition uint16 = iota
	lightFieldDiffuse
	lightFieldSpecular
	lightFieldAmbient
)

// LightBlockFields is the std140 layout of
//
//	uniform LIGHT {
//	    vec4 position[n];
//	    vec4 diffuse[n];
//	    vec4 specular[n];
//	    vec4 ambient;
//	};
func LightBlockFields(n int) []buffers.UniformBufferFieldInput {

	assert.T(n >= 1 && n <= MaxLights, "Light block must have between 1 and %d lights, got %d", MaxLights, n)

	return []buffers.UniformBufferFieldInput{
		{Id: lightFieldPosition, Type: buffers.DataTypeVec4, Count: uint16(n)},
		{Id: lightFieldDiffuse, Type: buffers.DataTypeVec4, Count: uint16(n)},
		{Id: lightFieldSpecular, Type: buffers.DataTypeVec4, Count: uint16(n)},
		{Id: lightFieldAmbient, Type: buffers.DataTypeVec4},
	}
}

type lightBlock struct {
	Position []gglm.Vec4
	Diffuse  []gglm.Vec4
	Specular []gglm.Vec4
	Ambient  gglm.Vec4
}

func newLightBlock(lights []Light, ambient gglm.Vec4, n int) lightBlock {

	if len(lights) > n {
		logging.WarnLog.Printf("Got %d lights but the light block only has %d slots. Extra lights are ignored\n", len(lights), n)
		lights = lights[:n]
	}

	// Unused slots stay zero, so they add nothing but the clamped lambertian term
	lb := lightBlock{
		Position: make([]gglm.Vec4, n),
		Diffuse:  make([]gglm.Vec4, n),
		Specular: make([]gglm.Vec4, n),
		Ambient:  ambient,
	}

	for i := range lights {
		lb.Position[i] = lights[i].Position
		lb.Diffuse[i] = lights[i].Diffuse
		lb.Specular[i] = lights[i].Specular
	}

	return lb
}

// EncodeLightBlock returns the bytes of a LIGHT block with n light slots
func EncodeLightBlock(lights []Light, ambient gglm.Vec4, n int) []byte {

	n = max(1, n)

	layout := buffers.NewUniformBufferLayout(LightBlockFields(n))
	return layout.EncodeStruct(newLightBlock(lights, ambient, n))
}

// LightBuffer is the GPU uniform buffer backing the LIGHT block of phong programs
type LightBuffer struct {
	NumberOfLights int
	ub             buffers.UniformBuffer
}

func (lb *LightBuffer) BindPoint() uint32 {
	return LightBindPoint
}

func (lb *LightBuffer) BufferId() uint32 {
	return lb.ub.Id
}

// Upload replaces all light slots. lights beyond NumberOfLights are ignored.
func (lb *LightBuffer) Upload(lights []Light, ambient gglm.Vec4) {
	lb.ub.SetStruct(newLightBlock(lights, ambient, lb.NumberOfLights))
}

func (lb *LightBuffer) Delete() {
	lb.ub.Delete()
}

// NewLightBuffer creates a buffer for n lights and binds it to LightBindPoint
func NewLightBuffer(ctx glctx.Context, n int) *LightBuffer {

	n = max(1, n)

	lb := &LightBuffer{
		NumberOfLights: n,
		ub:             buffers.NewUniformBuffer(ctx, LightBlockFields(n)),
	}

	lb.ub.SetBindPoint(LightBindPoint)
	return lb
}
