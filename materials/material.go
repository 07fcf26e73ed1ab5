package materials

import (
	"errors"
	"sync/atomic"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/shaders"
	"github.com/mandykoh/prism/srgb"
)

var (
	lastMatId atomic.Uint32

	ErrNotCompiled = errors.New("material has no compiled shading program")
)

type TextureSlot uint32

const (
	TextureSlot_Diffuse  TextureSlot = 0
	TextureSlot_Specular TextureSlot = 1
	TextureSlot_Cubemap  TextureSlot = 10
)

// Defines set by materials
const (
	Define_HasMap         = "HAS_MAP"
	Define_HasSpecularMap = "HAS_SPECULAR_MAP"
	Define_NumberOfLights = "NUMBER_OF_LIGHTS"
)

// Material holds the surface parameters of a primitive and picks the shading program variant
// that draws it. Colours are linear RGBA.
type Material struct {
	Id   uint32
	Name string
	Kind shaders.ProgramKind

	Color    gglm.Vec4
	Ambient  gglm.Vec4
	Specular gglm.Vec4

	// Shininess of specular highlights
	Shininess float32

	// NumberOfLights is the size of the LIGHT block the phong program is compiled for
	NumberOfLights int

	DiffuseTex  uint32
	SpecularTex uint32
	CubemapTex  uint32

	// ExtraDefines are added after the defines derived from the material
	ExtraDefines *shaders.Defines

	// Program is shared with all materials using the same variant. Set by Compile.
	Program *shaders.ShadingProgram
}

// Defines returns the preprocessor defines that select this material's program variant
func (m *Material) Defines() *shaders.Defines {

	d := shaders.NewDefines()

	switch m.Kind {
	case shaders.ProgramKind_Basic:
		if m.DiffuseTex != 0 {
			d.SetFlag(Define_HasMap)
		}

	case shaders.ProgramKind_Phong:
		if m.DiffuseTex != 0 {
			d.SetFlag(Define_HasMap)
		}

		if m.SpecularTex != 0 {
			d.SetFlag(Define_HasSpecularMap)
		}

		d.SetInt(Define_NumberOfLights, max(1, m.NumberOfLights))
	}

	for _, k := range m.ExtraDefines.Keys() {

		v, isFlag, _ := m.ExtraDefines.Get(k)
		if isFlag {
			d.SetFlag(k)
		} else {
			d.Set(k, v)
		}
	}

	return d
}

// Compile gets the program for the material's kind and defines from the cache
func (m *Material) Compile(cache *shaders.ProgramCache) error {

	sp, err := cache.Get(m.Kind, m.Defines())
	if err != nil {
		return err
	}

	m.Program = sp
	return nil
}

// NeedsCompile is true before the first Compile, and after the program was evicted from its cache
func (m *Material) NeedsCompile() bool {
	return m.Program == nil || m.Program.IsDestroyed()
}

// Bind uses the material's program, binds its textures and uploads its uniforms.
// Uniforms the program doesn't have are skipped.
func (m *Material) Bind(ctx glctx.Context) error {

	if m.Program == nil {
		return ErrNotCompiled
	}

	// Evicted from its cache since the last Compile
	if m.Program.IsDestroyed() {
		return shaders.ErrProgramDestroyed
	}

	m.Program.Bind()

	switch m.Kind {
	case shaders.ProgramKind_CubeMap:
		if m.CubemapTex != 0 {
			ctx.ActiveTexture(glctx.TEXTURE0 + uint32(TextureSlot_Cubemap))
			ctx.BindTexture(glctx.TEXTURE_CUBE_MAP, m.CubemapTex)
		}
		m.SetUnifInt32(shaders.Unif_Map, int32(TextureSlot_Cubemap))

	default:
		if m.DiffuseTex != 0 {
			ctx.ActiveTexture(glctx.TEXTURE0 + uint32(TextureSlot_Diffuse))
			ctx.BindTexture(glctx.TEXTURE_2D, m.DiffuseTex)
		}

		if m.SpecularTex != 0 {
			ctx.ActiveTexture(glctx.TEXTURE0 + uint32(TextureSlot_Specular))
			ctx.BindTexture(glctx.TEXTURE_2D, m.SpecularTex)
		}

		m.SetUnifInt32(shaders.Unif_Map, int32(TextureSlot_Diffuse))
		m.SetUnifInt32(shaders.Unif_SpecularMap, int32(TextureSlot_Specular))
	}

	m.SetUnifVec4(shaders.Unif_Color, &m.Color)
	m.SetUnifVec4(shaders.Unif_Ambient, &m.Ambient)
	m.SetUnifVec4(shaders.Unif_Specular, &m.Specular)
	m.SetUnifFloat32(shaders.Unif_Shininess, m.Shininess)

	return nil
}

func (m *Material) UnBind() {
	if m.Program != nil {
		m.Program.Program.UnBind()
	}
}

// GetUnifLoc returns shaders.UniformNotFound for uniforms the program doesn't have
func (m *Material) GetUnifLoc(key string) int32 {

	if m.Program == nil {
		return shaders.UniformNotFound
	}

	loc, _ := m.Program.UnifLoc(key)
	return loc
}

func (m *Material) SetUnifInt32(key string, val int32) {
	m.Program.SetUnifInt32(key, val)
}

func (m *Material) SetUnifFloat32(key string, val float32) {
	m.Program.SetUnifFloat32(key, val)
}

func (m *Material) SetUnifVec3(key string, vec3 *gglm.Vec3) {
	m.Program.SetUnifVec3(key, vec3.Data[:])
}

func (m *Material) SetUnifVec4(key string, vec4 *gglm.Vec4) {
	m.Program.SetUnifVec4(key, vec4.Data[:])
}

func (m *Material) SetUnifMat3(key string, mat3 *gglm.Mat3) {
	m.Program.SetUnifMat3(key, flattenMat3(mat3))
}

func (m *Material) SetUnifMat4(key string, mat4 *gglm.Mat4) {
	m.Program.SetUnifMat4(key, flattenMat4(mat4))
}

func flattenMat3(m *gglm.Mat3) []float32 {

	out := make([]float32, 0, 9)
	for col := 0; col < 3; col++ {
		out = append(out, m.Data[col][:]...)
	}

	return out
}

func flattenMat4(m *gglm.Mat4) []float32 {

	out := make([]float32, 0, 16)
	for col := 0; col < 4; col++ {
		out = append(out, m.Data[col][:]...)
	}

	return out
}

func getNewMatId() uint32 {
	return lastMatId.Add(1)
}

// ColorFromSRGB8 converts an 8 bit per channel sRGB colour (e.g. from a colour picker) to linear RGBA.
// Alpha is linear already.
func ColorFromSRGB8(r, g, b, a uint8) gglm.Vec4 {
	return gglm.NewVec4(srgb.From8Bit(r), srgb.From8Bit(g), srgb.From8Bit(b), float32(a)/255)
}

func NewBasicMaterial(matName string, color gglm.Vec4) *Material {
	return &Material{
		Id:    getNewMatId(),
		Name:  matName,
		Kind:  shaders.ProgramKind_Basic,
		Color: color,
	}
}

func NewPhongMaterial(matName string, color gglm.Vec4, numberOfLights int) *Material {
	return &Material{
		Id:             getNewMatId(),
		Name:           matName,
		Kind:           shaders.ProgramKind_Phong,
		Color:          color,
		Ambient:        gglm.NewVec4(1, 1, 1, 1),
		Specular:       gglm.NewVec4(1, 1, 1, 1),
		Shininess:      32,
		NumberOfLights: numberOfLights,
	}
}

func NewCubeMapMaterial(matName string, cubemapTex uint32) *Material {
	return &Material{
		Id:         getNewMatId(),
		Name:       matName,
		Kind:       shaders.ProgramKind_CubeMap,
		CubemapTex: cubemapTex,
	}
}
