package shaders

import (
	"embed"

	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/logging"
)

// UniformNotFound is the location of a uniform the program doesn't have (or the driver optimized out).
// Setting a uniform at this location is a no-op.
const UniformNotFound int32 = -1

// Uniforms every shading program resolves
const (
	Unif_ModelViewMatrix           = "modelViewMatrix"
	Unif_ModelViewProjectionMatrix = "modelViewProjectionMatrix"
	Unif_NormalMatrix              = "normalMatrix"
)

var baseUniforms = []UniformBinding{
	{Key: Unif_ModelViewMatrix, Name: Unif_ModelViewMatrix},
	{Key: Unif_ModelViewProjectionMatrix, Name: Unif_ModelViewProjectionMatrix},
	{Key: Unif_NormalMatrix, Name: Unif_NormalMatrix},
}

// UniformBinding maps a key used by materials to the uniform name in the shader source
type UniformBinding struct {
	Key  string
	Name string
}

// Variant describes a kind of shading program as data: its combined source, the uniforms it has
// beyond the base ones and the uniform blocks it uses.
type Variant struct {
	Name          string
	Src           []byte
	Uniforms      []UniformBinding
	UniformBlocks []string
}

type ProgramKind uint8

const (
	ProgramKind_Unknown ProgramKind = iota
	ProgramKind_Basic
	ProgramKind_CubeMap
	ProgramKind_Phong
)

func (k ProgramKind) String() string {

	switch k {
	case ProgramKind_Basic:
		return "Basic"
	case ProgramKind_CubeMap:
		return "CubeMap"
	case ProgramKind_Phong:
		return "Phong"
	default:
		return "Unknown"
	}
}

// Material facing uniform keys
const (
	Unif_Color            = "color"
	Unif_Ambient          = "ambient"
	Unif_Specular         = "specular"
	Unif_Shininess        = "shininess"
	Unif_Map              = "map"
	Unif_SpecularMap      = "specularMap"
	Unif_LightPosition    = "lightPosition"
	Unif_LightDiffuse     = "lightDiffuse"
	Unif_LightSpecular    = "lightSpecular"
	Unif_LightAmbient     = "lightAmbient"
	Unif_LightAttenuation = "lightAttenuation"

	LightBlockName = "LIGHT"
)

//go:embed glsl/*.glsl
var glslFS embed.FS

func mustReadGLSL(name string) []byte {

	b, err := glslFS.ReadFile("glsl/" + name)
	if err != nil {
		logging.ErrLog.Panicf("Failed to read embedded shader '%s'. Err: %v\n", name, err)
	}

	return b
}

var variants = map[ProgramKind]*Variant{
	ProgramKind_Basic: {
		Name: "basic",
		Src:  mustReadGLSL("basic.glsl"),
		Uniforms: []UniformBinding{
			{Key: Unif_Color, Name: "color"},
			{Key: Unif_Map, Name: "map"},
		},
	},

	ProgramKind_CubeMap: {
		Name: "cubemap",
		Src:  mustReadGLSL("cubemap.glsl"),
		Uniforms: []UniformBinding{
			{Key: Unif_Map, Name: "map"},
		},
	},

	ProgramKind_Phong: {
		Name: "phong",
		Src:  mustReadGLSL("phong.glsl"),
		Uniforms: []UniformBinding{
			{Key: Unif_Color, Name: "materialColor"},
			{Key: Unif_Ambient, Name: "materialAmbient"},
			{Key: Unif_Specular, Name: "materialSpecular"},
			{Key: Unif_Shininess, Name: "shininess"},

			{Key: Unif_LightPosition, Name: "lightPosition"},
			{Key: Unif_LightDiffuse, Name: "lightDiffuse"},
			{Key: Unif_LightSpecular, Name: "lightSpecular"},
			{Key: Unif_LightAmbient, Name: "lightAmbient"},
			{Key: Unif_LightAttenuation, Name: "lightAttenuation"},

			{Key: Unif_Map, Name: "map"},
			{Key: Unif_SpecularMap, Name: "specularMap"},
		},
		UniformBlocks: []string{LightBlockName},
	},
}

// VariantOf returns the built-in variant of kind
func VariantOf(kind ProgramKind) (*Variant, error) {

	v, ok := variants[kind]
	if !ok {
		return nil, ErrUnknownProgramKind
	}

	return v, nil
}

// ShadingProgram is a linked program together with its resolved uniform locations and uniform blocks
type ShadingProgram struct {
	Kind    ProgramKind
	Variant *Variant
	Program ShaderProgram

	// Defines is a copy of the defines the program was compiled with
	Defines *Defines

	unifLocs     map[string]int32
	blockIndices map[string]uint32

	ctx glctx.Context
}

// NewShadingProgram compiles the built-in variant of kind with defines
func NewShadingProgram(ctx glctx.Context, kind ProgramKind, defines *Defines) (*ShadingProgram, error) {

	v, err := VariantOf(kind)
	if err != nil {
		return nil, err
	}

	sp, err := CompileShadingProgram(ctx, v, defines)
	if err != nil {
		return nil, err
	}

	sp.Kind = kind
	return sp, nil
}

// CompileShadingProgram compiles and links any variant, then resolves the base uniforms,
// the variant's uniforms and its uniform blocks. Missing uniforms/blocks are recorded, not errors.
func CompileShadingProgram(ctx glctx.Context, v *Variant, defines *Defines) (*ShadingProgram, error) {

	prog, err := LoadAndCompileCombinedShaderSrc(ctx, v.Src, defines)
	if err != nil {
		return nil, err
	}

	sp := &ShadingProgram{
		Variant:      v,
		Program:      prog,
		Defines:      defines.Clone(),
		unifLocs:     make(map[string]int32, len(baseUniforms)+len(v.Uniforms)),
		blockIndices: make(map[string]uint32, len(v.UniformBlocks)),
		ctx:          ctx,
	}

	for _, u := range baseUniforms {
		sp.unifLocs[u.Key] = ctx.GetUniformLocation(prog.Id, u.Name)
	}

	for _, u := range v.Uniforms {
		sp.unifLocs[u.Key] = ctx.GetUniformLocation(prog.Id, u.Name)
	}

	for _, name := range v.UniformBlocks {
		sp.blockIndices[name] = ctx.GetUniformBlockIndex(prog.Id, name)
	}

	return sp, nil
}

// UnifLoc returns the location of the uniform registered under key.
// ok is false (and loc UniformNotFound) when the key isn't registered or the program doesn't have it.
func (sp *ShadingProgram) UnifLoc(key string) (loc int32, ok bool) {

	loc, found := sp.unifLocs[key]
	if !found {
		return UniformNotFound, false
	}

	return loc, loc != UniformNotFound
}

// UnifLocs returns a copy of all registered keys and their locations, including not found ones
func (sp *ShadingProgram) UnifLocs() map[string]int32 {

	locs := make(map[string]int32, len(sp.unifLocs))
	for k, v := range sp.unifLocs {
		locs[k] = v
	}

	return locs
}

// UniformBlocks returns the names of the blocks the variant registers, in order
func (sp *ShadingProgram) UniformBlocks() []string {
	return append([]string(nil), sp.Variant.UniformBlocks...)
}

// BlockIndex returns the index of a registered uniform block. ok is false if the program doesn't have it.
func (sp *ShadingProgram) BlockIndex(name string) (index uint32, ok bool) {

	index, found := sp.blockIndices[name]
	if !found {
		return glctx.InvalidIndex, false
	}

	return index, index != glctx.InvalidIndex
}

// BindUniformBlock points the named block at a uniform buffer bind point.
// Returns false, without error, when the program doesn't have the block.
func (sp *ShadingProgram) BindUniformBlock(name string, bindPoint uint32) bool {

	index, ok := sp.BlockIndex(name)
	if !ok || sp.IsDestroyed() {
		return false
	}

	sp.ctx.UniformBlockBinding(sp.Program.Id, index, bindPoint)
	return true
}

func (sp *ShadingProgram) Bind() {
	sp.Program.Bind()
}

func (sp *ShadingProgram) IsDestroyed() bool {
	return sp.Program.Id == 0
}

// Destroy deletes the GPU program using the context it was created with. Calling it more than once is a no-op.
func (sp *ShadingProgram) Destroy() {
	sp.Program.Delete()
}

func (sp *ShadingProgram) settableLoc(key string) (int32, bool) {

	if sp.IsDestroyed() {
		return UniformNotFound, false
	}

	return sp.UnifLoc(key)
}

func (sp *ShadingProgram) SetUnifInt32(key string, val int32) {
	if loc, ok := sp.settableLoc(key); ok {
		sp.ctx.ProgramUniform1i(sp.Program.Id, loc, val)
	}
}

func (sp *ShadingProgram) SetUnifFloat32(key string, val float32) {
	if loc, ok := sp.settableLoc(key); ok {
		sp.ctx.ProgramUniform1f(sp.Program.Id, loc, val)
	}
}

func (sp *ShadingProgram) SetUnifVec3(key string, val []float32) {
	if loc, ok := sp.settableLoc(key); ok {
		sp.ctx.ProgramUniform3fv(sp.Program.Id, loc, val)
	}
}

func (sp *ShadingProgram) SetUnifVec4(key string, val []float32) {
	if loc, ok := sp.settableLoc(key); ok {
		sp.ctx.ProgramUniform4fv(sp.Program.Id, loc, val)
	}
}

// SetUnifMat3 expects 9 floats in column major order
func (sp *ShadingProgram) SetUnifMat3(key string, val []float32) {
	if loc, ok := sp.settableLoc(key); ok {
		sp.ctx.ProgramUniformMatrix3fv(sp.Program.Id, loc, val)
	}
}

// SetUnifMat4 expects 16 floats in column major order
func (sp *ShadingProgram) SetUnifMat4(key string, val []float32) {
	if loc, ok := sp.settableLoc(key); ok {
		sp.ctx.ProgramUniformMatrix4fv(sp.Program.Id, loc, val)
	}
}
