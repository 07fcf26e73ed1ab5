package shaders

import (
	"testing"

	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/glctx/glctxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passThroughSrc = `//shader:vertex
#version 410 core

//#defines

layout(location = 0) in vec4 POSITION;

uniform mat4 modelViewProjectionMatrix;

void main()
{
    gl_Position = modelViewProjectionMatrix * POSITION;
}

//shader:fragment
#version 410 core

//#defines

out vec4 fColor;

void main()
{
    fColor = vec4(1.0);
}
`

const brokenFragSrc = `//shader:vertex
#version 410 core

layout(location = 0) in vec4 POSITION;

void main()
{
    gl_Position = POSITION;
}

//shader:fragment
#version 410 core

out vec4 fColor;

void main()
{
    fColor = vec4(1.0;
}
`

func TestCompilePassThrough(t *testing.T) {

	ctx := glctxtest.New()
	sp, err := CompileShadingProgram(ctx, &Variant{Name: "passthrough", Src: []byte(passThroughSrc)}, nil)
	require.NoError(t, err)
	require.True(t, ctx.ProgramExists(sp.Program.Id))

	locs := sp.UnifLocs()
	assert.Len(t, locs, 3)
	assert.Contains(t, locs, Unif_ModelViewMatrix)
	assert.Contains(t, locs, Unif_ModelViewProjectionMatrix)
	assert.Contains(t, locs, Unif_NormalMatrix)

	_, ok := sp.UnifLoc(Unif_ModelViewProjectionMatrix)
	assert.True(t, ok)

	// Not in the source is a valid, silent state
	loc, ok := sp.UnifLoc(Unif_NormalMatrix)
	assert.False(t, ok)
	assert.Equal(t, UniformNotFound, loc)

	loc, ok = sp.UnifLoc("neverRegistered")
	assert.False(t, ok)
	assert.Equal(t, UniformNotFound, loc)

	sp.SetUnifMat3(Unif_NormalMatrix, make([]float32, 9))
	assert.Empty(t, ctx.Errors)
}

func TestCompileErrorCarriesLog(t *testing.T) {

	ctx := glctxtest.New()
	_, err := CompileShadingProgram(ctx, &Variant{Name: "broken", Src: []byte(brokenFragSrc)}, nil)

	var compileErr *ShaderCompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, ShaderType_Fragment, compileErr.Stage)
	assert.NotEmpty(t, compileErr.Log)

	// The vertex shader that did compile was released
	for id := uint32(1); id < 4; id++ {
		assert.False(t, ctx.ShaderExists(id))
	}
}

func TestLinkError(t *testing.T) {

	src := `//shader:vertex
#version 410 core
void main() { gl_Position = vec4(0.0); }

//shader:fragment
#version 410 core
in vec2 neverWritten;
out vec4 fColor;
void main() { fColor = vec4(neverWritten, 0.0, 1.0); }
`

	ctx := glctxtest.New()
	_, err := CompileShadingProgram(ctx, &Variant{Src: []byte(src)}, nil)

	var linkErr *ShaderLinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Contains(t, linkErr.Log, "neverWritten")
}

func TestDefinesSelectVariant(t *testing.T) {

	src := `//shader:vertex
#version 410 core
//#defines
layout(location = 0) in vec4 POSITION;
void main() { gl_Position = POSITION; }

//shader:fragment
#version 410 core
//#defines
#ifndef REQUIRED_FLAG
#error REQUIRED_FLAG must be defined
#endif
out vec4 fColor;
void main() { fColor = vec4(1.0); }
`

	ctx := glctxtest.New()
	_, err := CompileShadingProgram(ctx, &Variant{Src: []byte(src)}, nil)
	var compileErr *ShaderCompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, compileErr.Log, "REQUIRED_FLAG")

	_, err = CompileShadingProgram(ctx, &Variant{Src: []byte(src)}, NewDefines().SetFlag("REQUIRED_FLAG"))
	assert.NoError(t, err)
}

func TestBuiltInVariants(t *testing.T) {

	ctx := glctxtest.New()

	basic, err := NewShadingProgram(ctx, ProgramKind_Basic, nil)
	require.NoError(t, err)
	assert.Equal(t, ProgramKind_Basic, basic.Kind)
	_, ok := basic.UnifLoc(Unif_Color)
	assert.True(t, ok)
	_, ok = basic.UnifLoc(Unif_Map)
	assert.False(t, ok, "map is only declared with HAS_MAP")

	basicMapped, err := NewShadingProgram(ctx, ProgramKind_Basic, NewDefines().SetFlag("HAS_MAP"))
	require.NoError(t, err)
	_, ok = basicMapped.UnifLoc(Unif_Map)
	assert.True(t, ok)

	cube, err := NewShadingProgram(ctx, ProgramKind_CubeMap, nil)
	require.NoError(t, err)
	_, ok = cube.UnifLoc(Unif_Map)
	assert.True(t, ok)

	phong, err := NewShadingProgram(ctx, ProgramKind_Phong, NewDefines().SetInt("NUMBER_OF_LIGHTS", 3))
	require.NoError(t, err)
	for _, key := range []string{Unif_ModelViewMatrix, Unif_ModelViewProjectionMatrix, Unif_NormalMatrix, Unif_Color, Unif_Ambient, Unif_Specular, Unif_Shininess} {
		_, ok := phong.UnifLoc(key)
		assert.True(t, ok, key)
	}

	// Per light uniforms were replaced by the LIGHT block
	_, ok = phong.UnifLoc(Unif_LightPosition)
	assert.False(t, ok)

	assert.Equal(t, []string{LightBlockName}, phong.UniformBlocks())
	assert.True(t, phong.BindUniformBlock(LightBlockName, 2))
	idx, _ := phong.BlockIndex(LightBlockName)
	bp, ok := ctx.BlockBinding(phong.Program.Id, idx)
	assert.True(t, ok)
	assert.Equal(t, uint32(2), bp)

	assert.False(t, basic.BindUniformBlock(LightBlockName, 0))
	assert.Empty(t, ctx.Errors)

	_, err = NewShadingProgram(ctx, ProgramKind(99), nil)
	assert.ErrorIs(t, err, ErrUnknownProgramKind)
}

func TestPhongWithoutLightCountCompiles(t *testing.T) {

	ctx := glctxtest.New()
	phong, err := NewShadingProgram(ctx, ProgramKind_Phong, nil)
	require.NoError(t, err)

	idx, ok := phong.BlockIndex(LightBlockName)
	assert.True(t, ok)
	assert.NotEqual(t, glctx.InvalidIndex, idx)

	// A zero sized light array is rejected by the compiler
	_, err = NewShadingProgram(ctx, ProgramKind_Phong, NewDefines().SetInt("NUMBER_OF_LIGHTS", 0))
	var compileErr *ShaderCompileError
	assert.ErrorAs(t, err, &compileErr)
}

func TestDefinesOrderGivesSameUniforms(t *testing.T) {

	ctx := glctxtest.New()

	a, err := NewShadingProgram(ctx, ProgramKind_Phong, NewDefines().SetFlag("HAS_MAP").SetInt("NUMBER_OF_LIGHTS", 2))
	require.NoError(t, err)

	b, err := NewShadingProgram(ctx, ProgramKind_Phong, NewDefines().SetInt("NUMBER_OF_LIGHTS", 2).SetFlag("HAS_MAP"))
	require.NoError(t, err)

	assert.ElementsMatch(t, ctx.ActiveUniforms(a.Program.Id), ctx.ActiveUniforms(b.Program.Id))
	assert.Equal(t, a.UnifLocs(), b.UnifLocs())
}

func TestDestroyIsIdempotent(t *testing.T) {

	ctx := glctxtest.New()
	sp, err := NewShadingProgram(ctx, ProgramKind_Basic, nil)
	require.NoError(t, err)

	id := sp.Program.Id
	sp.Destroy()
	sp.Destroy()

	assert.True(t, sp.IsDestroyed())
	assert.False(t, ctx.ProgramExists(id))
	assert.Equal(t, 1, ctx.DeleteCalls[id])

	// Setting uniforms on a destroyed program does nothing
	sp.SetUnifVec4(Unif_Color, []float32{1, 1, 1, 1})
	assert.Empty(t, ctx.Errors)
}

func TestCombinedSourceNeedsBothStages(t *testing.T) {

	ctx := glctxtest.New()

	_, err := LoadAndCompileCombinedShaderSrc(ctx, []byte("#version 410 core\nvoid main() {}"), nil)
	assert.Error(t, err)

	_, err = LoadAndCompileCombinedShaderSrc(ctx, []byte("//shader:vertex\n#version 410 core\nvoid main() {}\n"), nil)
	assert.Error(t, err)

	_, err = LoadAndCompileCombinedShaderSrc(ctx, []byte("//shader:tessellation\n#version 410 core\nvoid main() {}\n"), nil)
	assert.Error(t, err)
}
