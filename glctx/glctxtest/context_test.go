package glctxtest

import (
	"testing"

	"github.com/bloeys/nrend/glctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertSrc = `#version 410 core
layout(location = 0) in vec3 POSITION;
out vec3 vPos;
uniform mat4 mvp;
void main() { vPos = POSITION; gl_Position = mvp * vec4(POSITION, 1); }
`

const fragSrc = `#version 410 core
in vec3 vPos;
out vec4 fColor;
uniform vec4 color;
uniform float unused;
void main() { fColor = color; }
`

func compile(t *testing.T, c *Context, shaderType uint32, src string) uint32 {

	t.Helper()

	s := c.CreateShader(shaderType)
	c.ShaderSource(s, src)
	c.CompileShader(s)

	ok, log := c.ShaderCompileStatus(s)
	require.True(t, ok, log)
	return s
}

func link(c *Context, shaders ...uint32) (uint32, bool, string) {

	p := c.CreateProgram()
	for _, s := range shaders {
		c.AttachShader(p, s)
	}

	c.LinkProgram(p)
	ok, log := c.ProgramLinkStatus(p)
	return p, ok, log
}

func TestLinkAndUniforms(t *testing.T) {

	c := New()
	p, ok, log := link(c, compile(t, c, glctx.VERTEX_SHADER, vertSrc), compile(t, c, glctx.FRAGMENT_SHADER, fragSrc))
	require.True(t, ok, log)

	assert.ElementsMatch(t, []string{"mvp", "color"}, c.ActiveUniforms(p))
	assert.Equal(t, int32(-1), c.GetUniformLocation(p, "unused"))

	loc := c.GetUniformLocation(p, "color")
	require.NotEqual(t, int32(-1), loc)
	c.ProgramUniform4fv(p, loc, []float32{1, 2, 3, 4})

	v, ok := c.UniformValue(p, loc)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3, 4}, v)

	c.UseProgram(p)
	assert.Equal(t, p, c.CurrentProgram())
	assert.Empty(t, c.Errors)
}

func TestLinkErrors(t *testing.T) {

	c := New()
	vert := compile(t, c, glctx.VERTEX_SHADER, vertSrc)

	badFrag := compile(t, c, glctx.FRAGMENT_SHADER, "#version 410 core\nin vec3 notWritten;\nout vec4 f;\nvoid main() { f = vec4(notWritten, 1); }\n")
	_, ok, log := link(c, vert, badFrag)
	assert.False(t, ok)
	assert.Contains(t, log, "notWritten")

	typeClash := compile(t, c, glctx.FRAGMENT_SHADER, "#version 410 core\nuniform vec4 mvp;\nout vec4 f;\nvoid main() { f = mvp; }\n")
	_, ok, log = link(c, vert, typeClash)
	assert.False(t, ok)
	assert.Contains(t, log, "mvp")

	_, ok, _ = link(c, vert)
	assert.False(t, ok)

	p, ok, _ := link(c, vert, badFrag)
	require.False(t, ok)
	c.UseProgram(p)
	assert.NotEmpty(t, c.Errors)
}

func TestCompileFailureLog(t *testing.T) {

	c := New()
	s := c.CreateShader(glctx.FRAGMENT_SHADER)
	c.ShaderSource(s, "#version 410 core\nvoid main() {")
	c.CompileShader(s)

	ok, log := c.ShaderCompileStatus(s)
	assert.False(t, ok)
	assert.NotEmpty(t, log)

	assert.Zero(t, c.CreateShader(0x1234))
	assert.NotEmpty(t, c.Errors)
}

func TestBuffersAndVertexArrays(t *testing.T) {

	c := New()

	vbo := c.GenBuffer()
	c.BindBuffer(glctx.ARRAY_BUFFER, vbo)
	c.BufferData(glctx.ARRAY_BUFFER, 8, []byte{1, 2, 3, 4}, glctx.STATIC_DRAW)
	c.BufferSubData(glctx.ARRAY_BUFFER, 4, []byte{5, 6, 7, 8})

	data, ok := c.BufferContents(vbo)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, data)

	c.BufferSubData(glctx.ARRAY_BUFFER, 6, []byte{0, 0, 0})
	assert.Len(t, c.Errors, 1)

	vao := c.GenVertexArray()
	c.BindVertexArray(vao)
	c.EnableVertexAttribArray(2)
	c.VertexAttribPointer(2, 3, glctx.FLOAT, false, 12, 4)

	a, ok := c.VertexAttrib(vao, 2)
	require.True(t, ok)
	assert.Equal(t, AttribPointer{Buffer: vbo, Size: 3, Type: glctx.FLOAT, Stride: 12, Offset: 4, Enabled: true}, a)

	// Element array binding is vertex array state
	ebo := c.GenBuffer()
	c.BindBuffer(glctx.ELEMENT_ARRAY_BUFFER, ebo)
	c.BindVertexArray(0)
	assert.Equal(t, ebo, c.ElementBuffer(vao))

	c.DeleteBuffer(vbo)
	c.DeleteBuffer(vbo)
	assert.Equal(t, 2, c.DeleteCalls[vbo])
	assert.Equal(t, 1, c.BufferCount())
}

func TestDrawElementsChecksRange(t *testing.T) {

	c := New()
	p, ok, log := link(c, compile(t, c, glctx.VERTEX_SHADER, vertSrc), compile(t, c, glctx.FRAGMENT_SHADER, fragSrc))
	require.True(t, ok, log)
	c.UseProgram(p)

	vao := c.GenVertexArray()
	c.BindVertexArray(vao)

	ebo := c.GenBuffer()
	c.BindBuffer(glctx.ELEMENT_ARRAY_BUFFER, ebo)
	c.BufferData(glctx.ELEMENT_ARRAY_BUFFER, 6, []byte{0, 0, 1, 0, 2, 0}, glctx.STATIC_DRAW)

	c.DrawElements(glctx.TRIANGLES, 3, glctx.UNSIGNED_SHORT, 0)
	assert.Empty(t, c.Errors)

	c.DrawElements(glctx.TRIANGLES, 3, glctx.UNSIGNED_SHORT, 2)
	assert.Len(t, c.Errors, 1)

	require.Len(t, c.Draws, 2)
	assert.Equal(t, DrawCall{Indexed: true, Mode: glctx.TRIANGLES, Count: 3, IndexType: glctx.UNSIGNED_SHORT, Program: p, VertexArray: vao}, c.Draws[0])
}

func TestUniformBlocks(t *testing.T) {

	c := New()
	frag := compile(t, c, glctx.FRAGMENT_SHADER, `#version 410 core
in vec3 vPos;
out vec4 fColor;
layout(std140) uniform LIGHT { vec4 position[2]; } light;
void main() { fColor = light.position[0]; }
`)
	p, ok, log := link(c, compile(t, c, glctx.VERTEX_SHADER, vertSrc), frag)
	require.True(t, ok, log)

	idx := c.GetUniformBlockIndex(p, "LIGHT")
	require.NotEqual(t, glctx.InvalidIndex, idx)
	assert.Equal(t, glctx.InvalidIndex, c.GetUniformBlockIndex(p, "NOPE"))

	c.UniformBlockBinding(p, idx, 3)
	bp, ok := c.BlockBinding(p, idx)
	require.True(t, ok)
	assert.Equal(t, uint32(3), bp)

	ubo := c.GenBuffer()
	c.BindBuffer(glctx.UNIFORM_BUFFER, ubo)
	c.BufferData(glctx.UNIFORM_BUFFER, 32, nil, glctx.STATIC_DRAW)
	c.BindBufferBase(glctx.UNIFORM_BUFFER, 3, ubo)
	assert.Equal(t, ubo, c.UniformBufferAt(3))
	assert.Empty(t, c.Errors)
}
