// Package glcore implements glctx.Context on top of go-gl's OpenGL 4.1 core bindings.
//
// gl.Init must have been called on the owning thread (engine.CreateOpenGLWindow does this).
package glcore

import (
	"strings"

	"github.com/bloeys/nrend/glctx"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ glctx.Context = &Context{}

type Context struct{}

func New() *Context {
	return &Context{}
}

func (c *Context) CreateShader(shaderType uint32) uint32 {
	return gl.CreateShader(shaderType)
}

func (c *Context) ShaderSource(shader uint32, src string) {
	cstr, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, cstr, nil)
}

func (c *Context) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (c *Context) ShaderCompileStatus(shader uint32) (bool, string) {

	var compiledSuccessfully int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return false, ""
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(shader, logLength, nil, log)
	return false, gl.GoStr(log)
}

func (c *Context) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (c *Context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (c *Context) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (c *Context) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (c *Context) ProgramLinkStatus(program uint32) (bool, string) {

	var linkedSuccessfully int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return false, ""
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetProgramInfoLog(program, logLength, nil, log)
	return false, gl.GoStr(log)
}

func (c *Context) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (c *Context) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) GetUniformBlockIndex(program uint32, name string) uint32 {
	return gl.GetUniformBlockIndex(program, gl.Str(name+"\x00"))
}

func (c *Context) UniformBlockBinding(program, blockIndex, bindPoint uint32) {
	gl.UniformBlockBinding(program, blockIndex, bindPoint)
}

func (c *Context) ProgramUniform1i(program uint32, loc int32, v int32) {
	gl.ProgramUniform1i(program, loc, v)
}

func (c *Context) ProgramUniform1f(program uint32, loc int32, v float32) {
	gl.ProgramUniform1f(program, loc, v)
}

func (c *Context) ProgramUniform2fv(program uint32, loc int32, v []float32) {
	gl.ProgramUniform2fv(program, loc, int32(len(v)/2), &v[0])
}

func (c *Context) ProgramUniform3fv(program uint32, loc int32, v []float32) {
	gl.ProgramUniform3fv(program, loc, int32(len(v)/3), &v[0])
}

func (c *Context) ProgramUniform4fv(program uint32, loc int32, v []float32) {
	gl.ProgramUniform4fv(program, loc, int32(len(v)/4), &v[0])
}

func (c *Context) ProgramUniformMatrix3fv(program uint32, loc int32, v []float32) {
	gl.ProgramUniformMatrix3fv(program, loc, int32(len(v)/9), false, &v[0])
}

func (c *Context) ProgramUniformMatrix4fv(program uint32, loc int32, v []float32) {
	gl.ProgramUniformMatrix4fv(program, loc, int32(len(v)/16), false, &v[0])
}

func (c *Context) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (c *Context) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (c *Context) BindBuffer(target, buf uint32) {
	gl.BindBuffer(target, buf)
}

func (c *Context) BufferData(target uint32, size int, data []byte, usage uint32) {

	if len(data) == 0 {
		gl.BufferData(target, size, gl.Ptr(nil), usage)
		return
	}

	gl.BufferData(target, size, gl.Ptr(&data[0]), usage)
}

func (c *Context) BufferSubData(target uint32, offset int, data []byte) {

	if len(data) == 0 {
		return
	}

	gl.BufferSubData(target, offset, len(data), gl.Ptr(&data[0]))
}

func (c *Context) BindBufferBase(target, index, buf uint32) {
	gl.BindBufferBase(target, index, buf)
}

func (c *Context) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (c *Context) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (c *Context) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (c *Context) EnableVertexAttribArray(loc uint32) {
	gl.EnableVertexAttribArray(loc)
}

func (c *Context) VertexAttribPointer(loc uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(loc, size, xtype, normalized, stride, uintptr(offset))
}

func (c *Context) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (c *Context) BindTexture(target, tex uint32) {
	gl.BindTexture(target, tex)
}

func (c *Context) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (c *Context) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}
