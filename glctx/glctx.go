// Package glctx defines the graphics context that every GPU facing operation goes through.
//
// A Context is owned by exactly one OS thread (the one that made the GL context current),
// and all calls on it must be serialized onto that thread.
package glctx

// Context is a thin subset of the OpenGL 4.1 core API. Enum arguments use the GL values
// declared in this package.
type Context interface {

	// Shaders
	CreateShader(shaderType uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	// ShaderCompileStatus returns whether the last compile succeeded and the info log
	ShaderCompileStatus(shader uint32) (ok bool, infoLog string)
	DeleteShader(shader uint32)

	// Programs
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinkStatus(program uint32) (ok bool, infoLog string)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// GetUniformLocation returns -1 if the uniform is not active in the program
	GetUniformLocation(program uint32, name string) int32
	// GetUniformBlockIndex returns InvalidIndex if the block is not active in the program
	GetUniformBlockIndex(program uint32, name string) uint32
	UniformBlockBinding(program, blockIndex, bindPoint uint32)

	ProgramUniform1i(program uint32, loc int32, v int32)
	ProgramUniform1f(program uint32, loc int32, v float32)
	ProgramUniform2fv(program uint32, loc int32, v []float32)
	ProgramUniform3fv(program uint32, loc int32, v []float32)
	ProgramUniform4fv(program uint32, loc int32, v []float32)
	ProgramUniformMatrix3fv(program uint32, loc int32, v []float32)
	ProgramUniformMatrix4fv(program uint32, loc int32, v []float32)

	// Buffers
	GenBuffer() uint32
	DeleteBuffer(buf uint32)
	BindBuffer(target, buf uint32)
	// BufferData allocates size bytes for the bound buffer and fills them from data if data is not nil
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)
	BindBufferBase(target, index, buf uint32)

	// Vertex arrays
	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	EnableVertexAttribArray(loc uint32)
	VertexAttribPointer(loc uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	// Textures
	ActiveTexture(unit uint32)
	BindTexture(target, tex uint32)

	// Drawing
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
}
