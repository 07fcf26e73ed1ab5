// Package glctxtest provides a software glctx.Context for tests.
//
// Shaders are "compiled" by a small GLSL front end (see compileGLSL) so compile errors,
// link errors, inactive uniforms and uniform blocks behave like they do on a driver.
// Buffers, vertex arrays and draw calls are recorded so tests can inspect them.
package glctxtest

import (
	"fmt"
	"strings"

	"github.com/bloeys/nrend/glctx"
)

var _ glctx.Context = &Context{}

type shaderObj struct {
	shaderType uint32
	src        string
	compiled   bool
	ok         bool
	log        string
	unit       *compiledUnit
}

type programObj struct {
	shaders       []uint32
	linked        bool
	ok            bool
	log           string
	uniformLocs   map[string]int32
	blockIndices  map[string]uint32
	blockBindings map[uint32]uint32
	uniformValues map[int32][]float32
}

// AttribPointer is a recorded VertexAttribPointer call
type AttribPointer struct {
	Buffer     uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     int
	Enabled    bool
}

type vertexArrayObj struct {
	attribs       map[uint32]AttribPointer
	elementBuffer uint32
}

type bufferObj struct {
	data  []byte
	usage uint32
}

// DrawCall is a recorded DrawArrays or DrawElements call
type DrawCall struct {
	Indexed     bool
	Mode        uint32
	First       int32
	Count       int32
	IndexType   uint32
	Offset      int
	Program     uint32
	VertexArray uint32
}

type Context struct {
	nextId uint32

	shaders  map[uint32]*shaderObj
	programs map[uint32]*programObj
	buffers  map[uint32]*bufferObj
	vaos     map[uint32]*vertexArrayObj

	boundBuffers   map[uint32]uint32
	bufferBases    map[uint32]uint32
	textures       map[uint32]uint32
	activeTexture  uint32
	currentProgram uint32
	currentVao     uint32

	// DeleteCalls counts Delete* calls per object id, including ones on already deleted objects
	DeleteCalls map[uint32]int

	Draws []DrawCall

	// Errors holds invalid operations, similar to what glGetError would report
	Errors []string
}

func New() *Context {
	return &Context{
		shaders:      map[uint32]*shaderObj{},
		programs:     map[uint32]*programObj{},
		buffers:      map[uint32]*bufferObj{},
		vaos:         map[uint32]*vertexArrayObj{},
		boundBuffers: map[uint32]uint32{},
		bufferBases:  map[uint32]uint32{},
		textures:     map[uint32]uint32{},
		DeleteCalls:  map[uint32]int{},
	}
}

func (c *Context) genId() uint32 {
	c.nextId++
	return c.nextId
}

func (c *Context) errorf(format string, args ...any) {
	c.Errors = append(c.Errors, fmt.Sprintf(format, args...))
}

func (c *Context) CreateShader(shaderType uint32) uint32 {

	if shaderType != glctx.VERTEX_SHADER && shaderType != glctx.FRAGMENT_SHADER && shaderType != glctx.GEOMETRY_SHADER {
		c.errorf("CreateShader: invalid shader type 0x%X", shaderType)
		return 0
	}

	id := c.genId()
	c.shaders[id] = &shaderObj{shaderType: shaderType}
	return id
}

func (c *Context) ShaderSource(shader uint32, src string) {

	s, ok := c.shaders[shader]
	if !ok {
		c.errorf("ShaderSource: unknown shader %d", shader)
		return
	}

	s.src = src
}

func (c *Context) CompileShader(shader uint32) {

	s, ok := c.shaders[shader]
	if !ok {
		c.errorf("CompileShader: unknown shader %d", shader)
		return
	}

	s.compiled = true
	unit, err := compileGLSL(s.src)
	if err != nil {
		s.ok = false
		s.log = err.Error()
		s.unit = nil
		return
	}

	s.ok = true
	s.log = ""
	s.unit = unit
}

func (c *Context) ShaderCompileStatus(shader uint32) (bool, string) {

	s, ok := c.shaders[shader]
	if !ok {
		c.errorf("ShaderCompileStatus: unknown shader %d", shader)
		return false, ""
	}

	return s.ok, s.log
}

func (c *Context) DeleteShader(shader uint32) {

	c.DeleteCalls[shader]++
	if shader == 0 {
		return
	}

	delete(c.shaders, shader)
}

func (c *Context) CreateProgram() uint32 {
	id := c.genId()
	c.programs[id] = &programObj{}
	return id
}

func (c *Context) AttachShader(program, shader uint32) {

	p, ok := c.programs[program]
	if !ok {
		c.errorf("AttachShader: unknown program %d", program)
		return
	}

	if _, ok := c.shaders[shader]; !ok {
		c.errorf("AttachShader: unknown shader %d", shader)
		return
	}

	p.shaders = append(p.shaders, shader)
}

func (c *Context) LinkProgram(program uint32) {

	p, ok := c.programs[program]
	if !ok {
		c.errorf("LinkProgram: unknown program %d", program)
		return
	}

	p.linked = true
	p.ok = false
	p.uniformLocs = map[string]int32{}
	p.blockIndices = map[string]uint32{}
	p.blockBindings = map[uint32]uint32{}
	p.uniformValues = map[int32][]float32{}

	var vert, frag *compiledUnit
	hasGeom := false
	for _, sid := range p.shaders {

		s, ok := c.shaders[sid]
		if !ok || !s.ok {
			p.log = fmt.Sprintf("error: shader %d is not compiled", sid)
			return
		}

		switch s.shaderType {
		case glctx.VERTEX_SHADER:
			vert = s.unit
		case glctx.FRAGMENT_SHADER:
			frag = s.unit
		case glctx.GEOMETRY_SHADER:
			hasGeom = true
		}
	}

	if vert == nil || frag == nil {
		p.log = "error: a program needs both a vertex and a fragment shader"
		return
	}

	if !vert.hasMain {
		p.log = "error: missing main function in vertex shader"
		return
	}

	if !frag.hasMain {
		p.log = "error: missing main function in fragment shader"
		return
	}

	if !hasGeom {
		for _, in := range frag.ins {
			if !contains(vert.outs, in) {
				p.log = fmt.Sprintf("error: fragment shader input '%s' is not written by the vertex shader", in)
				return
			}
		}
	}

	types := map[string]string{}
	nextLoc := int32(0)
	for _, unit := range []*compiledUnit{vert, frag} {

		for _, u := range unit.uniforms {

			if t, ok := types[u.Name]; ok && t != u.Type {
				p.log = fmt.Sprintf("error: uniform '%s' declared as '%s' and '%s' in different stages", u.Name, t, u.Type)
				return
			}
			types[u.Name] = u.Type

			if !u.active {
				continue
			}

			if _, ok := p.uniformLocs[u.Name]; ok {
				continue
			}

			p.uniformLocs[u.Name] = nextLoc
			if u.ArraySize > 1 {
				for i := 0; i < u.ArraySize; i++ {
					p.uniformLocs[fmt.Sprintf("%s[%d]", u.Name, i)] = nextLoc + int32(i)
				}
			}
			nextLoc += int32(u.ArraySize)
		}

		for _, b := range unit.blocks {

			if !b.active {
				continue
			}

			if _, ok := p.blockIndices[b.Name]; !ok {
				p.blockIndices[b.Name] = uint32(len(p.blockIndices))
			}
		}
	}

	p.ok = true
	p.log = ""
}

func contains(arr []string, s string) bool {
	for _, v := range arr {
		if v == s {
			return true
		}
	}
	return false
}

func (c *Context) ProgramLinkStatus(program uint32) (bool, string) {

	p, ok := c.programs[program]
	if !ok {
		c.errorf("ProgramLinkStatus: unknown program %d", program)
		return false, ""
	}

	return p.ok, p.log
}

func (c *Context) UseProgram(program uint32) {

	if program != 0 {
		if p, ok := c.programs[program]; !ok || !p.ok {
			c.errorf("UseProgram: program %d is not a linked program", program)
			return
		}
	}

	c.currentProgram = program
}

func (c *Context) DeleteProgram(program uint32) {

	c.DeleteCalls[program]++
	if program == 0 {
		return
	}

	delete(c.programs, program)
	if c.currentProgram == program {
		c.currentProgram = 0
	}
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {

	p, ok := c.programs[program]
	if !ok || !p.ok {
		c.errorf("GetUniformLocation: program %d is not a linked program", program)
		return -1
	}

	loc, ok := p.uniformLocs[name]
	if !ok {
		return -1
	}

	return loc
}

func (c *Context) GetUniformBlockIndex(program uint32, name string) uint32 {

	p, ok := c.programs[program]
	if !ok || !p.ok {
		c.errorf("GetUniformBlockIndex: program %d is not a linked program", program)
		return glctx.InvalidIndex
	}

	idx, ok := p.blockIndices[name]
	if !ok {
		return glctx.InvalidIndex
	}

	return idx
}

func (c *Context) UniformBlockBinding(program, blockIndex, bindPoint uint32) {

	p, ok := c.programs[program]
	if !ok || !p.ok {
		c.errorf("UniformBlockBinding: program %d is not a linked program", program)
		return
	}

	if int(blockIndex) >= len(p.blockIndices) {
		c.errorf("UniformBlockBinding: invalid block index %d", blockIndex)
		return
	}

	p.blockBindings[blockIndex] = bindPoint
}

func (c *Context) setUniform(program uint32, loc int32, v []float32) {

	// Location -1 is silently ignored, as in GL
	if loc == -1 {
		return
	}

	p, ok := c.programs[program]
	if !ok || !p.ok {
		c.errorf("ProgramUniform: program %d is not a linked program", program)
		return
	}

	p.uniformValues[loc] = append([]float32(nil), v...)
}

func (c *Context) ProgramUniform1i(program uint32, loc int32, v int32) {
	c.setUniform(program, loc, []float32{float32(v)})
}

func (c *Context) ProgramUniform1f(program uint32, loc int32, v float32) {
	c.setUniform(program, loc, []float32{v})
}

func (c *Context) ProgramUniform2fv(program uint32, loc int32, v []float32) {
	c.setUniform(program, loc, v)
}

func (c *Context) ProgramUniform3fv(program uint32, loc int32, v []float32) {
	c.setUniform(program, loc, v)
}

func (c *Context) ProgramUniform4fv(program uint32, loc int32, v []float32) {
	c.setUniform(program, loc, v)
}

func (c *Context) ProgramUniformMatrix3fv(program uint32, loc int32, v []float32) {
	c.setUniform(program, loc, v)
}

func (c *Context) ProgramUniformMatrix4fv(program uint32, loc int32, v []float32) {
	c.setUniform(program, loc, v)
}

func (c *Context) GenBuffer() uint32 {
	id := c.genId()
	c.buffers[id] = &bufferObj{}
	return id
}

func (c *Context) DeleteBuffer(buf uint32) {

	c.DeleteCalls[buf]++
	delete(c.buffers, buf)
	for target, id := range c.boundBuffers {
		if id == buf {
			delete(c.boundBuffers, target)
		}
	}
}

func (c *Context) BindBuffer(target, buf uint32) {

	if buf != 0 {
		if _, ok := c.buffers[buf]; !ok {
			c.errorf("BindBuffer: unknown buffer %d", buf)
			return
		}
	}

	c.boundBuffers[target] = buf
	if target == glctx.ELEMENT_ARRAY_BUFFER && c.currentVao != 0 {
		c.vaos[c.currentVao].elementBuffer = buf
	}
}

func (c *Context) boundBuffer(fn string, target uint32) *bufferObj {

	id := c.boundBuffers[target]
	if target == glctx.ELEMENT_ARRAY_BUFFER && c.currentVao != 0 {
		id = c.vaos[c.currentVao].elementBuffer
	}

	b, ok := c.buffers[id]
	if !ok {
		c.errorf("%s: no buffer bound to target 0x%X", fn, target)
		return nil
	}

	return b
}

func (c *Context) BufferData(target uint32, size int, data []byte, usage uint32) {

	b := c.boundBuffer("BufferData", target)
	if b == nil {
		return
	}

	if len(data) > size {
		c.errorf("BufferData: data length %d is larger than size %d", len(data), size)
		return
	}

	b.data = make([]byte, size)
	copy(b.data, data)
	b.usage = usage
}

func (c *Context) BufferSubData(target uint32, offset int, data []byte) {

	b := c.boundBuffer("BufferSubData", target)
	if b == nil {
		return
	}

	if offset < 0 || offset+len(data) > len(b.data) {
		c.errorf("BufferSubData: range [%d, %d) is outside buffer of size %d", offset, offset+len(data), len(b.data))
		return
	}

	copy(b.data[offset:], data)
}

func (c *Context) BindBufferBase(target, index, buf uint32) {

	if _, ok := c.buffers[buf]; !ok {
		c.errorf("BindBufferBase: unknown buffer %d", buf)
		return
	}

	c.boundBuffers[target] = buf
	if target == glctx.UNIFORM_BUFFER {
		c.bufferBases[index] = buf
	}
}

func (c *Context) GenVertexArray() uint32 {
	id := c.genId()
	c.vaos[id] = &vertexArrayObj{attribs: map[uint32]AttribPointer{}}
	return id
}

func (c *Context) DeleteVertexArray(vao uint32) {

	c.DeleteCalls[vao]++
	delete(c.vaos, vao)
	if c.currentVao == vao {
		c.currentVao = 0
	}
}

func (c *Context) BindVertexArray(vao uint32) {

	if vao != 0 {
		if _, ok := c.vaos[vao]; !ok {
			c.errorf("BindVertexArray: unknown vertex array %d", vao)
			return
		}
	}

	c.currentVao = vao
}

func (c *Context) EnableVertexAttribArray(loc uint32) {

	vao, ok := c.vaos[c.currentVao]
	if !ok {
		c.errorf("EnableVertexAttribArray: no vertex array bound")
		return
	}

	a := vao.attribs[loc]
	a.Enabled = true
	vao.attribs[loc] = a
}

func (c *Context) VertexAttribPointer(loc uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {

	vao, ok := c.vaos[c.currentVao]
	if !ok {
		c.errorf("VertexAttribPointer: no vertex array bound")
		return
	}

	buf := c.boundBuffers[glctx.ARRAY_BUFFER]
	if buf == 0 {
		c.errorf("VertexAttribPointer: no buffer bound to ARRAY_BUFFER")
		return
	}

	a := vao.attribs[loc]
	a.Buffer = buf
	a.Size = size
	a.Type = xtype
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
	vao.attribs[loc] = a
}

func (c *Context) ActiveTexture(unit uint32) {
	c.activeTexture = unit
}

func (c *Context) BindTexture(target, tex uint32) {
	c.textures[c.activeTexture] = tex
}

func (c *Context) DrawArrays(mode uint32, first, count int32) {

	if c.currentProgram == 0 {
		c.errorf("DrawArrays: no program in use")
	}

	c.Draws = append(c.Draws, DrawCall{
		Mode:        mode,
		First:       first,
		Count:       count,
		Program:     c.currentProgram,
		VertexArray: c.currentVao,
	})
}

func (c *Context) DrawElements(mode uint32, count int32, xtype uint32, offset int) {

	if c.currentProgram == 0 {
		c.errorf("DrawElements: no program in use")
	}

	if eb := c.boundBuffer("DrawElements", glctx.ELEMENT_ARRAY_BUFFER); eb != nil {

		size := 4
		switch xtype {
		case glctx.UNSIGNED_BYTE:
			size = 1
		case glctx.UNSIGNED_SHORT:
			size = 2
		}

		if offset+int(count)*size > len(eb.data) {
			c.errorf("DrawElements: %d indices of size %d at offset %d overflow element buffer of size %d", count, size, offset, len(eb.data))
		}
	}

	c.Draws = append(c.Draws, DrawCall{
		Indexed:     true,
		Mode:        mode,
		Count:       count,
		IndexType:   xtype,
		Offset:      offset,
		Program:     c.currentProgram,
		VertexArray: c.currentVao,
	})
}

//
// Inspection helpers for tests
//

func (c *Context) ProgramExists(program uint32) bool {
	_, ok := c.programs[program]
	return ok
}

func (c *Context) ShaderExists(shader uint32) bool {
	_, ok := c.shaders[shader]
	return ok
}

func (c *Context) CurrentProgram() uint32 {
	return c.currentProgram
}

// ActiveUniforms returns the names of all active, non-array-element uniforms of program
func (c *Context) ActiveUniforms(program uint32) []string {

	p, ok := c.programs[program]
	if !ok {
		return nil
	}

	names := make([]string, 0, len(p.uniformLocs))
	for name := range p.uniformLocs {
		if !strings.Contains(name, "[") {
			names = append(names, name)
		}
	}

	return names
}

func (c *Context) UniformValue(program uint32, loc int32) ([]float32, bool) {

	p, ok := c.programs[program]
	if !ok {
		return nil, false
	}

	v, ok := p.uniformValues[loc]
	return v, ok
}

func (c *Context) BlockBinding(program, blockIndex uint32) (uint32, bool) {

	p, ok := c.programs[program]
	if !ok {
		return 0, false
	}

	bp, ok := p.blockBindings[blockIndex]
	return bp, ok
}

// UniformBufferAt returns the buffer bound to the uniform bind point index
func (c *Context) UniformBufferAt(index uint32) uint32 {
	return c.bufferBases[index]
}

func (c *Context) BufferContents(buf uint32) ([]byte, bool) {

	b, ok := c.buffers[buf]
	if !ok {
		return nil, false
	}

	return b.data, true
}

func (c *Context) BufferCount() int {
	return len(c.buffers)
}

func (c *Context) VertexArrayCount() int {
	return len(c.vaos)
}

func (c *Context) VertexAttrib(vao, loc uint32) (AttribPointer, bool) {

	v, ok := c.vaos[vao]
	if !ok {
		return AttribPointer{}, false
	}

	a, ok := v.attribs[loc]
	return a, ok
}

func (c *Context) ElementBuffer(vao uint32) uint32 {

	v, ok := c.vaos[vao]
	if !ok {
		return 0
	}

	return v.elementBuffer
}

func (c *Context) BoundTexture(unit uint32) uint32 {
	return c.textures[unit]
}
