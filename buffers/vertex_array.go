package buffers

import (
	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/logging"
)

type VertexArray struct {
	Id          uint32
	IndexBuffer IndexBuffer
	ctx         glctx.Context
}

func (va *VertexArray) Bind() {
	va.ctx.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	va.ctx.BindVertexArray(0)
}

// AddAccessor points attribute location loc at the accessor's range inside vbo,
// which must hold a GPU copy of the accessor's ByteBuffer.
func (va *VertexArray) AddAccessor(loc uint32, vbo *VertexBuffer, acc *Accessor) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind()
	vbo.Bind()

	va.ctx.EnableVertexAttribArray(loc)
	va.ctx.VertexAttribPointer(loc, int32(acc.Type.CompCount()), acc.ComponentType.GLType(), false, int32(acc.ElementSize()), acc.ByteOffset)
}

func (va *VertexArray) SetIndexBuffer(ib IndexBuffer) {
	va.Bind()
	ib.Bind()
	va.IndexBuffer = ib
}

// HasIndices is true once SetIndexBuffer was called
func (va *VertexArray) HasIndices() bool {
	return va.IndexBuffer.Id != 0
}

// Delete releases the vertex array but not its buffers, as those can be shared with other vertex arrays
func (va *VertexArray) Delete() {

	if va.Id == 0 {
		return
	}

	va.ctx.DeleteVertexArray(va.Id)
	va.Id = 0
}

func NewVertexArray(ctx glctx.Context) VertexArray {

	vao := VertexArray{ctx: ctx}

	vao.Id = ctx.GenVertexArray()
	if vao.Id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL vertex array object")
	}

	return vao
}
