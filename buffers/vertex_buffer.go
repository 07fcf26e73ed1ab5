package buffers

import (
	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/logging"
)

// VertexBuffer is the GPU copy of a ByteBuffer holding vertex attributes
type VertexBuffer struct {
	Id   uint32
	Size int
	ctx  glctx.Context
}

func (vb *VertexBuffer) Bind() {
	vb.ctx.BindBuffer(glctx.ARRAY_BUFFER, vb.Id)
}

func (vb *VertexBuffer) UnBind() {
	vb.ctx.BindBuffer(glctx.ARRAY_BUFFER, 0)
}

func (vb *VertexBuffer) SetData(data []byte, usage BufUsage) {

	vb.Bind()

	vb.Size = len(data)
	vb.ctx.BufferData(glctx.ARRAY_BUFFER, len(data), data, usage.ToGL())
}

func (vb *VertexBuffer) Delete() {

	if vb.Id == 0 {
		return
	}

	vb.ctx.DeleteBuffer(vb.Id)
	vb.Id = 0
}

func NewVertexBuffer(ctx glctx.Context) VertexBuffer {

	vb := VertexBuffer{ctx: ctx}

	vb.Id = ctx.GenBuffer()
	if vb.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer")
	}

	return vb
}
