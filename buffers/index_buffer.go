package buffers

import (
	"github.com/bloeys/nrend/glctx"
)

// IndexBuffer is an index accessor bound as the element array of a vertex array.
// The GPU buffer it points into is owned by the VertexBuffer holding the accessor's ByteBuffer,
// so deleting an IndexBuffer releases nothing.
type IndexBuffer struct {
	Id uint32
	// IndexBufCount is the number of indices
	IndexBufCount int32
	// IndexType is the GL type of one index (e.g. UNSIGNED_SHORT)
	IndexType uint32
	// ByteOffset of the first index inside the GPU buffer, passed to DrawElements
	ByteOffset int
	ctx        glctx.Context
}

func (ib *IndexBuffer) Bind() {
	ib.ctx.BindBuffer(glctx.ELEMENT_ARRAY_BUFFER, ib.Id)
}

func (ib *IndexBuffer) UnBind() {
	ib.ctx.BindBuffer(glctx.ELEMENT_ARRAY_BUFFER, 0)
}

// NewIndexBuffer describes indices living inside vbo, which must hold a GPU copy of indices.BufferView
func NewIndexBuffer(ctx glctx.Context, vbo *VertexBuffer, indices *Accessor) IndexBuffer {
	return IndexBuffer{
		Id:            vbo.Id,
		IndexBufCount: int32(indices.Count),
		IndexType:     indices.ComponentType.GLType(),
		ByteOffset:    indices.ByteOffset,
		ctx:           ctx,
	}
}
