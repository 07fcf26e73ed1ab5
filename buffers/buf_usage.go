package buffers

import (
	"fmt"

	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/glctx"
)

type BufUsage int

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	BufUsage_Unknown BufUsage = iota

	//Buffer is set only once and used many times
	BufUsage_Static_Draw
	//Buffer is changed a lot and used many times
	BufUsage_Dynamic_Draw
	//Buffer is set only once and used by the GPU at most a few times
	BufUsage_Stream_Draw

	BufUsage_Static_Read
	BufUsage_Dynamic_Read
	BufUsage_Stream_Read

	BufUsage_Static_Copy
	BufUsage_Dynamic_Copy
	BufUsage_Stream_Copy
)

func (b BufUsage) ToGL() uint32 {
	switch b {
	case BufUsage_Static_Draw:
		return glctx.STATIC_DRAW
	case BufUsage_Dynamic_Draw:
		return glctx.DYNAMIC_DRAW
	case BufUsage_Stream_Draw:
		return glctx.STREAM_DRAW

	case BufUsage_Static_Read:
		return glctx.STATIC_READ
	case BufUsage_Dynamic_Read:
		return glctx.DYNAMIC_READ
	case BufUsage_Stream_Read:
		return glctx.STREAM_READ

	case BufUsage_Static_Copy:
		return glctx.STATIC_COPY
	case BufUsage_Dynamic_Copy:
		return glctx.DYNAMIC_COPY
	case BufUsage_Stream_Copy:
		return glctx.STREAM_COPY
	}

	assert.T(false, fmt.Sprintf("Unexpected BufUsage value '%v'", b))
	return 0
}
