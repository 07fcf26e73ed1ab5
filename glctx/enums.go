package glctx

// Values match the OpenGL registry
const (
	InvalidIndex uint32 = 0xFFFFFFFF

	// Shader stages
	VERTEX_SHADER   uint32 = 0x8B31
	FRAGMENT_SHADER uint32 = 0x8B30
	GEOMETRY_SHADER uint32 = 0x8DD9

	// Data types
	BYTE           uint32 = 0x1400
	UNSIGNED_BYTE  uint32 = 0x1401
	SHORT          uint32 = 0x1402
	UNSIGNED_SHORT uint32 = 0x1403
	INT            uint32 = 0x1404
	UNSIGNED_INT   uint32 = 0x1405
	FLOAT          uint32 = 0x1406

	// Buffer targets
	ARRAY_BUFFER         uint32 = 0x8892
	ELEMENT_ARRAY_BUFFER uint32 = 0x8893
	UNIFORM_BUFFER       uint32 = 0x8A11

	// Buffer usages
	STREAM_DRAW  uint32 = 0x88E0
	STREAM_READ  uint32 = 0x88E1
	STREAM_COPY  uint32 = 0x88E2
	STATIC_DRAW  uint32 = 0x88E4
	STATIC_READ  uint32 = 0x88E5
	STATIC_COPY  uint32 = 0x88E6
	DYNAMIC_DRAW uint32 = 0x88E8
	DYNAMIC_READ uint32 = 0x88E9
	DYNAMIC_COPY uint32 = 0x88EA

	// Primitive modes
	POINTS         uint32 = 0x0000
	LINES          uint32 = 0x0001
	LINE_LOOP      uint32 = 0x0002
	LINE_STRIP     uint32 = 0x0003
	TRIANGLES      uint32 = 0x0004
	TRIANGLE_STRIP uint32 = 0x0005
	TRIANGLE_FAN   uint32 = 0x0006

	// Textures
	TEXTURE0         uint32 = 0x84C0
	TEXTURE_2D       uint32 = 0x0DE1
	TEXTURE_CUBE_MAP uint32 = 0x8513
)
