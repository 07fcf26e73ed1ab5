package shaders

import (
	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/logging"
)

type ShaderType int32

func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return glctx.VERTEX_SHADER
	case ShaderType_Fragment:
		return glctx.FRAGMENT_SHADER
	case ShaderType_Geometry:
		return glctx.GEOMETRY_SHADER

	default:
		logging.ErrLog.Panicf("Unknown shader type '%d'\n", s)
		return 0
	}
}

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)
