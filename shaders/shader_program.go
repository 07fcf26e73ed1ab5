package shaders

import (
	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/logging"
)

type ShaderProgram struct {
	Id           uint32
	VertShaderId uint32
	FragShaderId uint32
	GeomShaderId uint32
	ctx          glctx.Context
}

func (sp *ShaderProgram) AttachShader(shader Shader) {

	sp.ctx.AttachShader(sp.Id, shader.Id)
	switch shader.Type {
	case ShaderType_Vertex:
		sp.VertShaderId = shader.Id
	case ShaderType_Fragment:
		sp.FragShaderId = shader.Id
	case ShaderType_Geometry:
		sp.GeomShaderId = shader.Id
	default:
		logging.ErrLog.Panicf("Unknown shader type '%d' for shader id '%d'\n", shader.Type, shader.Id)
	}
}

// Link links the program and deletes the attached stage shaders, which are not needed afterwards
func (sp *ShaderProgram) Link() error {

	sp.ctx.LinkProgram(sp.Id)
	sp.deleteStages()

	ok, infoLog := sp.ctx.ProgramLinkStatus(sp.Id)
	if ok {
		return nil
	}

	logging.ErrLog.Println("Linking of shader program with id ", sp.Id, " failed. Err: ", infoLog)
	return &ShaderLinkError{Log: infoLog}
}

func (sp *ShaderProgram) deleteStages() {

	if sp.VertShaderId != 0 {
		sp.ctx.DeleteShader(sp.VertShaderId)
		sp.VertShaderId = 0
	}

	if sp.FragShaderId != 0 {
		sp.ctx.DeleteShader(sp.FragShaderId)
		sp.FragShaderId = 0
	}

	if sp.GeomShaderId != 0 {
		sp.ctx.DeleteShader(sp.GeomShaderId)
		sp.GeomShaderId = 0
	}
}

func (sp *ShaderProgram) Bind() {
	sp.ctx.UseProgram(sp.Id)
}

func (sp *ShaderProgram) UnBind() {
	sp.ctx.UseProgram(0)
}

// Delete releases the program and any stage shaders still attached. Calling it more than once is a no-op.
func (sp *ShaderProgram) Delete() {

	if sp.Id == 0 {
		return
	}

	sp.deleteStages()
	sp.ctx.DeleteProgram(sp.Id)
	sp.Id = 0
}
