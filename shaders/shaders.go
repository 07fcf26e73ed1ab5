package shaders

import (
	"bytes"
	"errors"
	"os"

	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/logging"
)

type Shader struct {
	Id   uint32
	Type ShaderType
	ctx  glctx.Context
}

func (s *Shader) Delete() {

	if s.Id == 0 {
		return
	}

	s.ctx.DeleteShader(s.Id)
	s.Id = 0
}

func NewShaderProgram(ctx glctx.Context) (ShaderProgram, error) {

	id := ctx.CreateProgram()
	if id == 0 {
		return ShaderProgram{}, errors.New("failed to create shader program")
	}

	return ShaderProgram{Id: id, ctx: ctx}, nil
}

func LoadAndCompileCombinedShader(ctx glctx.Context, shaderPath string, defines *Defines) (ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return ShaderProgram{}, err
	}

	return LoadAndCompileCombinedShaderSrc(ctx, combinedSource, defines)
}

// LoadAndCompileCombinedShaderSrc compiles and links a source holding several stages, each starting
// with '//shader:vertex', '//shader:fragment' or '//shader:geometry'.
// defines are injected into every stage (see InjectDefines). defines may be nil.
func LoadAndCompileCombinedShaderSrc(ctx glctx.Context, shaderSrc []byte, defines *Defines) (ShaderProgram, error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return ShaderProgram{}, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	definesText := defines.Text()

	// Stages are compiled before the program is created so a compile error doesn't leak a program
	shdrs := make([]Shader, 0, 3)
	deleteShdrs := func() {
		for i := range shdrs {
			shdrs[i].Delete()
		}
	}

	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		var shdrType ShaderType
		if bytes.HasPrefix(src, []byte("vertex")) {
			src = src[6:]
			shdrType = ShaderType_Vertex
		} else if bytes.HasPrefix(src, []byte("fragment")) {
			src = src[8:]
			shdrType = ShaderType_Fragment
		} else if bytes.HasPrefix(src, []byte("geometry")) {
			src = src[8:]
			shdrType = ShaderType_Geometry
		} else {
			deleteShdrs()
			return ShaderProgram{}, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
		}

		shdr, err := CompileShaderOfType(ctx, []byte(InjectDefines(string(src), definesText)), shdrType)
		if err != nil {
			deleteShdrs()
			return ShaderProgram{}, err
		}

		shdrs = append(shdrs, shdr)
	}

	if len(shdrs) == 0 {
		return ShaderProgram{}, errors.New("no valid shaders found. Please put '//shader:vertex' or '//shader:fragment' or '//shader:geometry' before your shaders")
	}

	shdrProg, err := NewShaderProgram(ctx)
	if err != nil {
		deleteShdrs()
		return ShaderProgram{}, errors.New("failed to create new shader program. Err: " + err.Error())
	}

	for _, shdr := range shdrs {
		shdrProg.AttachShader(shdr)
	}

	if shdrProg.VertShaderId == 0 {
		shdrProg.Delete()
		return ShaderProgram{}, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if shdrProg.FragShaderId == 0 {
		shdrProg.Delete()
		return ShaderProgram{}, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	if err := shdrProg.Link(); err != nil {
		shdrProg.Delete()
		return ShaderProgram{}, err
	}

	return shdrProg, nil
}

func CompileShaderOfType(ctx glctx.Context, shaderSource []byte, shaderType ShaderType) (Shader, error) {

	shaderId := ctx.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, &ShaderCompileError{Stage: shaderType, Log: "failed to create OpenGL shader"}
	}

	//Load shader source and compile
	ctx.ShaderSource(shaderId, string(shaderSource))

	ctx.CompileShader(shaderId)
	if err := getShaderCompileErrors(ctx, shaderId, shaderType); err != nil {
		ctx.DeleteShader(shaderId)
		return Shader{}, err
	}

	return Shader{Id: shaderId, Type: shaderType, ctx: ctx}, nil
}

func getShaderCompileErrors(ctx glctx.Context, shaderId uint32, shaderType ShaderType) error {

	ok, errMsg := ctx.ShaderCompileStatus(shaderId)
	if ok {
		return nil
	}

	if errMsg == "" {
		errMsg = "unknown compile error"
	}

	logging.ErrLog.Println("Compilation of", shaderType, "shader with id ", shaderId, " failed. Err: ", errMsg)
	return &ShaderCompileError{Stage: shaderType, Log: errMsg}
}
