package shaders

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownProgramKind = errors.New("unknown shading program kind")
	ErrProgramDestroyed   = errors.New("shading program is destroyed")
)

// ShaderCompileError holds the driver's info log of a stage that failed to compile
type ShaderCompileError struct {
	Stage ShaderType
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

type ShaderLinkError struct {
	Log string
}

func (e *ShaderLinkError) Error() string {
	return "failed to link shader program: " + e.Log
}
