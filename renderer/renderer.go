package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/lights"
	"github.com/bloeys/nrend/meshes"
)

type Render interface {
	DrawPrimitive(prim *meshes.Primitive, modelView, proj *gglm.Mat4) error
	// DrawCubemap draws prim around the camera, ignoring the translation of view
	DrawCubemap(prim *meshes.Primitive, view, proj *gglm.Mat4) error
	// SetLights sets the light buffer bound to programs that use the LIGHT block. Nil unsets it.
	SetLights(lb *lights.LightBuffer)
	FrameEnd()
	// Delete releases every GPU object the renderer created
	Delete()
}
