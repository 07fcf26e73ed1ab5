package lights

import (
	"github.com/bloeys/gglm/gglm"
)

// Light is what the phong program needs of a light. Positions and directions are in eye space
// by the time they are uploaded (see EyeSpace).
type Light struct {
	// Position is a point light when w=1. When w=0 xyz is the direction towards a directional light.
	Position gglm.Vec4
	Diffuse  gglm.Vec4
	Specular gglm.Vec4
}

func (l *Light) IsDirectional() bool {
	return l.Position.Data[3] == 0
}

// EyeSpace returns the light with its position (or direction) transformed by view
func (l Light) EyeSpace(view *gglm.Mat4) Light {
	l.Position = gglm.MulMat4Vec4(view, &l.Position)
	return l
}

func white() gglm.Vec4 {
	return gglm.NewVec4(1, 1, 1, 1)
}

// NewDirectionalLight creates a white light shining from dirTowardsLight
func NewDirectionalLight(dirTowardsLight gglm.Vec3) Light {
	return Light{
		Position: gglm.NewVec4(dirTowardsLight.Data[0], dirTowardsLight.Data[1], dirTowardsLight.Data[2], 0),
		Diffuse:  white(),
		Specular: white(),
	}
}

// NewPointLight creates a white light at pos
func NewPointLight(pos gglm.Vec3) Light {
	return Light{
		Position: gglm.NewVec4(pos.Data[0], pos.Data[1], pos.Data[2], 1),
		Diffuse:  white(),
		Specular: white(),
	}
}
