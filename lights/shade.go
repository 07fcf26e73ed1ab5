package lights

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

// ShadeInput is everything the phong fragment stage reads for one fragment, in eye space
type ShadeInput struct {
	Position gglm.Vec3
	Normal   gglm.Vec3

	MaterialColor    gglm.Vec4
	MaterialAmbient  gglm.Vec4
	MaterialSpecular gglm.Vec4
	Shininess        float32

	Lights  []Light
	Ambient gglm.Vec4

	// DiffuseSample and SpecularSample are the texture samples at the fragment. nil means no map.
	DiffuseSample  *gglm.Vec4
	SpecularSample *float32
}

// Shade computes the colour the phong program outputs for one fragment (alpha is always 1).
// It is the CPU twin of the shader and is used to check lighting without a GPU.
func Shade(in *ShadeInput) gglm.Vec3 {

	n := in.Normal
	n.Normalize()

	var total gglm.Vec3
	for c := 0; c < 3; c++ {
		total.Data[c] = in.Ambient.Data[c] * in.MaterialAmbient.Data[c]
	}

	view := gglm.NewVec3(-in.Position.Data[0], -in.Position.Data[1], -in.Position.Data[2])
	view.Normalize()

	for i := range in.Lights {

		l := &in.Lights[i]

		var diffuseColor gglm.Vec4
		for c := 0; c < 4; c++ {
			diffuseColor.Data[c] = in.MaterialColor.Data[c] * l.Diffuse.Data[c]
			if in.DiffuseSample != nil {
				diffuseColor.Data[c] *= in.DiffuseSample.Data[c]
			}
		}

		var lightDir gglm.Vec3
		if l.IsDirectional() {
			lightDir = gglm.NewVec3(l.Position.Data[0], l.Position.Data[1], l.Position.Data[2])
		} else {
			lightDir = gglm.NewVec3(l.Position.Data[0]-in.Position.Data[0], l.Position.Data[1]-in.Position.Data[1], l.Position.Data[2]-in.Position.Data[2])
		}
		lightDir.Normalize()

		nDotL := gglm.DotVec3(&n, &lightDir)
		toSurface := gglm.NewVec3(-lightDir.Data[0], -lightDir.Data[1], -lightDir.Data[2])
		reflectDir := gglm.ReflectVec3(&toSurface, &n)

		lambertian := gglm.Clamp(nDotL, 0.001, 1)

		specular := float32(0)
		if lambertian > 0 {
			specAngle := max(gglm.DotVec3(&reflectDir, &view), 0)
			specular = float32(math.Pow(float64(specAngle), float64(in.Shininess)))
		}

		if in.SpecularSample != nil {
			specular *= *in.SpecularSample
		}

		for c := 0; c < 3; c++ {
			specularColor := l.Specular.Data[c] * in.MaterialSpecular.Data[c]
			total.Data[c] += lambertian*diffuseColor.Data[c] + specular*specularColor
		}
	}

	return total
}
