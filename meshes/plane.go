package meshes

import "github.com/bloeys/nrend/materials"

var (
	planePositions = []float32{
		-0.5, 0, 0.5,
		0.5, 0, 0.5,
		0.5, 0, -0.5,

		-0.5, 0, 0.5,
		0.5, 0, -0.5,
		-0.5, 0, -0.5,
	}

	planeUVs = []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 0,
		1, 1,
		0, 1,
	}
)

// NewPlane creates a non-indexed unit quad on the XZ plane facing +Y
func NewPlane(material *materials.Material, mode Mode) (*Primitive, error) {

	if material == nil {
		return nil, &MissingArgumentError{Arg: "material"}
	}

	normals := make([]float32, 0, len(planePositions))
	for i := 0; i < len(planePositions)/3; i++ {
		normals = append(normals, 0, 1, 0)
	}

	return newPackedPrimitive(planePositions, normals, planeUVs, nil, material, mode)
}
