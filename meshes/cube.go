package meshes

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/materials"
)

var (
	cubeCorners = [8][3]float32{
		{-0.5, -0.5, 0.5},
		{-0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
		{0.5, -0.5, 0.5},
		{-0.5, -0.5, -0.5},
		{-0.5, 0.5, -0.5},
		{0.5, 0.5, -0.5},
		{0.5, -0.5, -0.5},
	}

	// Indices into cubeCorners, counter clockwise when looking at the face from outside
	cubeFaces = [6][4]int{
		{1, 0, 3, 2},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
		{6, 5, 1, 2},
		{4, 5, 6, 7},
		{5, 4, 0, 1},
	}

	quadUVs = [8]float32{0, 0, 1, 0, 1, 1, 0, 1}
)

// NewCube creates a unit cube centered at the origin with 4 unshared vertices per face.
//
// flipNormals turns the cube inside out: triangles are wound the other way and normals point inwards,
// which is what a skybox wants.
func NewCube(material *materials.Material, flipNormals bool, mode Mode) (*Primitive, error) {

	const vertexCount = 6 * 4

	positions := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)
	uvs := make([]float32, 0, vertexCount*2)
	indices := make([]uint32, 0, 6*6)

	for f, face := range cubeFaces {

		offset := uint32(f * 4)
		if flipNormals {
			indices = append(indices, offset, offset+2, offset+1, offset, offset+3, offset+2)
		} else {
			indices = append(indices, offset, offset+1, offset+2, offset, offset+2, offset+3)
		}

		for _, corner := range face {
			positions = append(positions, cubeCorners[corner][:]...)
		}

		uvs = append(uvs, quadUVs[:]...)

		// Normal from the unflipped order, so flipping only changes its sign
		a, b, c := cubeCorners[face[0]], cubeCorners[face[1]], cubeCorners[face[2]]
		ab := gglm.NewVec3(b[0]-a[0], b[1]-a[1], b[2]-a[2])
		bc := gglm.NewVec3(c[0]-b[0], c[1]-b[1], c[2]-b[2])

		n := gglm.Cross(&ab, &bc)
		n.Normalize()

		normal := n.Data
		if flipNormals {
			normal = [3]float32{-normal[0], -normal[1], -normal[2]}
		}

		for i := 0; i < 4; i++ {
			normals = append(normals, normal[:]...)
		}
	}

	return newPackedPrimitive(positions, normals, uvs, indices, material, mode)
}
