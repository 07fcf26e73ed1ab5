package meshes

import (
	"math"

	"github.com/bloeys/nrend/materials"
)

const (
	DefaultSphereSegments = 32

	MinSphereLatitudeSegments  = 2
	MinSphereLongitudeSegments = 3
)

// sphericalToCartesian returns a point on the unit sphere with Y up
func sphericalToCartesian(theta, phi float64) [3]float32 {

	x := math.Sin(theta) * math.Cos(phi)
	y := math.Sin(theta) * math.Sin(phi)
	z := math.Cos(theta)

	// Swap Y and Z so the poles are on the Y axis
	return [3]float32{float32(x), float32(z), float32(y)}
}

// NewSphere creates a non-indexed unit UV sphere centered at the origin.
// Segment counts <= 0 select DefaultSphereSegments.
//
// Bands touching a pole emit one triangle per cell, all other bands emit two,
// for a total of 3*(2*(lat-2)*lon + 2*lon) vertices.
func NewSphere(material *materials.Material, latitudeSegments, longitudeSegments int, mode Mode) (*Primitive, error) {

	if latitudeSegments <= 0 {
		latitudeSegments = DefaultSphereSegments
	}

	if longitudeSegments <= 0 {
		longitudeSegments = DefaultSphereSegments
	}

	if latitudeSegments < MinSphereLatitudeSegments || longitudeSegments < MinSphereLongitudeSegments {
		return nil, ErrInvalidSegments
	}

	lat := float64(latitudeSegments)
	lon := float64(longitudeSegments)

	vertexCount := 3 * (2*(latitudeSegments-2)*longitudeSegments + 2*longitudeSegments)
	positions := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)
	uvs := make([]float32, 0, vertexCount*2)

	type vert struct {
		pos [3]float32
		uv  [2]float32
	}

	emit := func(verts ...vert) {
		for _, v := range verts {

			positions = append(positions, v.pos[:]...)
			uvs = append(uvs, v.uv[:]...)

			// Unit sphere, so the direction of the position is the normal
			l := float32(math.Sqrt(float64(v.pos[0]*v.pos[0] + v.pos[1]*v.pos[1] + v.pos[2]*v.pos[2])))
			normals = append(normals, v.pos[0]/l, v.pos[1]/l, v.pos[2]/l)
		}
	}

	for t := 0; t < latitudeSegments; t++ {

		theta1 := float64(t) / lat * math.Pi
		theta2 := float64(t+1) / lat * math.Pi

		v1 := float32(float64(t) / lat)
		v2 := float32(float64(t+1) / lat)

		for p := 0; p < longitudeSegments; p++ {

			phi1 := float64(p) / lon * 2 * math.Pi
			phi2 := float64(p+1) / lon * 2 * math.Pi

			// u is mirrored so textures aren't flipped horizontally
			u1 := float32(1 - float64(p)/lon)
			u2 := float32(1 - float64(p+1)/lon)

			// phi2   phi1
			//  |      |
			//  2------1 -- theta1
			//  |\ _   |
			//  |    \ |
			//  3------4 -- theta2
			c1 := vert{pos: sphericalToCartesian(theta1, phi1), uv: [2]float32{u1, v1}}
			c2 := vert{pos: sphericalToCartesian(theta1, phi2), uv: [2]float32{u2, v1}}
			c3 := vert{pos: sphericalToCartesian(theta2, phi2), uv: [2]float32{u2, v2}}
			c4 := vert{pos: sphericalToCartesian(theta2, phi1), uv: [2]float32{u1, v2}}

			switch t {
			case 0:
				emit(c1, c3, c4)
			case latitudeSegments - 1:
				emit(c3, c1, c2)
			default:
				emit(c1, c2, c4, c2, c3, c4)
			}
		}
	}

	return newPackedPrimitive(positions, normals, uvs, nil, material, mode)
}
