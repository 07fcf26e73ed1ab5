package meshes

import (
	"errors"
	"fmt"
)

var (
	ErrMissingPosition = errors.New("primitive has no POSITION attribute")
	// ErrInvalidSegments is returned by NewSphere when there are too few segments to close the sphere
	ErrInvalidSegments = fmt.Errorf("sphere needs at least %d latitude and %d longitude segments", MinSphereLatitudeSegments, MinSphereLongitudeSegments)
)

type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s but got %s", e.Expected, e.Got)
}

type MissingArgumentError struct {
	Arg string
}

func (e *MissingArgumentError) Error() string {
	return "missing required argument: " + e.Arg
}

// AttributeCountMismatchError is returned when the attributes of one primitive
// don't describe the same number of vertices
type AttributeCountMismatchError struct {
	Attribute string
	Count     int
	Expected  int
}

func (e *AttributeCountMismatchError) Error() string {
	return fmt.Sprintf("attribute %s has %d elements but %d were expected", e.Attribute, e.Count, e.Expected)
}

type IndexOutOfRangeError struct {
	Index       uint32
	VertexCount int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d is out of range of %d vertices", e.Index, e.VertexCount)
}
