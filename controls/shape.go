package controls

import "fmt"

// Shape selects which geometry is drawn in front of the skybox.
type Shape int

const (
	ShapeIcosphere Shape = iota
	ShapeCubeFlat
	ShapeCube
	ShapeSquare
)

var shapeNames = [...]string{
	ShapeIcosphere: "icosphere",
	ShapeCubeFlat:  "cubeflat",
	ShapeCube:      "cube",
	ShapeSquare:    "square",
}

func (s Shape) valid() bool {
	return s >= 0 && int(s) < len(shapeNames)
}

func (s Shape) String() string {
	if !s.valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

func (s Shape) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid shape %d", int(s))
	}
	return []byte(shapeNames[s]), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	for i, name := range shapeNames {
		if name == string(text) {
			*s = Shape(i)
			return nil
		}
	}
	return fmt.Errorf("unknown shape %q", text)
}
