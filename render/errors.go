package render

import (
	"errors"
	"fmt"
)

var (
	// ErrNotCreated is returned when a drawable is bound or drawn before
	// its buffers were uploaded.
	ErrNotCreated = errors.New("render: drawable used before create")
	// ErrAlreadyCreated is returned when buffers are uploaded twice without
	// an intervening Release.
	ErrAlreadyCreated = errors.New("render: drawable already created")
	// ErrInvalidMesh wraps every MeshData validation failure.
	ErrInvalidMesh = errors.New("render: invalid mesh")
	// ErrMissingStage is returned when a program is built without both a
	// vertex and a fragment unit.
	ErrMissingStage = errors.New("render: program needs a vertex and a fragment shader")
)

// CompileError carries the compiler diagnostic of a failed shader unit.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader:\n%s", e.Stage, e.Log)
}

// LinkError carries the linker diagnostic of a failed program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program:\n%s", e.Log)
}
