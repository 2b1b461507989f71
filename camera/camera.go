// Package camera implements the orbit camera the renderer reads its view
// and projection matrices from.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	fovY = 45.0
	near = 0.1
	far  = 1000.0

	minDistance = 1.5
	maxDistance = 100.0
	maxPitch    = 89.0
)

// Camera orbits a target point. Orbit and Zoom move it on a sphere around
// the target; Update recomputes the view matrix and must be called before
// each frame.
type Camera struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	aspect     float32
	projection mgl32.Mat4
	view       mgl32.Mat4
}

// New returns a camera at position looking at target with a square aspect.
func New(position, target mgl32.Vec3) *Camera {
	c := &Camera{
		position: position,
		target:   target,
		up:       mgl32.Vec3{0, 1, 0},
		aspect:   1,
	}
	c.UpdateProjectionMatrix()
	c.Update()
	return c
}

func (c *Camera) SetAspectRatio(aspect float32) {
	c.aspect = aspect
}

// UpdateProjectionMatrix rebuilds the projection after an aspect change.
func (c *Camera) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(fovY), c.aspect, near, far)
}

// Update rebuilds the view matrix from the current position.
func (c *Camera) Update() {
	c.view = mgl32.LookAtV(c.position, c.target, c.up)
}

// Orbit rotates the camera around the target by the given angles in
// degrees. Pitch stops short of the poles.
func (c *Camera) Orbit(yaw, pitch float32) {
	offset := c.position.Sub(c.target)
	r, theta, phi := mgl32.CartesianToSpherical(mgl32.Vec3{offset[0], offset[2], offset[1]})

	// theta is measured from +Y in camera space, so pitch is 90 - theta.
	elevation := 90 - mgl32.RadToDeg(theta) + pitch
	elevation = mgl32.Clamp(elevation, -maxPitch, maxPitch)
	theta = mgl32.DegToRad(90 - elevation)
	phi += mgl32.DegToRad(yaw)

	s := mgl32.SphericalToCartesian(r, theta, phi)
	c.position = c.target.Add(mgl32.Vec3{s[0], s[2], s[1]})
}

// Zoom scales the distance to the target by factor, within fixed bounds.
func (c *Camera) Zoom(factor float32) {
	offset := c.position.Sub(c.target)
	d := mgl32.Clamp(offset.Len()*factor, minDistance, maxDistance)
	c.position = c.target.Add(offset.Normalize().Mul(d))
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 { return c.projection }
func (c *Camera) ViewMatrix() mgl32.Mat4       { return c.view }
func (c *Camera) Position() mgl32.Vec3         { return c.position }
func (c *Camera) Target() mgl32.Vec3           { return c.target }
func (c *Camera) Aspect() float32              { return c.aspect }
