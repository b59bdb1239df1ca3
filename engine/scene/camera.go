package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Projection int

const (
	Perspective Projection = iota
	Orthogonal
)

func (p Projection) String() string {
	if p == Orthogonal {
		return "orthogonal"
	}
	return "perspective"
}

const (
	nearPlane = 0.1
	farPlane  = 100.0
)

var (
	defaultForward = mgl32.Vec3{0, 0, -1}
	defaultRight   = mgl32.Vec3{1, 0, 0}
)

// Camera is a free-fly camera with a quaternion orientation. The orientation
// is kept normalized and the forward/right/up basis is always derived from
// it.
type Camera struct {
	position    mgl32.Vec3
	orientation mgl32.Quat
	forward     mgl32.Vec3
	right       mgl32.Vec3
	up          mgl32.Vec3

	fov    float32 // degrees
	aspect float32
	mode   Projection

	moveSpeed     float32 // units per second
	rotationSpeed float32 // degrees per second
	zoomSpeed     float32 // fov degrees per second
}

func NewCamera(position mgl32.Vec3) *Camera {
	c := &Camera{
		position:      position,
		orientation:   mgl32.QuatIdent(),
		fov:           45,
		aspect:        4.0 / 3.0,
		mode:          Perspective,
		moveSpeed:     2.5,
		rotationSpeed: 60,
		zoomSpeed:     20,
	}
	c.updateVectors()
	return c
}

// Move translates along dir (normalized first) by step units. A zero
// direction is ignored.
func (c *Camera) Move(dir mgl32.Vec3, step float32) {
	if dir.Len() == 0 {
		return
	}
	c.position = c.position.Add(dir.Normalize().Mul(step))
}

// Rotate applies a rotation of angle degrees around axis on top of the
// current orientation.
func (c *Camera) Rotate(axis mgl32.Vec3, angle float32) {
	if axis.Len() == 0 {
		return
	}
	r := mgl32.QuatRotate(mgl32.DegToRad(angle), axis.Normalize())
	c.orientation = r.Mul(c.orientation).Normalize()
	c.updateVectors()
}

func (c *Camera) SetOrientation(q mgl32.Quat) {
	if q.Len() == 0 {
		q = mgl32.QuatIdent()
	}
	c.orientation = q.Normalize()
	c.updateVectors()
}

// Zoom widens (positive) or narrows the field of view. It never drops below 0.
func (c *Camera) Zoom(delta float32) {
	c.fov += delta
	if c.fov < 0 {
		c.fov = 0
	}
}

func (c *Camera) SetPosition(p mgl32.Vec3)   { c.position = p }
func (c *Camera) SetFOV(deg float32)         { c.fov = deg }
func (c *Camera) SetAspectRatio(a float32)   { c.aspect = a }
func (c *Camera) SetMode(m Projection)       { c.mode = m }
func (c *Camera) SetMoveSpeed(s float32)     { c.moveSpeed = s }
func (c *Camera) SetRotationSpeed(s float32) { c.rotationSpeed = s }
func (c *Camera) SetZoomSpeed(s float32)     { c.zoomSpeed = s }

func (c *Camera) Position() mgl32.Vec3    { return c.position }
func (c *Camera) Orientation() mgl32.Quat { return c.orientation }
func (c *Camera) Forward() mgl32.Vec3     { return c.forward }
func (c *Camera) Right() mgl32.Vec3       { return c.right }
func (c *Camera) Up() mgl32.Vec3          { return c.up }
func (c *Camera) FOV() float32            { return c.fov }
func (c *Camera) AspectRatio() float32    { return c.aspect }
func (c *Camera) Mode() Projection        { return c.mode }
func (c *Camera) MoveSpeed() float32      { return c.moveSpeed }
func (c *Camera) RotationSpeed() float32  { return c.rotationSpeed }
func (c *Camera) ZoomSpeed() float32      { return c.zoomSpeed }

// SetViewportPixels updates the aspect ratio from a framebuffer size.
func (c *Camera) SetViewportPixels(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	c.aspect = float32(w) / float32(h)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.forward), c.up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	if c.mode == Orthogonal {
		return mgl32.Ortho(-2, 2, -1.5, 1.5, nearPlane, farPlane)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, nearPlane, farPlane)
}

func (c *Camera) updateVectors() {
	c.forward = c.orientation.Rotate(defaultForward).Normalize()
	c.right = c.orientation.Rotate(defaultRight).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
}
