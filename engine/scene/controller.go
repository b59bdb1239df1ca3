package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/core"
)

// FlyController: WASD move, SPACE/LSHIFT up/down, arrows yaw/pitch, Q/E roll,
// period/comma zoom. Keys are read from the input hold state every frame.
type FlyController struct {
	Camera    *Camera
	RollSpeed float32 // degrees per second

	// MouseLook turns the camera while the right button is dragged.
	MouseLook   bool
	Sensitivity float32 // degrees per pixel

	lastMouse [2]int
	dragging  bool
}

func NewFlyController(cam *Camera) *FlyController {
	return &FlyController{
		Camera:      cam,
		RollSpeed:   200,
		MouseLook:   true,
		Sensitivity: 0.15,
	}
}

var worldUp = mgl32.Vec3{0, 1, 0}

func (fc *FlyController) Update(in *core.InputHandler, dt float32) {
	cam := fc.Camera
	step := cam.MoveSpeed() * dt
	turn := cam.RotationSpeed() * dt

	if in.IsKeyPressed(core.KeyW) {
		cam.Move(cam.Forward(), step)
	}
	if in.IsKeyPressed(core.KeyS) {
		cam.Move(cam.Forward(), -step)
	}
	if in.IsKeyPressed(core.KeyA) {
		cam.Move(cam.Right(), -step)
	}
	if in.IsKeyPressed(core.KeyD) {
		cam.Move(cam.Right(), step)
	}
	if in.IsKeyPressed(core.KeySpace) {
		cam.Move(worldUp, step)
	}
	if in.IsKeyPressed(core.KeyLeftShift) {
		cam.Move(worldUp, -step)
	}

	if in.IsKeyPressed(core.KeyLeft) {
		cam.Rotate(cam.Up(), turn)
	}
	if in.IsKeyPressed(core.KeyRight) {
		cam.Rotate(cam.Up(), -turn)
	}
	if in.IsKeyPressed(core.KeyUp) {
		cam.Rotate(cam.Right(), turn)
	}
	if in.IsKeyPressed(core.KeyDown) {
		cam.Rotate(cam.Right(), -turn)
	}
	if in.IsKeyPressed(core.KeyQ) {
		cam.Rotate(cam.Forward(), fc.RollSpeed*dt)
	}
	if in.IsKeyPressed(core.KeyE) {
		cam.Rotate(cam.Forward(), -fc.RollSpeed*dt)
	}

	if in.IsKeyPressed(core.KeyPeriod) {
		cam.Zoom(-cam.ZoomSpeed() * dt)
	}
	if in.IsKeyPressed(core.KeyComma) {
		cam.Zoom(cam.ZoomSpeed() * dt)
	}
}

// HandleMouse consumes a mouse event. It returns true when the event was
// used for mouse-look or zoom.
func (fc *FlyController) HandleMouse(ev core.MouseEvent) bool {
	switch ev.Action {
	case core.MouseScrollUp:
		fc.Camera.Zoom(-1)
		return true
	case core.MouseScrollDown:
		fc.Camera.Zoom(1)
		return true
	case core.MousePress:
		if ev.Button == core.MouseButtonRight {
			fc.dragging = true
			fc.lastMouse = ev.Position
			return true
		}
	case core.MouseRelease:
		if ev.Button == core.MouseButtonRight {
			fc.dragging = false
			return true
		}
	case core.MouseMove:
		if !fc.MouseLook || !fc.dragging || ev.Button != core.MouseButtonRight {
			fc.lastMouse = ev.Position
			return false
		}
		dx := float32(ev.Position[0] - fc.lastMouse[0])
		dy := float32(ev.Position[1] - fc.lastMouse[1])
		fc.lastMouse = ev.Position
		fc.Camera.Rotate(worldUp, -dx*fc.Sensitivity)
		fc.Camera.Rotate(fc.Camera.Right(), -dy*fc.Sensitivity)
		return true
	}
	return false
}
