package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/core"
	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/resources"
	"github.com/hubastard/lumen/engine/scene"
)

// sceneBase carries what every demo scene shares: a name, its own camera and
// fly controller, and access to the app for input and resources.
type sceneBase struct {
	core.BaseScene

	name string
	app  *core.App
	cam  *scene.Camera
	ctrl *scene.FlyController
}

func newSceneBase(app *core.App, name string, eye mgl32.Vec3) sceneBase {
	cam := scene.NewCamera(eye)
	return sceneBase{
		name: name,
		app:  app,
		cam:  cam,
		ctrl: scene.NewFlyController(cam),
	}
}

func (b *sceneBase) Name() string { return b.name }

// Update keeps the camera aspect in sync with the framebuffer and moves it
// from the held keys.
func (b *sceneBase) Update(dt float32) {
	b.cam.SetViewportPixels(b.app.Window().FramebufferSize())
	b.ctrl.Update(b.app.Input(), dt)
}

func (b *sceneBase) OnMousePress(ev core.MouseEvent)   { b.ctrl.HandleMouse(ev) }
func (b *sceneBase) OnMouseRelease(ev core.MouseEvent) { b.ctrl.HandleMouse(ev) }
func (b *sceneBase) OnMouseWheel(ev core.MouseEvent)   { b.ctrl.HandleMouse(ev) }
func (b *sceneBase) OnMouseMove(ev core.MouseEvent)    { b.ctrl.HandleMouse(ev) }

// program and texture resolve shared resources by name. A missing name
// yields nil and the caller skips the draw.
func (b *sceneBase) program(name string) gfx.Program {
	p, _ := resources.Get[gfx.Program](b.app.Resources(), name)
	return p
}

func (b *sceneBase) texture(name string) gfx.Texture {
	t, _ := resources.Get[gfx.Texture](b.app.Resources(), name)
	return t
}
