package main

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/hubastard/lumen/engine/colors"
	"github.com/hubastard/lumen/engine/core"
	glbackend "github.com/hubastard/lumen/engine/gfx/gl"
	"github.com/hubastard/lumen/engine/profiler"
	"github.com/hubastard/lumen/engine/ui"
)

// aabb is laid out as two std430 vec4s; w is unused.
type aabb struct {
	Min mgl32.Vec4
	Max mgl32.Vec4
}

func box(lo, hi mgl32.Vec3) aabb {
	return aabb{Min: lo.Vec4(0), Max: hi.Vec4(0)}
}

var demoBoxes = []aabb{
	box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
	box(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{0, 0, 0}),
	box(mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}),
	box(mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{2, 1, 1}),
	box(mgl32.Vec3{1, -2, 0}, mgl32.Vec3{2, 2, 1}),
	box(mgl32.Vec3{0, 0, -3}, mgl32.Vec3{1, 1, 3}),
	box(mgl32.Vec3{0.2, 0.2, 1.5}, mgl32.Vec3{0.8, 0.8, 2}),
	box(mgl32.Vec3{-3, -3, -3}, mgl32.Vec3{-1, -1, -1}),
	box(mgl32.Vec3{-4, -1, -1}, mgl32.Vec3{4, 1, 1}),
	box(mgl32.Vec3{2, 3, 4}, mgl32.Vec3{3, 4, 5}),
}

// Unit cube corners, stretched per instance to each box.
var unitCube = []float32{
	0, 0, 0,
	1, 0, 0,
	1, 1, 0,
	0, 1, 0,
	0, 0, 1,
	1, 0, 1,
	1, 1, 1,
	0, 1, 1,
}

var cubeEdges = []uint32{
	0, 1, 1, 2, 2, 3, 3, 0, // bottom
	4, 5, 5, 6, 6, 7, 7, 4, // top
	0, 4, 1, 5, 2, 6, 3, 7, // verticals
}

var cubeFaces = []uint32{
	0, 1, 2, 2, 3, 0,
	4, 5, 6, 6, 7, 4,
	0, 3, 7, 7, 4, 0,
	1, 2, 6, 6, 5, 1,
	0, 1, 5, 5, 4, 0,
	3, 2, 6, 6, 7, 3,
}

var renderModes = []string{"Lines", "Solid"}

const (
	modeLines = iota
	modeSolid
)

// AABBScene draws every box in a storage buffer as one instanced unit cube.
type AABBScene struct {
	sceneBase

	lines *glbackend.Mesh
	solid *glbackend.Mesh
	boxes *glbackend.StorageBuffer
	mode  int
	color colors.Color
}

func NewAABBScene(app *core.App) (core.Scene, error) {
	s := &AABBScene{
		sceneBase: newSceneBase(app, "AABB", mgl32.Vec3{0, 1, 10}),
		lines:     glbackend.NewMesh(unitCube, cubeEdges, 3),
		solid:     glbackend.NewMesh(unitCube, cubeFaces, 3),
		boxes:     glbackend.NewStorageBuffer(0, len(demoBoxes)*int(unsafe.Sizeof(aabb{})), gl.Ptr(demoBoxes), gl.STATIC_DRAW),
		color:     colors.Yellow,
	}
	return s, nil
}

func (s *AABBScene) Render() {
	defer profiler.Start("AABB.Render")()

	shader := s.program("AABBShader")
	if shader == nil {
		return
	}
	shader.Bind()
	shader.SetMat4("view", s.cam.View())
	shader.SetMat4("projection", s.cam.Projection())
	shader.SetVec4("color", s.color.Vec4())
	s.boxes.BindBase()

	n := int32(len(demoBoxes))
	if s.mode == modeLines {
		s.lines.DrawInstanced(gl.LINES, n)
	} else {
		s.solid.DrawInstanced(gl.TRIANGLES, n)
	}
}

func (s *AABBScene) RenderUI() {
	debugPanel(s.app, s, s.cam, func() {
		imgui.Text("Render Mode")
		s.mode = ui.RadioGroup(renderModes, s.mode)
		imgui.Text(fmt.Sprintf("Boxes: %d (%d bytes)", len(demoBoxes), s.boxes.Size()))
	})
}

// OnKeyRelease toggles the render mode with P.
func (s *AABBScene) OnKeyRelease(code core.Key) {
	if code == core.KeyP {
		s.mode = (s.mode + 1) % len(renderModes)
	}
}

func (s *AABBScene) Close() {
	s.lines.Delete()
	s.solid.Delete()
	s.boxes.Delete()
}
