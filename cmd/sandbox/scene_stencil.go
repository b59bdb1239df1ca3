package main

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/hubastard/lumen/engine/colors"
	"github.com/hubastard/lumen/engine/core"
	glbackend "github.com/hubastard/lumen/engine/gfx/gl"
	"github.com/hubastard/lumen/engine/profiler"
)

// position xyz, uv
var cubeVertices = []float32{
	-0.5, -0.5, -0.5, 0, 0,
	0.5, -0.5, -0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,
	0.5, 0.5, -0.5, 1, 1,
	-0.5, 0.5, -0.5, 0, 1,
	-0.5, -0.5, -0.5, 0, 0,

	-0.5, -0.5, 0.5, 0, 0,
	0.5, -0.5, 0.5, 1, 0,
	0.5, 0.5, 0.5, 1, 1,
	0.5, 0.5, 0.5, 1, 1,
	-0.5, 0.5, 0.5, 0, 1,
	-0.5, -0.5, 0.5, 0, 0,

	-0.5, 0.5, 0.5, 1, 0,
	-0.5, 0.5, -0.5, 1, 1,
	-0.5, -0.5, -0.5, 0, 1,
	-0.5, -0.5, -0.5, 0, 1,
	-0.5, -0.5, 0.5, 0, 0,
	-0.5, 0.5, 0.5, 1, 0,

	0.5, 0.5, 0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,
	0.5, -0.5, -0.5, 0, 1,
	0.5, -0.5, -0.5, 0, 1,
	0.5, -0.5, 0.5, 0, 0,
	0.5, 0.5, 0.5, 1, 0,

	-0.5, -0.5, -0.5, 0, 1,
	0.5, -0.5, -0.5, 1, 1,
	0.5, -0.5, 0.5, 1, 0,
	0.5, -0.5, 0.5, 1, 0,
	-0.5, -0.5, 0.5, 0, 0,
	-0.5, -0.5, -0.5, 0, 1,

	-0.5, 0.5, -0.5, 0, 1,
	0.5, 0.5, -0.5, 1, 1,
	0.5, 0.5, 0.5, 1, 0,
	0.5, 0.5, 0.5, 1, 0,
	-0.5, 0.5, 0.5, 0, 0,
	-0.5, 0.5, -0.5, 0, 1,
}

// uv above 1 so the floor texture repeats.
var planeVertices = []float32{
	5, -0.5, 5, 2, 0,
	-5, -0.5, 5, 0, 0,
	-5, -0.5, -5, 0, 2,

	5, -0.5, 5, 2, 0,
	-5, -0.5, -5, 0, 2,
	5, -0.5, -5, 2, 2,
}

const outlineScale = 1.1

// StencilScene draws two textured cubes on a floor and outlines them with a
// second, scaled pass that only lands where the stencil is not 1.
type StencilScene struct {
	sceneBase

	cube  *glbackend.Mesh
	plane *glbackend.Mesh
	cubes []mgl32.Vec3

	outline colors.Color
}

func NewStencilScene(app *core.App) (core.Scene, error) {
	s := &StencilScene{
		sceneBase: newSceneBase(app, "Stencil", mgl32.Vec3{0, 1, 5}),
		cube:      glbackend.NewMesh(cubeVertices, nil, 3, 2),
		plane:     glbackend.NewMesh(planeVertices, nil, 3, 2),
		cubes:     []mgl32.Vec3{{-1, 0, -1}, {2, 0, 0}},
		outline:   colors.Outline,
	}
	return s, nil
}

func (s *StencilScene) Render() {
	defer profiler.Start("Stencil.Render")()

	shader := s.program("StencilShader")
	single := s.program("StencilShaderSingleColor")
	cubeTex := s.texture("Cube")
	floorTex := s.texture("Floor")
	if shader == nil || single == nil || cubeTex == nil || floorTex == nil {
		return
	}

	view := s.cam.View()
	proj := s.cam.Projection()
	single.Bind()
	single.SetMat4("view", view)
	single.SetMat4("projection", proj)
	single.SetVec4("outlineColor", s.outline.Vec4())

	shader.Bind()
	shader.SetMat4("view", view)
	shader.SetMat4("projection", proj)

	// Floor does not write the stencil.
	gl.StencilMask(0x00)
	shader.SetTexture("texture1", floorTex, 0)
	shader.SetMat4("model", mgl32.Ident4())
	s.plane.Draw(gl.TRIANGLES)

	// First pass marks the cubes with 1.
	gl.StencilFunc(gl.ALWAYS, 1, 0xFF)
	gl.StencilMask(0xFF)
	shader.SetTexture("texture1", cubeTex, 0)
	for _, p := range s.cubes {
		shader.SetMat4("model", mgl32.Translate3D(p.X(), p.Y(), p.Z()))
		s.cube.Draw(gl.TRIANGLES)
	}

	// Second pass draws the scaled cubes where the stencil is not 1.
	gl.StencilFunc(gl.NOTEQUAL, 1, 0xFF)
	gl.StencilMask(0x00)
	gl.Disable(gl.DEPTH_TEST)
	single.Bind()
	scale := mgl32.Scale3D(outlineScale, outlineScale, outlineScale)
	for _, p := range s.cubes {
		single.SetMat4("model", mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(scale))
		s.cube.Draw(gl.TRIANGLES)
	}

	gl.StencilMask(0xFF)
	gl.StencilFunc(gl.ALWAYS, 0, 0xFF)
	gl.Enable(gl.DEPTH_TEST)
}

func (s *StencilScene) RenderUI() {
	debugPanel(s.app, s, s.cam, func() {
		c := [3]float32{s.outline[0], s.outline[1], s.outline[2]}
		if imgui.ColorEdit3("Outline", &c) {
			s.outline = colors.Color{c[0], c[1], c[2], 1}
		}
	})
}

func (s *StencilScene) Close() {
	s.cube.Delete()
	s.plane.Delete()
}
