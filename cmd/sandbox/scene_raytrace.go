package main

import (
	"fmt"
	"log/slog"
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

// Fullscreen quad, counter-clockwise: position xy, uv.
var quadVertices = []float32{
	-1, 1, 0, 1,
	1, -1, 1, 0,
	-1, -1, 0, 0,

	-1, 1, 0, 1,
	1, 1, 1, 1,
	1, -1, 1, 0,
}

// sphere matches the std430 layout of the shader's Sphere struct.
type sphere struct {
	Center       mgl32.Vec3
	Radius       float32
	Color        mgl32.Vec3
	Reflectivity float32
}

var demoSpheres = []sphere{
	{Center: mgl32.Vec3{5, 1, 6}, Radius: 1, Color: colors.Red.Vec3(), Reflectivity: 0.5},
	{Center: mgl32.Vec3{5.5, 1.5, 8}, Radius: 0.7, Color: colors.Green.Vec3(), Reflectivity: 0.2},
	{Center: mgl32.Vec3{1.5, 1.5, 10.5}, Radius: 1.2, Color: colors.Blue.Vec3(), Reflectivity: 0.7},
}

const (
	basicComputeSize  = 1024
	basicComputeGroup = 256
	traceGroupSize    = 16
)

var traceModes = []string{"RayTraceMulti", "RayTrace"}

// RayTraceScene ray traces spheres in a compute shader into an image and
// shows it on a fullscreen quad.
type RayTraceScene struct {
	sceneBase

	quad    *glbackend.Mesh
	spheres *glbackend.StorageBuffer
	target  *glbackend.ImageTexture
	mode    int
}

func NewRayTraceScene(app *core.App) (core.Scene, error) {
	s := &RayTraceScene{
		sceneBase: newSceneBase(app, "RayTrace", mgl32.Vec3{0, 1, 0}),
	}
	// The spheres sit down +z.
	s.cam.Rotate(mgl32.Vec3{0, 1, 0}, 180)

	if err := s.runBasicCompute(); err != nil {
		return nil, err
	}

	s.quad = glbackend.NewMesh(quadVertices, nil, 2, 2)
	s.spheres = glbackend.NewStorageBuffer(1, len(demoSpheres)*int(unsafe.Sizeof(sphere{})), gl.Ptr(demoSpheres), gl.STATIC_DRAW)
	w, h := app.Window().FramebufferSize()
	s.target = glbackend.NewImageTexture(max(w, 1), max(h, 1))
	return s, nil
}

// runBasicCompute fills a 1024 int buffer with the BasicCompute program and
// logs the head of the result.
func (s *RayTraceScene) runBasicCompute() error {
	p := s.program("BasicCompute")
	if p == nil {
		return fmt.Errorf("raytrace: program %q not loaded", "BasicCompute")
	}
	data := make([]int32, basicComputeSize)
	buf := glbackend.NewStorageBuffer(0, len(data)*4, gl.Ptr(data), gl.DYNAMIC_COPY)
	defer buf.Delete()

	p.Bind()
	p.Dispatch(basicComputeSize/basicComputeGroup, 1, 1)
	buf.Read(gl.Ptr(data))
	slog.Info("basic compute done", "first", data[:10])
	return nil
}

func (s *RayTraceScene) Update(dt float32) {
	s.sceneBase.Update(dt)
	w, h := s.app.Window().FramebufferSize()
	if tw, th := s.target.Size(); w > 0 && h > 0 && (tw != w || th != h) {
		s.target.Delete()
		s.target = glbackend.NewImageTexture(w, h)
	}
}

func (s *RayTraceScene) Render() {
	defer profiler.Start("RayTrace.Render")()

	trace := s.program(traceModes[s.mode])
	quad := s.program("Quad")
	if trace == nil || quad == nil {
		return
	}

	view := s.cam.View()
	proj := s.cam.Projection()
	trace.Bind()
	trace.SetMat4("invViewMatrix", view.Inv())
	trace.SetMat4("invProjMatrix", proj.Inv())
	trace.SetVec3("cameraPos", s.cam.Position())
	trace.SetInt("numSpheres", int32(len(demoSpheres)))
	s.spheres.BindBase()
	s.target.BindImage(0)

	w, h := s.target.Size()
	trace.Dispatch(uint32(w+traceGroupSize-1)/traceGroupSize, uint32(h+traceGroupSize-1)/traceGroupSize, 1)
	glbackend.ImageBarrier()

	quad.Bind()
	s.target.Bind(0)
	quad.SetInt("screenTexture", 0)
	s.quad.Draw(gl.TRIANGLES)
}

func (s *RayTraceScene) RenderUI() {
	debugPanel(s.app, s, s.cam, func() {
		imgui.Text("Shader")
		s.mode = ui.RadioGroup(traceModes, s.mode)
		w, h := s.target.Size()
		imgui.Text(fmt.Sprintf("Spheres: %d, image %dx%d", len(demoSpheres), w, h))
	})
}

func (s *RayTraceScene) Close() {
	s.quad.Delete()
	s.spheres.Delete()
	s.target.Delete()
}
