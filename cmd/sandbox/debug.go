package main

import (
	"fmt"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/hubastard/lumen/engine/core"
	"github.com/hubastard/lumen/engine/profiler"
	"github.com/hubastard/lumen/engine/scene"
	"github.com/hubastard/lumen/engine/ui"
)

// gpuInfo is implemented by devices that report driver strings.
type gpuInfo interface {
	GPURenderer() string
	GPUVersion() string
}

const controlsHelp = "WASD/space/shift move, arrows turn, Q/E roll, ,/. zoom\nTab next scene, Esc quit"

// debugPanel draws the common header of every scene panel, then extra.
func debugPanel(app *core.App, s core.Scene, cam *scene.Camera, extra func()) {
	ui.Panel("Menu", func() {
		imgui.Text(s.Name() + " Scene")
		ui.FrameStats(app.DeltaTime())
		imgui.Separator()
		imgui.Text(controlsHelp)

		if extra != nil {
			imgui.Separator()
			extra()
		}

		imgui.Separator()
		ui.Vec3("Camera Position", cam.Position())
		ui.Vec3("Camera Forward", cam.Forward())
		ui.Quat("Camera Orientation", cam.Orientation())
		imgui.Text(fmt.Sprintf("FOV: %.1f (%s)", cam.FOV(), cam.Mode()))

		if imgui.CollapsingHeader("Stats") {
			for _, sc := range profiler.Snapshot() {
				imgui.Text(fmt.Sprintf("%-24s %6.3f ms x%d", sc.Name, float64(sc.Avg.Microseconds())/1000, sc.Calls))
			}
			imgui.Text(fmt.Sprintf("Memory: %.3f MB, %d allocs", float64(profiler.MemoryUsage())/(1<<20), profiler.MemoryAllocs()))
			imgui.Text(fmt.Sprintf("Goroutines: %d, CPUs: %d", profiler.NumGoroutine(), profiler.NumCPU()))
			if info, ok := app.Device().(gpuInfo); ok {
				imgui.Text("GPU: " + info.GPURenderer())
				imgui.Text("GL: " + info.GPUVersion())
			}
		}
	})
}
