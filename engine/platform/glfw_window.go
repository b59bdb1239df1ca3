package platform

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/lumen/engine/colors"
	"github.com/hubastard/lumen/engine/core"
)

// GLFWWindow implements core.Window. Its callbacks feed the InputHandler it
// owns; native key and button codes pass through unchanged.
type GLFWWindow struct {
	w     *glfw.Window
	input *core.InputHandler
	clear colors.Color
}

var _ core.Window = (*GLFWWindow)(nil)

// NewGLFWWindow creates a hidden GL 4.3 core window and makes its context
// current. Must be called on the main thread before any GL calls.
func NewGLFWWindow(cfg core.Config) (*GLFWWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	// 4.3 is the first core version with compute shaders and SSBOs.
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.StencilBits, 8)
	glfw.WindowHint(glfw.Samples, cfg.Samples)
	glfw.WindowHint(glfw.Visible, glfw.False)
	if cfg.GLDebug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	g := &GLFWWindow{
		w:     win,
		input: core.NewInput(cfg.MaxQueuedEvents),
		clear: cfg.ClearColor,
	}
	g.SetVSync(cfg.VSync)
	if cfg.Samples > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}
	fw, fh := win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fw), int32(fh))

	win.SetKeyCallback(g.onKey)
	win.SetMouseButtonCallback(g.onMouseButton)
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		g.input.OnMouseMove(int(x), int(y))
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		g.input.OnMouseWheel(yoff)
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			g.input.ClearKeys()
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
	})

	slog.Debug("window created", "width", cfg.Width, "height", cfg.Height, "samples", cfg.Samples)
	return g, nil
}

func (g *GLFWWindow) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		g.input.OnKeyPressed(core.Key(key))
	case glfw.Release:
		g.input.OnKeyReleased(core.Key(key))
	}
}

func (g *GLFWWindow) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		g.input.OnMousePressed(core.MouseButton(button))
	case glfw.Release:
		g.input.OnMouseReleased(core.MouseButton(button))
	}
}

// Update polls native events and clears the framebuffer for the next frame.
func (g *GLFWWindow) Update(float32) {
	glfw.PollEvents()
	gl.ClearColor(g.clear[0], g.clear[1], g.clear[2], g.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

func (g *GLFWWindow) Render()                     { g.w.SwapBuffers() }
func (g *GLFWWindow) Show()                       { g.w.Show() }
func (g *GLFWWindow) IsRunning() bool             { return !g.w.ShouldClose() }
func (g *GLFWWindow) Close()                      { g.w.SetShouldClose(true) }
func (g *GLFWWindow) Input() *core.InputHandler   { return g.input }
func (g *GLFWWindow) FramebufferSize() (int, int) { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) WindowSize() (int, int)      { return g.w.GetSize() }
func (g *GLFWWindow) SetTitle(t string)           { g.w.SetTitle(t) }

func (g *GLFWWindow) SetVSync(on bool) {
	if on {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

// Destroy releases the window and terminates GLFW.
func (g *GLFWWindow) Destroy() {
	if g.w != nil {
		g.w.Destroy()
		g.w = nil
	}
	glfw.Terminate()
}
