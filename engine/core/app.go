package core

import (
	"log/slog"
	"time"

	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/profiler"
	"github.com/hubastard/lumen/engine/resources"
)

// Window abstraction. The window owns the native context and the
// InputHandler its callbacks feed.
type Window interface {
	Update(dt float32) // polls native events; input callbacks run synchronously
	Render()           // presents the frame
	Show()
	IsRunning() bool
	Close() // requests shutdown; IsRunning reports false afterwards
	Destroy()
	Input() *InputHandler
	FramebufferSize() (int, int)
	SetTitle(title string)
}

// Overlay is the immediate-mode debug UI. Scenes issue widgets from RenderUI
// between NewFrame and Render.
type Overlay interface {
	NewFrame(dt float32)
	Render()
	Shutdown()
}

// MouseCapturer is implemented by overlays that can claim the cursor, e.g.
// while it hovers a panel.
type MouseCapturer interface {
	WantsMouse() bool
}

// App owns the window, the resource cache and the scene list, and drives
// one update/render cycle per frame.
type App struct {
	cfg       Config
	window    Window
	resources *resources.Cache
	device    gfx.Device
	overlay   Overlay

	scenes  []Scene
	current int
	closing bool

	now    func() time.Time
	last   time.Time
	dt     float32
	frames uint64
}

func NewApp(cfg Config, win Window, cache *resources.Cache) *App {
	a := &App{cfg: cfg, window: win, resources: cache, now: time.Now}
	a.last = a.now()
	return a
}

func (a *App) Config() Config              { return a.cfg }
func (a *App) Window() Window              { return a.window }
func (a *App) Input() *InputHandler        { return a.window.Input() }
func (a *App) Resources() *resources.Cache { return a.resources }
func (a *App) Device() gfx.Device          { return a.device }
func (a *App) SetOverlay(o Overlay)        { a.overlay = o }
func (a *App) AddScene(s Scene)            { a.scenes = append(a.scenes, s) }
func (a *App) Scenes() []Scene             { return a.scenes }
func (a *App) SceneIndex() int             { return a.current }
func (a *App) DeltaTime() float32          { return a.dt }
func (a *App) Frames() uint64              { return a.frames }
func (a *App) IsRunning() bool             { return !a.closing && a.window.IsRunning() }

func (a *App) CurrentScene() Scene {
	if len(a.scenes) == 0 {
		return nil
	}
	return a.scenes[a.current]
}

// Quit asks the window to close. The loop exits at the top of the next
// iteration.
func (a *App) Quit() {
	if a.closing {
		return
	}
	a.closing = true
	a.window.Close()
	slog.Info("shutdown requested", "frames", a.frames)
}

// NextScene advances the active scene circularly.
func (a *App) NextScene() {
	if len(a.scenes) == 0 {
		return
	}
	a.current = (a.current + 1) % len(a.scenes)
	s := a.scenes[a.current]
	a.window.SetTitle(a.cfg.Title + " - " + s.Name())
	slog.Info("scene switched", "index", a.current, "scene", s.Name())
}

// Run drives frames until the window closes or Quit is called.
func (a *App) Run() {
	a.window.Show()
	a.last = a.now()
	for a.IsRunning() {
		a.Frame()
	}
}

// Frame runs one full cycle: timing, update, render, present.
func (a *App) Frame() {
	now := a.now()
	dt := float32(now.Sub(a.last).Seconds())
	a.last = now

	endUpdate := profiler.Start("App.Update")
	a.Update(dt)
	endUpdate()
	endRender := profiler.Start("App.Render")
	a.Render()
	endRender()
	profiler.EndFrame()
	a.frames++
}

// Update polls the window, drains both input queues into the active scene in
// FIFO order, then advances the scene by dt. TAB and ESCAPE releases are
// handled here and never reach the scene.
func (a *App) Update(dt float32) {
	a.dt = dt
	a.window.Update(dt)

	in := a.window.Input()
	for ev, ok := in.KeyEvent(); ok; ev, ok = in.KeyEvent() {
		a.dispatchKey(ev)
	}
	for ev, ok := in.MouseEvent(); ok; ev, ok = in.MouseEvent() {
		a.dispatchMouse(ev)
	}

	if s := a.CurrentScene(); s != nil {
		s.Update(dt)
	}
}

func (a *App) dispatchKey(ev KeyEvent) {
	switch ev.Code {
	case KeyTab:
		if ev.Action == KeyRelease {
			a.NextScene()
		}
		return
	case KeyEscape:
		if ev.Action == KeyRelease {
			a.Quit()
		}
		return
	}

	s := a.CurrentScene()
	if s == nil {
		return
	}
	switch ev.Action {
	case KeyPress:
		s.OnKeyPress(ev.Code)
	case KeyRelease:
		s.OnKeyRelease(ev.Code)
	}
}

// dispatchMouse forwards ev to the active scene. While the overlay claims the
// cursor only releases get through, so a drag that began in the scene still
// ends there.
func (a *App) dispatchMouse(ev MouseEvent) {
	s := a.CurrentScene()
	if s == nil {
		return
	}
	if c, ok := a.overlay.(MouseCapturer); ok && c.WantsMouse() && ev.Action != MouseRelease {
		return
	}
	switch ev.Action {
	case MousePress:
		s.OnMousePress(ev)
	case MouseRelease:
		s.OnMouseRelease(ev)
	case MouseScrollUp, MouseScrollDown:
		s.OnMouseWheel(ev)
	case MouseMove:
		if m, ok := s.(MouseMover); ok {
			m.OnMouseMove(ev)
		}
	}
}

// Render draws the active scene and its overlay panel, then presents.
func (a *App) Render() {
	if s := a.CurrentScene(); s != nil {
		s.Render()
		if a.overlay != nil {
			a.overlay.NewFrame(a.dt)
			s.RenderUI()
			a.overlay.Render()
		}
	}
	a.window.Render()
}
