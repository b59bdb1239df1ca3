package core

import "fmt"

type fakeWindow struct {
	input   *InputHandler
	closed  bool
	shown   bool
	title   string
	updates int
	renders int
	destroy int

	// maxFrames closes the window after that many updates when non-zero.
	maxFrames int
	// onUpdate injects input as if native callbacks had fired during polling.
	onUpdate func(in *InputHandler)
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{input: NewInput(DefaultMaxQueuedEvents)}
}

func (w *fakeWindow) Update(float32) {
	w.updates++
	if w.onUpdate != nil {
		w.onUpdate(w.input)
	}
	if w.maxFrames > 0 && w.updates >= w.maxFrames {
		w.closed = true
	}
}

func (w *fakeWindow) Render()                     { w.renders++ }
func (w *fakeWindow) Show()                       { w.shown = true }
func (w *fakeWindow) IsRunning() bool             { return !w.closed }
func (w *fakeWindow) Close()                      { w.closed = true }
func (w *fakeWindow) Destroy()                    { w.destroy++ }
func (w *fakeWindow) Input() *InputHandler        { return w.input }
func (w *fakeWindow) FramebufferSize() (int, int) { return 800, 600 }
func (w *fakeWindow) SetTitle(t string)           { w.title = t }

// recorder is shared by fake scenes to observe call order across scenes.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

type fakeScene struct {
	name string
	rec  *recorder

	keys   []KeyEvent
	mouse  []MouseEvent
	moves  int
	frames int
	closed bool
}

func (s *fakeScene) Name() string                 { return s.name }
func (s *fakeScene) Update(float32)               { s.frames++; s.rec.add("%s.update", s.name) }
func (s *fakeScene) Render()                      { s.rec.add("%s.render", s.name) }
func (s *fakeScene) RenderUI()                    { s.rec.add("%s.ui", s.name) }
func (s *fakeScene) OnMousePress(ev MouseEvent)   { s.mouse = append(s.mouse, ev) }
func (s *fakeScene) OnMouseRelease(ev MouseEvent) { s.mouse = append(s.mouse, ev) }
func (s *fakeScene) OnMouseWheel(ev MouseEvent)   { s.mouse = append(s.mouse, ev) }
func (s *fakeScene) Close()                       { s.closed = true; s.rec.add("%s.close", s.name) }

func (s *fakeScene) OnKeyPress(k Key) {
	s.keys = append(s.keys, KeyEvent{Action: KeyPress, Code: k})
}

func (s *fakeScene) OnKeyRelease(k Key) {
	s.keys = append(s.keys, KeyEvent{Action: KeyRelease, Code: k})
}

// moverScene also wants cursor motion.
type moverScene struct {
	fakeScene
}

func (s *moverScene) OnMouseMove(MouseEvent) { s.moves++ }

type fakeOverlay struct {
	rec       *recorder
	shutdown  bool
	wantMouse bool
}

func (o *fakeOverlay) NewFrame(float32) { o.rec.add("overlay.begin") }
func (o *fakeOverlay) Render()          { o.rec.add("overlay.end") }
func (o *fakeOverlay) Shutdown()        { o.shutdown = true }
func (o *fakeOverlay) WantsMouse() bool { return o.wantMouse }
