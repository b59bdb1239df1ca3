package core

// Scene is one self-contained render mode. Scenes are created once by Run
// and live until teardown; only the active one receives input and frames.
type Scene interface {
	Name() string
	Update(dt float32)
	Render()
	RenderUI()

	OnKeyPress(code Key)
	OnKeyRelease(code Key)
	OnMousePress(ev MouseEvent)
	OnMouseRelease(ev MouseEvent)
	OnMouseWheel(ev MouseEvent)
}

// MouseMover is implemented by scenes that want cursor motion events.
type MouseMover interface {
	OnMouseMove(ev MouseEvent)
}

// SceneCloser is implemented by scenes that own GPU objects to release at
// teardown.
type SceneCloser interface {
	Close()
}

// BaseScene provides no-op input handlers for embedding.
type BaseScene struct{}

func (BaseScene) OnKeyPress(Key)            {}
func (BaseScene) OnKeyRelease(Key)          {}
func (BaseScene) OnMousePress(MouseEvent)   {}
func (BaseScene) OnMouseRelease(MouseEvent) {}
func (BaseScene) OnMouseWheel(MouseEvent)   {}
