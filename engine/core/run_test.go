package core

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/gfx/gfxtest"
	"github.com/hubastard/lumen/engine/resources"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 128})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type runFixture struct {
	cfg     Config
	win     *fakeWindow
	dev     *gfxtest.Device
	overlay *fakeOverlay
	rec     *recorder
	p       Platform
}

func newRunFixture(t *testing.T) *runFixture {
	f := &runFixture{
		cfg: DefaultConfig(),
		win: newFakeWindow(),
		dev: gfxtest.NewDevice(),
		rec: &recorder{},
	}
	f.win.maxFrames = 2
	f.overlay = &fakeOverlay{rec: f.rec}
	f.cfg.Resources = resources.Manifest{
		Programs: []resources.ProgramEntry{{Name: "Quad", Sources: []string{"quad.vs:VERTEX", "quad.fs:FRAGMENT"}}},
		Textures: []resources.TextureEntry{{Name: "Floor", Path: "floor.png"}},
	}
	f.p = Platform{
		NewWindow:  func(Config) (Window, error) { return f.win, nil },
		NewDevice:  func(Window, Config) (gfx.Device, error) { return f.dev, nil },
		NewOverlay: func(Window, Config) (Overlay, error) { return f.overlay, nil },
		Assets: fstest.MapFS{
			"quad.vs":   {Data: []byte("void main() {}")},
			"quad.fs":   {Data: []byte("void main() {}")},
			"floor.png": {Data: pngBytes(t)},
		},
	}
	return f
}

func (f *runFixture) factory(name string) SceneFactory {
	return func(app *App) (Scene, error) {
		_, ok := resources.Get[gfx.Program](app.Resources(), "Quad")
		if !ok {
			return nil, errors.New("program Quad missing at scene construction")
		}
		if app.Device() != gfx.Device(f.dev) {
			return nil, errors.New("device not attached to the app")
		}
		return &fakeScene{name: name, rec: f.rec}, nil
	}
}

func TestRun(t *testing.T) {
	f := newRunFixture(t)
	err := Run(f.cfg, f.p, f.factory("A"), f.factory("B"))
	require.NoError(t, err)

	assert.True(t, f.win.shown)
	assert.Equal(t, 1, f.win.destroy)
	assert.Equal(t, "lumen - A", f.win.title)
	assert.Equal(t, 2, f.win.renders)
	assert.True(t, f.overlay.shutdown)

	require.Len(t, f.dev.Programs, 1)
	assert.True(t, f.dev.Programs[0].Linked)
	assert.True(t, f.dev.Programs[0].Deleted, "cache closed at teardown")
	require.Len(t, f.dev.Textures, 1)
	assert.True(t, f.dev.Textures[0].Deleted)

	// Scenes are closed in reverse creation order.
	n := len(f.rec.calls)
	assert.Equal(t, []string{"B.close", "A.close"}, f.rec.calls[n-2:])
}

func TestRunWithoutScenes(t *testing.T) {
	f := newRunFixture(t)
	assert.ErrorIs(t, Run(f.cfg, f.p), ErrNoScenes)
}

func TestRunInvalidConfig(t *testing.T) {
	f := newRunFixture(t)
	f.cfg.Width = 0
	assert.ErrorIs(t, Run(f.cfg, f.p, f.factory("A")), ErrInvalidConfig)
}

func TestRunResourceFailure(t *testing.T) {
	f := newRunFixture(t)
	f.cfg.Resources.Textures[0].Path = "missing.png"

	err := Run(f.cfg, f.p, f.factory("A"))
	require.ErrorIs(t, err, resources.ErrResourceIO)
	assert.False(t, f.win.shown, "loop never starts")
	assert.Equal(t, 1, f.win.destroy)
	assert.True(t, f.dev.Programs[0].Deleted)
}

func TestRunSceneFailureClosesBuiltScenes(t *testing.T) {
	f := newRunFixture(t)
	boom := errors.New("boom")
	failing := func(*App) (Scene, error) { return nil, boom }

	err := Run(f.cfg, f.p, f.factory("A"), failing)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"A.close"}, f.rec.calls)
	assert.False(t, f.win.shown)
}

func TestRunWindowFailure(t *testing.T) {
	f := newRunFixture(t)
	boom := errors.New("no display")
	f.p.NewWindow = func(Config) (Window, error) { return nil, boom }
	assert.ErrorIs(t, Run(f.cfg, f.p, f.factory("A")), boom)
}
