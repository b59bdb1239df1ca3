package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/resources"
)

var ErrNoScenes = errors.New("no scenes registered")

// Platform supplies the backend constructors Run wires together.
type Platform struct {
	NewWindow  func(Config) (Window, error)
	NewDevice  func(Window, Config) (gfx.Device, error)
	NewOverlay func(Window, Config) (Overlay, error) // optional

	// Assets overrides the filesystem resources load from. Defaults to
	// os.DirFS(cfg.AssetRoot).
	Assets fs.FS
}

// SceneFactory builds one scene against the fully initialized App. Shared
// GPU resources are already in the cache when it runs.
type SceneFactory func(*App) (Scene, error)

// Run wires the platform window, device, resource cache, overlay and scenes
// and executes the main loop. Any startup failure is returned before the
// loop starts.
func Run(cfg Config, p Platform, factories ...SceneFactory) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	if len(factories) == 0 {
		return ErrNoScenes
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	win, err := p.NewWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	dev, err := p.NewDevice(win, cfg)
	if err != nil {
		return fmt.Errorf("create device: %w", err)
	}

	assets := p.Assets
	if assets == nil {
		assets = os.DirFS(cfg.AssetRoot)
	}
	cache := resources.NewCache(dev, assets)
	defer cache.Close()
	if err := cache.LoadManifest(cfg.Resources); err != nil {
		return fmt.Errorf("load resources: %w", err)
	}
	programs, textures := cache.Len()
	slog.Info("resources loaded", "programs", programs, "textures", textures, "root", cfg.AssetRoot)

	app := NewApp(cfg, win, cache)
	app.device = dev
	if p.NewOverlay != nil {
		ov, err := p.NewOverlay(win, cfg)
		if err != nil {
			return fmt.Errorf("create overlay: %w", err)
		}
		defer ov.Shutdown()
		app.SetOverlay(ov)
	}

	defer closeScenes(app)
	for i, f := range factories {
		s, err := f(app)
		if err != nil {
			return fmt.Errorf("create scene %d: %w", i, err)
		}
		app.AddScene(s)
		slog.Debug("scene ready", "index", i, "scene", s.Name())
	}
	win.SetTitle(cfg.Title + " - " + app.CurrentScene().Name())

	app.Run()

	slog.Info("engine exit", "frames", app.Frames())
	return nil
}

// closeScenes releases scene-owned GPU objects in reverse creation order.
func closeScenes(app *App) {
	for i := len(app.scenes) - 1; i >= 0; i-- {
		if c, ok := app.scenes[i].(SceneCloser); ok {
			c.Close()
		}
	}
}
