package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hubastard/lumen/engine/core"
	"github.com/hubastard/lumen/engine/gfx"
	glbackend "github.com/hubastard/lumen/engine/gfx/gl"
	"github.com/hubastard/lumen/engine/platform"
	"github.com/hubastard/lumen/engine/ui"
)

func main() {
	configPath := flag.String("config", "assets/sandbox.yaml", "path to the YAML config")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	p := core.Platform{
		NewWindow: func(cfg core.Config) (core.Window, error) {
			w, err := platform.NewGLFWWindow(cfg)
			if err != nil {
				return nil, err
			}
			return w, nil
		},
		NewDevice: func(_ core.Window, cfg core.Config) (gfx.Device, error) {
			if cfg.GLDebug {
				glbackend.EnableDebugOutput()
			}
			return glbackend.NewDevice(), nil
		},
		NewOverlay: func(win core.Window, _ core.Config) (core.Overlay, error) {
			s, ok := win.(ui.Surface)
			if !ok {
				return nil, fmt.Errorf("window %T cannot host the overlay", win)
			}
			o, err := ui.NewOverlay(s)
			if err != nil {
				return nil, err
			}
			return o, nil
		},
	}

	err = core.Run(cfg, p,
		NewStencilScene,
		NewRayTraceScene,
		NewAABBScene,
	)
	if err != nil {
		slog.Error("sandbox", "err", err)
		os.Exit(1)
	}
}
