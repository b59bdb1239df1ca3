package resources

import (
	"fmt"

	"github.com/hubastard/lumen/engine/assets"
)

// Manifest is the startup load-list, usually read from the YAML config.
//
//	programs:
//	  - name: StencilShader
//	    sources: ["shaders/stencil.vs:VERTEX", "shaders/stencil.fs:FRAGMENT"]
//	textures:
//	  - name: Floor
//	    path: textures/metal.png
type Manifest struct {
	Programs []ProgramEntry `yaml:"programs"`
	Textures []TextureEntry `yaml:"textures"`
}

type ProgramEntry struct {
	Name    string   `yaml:"name"`
	Sources []string `yaml:"sources"`
}

type TextureEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// LoadManifest loads programs, then textures. The first failure aborts the
// batch and is returned.
func (c *Cache) LoadManifest(m Manifest) error {
	for _, e := range m.Programs {
		if err := c.LoadProgram(e.Name, assets.ParseSources(e.Sources)); err != nil {
			return err
		}
	}
	for _, e := range m.Textures {
		if e.Path == "" {
			return fmt.Errorf("%w: texture %q has no path", ErrInvalidDescriptor, e.Name)
		}
		if err := c.LoadTexture(e.Name, []assets.Source{{Path: e.Path}}); err != nil {
			return err
		}
	}
	return nil
}
