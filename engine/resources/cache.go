// Package resources is the name-keyed store of shared GPU objects. Programs
// and textures are built once from load-lists at startup and live until the
// cache is closed; lookups hand out non-owning references.
package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/hubastard/lumen/engine/assets"
	"github.com/hubastard/lumen/engine/gfx"
)

var (
	ErrInvalidDescriptor = errors.New("invalid resource descriptor")
	ErrResourceIO        = errors.New("resource load I/O error")
	ErrDuplicateResource = errors.New("resource already loaded")
)

// Cache owns every program and texture it loaded. It is append-only: nothing
// is reloaded or evicted before Close.
type Cache struct {
	dev  gfx.Device
	fsys fs.FS

	programs map[string]gfx.Program
	textures map[string]gfx.Texture
}

// NewCache creates an empty cache that builds objects on dev and reads files
// from fsys.
func NewCache(dev gfx.Device, fsys fs.FS) *Cache {
	return &Cache{
		dev:      dev,
		fsys:     fsys,
		programs: map[string]gfx.Program{},
		textures: map[string]gfx.Texture{},
	}
}

// LoadProgram reads every source, compiles each as its stage, links once and
// registers the program under name. On any error nothing is registered and
// the partially built program is deleted.
func (c *Cache) LoadProgram(name string, sources []assets.Source) error {
	if name == "" {
		return fmt.Errorf("%w: empty program name", ErrInvalidDescriptor)
	}
	if _, ok := c.programs[name]; ok {
		return fmt.Errorf("program %q: %w", name, ErrDuplicateResource)
	}
	if len(sources) == 0 {
		return fmt.Errorf("%w: program %q has no sources", ErrInvalidDescriptor, name)
	}

	type unit struct {
		stage gfx.Stage
		src   string
	}
	units := make([]unit, 0, len(sources))
	for _, s := range sources {
		stage, err := gfx.ParseStage(s.Stage)
		if err != nil {
			return fmt.Errorf("%w: program %q source %q: %w", ErrInvalidDescriptor, name, s.String(), err)
		}
		b, err := assets.LoadFile(c.fsys, s.Path)
		if err != nil {
			return fmt.Errorf("%w: program %q: %w", ErrResourceIO, name, err)
		}
		units = append(units, unit{stage: stage, src: string(b)})
	}

	p := c.dev.NewProgram()
	for i, u := range units {
		if err := p.AddShader(u.stage, u.src); err != nil {
			p.Delete()
			return fmt.Errorf("program %q source %q: %w", name, sources[i].Path, err)
		}
	}
	if err := p.Link(); err != nil {
		p.Delete()
		return fmt.Errorf("program %q: %w", name, err)
	}

	c.programs[name] = p
	slog.Debug("program loaded", "name", name, "stages", len(units))
	return nil
}

// LoadTexture decodes exactly one image file into a texture registered under
// name.
func (c *Cache) LoadTexture(name string, sources []assets.Source) error {
	if name == "" {
		return fmt.Errorf("%w: empty texture name", ErrInvalidDescriptor)
	}
	if _, ok := c.textures[name]; ok {
		return fmt.Errorf("texture %q: %w", name, ErrDuplicateResource)
	}
	if len(sources) != 1 {
		return fmt.Errorf("%w: texture %q needs exactly one source, got %d", ErrInvalidDescriptor, name, len(sources))
	}
	src := sources[0]
	if src.Stage != "" {
		return fmt.Errorf("%w: texture %q source %q has a stage", ErrInvalidDescriptor, name, src.String())
	}

	b, err := assets.LoadFile(c.fsys, src.Path)
	if err != nil {
		return fmt.Errorf("%w: texture %q: %w", ErrResourceIO, name, err)
	}
	img, err := assets.DecodeImage(b)
	if err != nil {
		return fmt.Errorf("%w: texture %q from %q: %w", ErrResourceIO, name, src.Path, err)
	}
	t, err := c.dev.NewTexture(img)
	if err != nil {
		return fmt.Errorf("texture %q: %w", name, err)
	}

	c.textures[name] = t
	slog.Debug("texture loaded", "name", name, "width", img.Width, "height", img.Height, "channels", img.Channels)
	return nil
}

// Program returns the program registered under name.
func (c *Cache) Program(name string) (gfx.Program, bool) {
	p, ok := c.programs[name]
	return p, ok
}

// Texture returns the texture registered under name.
func (c *Cache) Texture(name string) (gfx.Texture, bool) {
	t, ok := c.textures[name]
	return t, ok
}

// Get looks a resource up by kind: T is gfx.Program or gfx.Texture. Unknown
// names, names registered under the other kind and unsupported kinds all
// report false.
func Get[T any](c *Cache, name string) (T, bool) {
	var zero T
	var (
		v  any
		ok bool
	)
	switch any(&zero).(type) {
	case *gfx.Program:
		v, ok = c.Program(name)
	case *gfx.Texture:
		v, ok = c.Texture(name)
	}
	if !ok {
		return zero, false
	}
	r, ok := v.(T)
	return r, ok
}

// Len reports how many programs and textures are loaded.
func (c *Cache) Len() (programs, textures int) { return len(c.programs), len(c.textures) }

// Close deletes every GPU object. The cache must not be used afterwards.
func (c *Cache) Close() {
	for name, p := range c.programs {
		p.Delete()
		delete(c.programs, name)
	}
	for name, t := range c.textures {
		t.Delete()
		delete(c.textures, name)
	}
}
