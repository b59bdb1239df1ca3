// Package gfxtest provides in-memory gfx implementations for tests that run
// without a graphics context.
package gfxtest

import (
	"errors"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/gfx"
)

// ErrCompile is returned by AddShader for sources containing FailCompile.
var ErrCompile = errors.New("fake compile error")

// ErrLink is returned by Link for programs with a source containing FailLink.
var ErrLink = errors.New("fake link error")

const (
	FailCompile = "#fail-compile"
	FailLink    = "#fail-link"
)

// Device records every object it creates.
type Device struct {
	Programs []*Program
	Textures []*Texture

	// TextureErr, when set, is returned by NewTexture.
	TextureErr error
}

var _ gfx.Device = (*Device)(nil)

func NewDevice() *Device { return &Device{} }

func (d *Device) NewProgram() gfx.Program {
	p := &Program{id: uint32(len(d.Programs) + 1), Uniforms: map[string]any{}}
	d.Programs = append(d.Programs, p)
	return p
}

func (d *Device) NewTexture(img *gfx.Image) (gfx.Texture, error) {
	if d.TextureErr != nil {
		return nil, d.TextureErr
	}
	t := &Texture{id: uint32(len(d.Textures) + 1), Image: *img}
	d.Textures = append(d.Textures, t)
	return t, nil
}

// Program keeps the sources it was given and the last value of every uniform.
type Program struct {
	id         uint32
	Sources    map[gfx.Stage]string
	Linked     bool
	Deleted    bool
	Bound      int
	Uniforms   map[string]any
	Dispatches [][3]uint32
}

var _ gfx.Program = (*Program)(nil)

func (p *Program) AddShader(stage gfx.Stage, source string) error {
	if !stage.Valid() {
		return gfx.ErrInvalidShaderType
	}
	if strings.Contains(source, FailCompile) {
		return ErrCompile
	}
	if p.Sources == nil {
		p.Sources = map[gfx.Stage]string{}
	}
	p.Sources[stage] = source
	return nil
}

func (p *Program) Link() error {
	for _, src := range p.Sources {
		if strings.Contains(src, FailLink) {
			return ErrLink
		}
	}
	p.Linked = true
	return nil
}

func (p *Program) Bind()      { p.Bound++ }
func (p *Program) ID() uint32 { return p.id }
func (p *Program) Delete()    { p.Deleted = true }

func (p *Program) SetBool(name string, v bool)       { p.Uniforms[name] = v }
func (p *Program) SetInt(name string, v int32)       { p.Uniforms[name] = v }
func (p *Program) SetFloat(name string, v float32)   { p.Uniforms[name] = v }
func (p *Program) SetVec2(name string, v mgl32.Vec2) { p.Uniforms[name] = v }
func (p *Program) SetVec3(name string, v mgl32.Vec3) { p.Uniforms[name] = v }
func (p *Program) SetVec4(name string, v mgl32.Vec4) { p.Uniforms[name] = v }
func (p *Program) SetMat2(name string, m mgl32.Mat2) { p.Uniforms[name] = m }
func (p *Program) SetMat3(name string, m mgl32.Mat3) { p.Uniforms[name] = m }
func (p *Program) SetMat4(name string, m mgl32.Mat4) { p.Uniforms[name] = m }

func (p *Program) SetTexture(name string, tex gfx.Texture, unit uint32) {
	p.Uniforms[name] = int32(unit)
	if tex != nil {
		tex.Bind(unit)
	}
}

func (p *Program) Dispatch(x, y, z uint32) {
	p.Dispatches = append(p.Dispatches, [3]uint32{x, y, z})
}

// Texture holds a copy of the decoded image it was created from.
type Texture struct {
	id      uint32
	Image   gfx.Image
	Unit    uint32
	Deleted bool
}

var _ gfx.Texture = (*Texture)(nil)

func (t *Texture) ID() uint32       { return t.id }
func (t *Texture) Width() int       { return t.Image.Width }
func (t *Texture) Height() int      { return t.Image.Height }
func (t *Texture) Channels() int    { return t.Image.Channels }
func (t *Texture) Bind(unit uint32) { t.Unit = unit }
func (t *Texture) Delete()          { t.Deleted = true }
