package resources

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/lumen/engine/assets"
	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/gfx/gfxtest"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"shaders/quad.vs":    {Data: []byte("#version 430 core\nvoid main() {}\n")},
		"shaders/quad.fs":    {Data: []byte("#version 430 core\nout vec4 c; void main() { c = vec4(1); }\n")},
		"shaders/trace.glsl": {Data: []byte("#version 430 core\nlayout(local_size_x = 16) in; void main() {}\n")},
		"shaders/broken.fs":  {Data: []byte(gfxtest.FailCompile)},
		"shaders/nolink.fs":  {Data: []byte(gfxtest.FailLink)},
		"textures/metal.png": {Data: testPNG(t, 4, 2)},
		"textures/bad.png":   {Data: []byte("garbage")},
	}
}

func newTestCache(t *testing.T) (*Cache, *gfxtest.Device) {
	dev := gfxtest.NewDevice()
	return NewCache(dev, testFS(t)), dev
}

func TestLoadProgram(t *testing.T) {
	c, dev := newTestCache(t)
	err := c.LoadProgram("Quad", assets.ParseSources([]string{"shaders/quad.vs:VERTEX", "shaders/quad.fs:FRAGMENT"}))
	require.NoError(t, err)

	p, ok := c.Program("Quad")
	require.True(t, ok)
	fake := p.(*gfxtest.Program)
	assert.True(t, fake.Linked)
	assert.Contains(t, fake.Sources[gfx.StageVertex], "void main() {}")
	assert.Contains(t, fake.Sources[gfx.StageFragment], "vec4(1)")
	assert.Len(t, dev.Programs, 1)
}

func TestLoadComputeProgram(t *testing.T) {
	c, _ := newTestCache(t)
	require.NoError(t, c.LoadProgram("Trace", []assets.Source{{Path: "shaders/trace.glsl", Stage: "COMPUTE"}}))

	p, ok := Get[gfx.Program](c, "Trace")
	require.True(t, ok)
	_, hasCompute := p.(*gfxtest.Program).Sources[gfx.StageCompute]
	assert.True(t, hasCompute)
}

func TestLoadProgramInvalidStage(t *testing.T) {
	c, dev := newTestCache(t)
	err := c.LoadProgram("Quad", assets.ParseSources([]string{"shaders/quad.vs:VERTEX", "shaders/quad.fs:PIXEL"}))

	assert.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.ErrorIs(t, err, gfx.ErrInvalidShaderType)
	assert.Empty(t, dev.Programs, "descriptor is validated before any GPU work")
	_, ok := c.Program("Quad")
	assert.False(t, ok)
}

func TestLoadProgramMissingStage(t *testing.T) {
	c, _ := newTestCache(t)
	err := c.LoadProgram("Quad", assets.ParseSources([]string{"shaders/quad.vs"}))
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestLoadProgramMissingFile(t *testing.T) {
	c, dev := newTestCache(t)
	err := c.LoadProgram("Quad", assets.ParseSources([]string{"shaders/quad.vs:VERTEX", "shaders/missing.fs:FRAGMENT"}))

	assert.ErrorIs(t, err, ErrResourceIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Empty(t, dev.Programs)
	_, ok := c.Program("Quad")
	assert.False(t, ok)
}

func TestLoadProgramCompileAndLinkFailures(t *testing.T) {
	c, dev := newTestCache(t)

	err := c.LoadProgram("Broken", assets.ParseSources([]string{"shaders/quad.vs:VERTEX", "shaders/broken.fs:FRAGMENT"}))
	assert.ErrorIs(t, err, gfxtest.ErrCompile)

	err = c.LoadProgram("NoLink", assets.ParseSources([]string{"shaders/quad.vs:VERTEX", "shaders/nolink.fs:FRAGMENT"}))
	assert.ErrorIs(t, err, gfxtest.ErrLink)

	require.Len(t, dev.Programs, 2)
	for _, p := range dev.Programs {
		assert.True(t, p.Deleted, "partially built programs are released")
	}
	progs, _ := c.Len()
	assert.Zero(t, progs)
}

func TestLoadProgramBadDescriptors(t *testing.T) {
	c, _ := newTestCache(t)
	assert.ErrorIs(t, c.LoadProgram("", assets.ParseSources([]string{"shaders/quad.vs:VERTEX"})), ErrInvalidDescriptor)
	assert.ErrorIs(t, c.LoadProgram("Empty", nil), ErrInvalidDescriptor)
}

func TestDuplicateNames(t *testing.T) {
	c, dev := newTestCache(t)
	src := assets.ParseSources([]string{"shaders/quad.vs:VERTEX", "shaders/quad.fs:FRAGMENT"})
	require.NoError(t, c.LoadProgram("Quad", src))
	assert.ErrorIs(t, c.LoadProgram("Quad", src), ErrDuplicateResource)
	assert.Len(t, dev.Programs, 1)

	tex := []assets.Source{{Path: "textures/metal.png"}}
	require.NoError(t, c.LoadTexture("Floor", tex))
	assert.ErrorIs(t, c.LoadTexture("Floor", tex), ErrDuplicateResource)
}

func TestLoadTexture(t *testing.T) {
	c, _ := newTestCache(t)
	require.NoError(t, c.LoadTexture("Floor", []assets.Source{{Path: "textures/metal.png"}}))

	tex, ok := c.Texture("Floor")
	require.True(t, ok)
	assert.Equal(t, 4, tex.Width())
	assert.Equal(t, 2, tex.Height())
	assert.Equal(t, 3, tex.Channels())

	img := tex.(*gfxtest.Texture).Image
	assert.Equal(t, []byte{1, 0, 7}, img.Pixels[3:6], "pixel (1,0)")
}

func TestLoadTextureErrors(t *testing.T) {
	c, dev := newTestCache(t)

	err := c.LoadTexture("Missing", []assets.Source{{Path: "textures/none.png"}})
	assert.ErrorIs(t, err, ErrResourceIO)

	err = c.LoadTexture("Bad", []assets.Source{{Path: "textures/bad.png"}})
	assert.ErrorIs(t, err, ErrResourceIO)

	err = c.LoadTexture("Two", []assets.Source{{Path: "textures/metal.png"}, {Path: "textures/metal.png"}})
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	err = c.LoadTexture("Staged", []assets.Source{{Path: "textures/metal.png", Stage: "FRAGMENT"}})
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	dev.TextureErr = errors.New("out of memory")
	err = c.LoadTexture("Upload", []assets.Source{{Path: "textures/metal.png"}})
	assert.ErrorIs(t, err, dev.TextureErr)

	_, textures := c.Len()
	assert.Zero(t, textures)
}

func TestGet(t *testing.T) {
	c, _ := newTestCache(t)
	require.NoError(t, c.LoadProgram("Quad", assets.ParseSources([]string{"shaders/quad.vs:VERTEX", "shaders/quad.fs:FRAGMENT"})))
	require.NoError(t, c.LoadTexture("Floor", []assets.Source{{Path: "textures/metal.png"}}))

	p, ok := Get[gfx.Program](c, "Quad")
	assert.True(t, ok)
	assert.NotNil(t, p)

	tex, ok := Get[gfx.Texture](c, "Floor")
	assert.True(t, ok)
	assert.NotNil(t, tex)

	// Unknown names and kind mismatches report false.
	_, ok = Get[gfx.Program](c, "Nope")
	assert.False(t, ok)
	_, ok = Get[gfx.Program](c, "Floor")
	assert.False(t, ok)
	_, ok = Get[gfx.Texture](c, "Quad")
	assert.False(t, ok)
	_, ok = Get[string](c, "Quad")
	assert.False(t, ok)
}

func TestClose(t *testing.T) {
	c, dev := newTestCache(t)
	require.NoError(t, c.LoadProgram("Quad", assets.ParseSources([]string{"shaders/quad.vs:VERTEX", "shaders/quad.fs:FRAGMENT"})))
	require.NoError(t, c.LoadTexture("Floor", []assets.Source{{Path: "textures/metal.png"}}))

	c.Close()
	assert.True(t, dev.Programs[0].Deleted)
	assert.True(t, dev.Textures[0].Deleted)
	progs, textures := c.Len()
	assert.Zero(t, progs)
	assert.Zero(t, textures)
}
