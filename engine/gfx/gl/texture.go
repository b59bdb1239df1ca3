package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/hubastard/lumen/engine/gfx"
)

// Texture is an immutable mipmapped 2D texture with repeat wrapping.
type Texture struct {
	id                      uint32
	width, height, channels int
}

var _ gfx.Texture = (*Texture)(nil)

func pixelFormat(channels int) (uint32, error) {
	switch channels {
	case 1:
		return gl.RED, nil
	case 2:
		return gl.RG, nil
	case 3:
		return gl.RGB, nil
	case 4:
		return gl.RGBA, nil
	}
	return 0, fmt.Errorf("unsupported channel count %d", channels)
}

func NewTexture(img *gfx.Image) (*Texture, error) {
	if img == nil || len(img.Pixels) == 0 {
		return nil, fmt.Errorf("texture build failed: no pixel data")
	}
	if want := img.Width * img.Height * img.Channels; len(img.Pixels) < want {
		return nil, fmt.Errorf("texture build failed: %d bytes for %dx%dx%d", len(img.Pixels), img.Width, img.Height, img.Channels)
	}
	format, err := pixelFormat(img.Channels)
	if err != nil {
		return nil, fmt.Errorf("texture build failed: %w", err)
	}

	t := &Texture{width: img.Width, height: img.Height, channels: img.Channels}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	// rows of 1-3 channel images are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(img.Width), int32(img.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(img.Pixels))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

func (t *Texture) ID() uint32    { return t.id }
func (t *Texture) Width() int    { return t.width }
func (t *Texture) Height() int   { return t.height }
func (t *Texture) Channels() int { return t.channels }

func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
