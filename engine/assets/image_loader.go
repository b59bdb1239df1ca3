package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/hubastard/lumen/engine/gfx"
)

// DecodeImage decodes an in-memory image file into tightly packed 8-bit
// pixels (row-major, top-left origin). The channel count follows the source:
// gray images keep 1 channel, gray+alpha PNGs 2, opaque color images 3,
// everything else 4.
func DecodeImage(data []byte) (*gfx.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("decode %s image: empty bounds", format)
	}

	switch m := img.(type) {
	case *image.Gray:
		return &gfx.Image{Pixels: repack(m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, w, h, 1), Width: w, Height: h, Channels: 1}, nil
	case *image.Gray16:
		g := image.NewGray(image.Rect(0, 0, w, h))
		draw.Draw(g, g.Bounds(), m, b.Min, draw.Src)
		return &gfx.Image{Pixels: g.Pix, Width: w, Height: h, Channels: 1}, nil
	}

	rgba := imageToNRGBA(img)
	if format == "png" && pngColorType(data) == pngGrayAlpha {
		// image/png widens gray+alpha to NRGBA; R holds the gray value.
		return &gfx.Image{Pixels: pickChannels(rgba.Pix, []int{0, 3}), Width: w, Height: h, Channels: 2}, nil
	}
	if opaque(img) {
		return &gfx.Image{Pixels: pickChannels(rgba.Pix, []int{0, 1, 2}), Width: w, Height: h, Channels: 3}, nil
	}
	return &gfx.Image{Pixels: rgba.Pix, Width: w, Height: h, Channels: 4}, nil
}

const (
	pngGrayAlpha = 4
	// signature(8) + chunk length(4) + "IHDR"(4) + width(4) + height(4) + bit depth(1)
	pngColorTypeOffset = 25
)

// pngColorType reads the color type byte of the IHDR chunk, or -1.
func pngColorType(data []byte) int {
	if len(data) <= pngColorTypeOffset || string(data[12:16]) != "IHDR" {
		return -1
	}
	return int(data[pngColorTypeOffset])
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

// imageToNRGBA converts to non-premultiplied RGBA with stride == 4*w.
func imageToNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

// repack copies rows of width w*ch out of a strided buffer.
func repack(src []byte, stride, w, h, ch int) []byte {
	out := make([]byte, w*h*ch)
	for y := 0; y < h; y++ {
		copy(out[y*w*ch:(y+1)*w*ch], src[y*stride:y*stride+w*ch])
	}
	return out
}

// pickChannels keeps the given channel indices of every RGBA pixel.
func pickChannels(rgba []byte, keep []int) []byte {
	n := len(rgba) / 4
	out := make([]byte, 0, n*len(keep))
	for i := 0; i < n; i++ {
		px := rgba[i*4 : i*4+4]
		for _, c := range keep {
			out = append(out, px[c])
		}
	}
	return out
}
