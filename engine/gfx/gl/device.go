package glbackend

import (
	"context"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/hubastard/lumen/engine/gfx"
)

// Device creates GL objects on the current context. It must be created after
// the context is made current and gl.Init has succeeded.
type Device struct {
	vendor, renderer, version string
}

var _ gfx.Device = (*Device)(nil)

func NewDevice() *Device {
	d := &Device{
		vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
	slog.Info("gl device", "vendor", d.vendor, "renderer", d.renderer, "version", d.version)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.STENCIL_TEST)
	gl.StencilFunc(gl.NOTEQUAL, 1, 0xFF)
	gl.StencilOp(gl.KEEP, gl.KEEP, gl.REPLACE)
	return d
}

func (d *Device) GPUVendor() string   { return d.vendor }
func (d *Device) GPURenderer() string { return d.renderer }
func (d *Device) GPUVersion() string  { return d.version }

func (d *Device) NewProgram() gfx.Program { return NewProgram() }

func (d *Device) NewTexture(img *gfx.Image) (gfx.Texture, error) {
	t, err := NewTexture(img)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// EnableDebugOutput routes driver debug messages to slog. High severity
// messages are logged as errors.
func EnableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		level := slog.LevelDebug
		switch severity {
		case gl.DEBUG_SEVERITY_HIGH:
			level = slog.LevelError
		case gl.DEBUG_SEVERITY_MEDIUM:
			level = slog.LevelWarn
		case gl.DEBUG_SEVERITY_LOW:
			level = slog.LevelInfo
		}
		slog.Log(context.Background(), level, "gl debug", "id", id, "type", gltype, "source", source, "message", message)
	}, nil)
}
