// Package ui is the immediate-mode debug overlay. Scenes build their panels
// with imgui calls between NewFrame and Render.
package ui

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/hubastard/lumen/engine/core"
	"github.com/hubastard/lumen/engine/gfx"
	glbackend "github.com/hubastard/lumen/engine/gfx/gl"
)

// Surface is what the overlay needs from the window.
type Surface interface {
	WindowSize() (int, int)
	FramebufferSize() (int, int)
	Input() *core.InputHandler
}

const vertexShader = `#version 430 core
layout (location = 0) in vec2 Position;
layout (location = 1) in vec2 UV;
layout (location = 2) in vec4 Color;
uniform mat4 ProjMtx;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main() {
	Frag_UV = UV;
	Frag_Color = Color;
	gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`

const fragmentShader = `#version 430 core
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main() {
	Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
`

// Overlay implements core.Overlay on top of imgui-go and a GL 4.3 renderer.
type Overlay struct {
	ctx     *imgui.Context
	surface Surface

	program  *glbackend.Program
	fontTex  uint32
	vao      uint32
	vbo, ebo uint32
}

var (
	_ core.Overlay       = (*Overlay)(nil)
	_ core.MouseCapturer = (*Overlay)(nil)
)

func NewOverlay(s Surface) (*Overlay, error) {
	o := &Overlay{
		ctx:     imgui.CreateContext(nil),
		surface: s,
	}
	imgui.CurrentIO().SetIniFilename("")

	if err := o.createDeviceObjects(); err != nil {
		o.ctx.Destroy()
		return nil, err
	}
	slog.Debug("overlay ready")
	return o, nil
}

func (o *Overlay) createDeviceObjects() error {
	p := glbackend.NewProgram()
	if err := p.AddShader(gfx.StageVertex, vertexShader); err != nil {
		p.Delete()
		return fmt.Errorf("overlay: %w", err)
	}
	if err := p.AddShader(gfx.StageFragment, fragmentShader); err != nil {
		p.Delete()
		return fmt.Errorf("overlay: %w", err)
	}
	if err := p.Link(); err != nil {
		p.Delete()
		return fmt.Errorf("overlay: %w", err)
	}
	o.program = p

	gl.GenVertexArrays(1, &o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.GenBuffers(1, &o.ebo)

	vertexSize, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, o.ebo)
	gl.EnableVertexAttribArray(0)
	gl.EnableVertexAttribArray(1)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, int32(vertexSize), uintptr(posOffset))
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, int32(vertexSize), uintptr(uvOffset))
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(colOffset))
	gl.BindVertexArray(0)

	fonts := imgui.CurrentIO().Fonts()
	img := fonts.TextureDataAlpha8()
	gl.GenTextures(1, &o.fontTex)
	gl.BindTexture(gl.TEXTURE_2D, o.fontTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	// Alpha-only atlas: expand red into every channel so white * alpha works.
	swizzle := [4]int32{gl.ONE, gl.ONE, gl.ONE, gl.RED}
	gl.TexParameteriv(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_RGBA, &swizzle[0])
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(img.Width), int32(img.Height), 0, gl.RED, gl.UNSIGNED_BYTE, img.Pixels)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	fonts.SetTextureID(imgui.TextureID(o.fontTex))
	return nil
}

// NewFrame feeds display size, timing and mouse state, then opens a frame.
func (o *Overlay) NewFrame(dt float32) {
	io := imgui.CurrentIO()
	w, h := o.surface.WindowSize()
	io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})
	if dt > 0 {
		io.SetDeltaTime(dt)
	}

	in := o.surface.Input()
	mx, my := in.MousePosition()
	io.SetMousePosition(imgui.Vec2{X: float32(mx), Y: float32(my)})
	for b := core.MouseButtonLeft; b <= core.MouseButtonMiddle; b++ {
		io.SetMouseButtonDown(int(b), in.IsMouseButtonPressed(b))
	}
	imgui.NewFrame()
}

// WantsMouse reports whether the cursor is over an overlay window.
func (o *Overlay) WantsMouse() bool { return imgui.CurrentIO().WantCaptureMouse() }

// Render finishes the frame and draws it over the scene.
func (o *Overlay) Render() {
	imgui.Render()
	dw, dh := o.surface.WindowSize()
	fw, fh := o.surface.FramebufferSize()
	o.draw([2]float32{float32(dw), float32(dh)}, [2]float32{float32(fw), float32(fh)}, imgui.RenderedDrawData())
}

func (o *Overlay) draw(display, framebuffer [2]float32, data imgui.DrawData) {
	if framebuffer[0] <= 0 || framebuffer[1] <= 0 || !data.Valid() {
		return
	}
	data.ScaleClipRects(imgui.Vec2{X: framebuffer[0] / display[0], Y: framebuffer[1] / display[1]})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.STENCIL_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Viewport(0, 0, int32(framebuffer[0]), int32(framebuffer[1]))

	o.program.Bind()
	o.program.SetInt("Texture", 0)
	o.program.SetMat4("ProjMtx", mgl32.Ortho2D(0, display[0], display[1], 0))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(o.vao)

	indexSize := imgui.IndexBufferLayout()
	indexType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		indexType = gl.UNSIGNED_INT
	}

	for _, list := range data.CommandLists() {
		vb, vbSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, vbSize, vb, gl.STREAM_DRAW)
		ib, ibSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, o.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, ibSize, ib, gl.STREAM_DRAW)

		var offset uintptr
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				clip := cmd.ClipRect()
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				gl.Scissor(int32(clip.X), int32(framebuffer[1])-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, offset, 0)
			}
			offset += uintptr(cmd.ElementCount() * indexSize)
		}
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.STENCIL_TEST)
}

func (o *Overlay) Shutdown() {
	if o.program != nil {
		o.program.Delete()
		o.program = nil
	}
	gl.DeleteBuffers(1, &o.vbo)
	gl.DeleteBuffers(1, &o.ebo)
	gl.DeleteVertexArrays(1, &o.vao)
	gl.DeleteTextures(1, &o.fontTex)
	if o.ctx != nil {
		o.ctx.Destroy()
		o.ctx = nil
	}
}
