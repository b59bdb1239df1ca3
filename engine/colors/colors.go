package colors

import "github.com/go-gl/mathgl/mgl32"

// Color is linear RGBA in [0..1]. In YAML it is a four element sequence.
type Color [4]float32

var (
	Red      = Color{1, 0.2, 0.2, 1}
	Green    = Color{0.2, 1, 0.2, 1}
	Blue     = Color{0.2, 0.2, 1, 1}
	Outline  = Color{0.04, 0.28, 0.26, 1}
	Yellow   = Color{1, 1, 0, 1}
	DarkGray = Color{0.1, 0.1, 0.1, 1}
)

func (c Color) Vec4() mgl32.Vec4 { return mgl32.Vec4(c) }
func (c Color) Vec3() mgl32.Vec3 { return mgl32.Vec3{c[0], c[1], c[2]} }
