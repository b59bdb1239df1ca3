package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// Panel draws an auto-sized window anchored at the top left corner and runs
// body inside it.
func Panel(title string, body func()) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	if imgui.BeginV(title, nil, imgui.WindowFlagsAlwaysAutoResize) {
		body()
	}
	imgui.End()
}

// RadioGroup draws one radio button per option and returns the selected
// index, which changes when the user clicks another option.
func RadioGroup(options []string, selected int) int {
	for i, opt := range options {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.RadioButton(opt, selected == i) {
			selected = i
		}
	}
	return selected
}

func Vec3(label string, v mgl32.Vec3) {
	imgui.Text(fmt.Sprintf("%s: %.2f, %.2f, %.2f", label, v[0], v[1], v[2]))
}

func Quat(label string, q mgl32.Quat) {
	imgui.Text(fmt.Sprintf("%s: w=%.2f %.2f, %.2f, %.2f", label, q.W, q.V[0], q.V[1], q.V[2]))
}

// FrameStats prints frame time and rate.
func FrameStats(dt float32) {
	fps := float32(0)
	if dt > 0 {
		fps = 1 / dt
	}
	imgui.Text(fmt.Sprintf("%.2f ms (%.0f fps)", dt*1000, fps))
}
