// Package gfx defines the GPU capability surface the engine builds on:
// staged shader programs, 2D textures, and the device that creates them.
// The OpenGL implementation lives in engine/gfx/gl.
package gfx

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidShaderType = errors.New("invalid shader type")

// Stage classifies a shader source unit by pipeline step.
type Stage uint8

const (
	StageVertex Stage = iota
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageFragment
	StageCompute

	numStages
)

var stageNames = [numStages]string{
	StageVertex:         "VERTEX",
	StageTessControl:    "TESSELLATION_CONTROL",
	StageTessEvaluation: "TESSELLATION_EVALUATION",
	StageGeometry:       "GEOMETRY",
	StageFragment:       "FRAGMENT",
	StageCompute:        "COMPUTE",
}

func (s Stage) Valid() bool { return s < numStages }

func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
	return stageNames[s]
}

// ParseStage maps a load-list suffix such as "FRAGMENT" to its Stage.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShaderType, name)
}

// Program is a shader program built in two phases: stages are attached with
// AddShader, then Link is called exactly once. Uniform setters are only
// meaningful on a linked program that is currently bound; a name that does not
// resolve to an active uniform is silently ignored.
type Program interface {
	AddShader(stage Stage, source string) error
	Link() error
	Bind()
	ID() uint32
	Delete()

	SetBool(name string, v bool)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetMat2(name string, m mgl32.Mat2)
	SetMat3(name string, m mgl32.Mat3)
	SetMat4(name string, m mgl32.Mat4)
	SetTexture(name string, tex Texture, unit uint32)

	// Dispatch runs a linked compute program over the given work groups.
	Dispatch(x, y, z uint32)
}

// Texture is a GPU-resident 2D texture.
type Texture interface {
	ID() uint32
	Width() int
	Height() int
	Channels() int
	Bind(unit uint32)
	Delete()
}

// Image is decoded, tightly packed 8-bit pixel data, rows top to bottom.
type Image struct {
	Pixels   []byte
	Width    int
	Height   int
	Channels int // 1 (gray), 2 (gray+alpha), 3 (RGB) or 4 (RGBA)
}

// Device creates GPU objects on the current context.
type Device interface {
	NewProgram() Program
	NewTexture(img *Image) (Texture, error)
}
