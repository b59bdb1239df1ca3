package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/gfx"
)

// Program is an OpenGL shader program. Stages are compiled and attached one
// at a time, then linked once.
type Program struct {
	id       uint32
	shaders  []uint32
	uniforms uniformCache
}

var _ gfx.Program = (*Program)(nil)

func NewProgram() *Program {
	p := &Program{id: gl.CreateProgram()}
	p.uniforms = newUniformCache(func(name string) int32 {
		return gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	})
	return p
}

func glStage(s gfx.Stage) (uint32, error) {
	switch s {
	case gfx.StageVertex:
		return gl.VERTEX_SHADER, nil
	case gfx.StageTessControl:
		return gl.TESS_CONTROL_SHADER, nil
	case gfx.StageTessEvaluation:
		return gl.TESS_EVALUATION_SHADER, nil
	case gfx.StageGeometry:
		return gl.GEOMETRY_SHADER, nil
	case gfx.StageFragment:
		return gl.FRAGMENT_SHADER, nil
	case gfx.StageCompute:
		return gl.COMPUTE_SHADER, nil
	}
	return 0, fmt.Errorf("%w: %v", gfx.ErrInvalidShaderType, s)
}

func (p *Program) AddShader(stage gfx.Stage, source string) error {
	shaderType, err := glStage(stage)
	if err != nil {
		return err
	}
	sh, err := compileShader(source, shaderType)
	if err != nil {
		return fmt.Errorf("%v shader: %w", stage, err)
	}
	gl.AttachShader(p.id, sh)
	p.shaders = append(p.shaders, sh)
	return nil
}

func (p *Program) Link() error {
	gl.LinkProgram(p.id)

	var status int32
	gl.GetProgramiv(p.id, gl.LINK_STATUS, &status)
	for _, sh := range p.shaders {
		gl.DetachShader(p.id, sh)
		gl.DeleteShader(sh)
	}
	p.shaders = nil

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(p.id, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(p.id, logLen, nil, gl.Str(log))
		return fmt.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	p.uniforms.linked = true
	return nil
}

func (p *Program) Bind()      { gl.UseProgram(p.id) }
func (p *Program) ID() uint32 { return p.id }

func (p *Program) Delete() {
	for _, sh := range p.shaders {
		gl.DeleteShader(sh)
	}
	p.shaders = nil
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// uniformCache resolves uniform locations through lookup, which returns -1
// for names that are not active uniforms. Locations are memoized once the
// program is linked.
type uniformCache struct {
	lookup func(name string) int32
	locs   map[string]int32
	linked bool
}

func newUniformCache(lookup func(string) int32) uniformCache {
	return uniformCache{lookup: lookup, locs: map[string]int32{}}
}

func (u *uniformCache) location(name string) int32 {
	if loc, ok := u.locs[name]; ok {
		return loc
	}
	loc := u.lookup(name)
	if u.linked {
		u.locs[name] = loc
	}
	return loc
}

// set calls upload with the location of name. Unknown uniforms are skipped.
func (u *uniformCache) set(name string, upload func(loc int32)) {
	if loc := u.location(name); loc >= 0 {
		upload(loc)
	}
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

func (p *Program) SetInt(name string, v int32) {
	p.uniforms.set(name, func(loc int32) { gl.Uniform1i(loc, v) })
}

func (p *Program) SetFloat(name string, v float32) {
	p.uniforms.set(name, func(loc int32) { gl.Uniform1f(loc, v) })
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	p.uniforms.set(name, func(loc int32) { gl.Uniform2fv(loc, 1, &v[0]) })
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	p.uniforms.set(name, func(loc int32) { gl.Uniform3fv(loc, 1, &v[0]) })
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	p.uniforms.set(name, func(loc int32) { gl.Uniform4fv(loc, 1, &v[0]) })
}

func (p *Program) SetMat2(name string, m mgl32.Mat2) {
	p.uniforms.set(name, func(loc int32) { gl.UniformMatrix2fv(loc, 1, false, &m[0]) })
}

func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	p.uniforms.set(name, func(loc int32) { gl.UniformMatrix3fv(loc, 1, false, &m[0]) })
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	p.uniforms.set(name, func(loc int32) { gl.UniformMatrix4fv(loc, 1, false, &m[0]) })
}

// SetTexture binds tex to the given unit and points the sampler uniform at it.
func (p *Program) SetTexture(name string, tex gfx.Texture, unit uint32) {
	if tex != nil {
		tex.Bind(unit)
	}
	p.SetInt(name, int32(unit))
}

func (p *Program) Dispatch(x, y, z uint32) {
	gl.DispatchCompute(x, y, z)
}

// --- Shader utilities ---

func compileShader(src string, shaderType uint32) (uint32, error) {
	// gl.Strs requires null termination
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}
