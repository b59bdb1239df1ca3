package assets

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		in   string
		want Source
	}{
		{"shaders/quad.vs:VERTEX", Source{Path: "shaders/quad.vs", Stage: "VERTEX"}},
		{"a:b:FRAGMENT", Source{Path: "a:b", Stage: "FRAGMENT"}},
		{"textures/metal.png", Source{Path: "textures/metal.png"}},
		{"C:/assets/metal.png", Source{Path: "C:/assets/metal.png"}},
		{`C:\assets\metal.png`, Source{Path: `C:\assets\metal.png`}},
		{"trailing:", Source{Path: "trailing:"}},
		{"shaders/x.glsl:compute", Source{Path: "shaders/x.glsl", Stage: "compute"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseSource(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestParseSources(t *testing.T) {
	got := ParseSources([]string{"a.vs:VERTEX", "b.png"})
	assert.Equal(t, []Source{{Path: "a.vs", Stage: "VERTEX"}, {Path: "b.png"}}, got)
	assert.Empty(t, ParseSources(nil))
}

func TestLoadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/quad.vs": {Data: []byte("void main() {}")},
	}

	for _, name := range []string{"shaders/quad.vs", "./shaders/quad.vs", "shaders/../shaders/quad.vs"} {
		b, err := LoadFile(fsys, name)
		require.NoError(t, err, name)
		assert.Equal(t, "void main() {}", string(b))
	}

	_, err := LoadFile(fsys, "shaders/missing.fs")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "shaders/missing.fs")
}
