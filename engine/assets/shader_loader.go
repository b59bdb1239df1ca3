package assets

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Source is one load-list entry: a file and, for shader programs, the stage
// it compiles as.
type Source struct {
	Path  string
	Stage string // empty for textures
}

// ParseSource splits a "path:STAGE" load-list entry at its last colon. A
// suffix that looks like part of a path ("C:/x.png") is not a stage.
func ParseSource(entry string) Source {
	i := strings.LastIndexByte(entry, ':')
	if i < 0 {
		return Source{Path: entry}
	}
	suffix := entry[i+1:]
	if suffix == "" || strings.ContainsAny(suffix, `/\.`) {
		return Source{Path: entry}
	}
	return Source{Path: entry[:i], Stage: suffix}
}

func ParseSources(entries []string) []Source {
	out := make([]Source, len(entries))
	for i, e := range entries {
		out[i] = ParseSource(e)
	}
	return out
}

func (s Source) String() string {
	if s.Stage == "" {
		return s.Path
	}
	return s.Path + ":" + s.Stage
}

// LoadFile reads a whole file from fsys. Paths use forward slashes and are
// relative to the filesystem root.
func LoadFile(fsys fs.FS, name string) ([]byte, error) {
	name = path.Clean(strings.TrimPrefix(name, "./"))
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return b, nil
}
