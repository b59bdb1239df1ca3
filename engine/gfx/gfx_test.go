package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	for _, s := range []Stage{StageVertex, StageTessControl, StageTessEvaluation, StageGeometry, StageFragment, StageCompute} {
		got, err := ParseStage(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStage("TESSELLATION_EVALUATION")
	require.NoError(t, err)
	assert.Equal(t, StageTessEvaluation, got)
}

func TestParseStageRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "PIXEL", "vertex", "COMPUTE "} {
		_, err := ParseStage(name)
		assert.ErrorIs(t, err, ErrInvalidShaderType, name)
	}
}

func TestStageValid(t *testing.T) {
	assert.True(t, StageCompute.Valid())
	assert.False(t, numStages.Valid())
	assert.Equal(t, "Stage(42)", Stage(42).String())
}
