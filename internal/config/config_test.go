package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsReduceLowAboveReduceHigh(t *testing.T) {
	cfg := Default()
	cfg.ReduceHigh = 50
	cfg.ReduceLow = 60
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownTarget(t *testing.T) {
	cfg := Default()
	cfg.Target = "sometimes"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownForcePhase(t *testing.T) {
	cfg := Default()
	cfg.ForcePhase = "maybe"
	assert.Error(t, cfg.Validate())
}

func TestToSolverOptionsTranslatesEnums(t *testing.T) {
	cfg := Default()
	cfg.Target = "off"
	cfg.ForcePhase = "true"
	cfg.Seed = 7

	opt := cfg.ToSolverOptions()
	assert.Equal(t, int64(7), opt.Seed)
	assert.EqualValues(t, 0, opt.Target) // TargetOff
	assert.EqualValues(t, 1, opt.ForcePhase) // ForcePhaseTrue
}
