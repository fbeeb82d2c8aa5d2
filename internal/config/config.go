// Package config holds the CLI/file-facing configuration surface: the
// validated, user-settable knobs enumerated in the core's Configuration
// section, translated into a sat.Options the solver actually consumes.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/satforge/cdcl/sat"
)

// Config mirrors every option named in the core's Configuration section,
// with validator tags so invalid ranges are rejected at option-set time
// rather than at solve time (the "user configuration error" class).
type Config struct {
	Reduce         bool    `validate:"-"`
	ReduceInterval uint64  `validate:"gte=1"`
	ReduceHigh     int     `validate:"gte=0,lte=100"`
	ReduceLow      int     `validate:"gte=0,lte=100,ltefield=ReduceHigh"`
	ReduceFactor   float64 `validate:"gt=0"`
	ReduceAdaptive bool    `validate:"-"`

	Restart           bool    `validate:"-"`
	RestartInterval   uint64  `validate:"gte=1"`
	RestartMargin     float64 `validate:"gte=1.0,lte=3.0"`
	RestartReuseTrail bool    `validate:"-"`
	RestartAdaptive   bool    `validate:"-"`

	Target      string `validate:"oneof=off stable always"`
	PhaseSaving bool   `validate:"-"`
	ForcePhase  string `validate:"oneof=none true false"`

	RandecEnabled bool `validate:"-"`
	Randec        int  `validate:"gte=0"`
	RandecStable  int  `validate:"gte=0"`
	RandecFocused int  `validate:"gte=0"`
	RandecLength  int  `validate:"gte=1"`

	TseitinDecisionBias bool `validate:"-"`

	Seed int64 `validate:"-"`
}

// Default returns the out-of-the-box configuration.
func Default() Config {
	d := sat.DefaultOptions()
	return Config{
		Reduce:         d.Reduce,
		ReduceInterval: d.ReduceInterval,
		ReduceHigh:     d.ReduceHigh,
		ReduceLow:      d.ReduceLow,
		ReduceFactor:   d.ReduceFactor,
		ReduceAdaptive: d.ReduceAdaptive,

		Restart:           d.Restart,
		RestartInterval:   d.RestartInterval,
		RestartMargin:     d.RestartMargin,
		RestartReuseTrail: d.RestartReuseTrail,
		RestartAdaptive:   d.RestartAdaptive,

		Target:      "stable",
		PhaseSaving: d.PhaseSaving,
		ForcePhase:  "none",

		RandecEnabled: d.RandecEnabled,
		Randec:        d.Randec,
		RandecStable:  d.RandecStable,
		RandecFocused: d.RandecFocused,
		RandecLength:  d.RandecLength,

		TseitinDecisionBias: d.TseitinDecisionBias,
		Seed:                d.Seed,
	}
}

var validate = validator.New()

// Validate rejects out-of-range configuration before it ever reaches the
// solver, per the core's "user configuration error" handling: invalid
// option ranges are rejected at option-set time, not at solve time.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ToSolverOptions translates the validated, string-enum-friendly Config
// into the sat package's Options, which uses typed enums instead of
// strings since it has no CLI/file parsing concerns of its own.
func (c Config) ToSolverOptions() sat.Options {
	opt := sat.DefaultOptions()
	opt.Reduce = c.Reduce
	opt.ReduceInterval = c.ReduceInterval
	opt.ReduceHigh = c.ReduceHigh
	opt.ReduceLow = c.ReduceLow
	opt.ReduceFactor = c.ReduceFactor
	opt.ReduceAdaptive = c.ReduceAdaptive

	opt.Restart = c.Restart
	opt.RestartInterval = c.RestartInterval
	opt.RestartMargin = c.RestartMargin
	opt.RestartReuseTrail = c.RestartReuseTrail
	opt.RestartAdaptive = c.RestartAdaptive

	switch c.Target {
	case "off":
		opt.Target = sat.TargetOff
	case "always":
		opt.Target = sat.TargetAlways
	default:
		opt.Target = sat.TargetStableOnly
	}
	opt.PhaseSaving = c.PhaseSaving
	switch c.ForcePhase {
	case "true":
		opt.ForcePhase = sat.ForcePhaseTrue
	case "false":
		opt.ForcePhase = sat.ForcePhaseFalse
	default:
		opt.ForcePhase = sat.ForcePhaseNone
	}

	opt.RandecEnabled = c.RandecEnabled
	opt.Randec = c.Randec
	opt.RandecStable = c.RandecStable
	opt.RandecFocused = c.RandecFocused
	opt.RandecLength = c.RandecLength

	opt.TseitinDecisionBias = c.TseitinDecisionBias
	opt.Seed = c.Seed

	return opt
}
