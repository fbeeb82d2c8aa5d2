package sat

// ForcePhase controls the switch-parity oracle in focused mode (§4.7):
// with ForcePhaseNone the oracle decides every focused-mode phase; any
// other value turns it off. choosePhase reads no other distinction, so
// ForcePhaseTrue and ForcePhaseFalse behave the same.
type ForcePhase int

const (
	ForcePhaseNone ForcePhase = iota
	ForcePhaseTrue
	ForcePhaseFalse
)

// Target controls when the "deepest trail seen" phase is consulted.
type Target int

const (
	TargetOff Target = iota
	TargetStableOnly
	TargetAlways
)

// Options holds every configuration knob enumerated in §6. Values are
// assumed pre-validated: Solver does not reject out-of-range values
// itself (validation is the CLI/config layer's job, see internal/config),
// matching §7's "invalid option ranges are rejected at option-set time".
type Options struct {
	Reduce         bool
	ReduceInterval uint64
	ReduceHigh     int
	ReduceLow      int
	ReduceFactor   float64
	ReduceAdaptive bool

	Restart          bool
	RestartInterval  uint64
	RestartMargin    float64
	RestartReuseTrail bool
	RestartAdaptive  bool

	Target      Target
	PhaseSaving bool
	ForcePhase  ForcePhase
	InitialPhase LBool

	RandecEnabled bool
	Randec        int
	RandecStable  int
	RandecFocused int
	RandecLength  int

	TseitinDecisionBias bool

	Seed int64
}

// DefaultOptions returns the solver's out-of-the-box configuration,
// matching typical CDCL defaults.
func DefaultOptions() Options {
	return Options{
		Reduce:         true,
		ReduceInterval: 300,
		ReduceHigh:     75,
		ReduceLow:      30,
		ReduceFactor:   1.0,
		ReduceAdaptive: true,

		Restart:           true,
		RestartInterval:   1,
		RestartMargin:     1.20,
		RestartReuseTrail: true,
		RestartAdaptive:   true,

		Target:       TargetStableOnly,
		PhaseSaving:  true,
		ForcePhase:   ForcePhaseNone,
		InitialPhase: False,

		RandecEnabled: true,
		Randec:        1000,
		RandecStable:  1000,
		RandecFocused: 1000,
		RandecLength:  100,

		TseitinDecisionBias: true,

		Seed: 1,
	}
}
