package sat

// Statistics are plain write-only (from the core's perspective) counters,
// per §6: "These are write-only from the core's perspective." Exposing
// them as Prometheus metrics is the job of internal/metrics, which wraps
// a Statistics snapshot function (such as Solver.Stats) in a
// prometheus.Collector without the core importing
// Prometheus itself.
type Statistics struct {
	Conflicts uint64

	DecisionsRandom   uint64
	DecisionsScore    uint64
	DecisionsQueue    uint64
	DecisionsWarming  uint64
	DecisionsInitial  uint64
	DecisionsTarget   uint64
	DecisionsSaved    uint64

	Propagations uint64

	Restarts        uint64
	ReusedLevels    uint64

	Reductions      uint64
	ClausesReducedTier1 uint64
	ClausesReducedTier2 uint64

	ModeSwitches uint64

	Ticks uint64
}

func (st *Statistics) recordDecision(src decisionSource) {
	switch src {
	case sourceRandom:
		st.DecisionsRandom++
	case sourceScore:
		st.DecisionsScore++
	case sourceQueue:
		st.DecisionsQueue++
	case sourceWarming:
		st.DecisionsWarming++
	case sourceInitial:
		st.DecisionsInitial++
	case sourceTarget:
		st.DecisionsTarget++
	case sourceSaved:
		st.DecisionsSaved++
	case sourceSwitchParity:
		st.DecisionsInitial++
	}
}
