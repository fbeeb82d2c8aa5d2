package sat

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Solver is a CDCL SAT solver core: arena-based clause storage, two
// watched literals per clause, first-UIP conflict analysis with depth-limited
// minimization, glue-EMA/Luby restarts, tiered clause reduction, and a
// stable/focused mode switcher. It is single-threaded and synchronous
// (§5): every exported method runs to completion and touches no shared
// state across goroutines.
type Solver struct {
	options Options
	log     *logrus.Entry

	arena   *arena
	trail   *trail
	watches watchLists
	binIdx  *binaryIndex

	tmpWatches  []watch
	propagated  int
	ticks       uint64
	simdEnabled bool

	analyzer *analyzer

	activity *varActivity
	queue    *focusedQueue
	phases   *phaseMemory
	stable   bool

	modeSwitches uint64
	mode         *modeSwitcher

	restart *restartController
	reducer *reducer
	hooks   *hookRegistry

	rng             *rand.Rand
	randecRemaining int
	randecNextAt    uint64

	stats Statistics

	nVars        int
	lowWatermark int
	inconsistent bool
	unitClauses  []Literal // root-level unit literals, for reference/debugging
}

// New creates a Solver with the given options and a default logrus
// logger that writes warnings and above to standard error; callers that
// want a different logger should set it via WithLogger before adding
// clauses.
func New(opt Options) *Solver {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	s := &Solver{
		options:  opt,
		log:      logrus.NewEntry(logger),
		arena:    &arena{},
		trail:    newTrail(),
		watches:  *newWatchLists(),
		binIdx:   newBinaryIndex(),
		analyzer: newAnalyzer(),
		activity: newVarActivity(0.95),
		queue:    newFocusedQueue(),
		phases:   newPhaseMemory(),
		mode:     newModeSwitcher(5000),
		restart:  newRestartController(opt),
		reducer:  newReducer(opt),
		hooks:    newHookRegistry(1 << 20),
		rng:          newRNG(opt.Seed),
		stable:       true,
		simdEnabled:  simdSupported,
		lowWatermark: 1,
	}
	s.ensureVar(0) // variable 0 is padding; DIMACS variables are 1-indexed
	return s
}

// WithLogger overrides the solver's diagnostic logger.
func (s *Solver) WithLogger(l *logrus.Entry) *Solver {
	s.log = l
	return s
}

func (s *Solver) numVars() int { return s.nVars }

// AddVariable allocates the next variable (1-indexed) and returns its id.
func (s *Solver) AddVariable() int {
	s.nVars++
	s.ensureVar(s.nVars)
	return s.nVars
}

// ensureVar grows every per-variable/per-literal structure up to and
// including v.
func (s *Solver) ensureVar(v int) {
	s.trail.expand()
	s.watches.expand()
	s.binIdx.expand()
	s.analyzer.expand()
	s.activity.expand()
	s.queue.expand()
	s.phases.expand(s.options.InitialPhase)
	if v > 0 {
		s.activity.addVar(v)
		s.queue.enqueue(v)
	}
}

// reserveVars ensures variables 1..n exist, growing the solver if the
// DIMACS header or a clause references a variable not yet seen.
func (s *Solver) reserveVars(n int) {
	for s.nVars < n {
		s.AddVariable()
	}
}

func (s *Solver) isAssigned(v int) bool {
	return s.trail.level[v] >= 0
}

// AddClause ingests one input clause (§6 "Ingestion"): the parser calls
// this for each clause, and unit inputs are propagated immediately.
// Preprocessing mirrors the teacher's NewClause: duplicate literals are
// dropped, a tautological clause is silently discarded, and literals
// already false at level 0 are removed before dispatch.
func (s *Solver) AddClause(lits []Literal) {
	if s.inconsistent {
		return
	}
	for _, l := range lits {
		s.reserveVars(l.VarID())
	}

	buf := make([]Literal, 0, len(lits))
	seen := map[Literal]bool{}
	for _, l := range lits {
		if seen[l.Opposite()] {
			return // tautology
		}
		if seen[l] {
			continue // duplicate
		}
		if s.trail.decisionLevel() == 0 {
			switch s.trail.value(l) {
			case True:
				return // already satisfied
			case False:
				continue // drop root-false literal
			}
		}
		seen[l] = true
		buf = append(buf, l)
	}

	switch len(buf) {
	case 0:
		s.inconsistent = true
	case 1:
		s.assignRootUnit(buf[0])
	case 2:
		s.addBinary(buf[0], buf[1])
	default:
		s.addLarge(buf)
	}
}

func (s *Solver) assignRootUnit(lit Literal) {
	if s.trail.value(lit) == False {
		s.inconsistent = true
		return
	}
	if s.trail.value(lit) == True {
		return
	}
	s.unitClauses = append(s.unitClauses, lit)
	s.trail.assignForced(lit, decisionReason)
	if c := s.propagate(); c.valid() {
		s.inconsistent = true
	}
}

// addBinary registers clause (a ∨ b). Watches key by each literal's own
// value (propagateLiteral re-examines watches[l] when l itself goes
// false), matching addLarge's convention. binIdx keys the other way
// around (§4.4: index[l] holds what assigning l true forces), so its
// entries are keyed by each literal's opposite.
func (s *Solver) addBinary(a, b Literal) {
	s.watches.pushBinary(a, b)
	s.watches.pushBinary(b, a)
	s.binIdx.add(a.Opposite(), b)
	s.binIdx.add(b.Opposite(), a)
}

func (s *Solver) addLarge(lits []Literal) {
	ref := s.arena.alloc(lits, false)
	c := s.arena.get(ref)
	s.watches.pushLarge(c.Lit(0), ref, c.Lit(1))
	s.watches.pushLarge(c.Lit(1), ref, c.Lit(0))
}

// learnClause inserts a freshly analyzed clause per §4.6, registering it
// with watches and, if binary, with the binary index. A unit learned
// clause is enqueued directly at level 0 with no arena record.
func (s *Solver) learnClause(lits []Literal, glue int) {
	switch len(lits) {
	case 1:
		s.trail.assignForced(lits[0], decisionReason)
	case 2:
		s.addBinary(lits[0], lits[1])
		s.trail.assignForced(lits[0], binaryReason(lits[1]))
	default:
		ref := s.arena.alloc(lits, true)
		c := s.arena.get(ref)
		c.SetGlue(glue)
		s.watches.pushLarge(c.Lit(0), ref, c.Lit(1))
		s.watches.pushLarge(c.Lit(1), ref, c.Lit(0))
		s.trail.assignForced(c.Lit(0), clauseReason(ref))
	}
}

func (s *Solver) bumpVarActivity(v int) {
	s.activity.bump(v)
	s.queue.bump(v)
}

func (s *Solver) bumpClauseActivity(c clause) {
	c.BumpUsed()
}

// backtrackTo unwinds the trail to `level`, restoring heuristic state for
// every unassigned variable (phase save, heap reinsertion, queue cursor
// restoration).
func (s *Solver) backtrackTo(level int) {
	s.trail.backtrackTo(level, func(lit Literal) {
		v := lit.VarID()
		s.phases.save(v, Lift(lit.IsPositive()))
		s.activity.reinsert(v)
		s.queue.restoreCursor(v)
		if v < s.lowWatermark {
			s.lowWatermark = v
		}
	})
	s.propagated = s.trail.numAssigned()
}

// Solve runs search to completion or until ctx is cancelled (checked once
// per loop iteration), returning the outcome per §6's {10, 20, 0}
// convention. When StatusSatisfiable, Value/Model expose the assignment.
func (s *Solver) Solve(ctx context.Context) Status {
	if s.inconsistent {
		return StatusUnsat
	}
	if c := s.propagate(); c.valid() {
		s.inconsistent = true
		return StatusUnsat
	}

	for {
		select {
		case <-ctx.Done():
			return StatusUnknown
		default:
		}

		conflict := s.propagate()
		if conflict.valid() {
			if s.trail.decisionLevel() == 0 {
				s.inconsistent = true
				return StatusUnsat
			}
			result := s.analyze(conflict)
			s.stats.Conflicts++
			s.restart.observeConflict(result.glue)
			if s.stable {
				s.phases.captureTarget(s.trail)
			}
			s.backtrackTo(result.backjumpLevel)
			s.learnClause(result.learned, result.glue)
			s.activity.decayAll()
			continue
		}

		if s.trail.numAssigned() == s.nVars {
			return StatusSatisfiable
		}

		if s.mode.poll(s.stats.Conflicts) {
			s.stable = !s.stable
			s.modeSwitches++
			s.stats.ModeSwitches++
		}

		if s.options.Restart && s.restart.shouldRestart(s.stable, s.options) {
			reuse := s.reuseTrailLevel(s.peekNextVar())
			if reuse < s.trail.decisionLevel() {
				s.stats.ReusedLevels += uint64(s.trail.decisionLevel() - reuse)
			}
			s.backtrackTo(reuse)
			s.restart.afterRestart(s.stable)
			s.stats.Restarts++
		}

		if s.options.Reduce && s.stats.Conflicts >= s.reducer.nextAt {
			s.reduce()
			s.maybeCompact()
			s.stats.Reductions++
		}

		s.hooks.maybeRun(s)

		v, phaseVal, src, ok := s.decide()
		if !ok {
			return StatusSatisfiable
		}
		s.stats.recordDecision(src)
		lit := PositiveLiteral(v)
		if phaseVal == False {
			lit = NegativeLiteral(v)
		}
		s.trail.assignDecision(lit)
	}
}

// peekNextVar returns the variable the heap (stable mode) or the queue
// (focused mode) would pick next, without consuming it, for the
// trail-reuse-level computation. Random decisions and the Tseitin bias are
// not taken into account.
func (s *Solver) peekNextVar() int {
	if s.stable {
		v, ok := s.activity.nextUnassigned(s.isAssigned)
		if !ok {
			return 0
		}
		return v
	}
	v, ok := s.queue.nextUnassigned(s.isAssigned)
	if !ok {
		return 0
	}
	return v
}

// decide picks the next decision variable and phase per §4.7: random
// bursts first, then the mode-appropriate structure (heap in stable mode,
// queue in focused mode). In focused mode with the Tseitin bias enabled,
// the lowest-numbered unassigned variable is picked instead of the
// queue's choice.
func (s *Solver) decide() (int, LBool, decisionSource, bool) {
	if v, ok := s.maybeRandomDecision(); ok {
		ph, _ := s.choosePhase(v)
		return v, ph, sourceRandom, true
	}

	var v int
	var ok bool
	var src decisionSource
	if s.stable {
		v, ok = s.activity.nextUnassigned(s.isAssigned)
		src = sourceScore
	} else if s.options.TseitinDecisionBias {
		v, ok = s.lowestUnassigned()
		src = sourceQueue
	} else {
		v, ok = s.queue.nextUnassigned(s.isAssigned)
		src = sourceQueue
	}
	if !ok {
		return 0, Unknown, src, false
	}
	ph, phaseSrc := s.choosePhase(v)
	if phaseSrc != sourceInitial {
		src = phaseSrc
	}
	return v, ph, src, true
}

// lowestUnassigned implements the `tseitindec` option (§6): a bias toward
// low-magnitude variable indices for queue decisions, on the observation
// that Tseitin-transformed CNF introduces top-level structural variables
// first. lowWatermark only moves forward here, skipping assigned
// variables; backtrackTo moves it back down when it unassigns a
// lower-numbered variable.
func (s *Solver) lowestUnassigned() (int, bool) {
	for s.lowWatermark <= s.nVars && s.isAssigned(s.lowWatermark) {
		s.lowWatermark++
	}
	if s.lowWatermark > s.nVars {
		return 0, false
	}
	return s.lowWatermark, true
}

// Stats returns a snapshot of the solver's statistics counters.
func (s *Solver) Stats() Statistics {
	st := s.stats
	st.Ticks = s.ticks
	return st
}

// Inconsistent reports whether the solver has detected root-level UNSAT,
// e.g. from AddClause preprocessing, without needing a Solve call.
func (s *Solver) Inconsistent() bool { return s.inconsistent }

// ImpliedBy returns every literal directly implied by lit through a
// binary clause, via the binary index fast path (§4.4). Intended for
// inprocessing passes (probing, vivification) that want binary
// implications without walking mixed watch lists; the core's own
// propagate never consults it.
func (s *Solver) ImpliedBy(lit Literal) []Literal {
	return s.binIdx.entries[lit]
}

// RebuildBinaryIndex recomputes the binary index from scratch. The index
// is kept incrementally in sync by AddClause/learnClause, so this is only
// needed after bulk structural surgery (e.g. an inprocessing pass that
// rewrites watches directly via the Engine interface).
func (s *Solver) RebuildBinaryIndex() {
	s.binIdx.rebuild(&s.watches)
}
