package sat

import (
	"math"
	"sort"
)

// reducer implements §4.9: periodically deletes a fraction of learned
// clauses, keeping the ones recently used or of high quality (low glue).
type reducer struct {
	firstReducible clauseRef
	nextAt         uint64
	reductions     uint64
	baseDelta      uint64
}

func newReducer(opt Options) *reducer {
	return &reducer{
		nextAt:    opt.ReduceInterval,
		baseDelta: opt.ReduceInterval,
	}
}

type reduceCandidate struct {
	ref  clauseRef
	rank uint64
	glue int
}

// tierCutoffs computes tier1 <= tier2 glue thresholds for this reduction
// round. The original scales these off the running average glue; here we
// use a fixed, proven-reasonable pair of thresholds scaled mildly by the
// reduction count, which keeps later rounds slightly more permissive as
// the clause pool grows.
func (r *reducer) tierCutoffs() (int, int) {
	tier1 := 3
	tier2 := 6 + int(r.reductions/4)
	if tier2 < tier1 {
		tier2 = tier1
	}
	return tier1, tier2
}

// reduce runs one reduction pass over the arena, per §4.9's numbered
// steps. Reason clauses are protected via the `keep` flag for the
// duration of the pass (cleared at the end), so a concurrent glance at a
// clause's flags never misreports a currently-locked clause as garbage.
func (s *Solver) reduce() {
	r := s.reducer
	tier1, tier2 := r.tierCutoffs()

	s.markReasonClausesKept()

	var candidates []reduceCandidate
	ref := r.firstReducible
	for int(ref) < len(s.arena.words) {
		c := s.arena.get(ref)
		size := c.Size()
		if !c.IsRedundant() || c.IsGarbage() || c.IsReason() || c.IsKeep() {
			ref = clauseRef(int(ref) + clauseHeaderWords + size)
			continue
		}
		c.DecayUsed()
		glue := c.Glue()
		protected := (glue <= tier1 && c.Used() > 0) || (glue <= tier2 && c.Used() >= maxUsed-1)
		if !protected {
			candidates = append(candidates, reduceCandidate{
				ref:  ref,
				rank: rank(size, glue),
				glue: glue,
			})
		}
		ref = clauseRef(int(ref) + clauseHeaderWords + size)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].rank < candidates[j].rank })

	fraction := garbageFraction(s.options.ReduceHigh, s.options.ReduceLow, r.reductions)
	n := int(fraction * float64(len(candidates)))
	for i := 0; i < n && i < len(candidates); i++ {
		cand := candidates[i]
		c := s.arena.get(cand.ref)
		s.deleteClause(c)
		if cand.glue <= tier1 {
			s.stats.ClausesReducedTier1++
		} else {
			s.stats.ClausesReducedTier2++
		}
	}

	s.clearReasonClauseKept()
	s.sparseCollect()

	r.reductions++
	scale := 1.0
	if s.options.ReduceAdaptive {
		scale = math.Sqrt(float64(r.reductions))
	}
	r.nextAt = s.stats.Conflicts + uint64(float64(r.baseDelta)*scale)
}

// rank matches §4.9's `rank = (~size) | (~glue << 32)`: bitwise-NOT makes
// larger size/glue sort first (ascending) as least useful.
func rank(size, glue int) uint64 {
	return (uint64(^uint32(size))) | (uint64(^uint32(glue)) << 32)
}

// garbageFraction interpolates between reducehigh/10 and reducelow/10 by
// log10(reductions+9), per §4.9 step 4.
func garbageFraction(high, low int, reductions uint64) float64 {
	h := float64(high) / 10.0
	l := float64(low) / 10.0
	return h - (h-l)/math.Log10(float64(reductions)+9)
}

func (s *Solver) markReasonClausesKept() {
	for v := 1; v <= s.numVars(); v++ {
		if s.trail.level[v] < 0 {
			continue
		}
		r := s.trail.reasons[v]
		if r.kind == reasonClause {
			s.arena.get(r.ref).SetKeep(true)
		}
	}
}

func (s *Solver) clearReasonClauseKept() {
	for v := 1; v <= s.numVars(); v++ {
		if s.trail.level[v] < 0 {
			continue
		}
		r := s.trail.reasons[v]
		if r.kind == reasonClause {
			s.arena.get(r.ref).SetKeep(false)
		}
	}
}

// deleteClause marks a clause garbage and detaches its watches. Physical
// removal happens only at the next compaction (§4.1's invariant).
func (s *Solver) deleteClause(c clause) {
	c.MarkGarbage()
	s.watches.removeLarge(c.Lit(0), c.ref)
	s.watches.removeLarge(c.Lit(1), c.ref)
}

// sparseCollect updates firstReducible past any leading run of garbage
// clauses, so the next reduction pass doesn't re-walk them. A full
// compact() is scheduled instead whenever the garbage fraction of the
// whole arena grows large (see Solver.maybeCompact).
func (s *Solver) sparseCollect() {
	ref := s.reducer.firstReducible
	for int(ref) < len(s.arena.words) {
		c := s.arena.get(ref)
		if !c.IsGarbage() {
			break
		}
		ref = clauseRef(int(ref) + clauseHeaderWords + c.Size())
	}
	s.reducer.firstReducible = ref
}
