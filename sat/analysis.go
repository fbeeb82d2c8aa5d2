package sat

// analyzer holds the scratch state for first-UIP conflict analysis (§4.6),
// reused across conflicts to avoid per-conflict allocation.
type analyzer struct {
	marks   markSet
	learned []Literal // the learned clause, lits[0] is the asserting (first-UIP) literal
	explain []Literal // scratch buffer for reason expansion
	explain2 []Literal // second scratch buffer, used when minimization needs a nested reason
	stack   []Literal // scratch DFS stack for minimization
}

func newAnalyzer() *analyzer {
	return &analyzer{}
}

func (a *analyzer) expand() {
	a.marks.expand()
}

// analysisResult is the outcome of analyze: the learned clause, the glue
// (number of distinct levels among its literals), and the backjump level.
type analysisResult struct {
	learned      []Literal
	glue         int
	backjumpLevel int
}

// analyze performs first-UIP conflict analysis (§4.6). It walks the trail
// backward from the conflict level, resolving the conflict clause (and
// subsequently each forced literal's reason clause) against the frontier,
// until exactly one literal at the conflict level remains: the first UIP.
//
// A conflict at level 0 is not valid input here: callers must check for
// root-level UNSAT before calling analyze (§4.6 "Failure mode").
func (s *Solver) analyze(c conflict) analysisResult {
	a := s.analyzer
	a.marks.clear()
	a.learned = a.learned[:0]

	conflictLevel := s.trail.decisionLevel()
	pending := 0 // literals still to resolve at conflictLevel

	seed := s.explainFailure(c, a.explain)
	pending = a.resolveLiterals(s, seed, conflictLevel, pending)

	idx := len(s.trail.lits) - 1
	var uip Literal
	for {
		for !a.marks.isAnalyzed(s.trail.lits[idx].VarID()) {
			idx--
		}
		uip = s.trail.lits[idx]
		idx--
		if pending == 1 {
			break
		}
		pending--
		r := s.trail.reasons[uip.VarID()]
		lits := s.explainAssign(r, a.explain)
		pending = a.resolveLiterals(s, lits, conflictLevel, pending)
	}

	a.learned = append(a.learned, uip.Opposite())
	a.minimize(s)

	return s.finishAnalysis(a, conflictLevel)
}

// resolveLiterals folds freshly explained literals into the analysis
// frontier: level-0 literals are dropped (§4.6 "skip level-0 literals"),
// conflict-level literals extend the pending counter, and lower-level
// literals (true on the trail) are appended negated to the learned buffer,
// so every learned literal is false under the current assignment.
func (a *analyzer) resolveLiterals(s *Solver, lits []Literal, conflictLevel, pending int) int {
	for _, lit := range lits {
		v := lit.VarID()
		if a.marks.isAnalyzed(v) {
			continue
		}
		lvl := int(s.trail.level[v])
		if lvl == 0 {
			continue
		}
		a.marks.setAnalyzed(v)
		s.bumpVarActivity(v)
		if lvl == conflictLevel {
			pending++
		} else {
			a.learned = append(a.learned, lit.Opposite())
		}
	}
	return pending
}

// minimize drops learned literals whose reason clause's other literals are
// all already subsumed by the learned set, using the removable/poisoned
// marks so a variable's verdict is reused within one conflict. The check
// is depth-limited, see litIsRedundant.
func (a *analyzer) minimize(s *Solver) {
	out := a.learned[:1] // keep the asserting literal unconditionally
	for _, lit := range a.learned[1:] {
		if s.litIsRedundant(lit) {
			continue
		}
		out = append(out, lit)
	}
	a.learned = out
}

// litIsRedundant decides whether lit can be dropped from the learned
// clause: true iff lit has a reason and every other literal in that
// reason is analyzed, removable or level-0, or is itself forced by a
// reason whose other literals are all analyzed or removable. The search
// goes at most two reasons deep; implications further back are not
// explored, and such literals are kept.
func (s *Solver) litIsRedundant(lit Literal) bool {
	a := s.analyzer
	v := lit.VarID()
	if a.marks.isRemovable(v) {
		return true
	}
	if a.marks.isPoisoned(v) {
		return false
	}
	r := s.trail.reasons[v]
	if r.kind == reasonDecision {
		a.marks.setPoisoned(v)
		return false
	}

	a.stack = a.stack[:0]
	a.stack = append(a.stack, lit)
	start := len(a.stack) - 1
	frontier := s.explainAssign(r, a.explain)

	for _, other := range frontier {
		ov := other.VarID()
		if ov == v || a.marks.isAnalyzed(ov) || a.marks.isRemovable(ov) {
			continue
		}
		if s.trail.level[ov] == 0 {
			continue
		}
		or := s.trail.reasons[ov]
		if or.kind == reasonDecision || a.marks.isPoisoned(ov) {
			for i := start; i < len(a.stack); i++ {
				a.marks.setPoisoned(a.stack[i].VarID())
			}
			return false
		}
		sub := s.explainAssign(or, a.explain2)
		ok := true
		for _, o2 := range sub {
			o2v := o2.VarID()
			if o2v == v || a.marks.isAnalyzed(o2v) || a.marks.isRemovable(o2v) {
				continue
			}
			ok = false
			break
		}
		if !ok {
			for i := start; i < len(a.stack); i++ {
				a.marks.setPoisoned(a.stack[i].VarID())
			}
			return false
		}
		a.marks.setRemovable(ov)
	}
	a.marks.setRemovable(v)
	return true
}

// finishAnalysis computes glue and the backjump level from the finished
// learned clause, and orders lits[1] as the literal with the highest
// level among the non-asserting literals (the standard watch-friendly
// ordering for the freshly learned clause).
func (s *Solver) finishAnalysis(a *analyzer, conflictLevel int) analysisResult {
	learned := a.learned

	if len(learned) > 1 {
		best := 1
		bestLevel := s.trail.level[learned[1].VarID()]
		for i := 2; i < len(learned); i++ {
			lvl := s.trail.level[learned[i].VarID()]
			if lvl > bestLevel {
				bestLevel = lvl
				best = i
			}
		}
		learned[1], learned[best] = learned[best], learned[1]
	}

	levels := map[int32]struct{}{int32(conflictLevel): {}}
	for _, lit := range learned[1:] {
		levels[s.trail.level[lit.VarID()]] = struct{}{}
	}

	backjump := 0
	if len(learned) > 1 {
		backjump = int(s.trail.level[learned[1].VarID()])
	}

	out := make([]Literal, len(learned))
	copy(out, learned)

	return analysisResult{
		learned:       out,
		glue:          len(levels),
		backjumpLevel: backjump,
	}
}
