package sat

// conflict identifies the clause that falsified during propagation. Binary
// conflicts have no arena record (binary clauses are never stored in the
// arena, see AddClause and learnClause), so they carry their two literals directly instead
// of a reference.
type conflict struct {
	ref        clauseRef // invalidRef for a synthetic binary conflict
	binA, binB Literal
}

func (c conflict) isBinary() bool { return c.ref == invalidRef }

var noConflict = conflict{ref: invalidRef, binA: -1, binB: -1}

func (c conflict) valid() bool {
	return c != noConflict
}

// propagate advances through unprocessed trail literals (from the
// propagated cursor) applying unit propagation over the watch lists,
// returning either a conflict or noConflict on success (§4.5).
//
// On success: every clause with a watched literal true is satisfied;
// every other clause is either satisfied, has both watches unassigned, or
// would itself have been reported as the conflict.
func (s *Solver) propagate() conflict {
	for s.propagated < s.trail.numAssigned() {
		lit := s.trail.lits[s.propagated]
		s.propagated++
		if c := s.propagateLiteral(lit); c.valid() {
			return c
		}
	}
	return noConflict
}

// propagateLiteral runs the per-literal scan of §4.5 over watches[¬lit].
func (s *Solver) propagateLiteral(lit Literal) conflict {
	notLit := lit.Opposite()
	w := &s.watches

	s.tmpWatches = append(s.tmpWatches[:0], w.lists[notLit]...)
	kept := w.lists[notLit][:0]

	result := noConflict
	i := 0
	for ; i < len(s.tmpWatches); i++ {
		wv := s.tmpWatches[i]
		s.ticks++

		if wv.isBinary {
			bv := s.trail.value(wv.blocking)
			switch {
			case bv > 0:
				kept = append(kept, wv)
			case bv < 0:
				kept = append(kept, wv)
				result = conflict{ref: invalidRef, binA: notLit, binB: wv.blocking}
				i++
				goto drain
			default:
				s.trail.assignForced(wv.blocking, binaryReason(notLit))
				s.stats.Propagations++
				kept = append(kept, wv)
			}
			continue
		}

		c := s.arena.get(wv.ref)
		if c.IsGarbage() {
			continue // drop: garbage clauses are not re-watched
		}
		s.ticks++

		other := Literal(uint32(c.Lit(0)) ^ uint32(c.Lit(1)) ^ uint32(notLit))
		if s.trail.value(other) > 0 {
			kept = append(kept, watch{blocking: other, ref: wv.ref})
			continue
		}

		if idx, ok := findNonFalse(s, c); ok {
			c.setSearched(idx)
			r := c.Lit(idx)
			c.setLit(0, other)
			c.setLit(1, r)
			c.setLit(idx, notLit)
			w.delay(r, other, wv.ref)
			continue // watch moves off notLit's list
		}

		if s.trail.value(other) < 0 {
			kept = append(kept, watch{blocking: other, ref: wv.ref})
			result = conflict{ref: wv.ref}
			i++
			goto drain
		}

		// other is being forced: put it at lits[0] and the falsified
		// notLit at lits[1], so explainAssign's "lits[1:] are the
		// antecedents" convention holds regardless of which of the two
		// watched positions notLit originally occupied.
		c.setLit(0, other)
		c.setLit(1, notLit)
		s.trail.assignForced(other, clauseReason(wv.ref))
		s.stats.Propagations++
		kept = append(kept, watch{blocking: other, ref: wv.ref})
	}

drain:
	if i < len(s.tmpWatches) {
		kept = append(kept, s.tmpWatches[i:]...)
	}
	w.lists[notLit] = kept
	w.drainDelayed()
	return result
}

// findNonFalse implements the ternary specialization and wrapping scan of
// §4.5: for a 3-literal clause it is a single check of lits[2]; otherwise
// it scans from `searched` wrapping back to index 2, returning the first
// index whose value is not False. The SIMD-contract scan in simd.go is a
// pure performance variant that must return the same index.
func findNonFalse(s *Solver, c clause) (int, bool) {
	size := c.Size()
	if size == 3 {
		if s.trail.value(c.Lit(2)) >= 0 {
			return 2, true
		}
		return 0, false
	}

	searched := c.searched()
	if searched < 2 || searched >= size {
		searched = 2
	}

	if s.simdEnabled && size-searched >= simdLanes {
		if idx, ok := simdScanNonFalse(s.trail.values, c, searched, size); ok {
			return idx, true
		}
	} else if idx, ok := scalarScanNonFalse(s.trail.values, c, searched, size); ok {
		return idx, true
	}
	if idx, ok := scalarScanNonFalse(s.trail.values, c, 2, searched); ok {
		return idx, true
	}
	return 0, false
}

func scalarScanNonFalse(values []LBool, c clause, from, to int) (int, bool) {
	for k := from; k < to; k++ {
		if values[c.Lit(k)] >= 0 {
			return k, true
		}
	}
	return 0, false
}

// explainFailure returns the negation of every literal of the conflict
// clause: the seed of conflict analysis (§4.6).
func (s *Solver) explainFailure(c conflict, out []Literal) []Literal {
	out = out[:0]
	if c.isBinary() {
		return append(out, c.binA.Opposite(), c.binB.Opposite())
	}
	cl := s.arena.get(c.ref)
	if cl.IsRedundant() {
		s.bumpClauseActivity(cl)
	}
	for i := 0; i < cl.Size(); i++ {
		out = append(out, cl.Lit(i).Opposite())
	}
	return out
}

// explainAssign returns the negation of every literal that forced `lit`,
// excluding lit itself.
func (s *Solver) explainAssign(r reason, out []Literal) []Literal {
	out = out[:0]
	switch r.kind {
	case reasonBinary:
		return append(out, r.lit.Opposite())
	case reasonClause:
		cl := s.arena.get(r.ref)
		if cl.IsRedundant() {
			s.bumpClauseActivity(cl)
			cl.BumpUsed()
		}
		for i := 1; i < cl.Size(); i++ {
			out = append(out, cl.Lit(i).Opposite())
		}
		return out
	default:
		return out
	}
}
