package sat

// compact physically removes every garbage clause from the arena and
// rewrites every held clauseRef accordingly: watches, trail reasons, and
// the reducer's firstReducible cursor. This is the only routine permitted
// to invalidate previously-returned clauseRef values (§4.1, §5).
func (s *Solver) compact() {
	old := s.arena
	newArena := &arena{words: make([]uint32, 0, len(old.words))}
	remap := make(map[clauseRef]clauseRef)

	ref := clauseRef(0)
	for int(ref) < len(old.words) {
		c := old.get(ref)
		size := c.Size()
		if !c.IsGarbage() {
			newRef := clauseRef(len(newArena.words))
			newArena.words = append(newArena.words, old.words[ref:int(ref)+clauseHeaderWords+size]...)
			remap[ref] = newRef
		}
		ref = clauseRef(int(ref) + clauseHeaderWords + size)
	}

	remapRef := func(r clauseRef) clauseRef {
		if r == invalidRef {
			return invalidRef
		}
		nr, ok := remap[r]
		if !ok {
			return invalidRef // was garbage; any watch/reason pointing here is stale and dropped by caller
		}
		return nr
	}

	for lit := range s.watches.lists {
		lst := s.watches.lists[lit]
		j := 0
		for _, w := range lst {
			if !w.isBinary {
				nr := remapRef(w.ref)
				if nr == invalidRef {
					continue
				}
				w.ref = nr
			}
			lst[j] = w
			j++
		}
		s.watches.lists[lit] = lst[:j]
	}

	for v := 1; v <= s.numVars(); v++ {
		r := &s.trail.reasons[v]
		if r.kind == reasonClause {
			r.ref = remapRef(r.ref)
		}
	}

	s.reducer.firstReducible = remapRef(s.reducer.firstReducible)
	if s.reducer.firstReducible == invalidRef {
		s.reducer.firstReducible = clauseRef(len(newArena.words))
	}

	s.arena = newArena
}

// maybeCompact schedules a full compaction instead of a sparse collect
// when the fraction of the arena occupied by garbage clauses grows large
// enough that walking past it repeatedly would dominate reduce's cost.
func (s *Solver) maybeCompact() {
	total := len(s.arena.words)
	if total == 0 {
		return
	}
	garbageWords := 0
	ref := clauseRef(0)
	for int(ref) < total {
		c := s.arena.get(ref)
		size := c.Size()
		if c.IsGarbage() {
			garbageWords += clauseHeaderWords + size
		}
		ref = clauseRef(int(ref) + clauseHeaderWords + size)
	}
	if float64(garbageWords) >= 0.25*float64(total) {
		s.compact()
	}
}
