package sat

// binaryIndex is the denormalized fast-path view of binary clauses
// described in §3/§4.4: for literal l, index[l] lists every literal m such
// that the binary clause (¬l ∨ m) exists, i.e. assigning l true forces m.
// It is redundant with the binary watches and lets callers iterate binary
// implications without checking watch.isBinary on every element. Core
// propagation does not consult it; its readers are Solver.ImpliedBy and
// Solver.RebuildBinaryIndex.
type binaryIndex struct {
	entries [][]Literal
}

func newBinaryIndex() *binaryIndex {
	return &binaryIndex{}
}

func (b *binaryIndex) expand() {
	b.entries = append(b.entries, nil, nil)
}

// add registers that assigning `from` true forces `implied` (i.e. the
// clause (¬from ∨ implied) exists). Linear in the list length, as per
// spec's stated complexity.
func (b *binaryIndex) add(from, implied Literal) {
	for _, m := range b.entries[from] {
		if m == implied {
			return // already present
		}
	}
	b.entries[from] = append(b.entries[from], implied)
}

// remove undoes add. No-op if the entry is absent.
func (b *binaryIndex) remove(from, implied Literal) {
	lst := b.entries[from]
	for i, m := range lst {
		if m == implied {
			lst[i] = lst[len(lst)-1]
			b.entries[from] = lst[:len(lst)-1]
			return
		}
	}
}

// contains is a linear fast-path check; correctness never depends on it.
func (b *binaryIndex) contains(from, implied Literal) bool {
	for _, m := range b.entries[from] {
		if m == implied {
			return true
		}
	}
	return false
}

// rebuild recomputes the entire index from the binary watches, following
// the original's count-then-fill two-pass structure (§9: "the count-then-
// fill is what matters", the shadowed cursor variable in the original is
// dead code and has no counterpart here). A binary watch entry found at
// watches[l] (blocking m) represents clause (l ∨ m); binIdx keys the
// opposite way (index[¬l] forces m), so entries land at Literal(lit).Opposite().
func (b *binaryIndex) rebuild(w *watchLists) {
	n := len(w.lists)
	counts := make([]int, n)
	for lit := 0; lit < n; lit++ {
		for _, ws := range w.lists[lit] {
			if ws.isBinary {
				counts[Literal(lit).Opposite()]++
			}
		}
	}
	b.entries = make([][]Literal, n)
	for lit := 0; lit < n; lit++ {
		if counts[lit] == 0 {
			continue
		}
		b.entries[lit] = make([]Literal, 0, counts[lit])
	}
	for lit := 0; lit < n; lit++ {
		for _, ws := range w.lists[lit] {
			if ws.isBinary {
				key := Literal(lit).Opposite()
				b.entries[key] = append(b.entries[key], ws.blocking)
			}
		}
	}
}
