package sat

// watch is a tagged union: either a binary watch (the clause is the
// two-literal (watched ∨ blocking) implicit clause; there is no arena
// record) or a large watch (blocking literal cached next to a reference
// into the arena). Go has no packed two-word/one-word encoding advantage
// here, so both variants share one struct (§9: "keep the packed
// representation only where profiling demands it").
type watch struct {
	isBinary bool
	blocking Literal
	ref      clauseRef
}

// delayedWatch is a watch move queued during a literal scan: the large
// clause watch must move to literal `to`, but the list for `to` cannot be
// mutated while scan is walking a different list it might alias.
type delayedWatch struct {
	to Literal
	w  watch
}

// watchLists holds, per literal, the watches registered against it.
type watchLists struct {
	lists   [][]watch
	delayed *queue[delayedWatch]
}

func newWatchLists() *watchLists {
	return &watchLists{delayed: newQueue[delayedWatch](64)}
}

func (w *watchLists) expand() {
	w.lists = append(w.lists, nil, nil) // one per literal of the new variable
}

func (w *watchLists) pushBinary(on Literal, other Literal) {
	w.lists[on] = append(w.lists[on], watch{isBinary: true, blocking: other})
}

func (w *watchLists) pushLarge(on Literal, ref clauseRef, blocking Literal) {
	w.lists[on] = append(w.lists[on], watch{blocking: blocking, ref: ref})
}

// delay queues a watch move to be applied once the current scan of some
// other literal's list has finished (§4.3 "Delayed watches").
func (w *watchLists) delay(to Literal, blocking Literal, ref clauseRef) {
	w.delayed.Push(delayedWatch{to: to, w: watch{blocking: blocking, ref: ref}})
}

// drainDelayed appends every queued watch move to its target list and
// empties the queue.
func (w *watchLists) drainDelayed() {
	for !w.delayed.IsEmpty() {
		d := w.delayed.Pop()
		w.lists[d.to] = append(w.lists[d.to], d.w)
	}
}

// removeBinary drops the binary watch (on -> other) from on's list. Used
// when a binary clause is subsumed or otherwise retracted; binary clauses
// are never marked garbage since they have no arena record.
func (w *watchLists) removeBinary(on Literal, other Literal) {
	lst := w.lists[on]
	j := 0
	for i := 0; i < len(lst); i++ {
		if lst[i].isBinary && lst[i].blocking == other {
			continue
		}
		lst[j] = lst[i]
		j++
	}
	w.lists[on] = lst[:j]
}

// removeLarge drops the large watch pointing at ref from on's list. Used
// when a learnt clause is deleted outright (locked clauses are never
// deleted; garbage clauses are instead lazily dropped during propagation
// and definitively removed by the next compaction).
func (w *watchLists) removeLarge(on Literal, ref clauseRef) {
	lst := w.lists[on]
	j := 0
	for i := 0; i < len(lst); i++ {
		if !lst[i].isBinary && lst[i].ref == ref {
			continue
		}
		lst[j] = lst[i]
		j++
	}
	w.lists[on] = lst[:j]
}
