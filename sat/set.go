package sat

// resetSet represents a set of integers in [0, N) that can be emptied in
// constant time by bumping a generation stamp, rather than zeroing the
// backing array. Conflict analysis keeps its marks in markSet below, not
// in a resetSet.
type resetSet struct {
	addedAt        []uint32
	addedTimestamp uint32
}

// contains returns true if v is in the set.
func (rs *resetSet) contains(v int) bool {
	return rs.addedAt[v] == rs.addedTimestamp
}

// add adds v to the set.
func (rs *resetSet) add(v int) {
	rs.addedAt[v] = rs.addedTimestamp
}

// clear removes all elements from the set in constant time.
func (rs *resetSet) clear() {
	rs.addedTimestamp++
	if rs.addedTimestamp == 0 { // overflow
		rs.addedTimestamp = 1
		for i := range rs.addedAt {
			rs.addedAt[i] = 0
		}
	}
}

// expand grows the set's capacity by one (called whenever a new variable is
// declared).
func (rs *resetSet) expand() {
	rs.addedAt = append(rs.addedAt, 0)
}

// markSet is a resetSet-like structure holding three independent marks per
// variable (analyzed, removable, poisoned), used by recursive clause
// minimization (see analysis.go). All three marks share one generation
// stamp and are cleared together.
type markSet struct {
	analyzed  []uint32
	removable []uint32
	poisoned  []uint32
	stamp     uint32
}

func (ms *markSet) expand() {
	ms.analyzed = append(ms.analyzed, 0)
	ms.removable = append(ms.removable, 0)
	ms.poisoned = append(ms.poisoned, 0)
}

func (ms *markSet) clear() {
	ms.stamp++
	if ms.stamp == 0 {
		ms.stamp = 1
		for i := range ms.analyzed {
			ms.analyzed[i] = 0
			ms.removable[i] = 0
			ms.poisoned[i] = 0
		}
	}
}

func (ms *markSet) isAnalyzed(v int) bool  { return ms.analyzed[v] == ms.stamp }
func (ms *markSet) setAnalyzed(v int)      { ms.analyzed[v] = ms.stamp }
func (ms *markSet) isRemovable(v int) bool { return ms.removable[v] == ms.stamp }
func (ms *markSet) setRemovable(v int)     { ms.removable[v] = ms.stamp }
func (ms *markSet) isPoisoned(v int) bool  { return ms.poisoned[v] == ms.stamp }
func (ms *markSet) setPoisoned(v int)      { ms.poisoned[v] = ms.stamp }
