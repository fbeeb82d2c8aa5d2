package sat

// clauseRef is a word offset into the arena. It is a value, never a
// pointer: clause references, like literal indices, may be freely copied
// and stored in watches and reasons. A reference is only valid until the
// next compaction, which is the sole place that rewrites held references.
type clauseRef uint32

// invalidRef is the sentinel "no clause" reference.
const invalidRef clauseRef = ^clauseRef(0)

// maxUsed bounds the saturating "used" counter on redundant clauses (§4.9).
const maxUsed = 15

// Clause header layout, in words, relative to a clause's ref:
//
//	[0] size     - number of literals, always >= 3 (binary/unit clauses
//	               never reach the arena, see AddClause and learnClause)
//	[1] glue     - literal block distance (LBD)
//	[2] searched - cached index in [2, size) to resume the watch-replacement
//	               scan from
//	[3] status   - packed flags (low byte) | used (next byte)
//	[4:] literals
const clauseHeaderWords = 4

const (
	flagRedundant uint32 = 1 << 0
	flagGarbage   uint32 = 1 << 1
	flagReason    uint32 = 1 << 2
	flagKeep      uint32 = 1 << 3
)

// arena is a contiguous, growable buffer of clause records addressed by
// word offset. Allocation is bump-pointer; compact() is the only routine
// that physically removes garbage clauses and the only permitted rewriter
// of external references (watches, reasons, first-reducible cursor).
type arena struct {
	words []uint32
}

// clause is a thin, stateless view over a clause record living in an
// arena. It holds no data of its own: all state lives in the arena's word
// slice, addressed through ref. Views are cheap to construct and must not
// be retained across a compaction.
type clause struct {
	a   *arena
	ref clauseRef
}

// alloc appends a new clause record (size >= 3) to the arena and returns
// its reference. Bump-pointer allocation: the arena never reuses space
// until the next compact().
func (a *arena) alloc(lits []Literal, learnt bool) clauseRef {
	ref := clauseRef(len(a.words))
	a.words = append(a.words, uint32(len(lits)), 0, 2, 0)
	for _, l := range lits {
		a.words = append(a.words, uint32(l))
	}
	c := a.get(ref)
	if learnt {
		c.setFlag(flagRedundant)
	}
	return c.ref
}

// get returns a view of the clause at ref.
func (a *arena) get(ref clauseRef) clause {
	return clause{a: a, ref: ref}
}

func (c clause) flags() uint32    { return c.a.words[c.ref+3] & 0xff }
func (c clause) setFlag(f uint32) { c.a.words[c.ref+3] |= f }
func (c clause) clearFlag(f uint32) {
	c.a.words[c.ref+3] &^= f
}
func (c clause) hasFlag(f uint32) bool { return c.flags()&f != 0 }

func (c clause) Size() int        { return int(c.a.words[c.ref]) }
func (c clause) setSize(n int)     { c.a.words[c.ref] = uint32(n) }
func (c clause) Glue() int        { return int(c.a.words[c.ref+1]) }
func (c clause) SetGlue(g int)    { c.a.words[c.ref+1] = uint32(g) }
func (c clause) searched() int    { return int(c.a.words[c.ref+2]) }
func (c clause) setSearched(i int) { c.a.words[c.ref+2] = uint32(i) }

func (c clause) IsRedundant() bool { return c.hasFlag(flagRedundant) }
func (c clause) IsGarbage() bool   { return c.hasFlag(flagGarbage) }
func (c clause) MarkGarbage()      { c.setFlag(flagGarbage) }
func (c clause) IsReason() bool    { return c.hasFlag(flagReason) }
func (c clause) SetReason(b bool) {
	if b {
		c.setFlag(flagReason)
	} else {
		c.clearFlag(flagReason)
	}
}
func (c clause) IsKeep() bool { return c.hasFlag(flagKeep) }
func (c clause) SetKeep(b bool) {
	if b {
		c.setFlag(flagKeep)
	} else {
		c.clearFlag(flagKeep)
	}
}

func (c clause) Used() int {
	return int(c.a.words[c.ref+3]>>8) & 0xff
}

func (c clause) setUsed(u int) {
	status := c.a.words[c.ref+3]
	c.a.words[c.ref+3] = (status & 0xff) | uint32(u)<<8
}

// BumpUsed saturates at maxUsed.
func (c clause) BumpUsed() {
	if u := c.Used(); u < maxUsed {
		c.setUsed(u + 1)
	}
}

// DecayUsed decrements, saturating at 0, as done by the reducer each time
// it walks past a candidate clause (§4.9 step 2).
func (c clause) DecayUsed() {
	if u := c.Used(); u > 0 {
		c.setUsed(u - 1)
	}
}

func (c clause) Lit(i int) Literal {
	return Literal(c.a.words[int(c.ref)+clauseHeaderWords+i])
}

func (c clause) setLit(i int, l Literal) {
	c.a.words[int(c.ref)+clauseHeaderWords+i] = uint32(l)
}

func (c clause) swapLits(i, j int) {
	li, lj := c.Lit(i), c.Lit(j)
	c.setLit(i, lj)
	c.setLit(j, li)
}

// Lits returns a copy of the clause's literals. Intended for diagnostics
// and tests; the hot paths index with Lit/setLit directly.
func (c clause) Lits() []Literal {
	out := make([]Literal, c.Size())
	for i := range out {
		out[i] = c.Lit(i)
	}
	return out
}

func (c clause) String() string {
	s := "clause["
	for i := 0; i < c.Size(); i++ {
		if i > 0 {
			s += " "
		}
		s += c.Lit(i).String()
	}
	return s + "]"
}
