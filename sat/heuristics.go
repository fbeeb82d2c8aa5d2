package sat

import (
	"math"
	"math/rand"

	"github.com/rhartert/yagh"
)

// varActivity bumps and decays VSIDS scores for the stable-mode heap,
// mirroring the teacher's ordering.go: bump by the current increment,
// decay by raising the increment (rescaling both on overflow). Scores are
// tracked locally (not just inside the heap) since a popped-for-peek
// variable needs its score available again on reinsert.
type varActivity struct {
	heap      *yagh.Heap[int, float64]
	scores    []float64
	inHeap    []bool
	increment float64
	decay     float64
}

func newVarActivity(decay float64) *varActivity {
	return &varActivity{
		heap:      yagh.New[int, float64](),
		increment: 1.0,
		decay:     decay,
	}
}

func (a *varActivity) expand() {
	a.scores = append(a.scores, 0)
	a.inHeap = append(a.inHeap, false)
}

func (a *varActivity) addVar(v int) {
	a.heap.Push(v, a.scores[v])
	a.inHeap[v] = true
}

// bump raises v's score by the current increment, rescaling every score
// (and the increment) down once v's score exceeds 1e100.
func (a *varActivity) bump(v int) {
	a.scores[v] += a.increment
	if a.inHeap[v] {
		a.heap.Update(v, a.scores[v])
	}
	if a.scores[v] > 1e100 {
		a.rescale()
	}
}

func (a *varActivity) rescale() {
	for v := range a.scores {
		a.scores[v] *= 1e-100
		if a.inHeap[v] {
			a.heap.Update(v, a.scores[v])
		}
	}
	a.increment *= 1e-100
}

// decayAll raises the increment so that future bumps count for more,
// equivalent to decaying every existing score (teacher's decay-by-
// increasing-increment trick, avoiding an O(N) walk per conflict).
func (a *varActivity) decayAll() {
	a.increment /= a.decay
}

// nextUnassigned pops the heap until it finds an unassigned variable,
// leaving it in the heap. Once that variable is assigned, a later call
// pops it; backtracking reinserts it via reinsert.
func (a *varActivity) nextUnassigned(assigned func(v int) bool) (int, bool) {
	for a.heap.Len() > 0 {
		v, _, ok := a.heap.Peek()
		if !ok {
			return 0, false
		}
		if !assigned(v) {
			return v, true
		}
		a.heap.Pop()
		a.inHeap[v] = false
	}
	return 0, false
}

func (a *varActivity) reinsert(v int) {
	if !a.inHeap[v] {
		a.heap.Push(v, a.scores[v])
		a.inHeap[v] = true
	}
}

// focusedQueue orders variables by an increasing enqueue stamp, per §4.7:
// the search cursor starts at the last-enqueued variable and walks `prev`
// until it finds one unassigned.
type focusedQueue struct {
	next, prev []int32 // -1 terminated doubly-linked list over variable ids
	stamp      []int32
	first, last int32
	cursor     int32
	nextStamp  int32
}

const queueNil = -1

func newFocusedQueue() *focusedQueue {
	return &focusedQueue{first: queueNil, last: queueNil, cursor: queueNil}
}

func (q *focusedQueue) expand() {
	q.next = append(q.next, queueNil)
	q.prev = append(q.prev, queueNil)
	q.stamp = append(q.stamp, 0)
}

// enqueue appends v to the back of the list (newest stamp) and, since a
// freshly enqueued variable is by construction unassigned, moves the
// cursor to it.
func (q *focusedQueue) enqueue(v int) {
	q.stamp[v] = q.nextStamp
	q.nextStamp++
	q.next[v] = queueNil
	q.prev[v] = q.last
	if q.last != queueNil {
		q.next[q.last] = int32(v)
	} else {
		q.first = int32(v)
	}
	q.last = int32(v)
	q.cursor = int32(v)
}

// bump re-stamps v as the newest and moves it to the back of the list,
// so list order stays stamp order. Conflict analysis calls it for every
// variable it bumps.
func (q *focusedQueue) bump(v int) {
	q.stamp[v] = q.nextStamp
	q.nextStamp++
	if q.last == int32(v) {
		return
	}
	p, n := q.prev[v], q.next[v]
	if p != queueNil {
		q.next[p] = n
	} else {
		q.first = n
	}
	q.prev[n] = p
	q.prev[v] = q.last
	q.next[v] = queueNil
	q.next[q.last] = int32(v)
	q.last = int32(v)
}

// nextUnassigned walks backward (toward older stamps) from the cursor
// until an unassigned variable is found, updating the cursor to it.
func (q *focusedQueue) nextUnassigned(assigned func(v int) bool) (int, bool) {
	v := q.cursor
	for v != queueNil && assigned(int(v)) {
		v = q.prev[v]
	}
	q.cursor = v
	if v == queueNil {
		return 0, false
	}
	return int(v), true
}

// restoreCursor resets the cursor to the most-recently-stamped variable,
// called after a backtrack unassigns variables newer than the current
// cursor position (§4.7's queue semantics require the cursor to always
// trail the newest unassigned variable).
func (q *focusedQueue) restoreCursor(v int) {
	if q.cursor == queueNil || q.stamp[v] > q.stamp[q.cursor] {
		q.cursor = int32(v)
	}
}

// phaseMemory holds saved and target phases per variable, plus the
// forcing-oracle bookkeeping described in §4.7.
type phaseMemory struct {
	saved  []LBool
	target []LBool
	best   int // trail length at which `target` was last captured
}

func newPhaseMemory() *phaseMemory {
	return &phaseMemory{}
}

func (p *phaseMemory) expand(initial LBool) {
	p.saved = append(p.saved, initial)
	p.target = append(p.target, Unknown)
}

func (p *phaseMemory) save(v int, val LBool) {
	p.saved[v] = val
}

// captureTarget snapshots the current trail's phases as the new target if
// the trail is longer than the one backing the previous target capture,
// following the "deepest trail seen so far" rule used in stable mode.
func (p *phaseMemory) captureTarget(t *trail) {
	if t.numAssigned() <= p.best {
		return
	}
	p.best = t.numAssigned()
	for _, lit := range t.lits {
		p.target[lit.VarID()] = Lift(lit.IsPositive())
	}
}

// decisionSource records which forcing oracle selected a phase, for the
// per-source telemetry counters required by §6.
type decisionSource int

const (
	sourceSaved decisionSource = iota
	sourceTarget
	sourceSwitchParity
	sourceInitial
	sourceRandom
	sourceScore
	sourceQueue
	sourceWarming
)

// choosePhase runs the forcing-oracle cascade of §4.7: switch-parity (focused
// mode only), target (if enabled and present), saved (if phase saving is on
// and present), then the configured initial phase.
func (s *Solver) choosePhase(v int) (LBool, decisionSource) {
	opt := s.options
	if !s.stable && opt.ForcePhase == ForcePhaseNone {
		if s.modeSwitches%2 == 0 {
			return Lift(opt.InitialPhase == True), sourceSwitchParity
		}
		return Lift(opt.InitialPhase != True), sourceSwitchParity
	}
	if opt.Target != TargetOff && (opt.Target == TargetAlways || s.stable) {
		if ph := s.phases.target[v]; ph != Unknown {
			return ph, sourceTarget
		}
	}
	if opt.PhaseSaving {
		if ph := s.phases.saved[v]; ph != Unknown {
			return ph, sourceSaved
		}
	}
	return opt.InitialPhase, sourceInitial
}

// maybeRandomDecision fires a random-decision burst per §4.7: bursts of
// length proportional to log(N), triggered on a conflict budget, picking
// uniformly over active variables until an unassigned one turns up.
func (s *Solver) maybeRandomDecision() (int, bool) {
	opt := s.options
	limit := opt.Randec
	if s.stable {
		limit = opt.RandecStable
	} else {
		limit = opt.RandecFocused
	}
	if !opt.RandecEnabled || limit <= 0 {
		return 0, false
	}
	if s.randecRemaining == 0 {
		if s.stats.Conflicts < s.randecNextAt {
			return 0, false
		}
		n := s.numVars()
		if n == 0 {
			return 0, false
		}
		burst := int(math.Log(float64(n)+1) * float64(opt.RandecLength))
		if burst < 1 {
			burst = 1
		}
		s.randecRemaining = burst
		s.randecNextAt = s.stats.Conflicts + uint64(limit)
	}
	s.randecRemaining--
	n := s.numVars()
	for tries := 0; tries < n*2; tries++ {
		v := s.rng.Intn(n) + 1
		if !s.isAssigned(v) {
			return v, true
		}
	}
	return 0, false
}

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
