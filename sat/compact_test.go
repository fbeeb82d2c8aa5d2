package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// TestCompactPreservesSurvivingClauseContents exercises the invariant of
// §8 item 8 for watch references: after compaction, every surviving watch
// still resolves to a clause with the same literals it had before, even
// though its numeric ref value may have changed. Reason references are
// not checked here.
func TestCompactPreservesSurvivingClauseContents(t *testing.T) {
	s := newTestSolver(9)
	clauses := [][]Literal{
		{lit(1, true), lit(2, true), lit(3, true)},
		{lit(4, true), lit(5, true), lit(6, true)},
		{lit(7, true), lit(8, true), lit(9, true)},
	}
	for _, c := range clauses {
		s.AddClause(c)
	}

	// Find the arena ref of the middle clause via its watch entry and
	// mark it garbage, simulating what reduce() would do.
	w := s.watches.lists[lit(4, true)]
	require.Len(t, w, 1)
	garbageRef := w[0].ref
	survivorBefore := append([]Literal{}, s.arena.get(w[0].ref).Lits()...)
	require.True(t, cmp.Equal(survivorBefore, clauses[1]))

	s.arena.get(garbageRef).MarkGarbage()
	s.compact()

	// The first and third clauses' watches must still resolve to their
	// original literal content under their (possibly rewritten) refs.
	for i, want := range []([]Literal){clauses[0], clauses[2]} {
		on := want[0]
		ws := s.watches.lists[on]
		require.Len(t, ws, 1, "clause %d watch count", i)
		got := s.arena.get(ws[0].ref).Lits()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("clause %d mismatch after compaction (-want +got):\n%s", i, diff)
		}
	}
}
