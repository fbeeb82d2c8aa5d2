package sat

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSolver(nVars int) *Solver {
	s := New(DefaultOptions())
	s.reserveVars(nVars)
	return s
}

func lit(v int, positive bool) Literal {
	if positive {
		return PositiveLiteral(v)
	}
	return NegativeLiteral(v)
}

// checkClauses verifies every clause has at least one true literal under
// the solver's current assignment, per §8's round-trip model-verification
// law.
func checkClauses(t *testing.T, s *Solver, clauses [][]Literal) {
	t.Helper()
	for _, c := range clauses {
		satisfied := false
		for _, l := range c {
			if s.Value(l) == True {
				satisfied = true
				break
			}
		}
		require.True(t, satisfied, "clause %v not satisfied by model", c)
	}
}

func TestSolveUnsatSmallContradiction(t *testing.T) {
	// (1∨2) ∧ (¬1∨2) ∧ (1∨¬2) ∧ (¬1∨¬2) is unsatisfiable.
	s := newTestSolver(2)
	s.AddClause([]Literal{lit(1, true), lit(2, true)})
	s.AddClause([]Literal{lit(1, false), lit(2, true)})
	s.AddClause([]Literal{lit(1, true), lit(2, false)})
	s.AddClause([]Literal{lit(1, false), lit(2, false)})

	status := s.Solve(context.Background())
	require.Equal(t, StatusUnsat, status)
	require.LessOrEqual(t, s.Stats().Conflicts, uint64(4))
}

func TestSolveUnsatForcedByBinaries(t *testing.T) {
	// (1∨2) ∧ (¬1∨3) ∧ (¬2∨3) ∧ (¬3): forcing 3=false propagates
	// 1=false and 2=false via the binary clauses, then (1∨2) conflicts.
	s := newTestSolver(3)
	s.AddClause([]Literal{lit(1, true), lit(2, true)})
	s.AddClause([]Literal{lit(1, false), lit(3, true)})
	s.AddClause([]Literal{lit(2, false), lit(3, true)})
	s.AddClause([]Literal{lit(3, false)})

	status := s.Solve(context.Background())
	require.Equal(t, StatusUnsat, status)
}

func TestSolveUnitClauseSatisfiable(t *testing.T) {
	s := newTestSolver(1)
	s.AddClause([]Literal{lit(1, true)})

	status := s.Solve(context.Background())
	require.Equal(t, StatusSatisfiable, status)
	require.Equal(t, True, s.Value(lit(1, true)))
	require.Equal(t, 1, s.trail.numAssigned())
	require.Equal(t, 0, s.trail.decisionLevel())
}

func TestSolveRootPropagationWithoutDecisions(t *testing.T) {
	// (1∨2∨3) ∧ (¬1) ∧ (¬2) forces 3=true at level 0, with no decision
	// ever needed.
	s := newTestSolver(3)
	s.AddClause([]Literal{lit(1, true), lit(2, true), lit(3, true)})
	s.AddClause([]Literal{lit(1, false)})
	s.AddClause([]Literal{lit(2, false)})

	status := s.Solve(context.Background())
	require.Equal(t, StatusSatisfiable, status)
	require.Equal(t, True, s.Value(lit(3, true)))
	require.Equal(t, 0, s.trail.decisionLevel())
}

// pigeonholeClauses builds the classic PHP(n+1, n) encoding: n+1 pigeons,
// n holes, variable (p-1)*n+h represents "pigeon p is in hole h".
func pigeonholeClauses(pigeons, holes int) (nVars int, clauses [][]Literal) {
	v := func(p, h int) int { return (p-1)*holes + h }
	nVars = pigeons * holes
	for p := 1; p <= pigeons; p++ {
		c := make([]Literal, 0, holes)
		for h := 1; h <= holes; h++ {
			c = append(c, lit(v(p, h), true))
		}
		clauses = append(clauses, c)
	}
	for h := 1; h <= holes; h++ {
		for p1 := 1; p1 <= pigeons; p1++ {
			for p2 := p1 + 1; p2 <= pigeons; p2++ {
				clauses = append(clauses, []Literal{lit(v(p1, h), false), lit(v(p2, h), false)})
			}
		}
	}
	return nVars, clauses
}

func TestSolvePigeonholeUnsatWithRestart(t *testing.T) {
	nVars, clauses := pigeonholeClauses(3, 2)
	opt := DefaultOptions()
	opt.Seed = 1
	opt.RestartInterval = 1
	opt.RestartMargin = 1.0 // force frequent restarts so at least one fires
	s := New(opt)
	s.reserveVars(nVars)
	for _, c := range clauses {
		s.AddClause(c)
	}

	status := s.Solve(context.Background())
	require.Equal(t, StatusUnsat, status)
	require.Greater(t, s.Stats().Restarts, uint64(0))
}

func TestSolveRandom3SATDeterministic(t *testing.T) {
	buildAndSolve := func() (Status, Statistics) {
		clauses := randomCNF(rand.New(rand.NewSource(42)), 100, 420)
		s := newTestSolver(100)
		for _, c := range clauses {
			s.AddClause(c)
		}
		status := s.Solve(context.Background())
		if status == StatusSatisfiable {
			checkClauses(t, s, clauses)
		}
		return status, s.Stats()
	}

	status1, stats1 := buildAndSolve()
	status2, stats2 := buildAndSolve()

	require.Equal(t, status1, status2)
	require.Equal(t, stats1.Conflicts, stats2.Conflicts)
	require.Equal(t, stats1.Propagations, stats2.Propagations)
}

// randomCNF draws a random 3-CNF over nVars variables at the given
// clause/variable ratio (expressed as ratio*100, e.g. 420 means 4.2).
func randomCNF(rng *rand.Rand, nVars int, ratioTimes100 int) [][]Literal {
	nClauses := nVars * ratioTimes100 / 100
	clauses := make([][]Literal, 0, nClauses)
	for i := 0; i < nClauses; i++ {
		c := make([]Literal, 0, 3)
		seen := map[int]bool{}
		for len(c) < 3 {
			v := 1 + rng.Intn(nVars)
			if seen[v] {
				continue
			}
			seen[v] = true
			c = append(c, lit(v, rng.Intn(2) == 0))
		}
		clauses = append(clauses, c)
	}
	return clauses
}

func TestValueIsOppositeOfNegation(t *testing.T) {
	s := newTestSolver(2)
	s.AddClause([]Literal{lit(1, true)})
	s.Solve(context.Background())

	for v := 1; v <= 2; v++ {
		pos := lit(v, true)
		neg := lit(v, false)
		require.Equal(t, s.Value(pos).Opposite(), s.Value(neg))
	}
}

func TestBacktrackLeavesNoHigherLevelLiterals(t *testing.T) {
	s := newTestSolver(3)
	s.trail.assignDecision(lit(1, true))
	s.trail.assignDecision(lit(2, true))
	s.trail.assignDecision(lit(3, true))
	require.Equal(t, 3, s.trail.decisionLevel())

	s.backtrackTo(1)
	for v := 1; v <= 3; v++ {
		lvl := s.trail.level[v]
		require.True(t, lvl < 0 || int(lvl) <= 1)
	}
}

func TestBinaryIndexMatchesBinaryWatches(t *testing.T) {
	s := newTestSolver(3)
	s.AddClause([]Literal{lit(1, true), lit(2, true)})
	s.AddClause([]Literal{lit(2, false), lit(3, true)})
	s.RebuildBinaryIndex()

	// binIdx[l] forces m via clause (¬l ∨ m); that clause is watched at
	// watches[¬l] (the clause's own literal), not at watches[l].
	for v := 1; v <= 3; v++ {
		for _, positive := range []bool{true, false} {
			l := lit(v, positive)
			fromIndex := append([]Literal{}, s.ImpliedBy(l)...)
			var fromWatches []Literal
			for _, w := range s.watches.lists[l.Opposite()] {
				if w.isBinary {
					fromWatches = append(fromWatches, w.blocking)
				}
			}
			require.ElementsMatch(t, fromIndex, fromWatches, "literal %v", l)
		}
	}
}
