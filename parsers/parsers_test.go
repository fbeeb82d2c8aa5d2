package parsers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satforge/cdcl/sat"
)

// fakeSolver records the calls LoadDIMACS makes, without running any
// actual solving, so the parser can be tested in isolation.
type fakeSolver struct {
	nVars       int
	clauses     [][]sat.Literal
	inconsistent bool
}

func (f *fakeSolver) AddVariable() int {
	f.nVars++
	return f.nVars
}

func (f *fakeSolver) AddClause(lits []sat.Literal) {
	cp := append([]sat.Literal{}, lits...)
	f.clauses = append(f.clauses, cp)
}

func (f *fakeSolver) Inconsistent() bool { return f.inconsistent }

func writeTempCNF(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "instance.cnf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDIMACSTranslatesLiteralsOneIndexed(t *testing.T) {
	path := writeTempCNF(t, "p cnf 3 2\n1 -2 0\n-3 2 0\n")

	f := &fakeSolver{}
	require.NoError(t, LoadDIMACS(path, false, f))

	require.Equal(t, 3, f.nVars)
	require.Equal(t, [][]sat.Literal{
		{sat.PositiveLiteral(1), sat.NegativeLiteral(2)},
		{sat.NegativeLiteral(3), sat.PositiveLiteral(2)},
	}, f.clauses)
}

func TestLoadDIMACSRejectsNonCNFProblem(t *testing.T) {
	path := writeTempCNF(t, "p sat 3\n1 -2 0\n")

	f := &fakeSolver{}
	require.Error(t, LoadDIMACS(path, false, f))
}

func TestReadModelsParsesPositiveLiterals(t *testing.T) {
	path := writeTempCNF(t, "1 -2 3 0\n-1 2 -3 0\n")

	models, err := ReadModels(path)
	require.NoError(t, err)
	require.Equal(t, [][]bool{
		{true, false, true},
		{false, true, false},
	}, models)
}
