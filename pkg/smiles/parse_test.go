package smiles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func degrees(m *Molecule) []int {
	out := make([]int, m.NumAtoms())
	for i := range out {
		out[i] = m.Degree(i)
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		atoms   int
		bonds   int
		degrees []int
	}{
		{"Empty", "", 0, 0, []int{}},
		{"Ethane", "CC", 2, 1, []int{1, 1}},
		{"Branches", "C(C)(C)C", 4, 3, []int{3, 1, 1, 1}},
		{"Ring", "C1CCCCC1", 6, 6, []int{2, 2, 2, 2, 2, 2}},
		{"Aromatic", "c1ccccc1", 6, 6, []int{2, 2, 2, 2, 2, 2}},
		{"Bracket", "[NH4+]", 1, 0, []int{0}},
		{"Isotope", "[13CH3]C", 2, 1, []int{1, 1}},
		{"Components", "CC.O", 3, 1, []int{1, 1, 0}},
		{"PercentRing", "C%10CC%10", 3, 3, []int{2, 2, 2}},
		{"Halogens", "ClCBr", 3, 2, []int{1, 2, 1}},
		{"DoubleBond", "C=O", 2, 1, []int{1, 1}},
		{"RingBondOrder", "C=1CCC1", 4, 4, []int{2, 2, 2, 2}},
		{"Pentavalent", "P(F)(F)(F)(F)F", 6, 5, []int{5, 1, 1, 1, 1, 1}},
		{"Hexavalent", "S(F)(F)(F)(F)(F)F", 7, 6, []int{6, 1, 1, 1, 1, 1, 1}},
		{"Wildcard", "*C", 2, 1, []int{1, 1}},
		{"NestedBranches", "CC(C(C)C)C", 6, 5, []int{1, 3, 3, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.atoms, m.NumAtoms())
			require.Equal(t, tt.bonds, m.NumBonds())
			require.Equal(t, tt.degrees, degrees(m))
		})
	}
}

func TestParseAtomOrder(t *testing.T) {
	m, err := Parse("N(O)C[Si]Cl")
	require.NoError(t, err)

	var syms []string
	for _, a := range m.Atoms() {
		syms = append(syms, a.Symbol)
	}
	require.Equal(t, []string{"N", "O", "C", "Si", "Cl"}, syms)
	require.True(t, m.Atom(3).Bracket)
	require.Equal(t, []int{0, 3}, m.Neighbors(2))
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"UnclosedBranch", "C(C"},
		{"UnbalancedClose", "C)C"},
		{"UnclosedRing", "C1CC"},
		{"LeadingBond", "=C"},
		{"TrailingBond", "C="},
		{"DoubleBondSymbol", "C==C"},
		{"LeadingBranch", "(C)C"},
		{"LeadingDot", ".C"},
		{"BondBeforeDot", "C=.C"},
		{"TrailingDot", "C."},
		{"DotClosingBranch", "C(C.)C"},
		{"SelfRing", "C11"},
		{"DuplicateRingBond", "C12CC12"},
		{"UnknownElement", "[Xx]"},
		{"UnclosedBracket", "[C"},
		{"EmptyBracket", "[]"},
		{"BadPercent", "C%1"},
		{"UnknownChar", "CQ"},
		{"Space", "C C"},
		{"ConflictingRingBonds", "C=1CCC#1"},
		{"BadBracketChar", "[C!]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "want *SyntaxError, got %T: %v", err, err)
		})
	}
}

func TestParseValence(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"FluorineTwoBonds", "F(F)F", true},
		{"OxygenThreeBonds", "O(C)(C)C", true},
		{"PentavalentCarbon", "C(C)(C)(C)(C)C", true},
		{"DoublyBondedFluorine", "F=C", true},
		{"CarbonDioxide", "O=C=O", false},
		{"BracketSkipsCheck", "[O](C)(C)C", false},
		{"AromaticSkipsCheck", "c1cc(C)(C)ccc1", false},
		{"Boron", "B(F)(F)F", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var ve *ValenceError
			require.True(t, errors.As(err, &ve), "want *ValenceError, got %v", err)
		})
	}
}

func TestBuild(t *testing.T) {
	m, err := Build([]string{"C", "Fe", "O"}, [][2]int{{0, 1}, {1, 2}})
	require.NoError(t, err)
	require.Equal(t, 3, m.NumAtoms())
	require.False(t, m.Atom(0).Bracket)
	require.True(t, m.Atom(1).Bracket)
	require.Equal(t, []int{1, 2, 1}, degrees(m))

	_, err = Build([]string{"Qq"}, nil)
	require.Error(t, err)

	_, err = Build([]string{"C"}, [][2]int{{0, 1}})
	require.Error(t, err)

	_, err = Build([]string{"C", "C"}, [][2]int{{0, 0}})
	require.Error(t, err)

	_, err = Build([]string{"C", "C"}, [][2]int{{0, 1}, {1, 0}})
	require.Error(t, err)
}

func TestBuildSkipsValenceCheck(t *testing.T) {
	// Six bonds on fluorine is not a molecule, but Build is a raw constructor.
	m, err := Build([]string{"F", "C", "C", "C", "C", "C", "C"},
		[][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}, {0, 6}})
	require.NoError(t, err)
	require.Equal(t, 6, m.Degree(0))
}
