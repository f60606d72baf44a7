package smiles

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func build(t *testing.T, elements []string, bonds [][2]int) *Molecule {
	t.Helper()
	m, err := Build(elements, bonds)
	require.NoError(t, err)
	return m
}

func sortedDegrees(m *Molecule) []int {
	d := degrees(m)
	slices.Sort(d)
	return d
}

func TestWriteCanonical(t *testing.T) {
	tests := []struct {
		name     string
		elements []string
		bonds    [][2]int
		want     string
	}{
		{"Single", []string{"B"}, nil, "B"},
		{"Pair", []string{"F", "F"}, [][2]int{{0, 1}}, "FF"},
		{"PathEndFirst", []string{"C", "C", "C"}, [][2]int{{0, 1}, {1, 2}}, "CCC"},
		{"PathCenterFirst", []string{"C", "C", "C"}, [][2]int{{0, 1}, {0, 2}}, "CCC"},
		{"Star", []string{"C", "C", "C", "C"}, [][2]int{{0, 1}, {0, 2}, {0, 3}}, "CC(C)C"},
		{"Hexagon", []string{"C", "C", "C", "C", "C", "C"},
			[][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 0}}, "C1CCCCC1"},
		{"Disconnected", []string{"C", "C"}, nil, "C.C"},
		{"Bracket", []string{"Fe"}, nil, "[Fe]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build(t, tt.elements, tt.bonds)
			got, err := Write(m, WriteOptions{Canonical: true})
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestWriteCanonicalDeterministic(t *testing.T) {
	m := build(t, []string{"C", "N", "C", "O", "C", "S"},
		[][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}, {3, 4}, {4, 5}, {5, 1}})

	first, err := Write(m, WriteOptions{Canonical: true})
	require.NoError(t, err)
	for range 10 {
		again, err := Write(m, WriteOptions{Canonical: true})
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestWriteRandomized(t *testing.T) {
	m := build(t, []string{"C", "C", "C", "C", "C", "N"},
		[][2]int{{0, 1}, {1, 2}, {1, 3}, {3, 4}, {4, 5}})
	rng := rand.New(rand.NewPCG(1, 2))

	seen := make(map[string]bool)
	for range 50 {
		s, err := Write(m, WriteOptions{Rand: rng})
		require.NoError(t, err)
		seen[s] = true

		parsed, err := Parse(s)
		require.NoError(t, err, "randomized output %q must parse", s)
		require.Equal(t, sortedDegrees(m), sortedDegrees(parsed))
	}
	require.Greater(t, len(seen), 1, "randomized output should vary")
}

func TestWriteRandomizedSeeded(t *testing.T) {
	m := build(t, []string{"C", "C", "C", "C"}, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})

	a, err := Write(m, WriteOptions{Rand: rand.New(rand.NewPCG(7, 7))})
	require.NoError(t, err)
	b, err := Write(m, WriteOptions{Rand: rand.New(rand.NewPCG(7, 7))})
	require.NoError(t, err)
	require.Equal(t, a, b, "same seed should reproduce the same string")
}

func TestWriteRoundTrip(t *testing.T) {
	inputs := []string{
		"CC(C)(C)C",
		"C1CC2CCC1C2",
		"c1ccc2ccccc2c1",
		"C=CC#N",
		"OCC.N",
		"C12C3C4C1C5C2C3C45",
		"[NH4+].[Cl-]",
		"c1ccccc1-c1ccccc1",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			m, err := Parse(in)
			require.NoError(t, err)

			for _, canonical := range []bool{true, false} {
				out, err := Write(m, WriteOptions{Canonical: canonical, Rand: rand.New(rand.NewPCG(3, 4))})
				require.NoError(t, err)

				again, err := Parse(out)
				require.NoError(t, err, "written %q must parse", out)
				require.Equal(t, m.NumAtoms(), again.NumAtoms())
				require.Equal(t, m.NumBonds(), again.NumBonds())
				require.Equal(t, sortedDegrees(m), sortedDegrees(again))
			}
		})
	}
}

func TestCanonicalRanksDistinct(t *testing.T) {
	m := build(t, []string{"C", "C", "C", "C", "C", "C", "C", "C"},
		[][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}})

	ranks := CanonicalRanks(m)
	sorted := slices.Clone(ranks)
	slices.Sort(sorted)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, sorted)
}

func TestCanonicalIgnoresAtomOrder(t *testing.T) {
	// Frucht graph: 3-regular with no nontrivial automorphism.
	lcf := []int{-5, -2, -4, 2, 5, -2, 2, 5, -2, -5, 4, 2}
	seen := map[[2]int]bool{}
	var bonds [][2]int
	for i, d := range lcf {
		for _, j := range []int{(i + 1) % 12, (i + d + 12) % 12} {
			key := [2]int{min(i, j), max(i, j)}
			if !seen[key] {
				seen[key] = true
				bonds = append(bonds, key)
			}
		}
	}
	elements := slices.Repeat([]string{"N"}, 12)

	want, err := Write(build(t, elements, bonds), WriteOptions{Canonical: true})
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(9, 9))
	for range 200 {
		perm := rng.Perm(12)
		moved := make([][2]int, len(bonds))
		for i, b := range bonds {
			moved[i] = [2]int{perm[b[0]], perm[b[1]]}
		}
		got, err := Write(build(t, elements, moved), WriteOptions{Canonical: true})
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestCanonicalManyIdenticalComponents(t *testing.T) {
	m := build(t, slices.Repeat([]string{"C"}, 14), nil)
	got, err := Write(m, WriteOptions{Canonical: true})
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("C.", 13)+"C", got)
}

func TestDigitText(t *testing.T) {
	require.Equal(t, "1", digitText(1))
	require.Equal(t, "9", digitText(9))
	require.Equal(t, "%10", digitText(10))
	require.Equal(t, "%42", digitText(42))
}

func TestEngine(t *testing.T) {
	var e Engine
	m, err := e.Build([]string{"C", "O"}, [][2]int{{0, 1}})
	require.NoError(t, err)

	s, err := e.Serialize(m, true, nil)
	require.NoError(t, err)
	require.Equal(t, "CO", s)

	parsed, err := e.Parse(s)
	require.NoError(t, err)
	require.Equal(t, 2, parsed.NumAtoms())
}
