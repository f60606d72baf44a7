package smiles

import (
	"cmp"
	"slices"
)

// CanonicalRanks assigns every atom a distinct rank in 0..n-1.
//
// Atoms are first partitioned by (degree, atomic number, aromaticity,
// bracket form, explicit valence) and the partition is refined by the sorted
// ranks of each atom's neighbors until it is stable. When classes remain, the
// search individualizes each member of the lowest tied class in turn, refines
// again and recurses, keeping the labeling whose certificate (atom invariants
// in rank order followed by the ranked bond list) is smallest. Automorphisms
// found along the way prune equivalent branches. The result depends only on
// the molecule's structure, never on its atom numbering.
func CanonicalRanks(m *Molecule) []int {
	n := m.NumAtoms()
	if n == 0 {
		return nil
	}
	s := &search{m: m, inv: invariants(m)}
	ranks := rankBy(n, func(a, b int) int { return slices.Compare(s.inv[a][:], s.inv[b][:]) })
	s.visit(refine(m, ranks), nil)
	return s.best
}

type invariant [5]int

func invariants(m *Molecule) []invariant {
	inv := make([]invariant, m.NumAtoms())
	for i, a := range m.atoms {
		inv[i] = invariant{m.Degree(i), AtomicNumber(a.Symbol), boolInt(a.Aromatic), boolInt(a.Bracket), m.valence(i)}
	}
	return inv
}

// search walks the individualization-refinement tree.
type search struct {
	m   *Molecule
	inv []invariant

	first, best         []int // leaf labelings
	firstCert, bestCert []int
	auts                [][]int // atom permutations preserving the molecule
}

// visit explores the subtree rooted at a partition. prefix holds the atoms
// individualized on the way down. It reports whether a leaf equivalent to
// the first leaf was reached, in which case the subtree is the image of one
// already explored and the caller can return to the first path.
func (s *search) visit(ranks, prefix []int) bool {
	tie := smallestTie(ranks)
	if tie < 0 {
		return s.leaf(ranks)
	}
	onFirstPath := s.first == nil

	var cell []int
	for v, r := range ranks {
		if r == tie {
			cell = append(cell, v)
		}
	}

	var explored []int
	for _, v := range cell {
		if s.sameOrbit(prefix, explored, v) {
			continue
		}
		explored = append(explored, v)

		next := refine(s.m, individualize(ranks, v))
		if s.visit(next, append(slices.Clone(prefix), v)) && !onFirstPath {
			return true
		}
	}
	return false
}

func (s *search) leaf(ranks []int) bool {
	cert := s.certificate(ranks)
	if s.first == nil {
		s.first, s.firstCert = ranks, cert
		s.best, s.bestCert = ranks, cert
		return false
	}
	if slices.Equal(cert, s.firstCert) {
		s.auts = append(s.auts, mapping(s.first, ranks))
		return true
	}
	switch c := slices.Compare(cert, s.bestCert); {
	case c == 0:
		s.auts = append(s.auts, mapping(s.best, ranks))
	case c < 0:
		s.best, s.bestCert = ranks, cert
	}
	return false
}

// certificate encodes the molecule as relabeled by a discrete ranking. Two
// rankings have equal certificates exactly when they differ by an
// automorphism.
func (s *search) certificate(ranks []int) []int {
	n := len(ranks)
	atomAt := make([]int, n)
	for v, r := range ranks {
		atomAt[r] = v
	}
	cert := make([]int, 0, n*len(invariant{})+3*s.m.NumBonds())
	for _, v := range atomAt {
		cert = append(cert, s.inv[v][:]...)
	}

	bonds := make([][3]int, len(s.m.bonds))
	for i, b := range s.m.bonds {
		lo, hi := ranks[b.Begin], ranks[b.End]
		if lo > hi {
			lo, hi = hi, lo
		}
		bonds[i] = [3]int{lo, hi, int(b.Order)}
	}
	slices.SortFunc(bonds, func(a, b [3]int) int { return slices.Compare(a[:], b[:]) })
	for _, b := range bonds {
		cert = append(cert, b[:]...)
	}
	return cert
}

// sameOrbit reports whether v is mapped onto an explored atom by the group
// generated by the known automorphisms that fix every atom of prefix.
func (s *search) sameOrbit(prefix, explored []int, v int) bool {
	if len(explored) == 0 || len(s.auts) == 0 {
		return false
	}
	parent := make([]int, len(s.inv))
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, g := range s.auts {
		if !fixes(g, prefix) {
			continue
		}
		for a, b := range g {
			parent[find(a)] = find(b)
		}
	}
	root := find(v)
	for _, u := range explored {
		if find(u) == root {
			return true
		}
	}
	return false
}

func fixes(g, atoms []int) bool {
	for _, v := range atoms {
		if g[v] != v {
			return false
		}
	}
	return true
}

// mapping returns the permutation sending the atom at each rank of from to
// the atom at the same rank of to.
func mapping(from, to []int) []int {
	atomAt := make([]int, len(to))
	for v, r := range to {
		atomAt[r] = v
	}
	g := make([]int, len(from))
	for v, r := range from {
		g[v] = atomAt[r]
	}
	return g
}

// individualize splits v from its class, placing it first.
func individualize(ranks []int, v int) []int {
	return rankBy(len(ranks), func(a, b int) int {
		if c := cmp.Compare(ranks[a], ranks[b]); c != 0 {
			return c
		}
		return cmp.Compare(boolInt(a != v), boolInt(b != v))
	})
}

func refine(m *Molecule, ranks []int) []int {
	n := len(ranks)
	for {
		nbr := make([][]int, n)
		for i := range n {
			for _, j := range m.Neighbors(i) {
				nbr[i] = append(nbr[i], ranks[j])
			}
			slices.Sort(nbr[i])
		}
		cur := ranks
		next := rankBy(n, func(a, b int) int {
			if c := cmp.Compare(cur[a], cur[b]); c != 0 {
				return c
			}
			return slices.Compare(nbr[a], nbr[b])
		})
		if classes(next) == classes(cur) {
			return next
		}
		ranks = next
	}
}

// rankBy returns dense ranks of 0..n-1 under the given ordering.
func rankBy(n int, compare func(a, b int) int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, compare)

	ranks := make([]int, n)
	r := 0
	for k, v := range idx {
		if k > 0 && compare(idx[k-1], v) != 0 {
			r++
		}
		ranks[v] = r
	}
	return ranks
}

func classes(ranks []int) int {
	if len(ranks) == 0 {
		return 0
	}
	return slices.Max(ranks) + 1
}

// smallestTie returns the lowest rank held by more than one atom, or -1
// when every rank is distinct.
func smallestTie(ranks []int) int {
	count := make([]int, classes(ranks))
	for _, r := range ranks {
		count[r]++
	}
	for r, c := range count {
		if c > 1 {
			return r
		}
	}
	return -1
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
