package smiles

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// maxRingDigit is the largest ring-closure number SMILES can express.
const maxRingDigit = 99

// WriteOptions controls [Write].
type WriteOptions struct {
	// Canonical selects the deterministic canonical atom order. When false
	// the atom order is drawn from Rand.
	Canonical bool

	// Rand is the random source for non-canonical output. A nil Rand uses a
	// freshly seeded source.
	Rand *rand.Rand
}

// Write serializes m as a SMILES string.
func Write(m *Molecule, opts WriteOptions) (string, error) {
	n := m.NumAtoms()
	var ranks []int
	if opts.Canonical {
		ranks = CanonicalRanks(m)
	} else {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		ranks = rng.Perm(n)
	}

	w := &writer{
		m:        m,
		ranks:    ranks,
		visited:  make([]bool, n),
		pos:      make([]int, n),
		children: make([][]int, n),
		rings:    make([][]int, n),
		isRing:   make([]bool, m.NumBonds()),
		digit:    make([]int, m.NumBonds()),
	}
	return w.write()
}

type writer struct {
	m        *Molecule
	ranks    []int
	visited  []bool
	pos      []int   // preorder position per atom
	next     int     // next preorder position
	children [][]int // tree bonds per atom, in visit order
	rings    [][]int // ring-closure bonds per atom
	isRing   []bool
	digit    []int
	inUse    [maxRingDigit + 1]bool
	sb       strings.Builder
}

func (w *writer) write() (string, error) {
	byRank := make([]int, len(w.ranks))
	for i := range byRank {
		byRank[i] = i
	}
	slices.SortFunc(byRank, func(a, b int) int { return cmp.Compare(w.ranks[a], w.ranks[b]) })

	first := true
	for _, root := range byRank {
		if w.visited[root] {
			continue
		}
		if !first {
			w.sb.WriteByte('.')
		}
		first = false
		w.discover(root, -1)
		if err := w.emit(root); err != nil {
			return "", err
		}
	}
	return w.sb.String(), nil
}

// sortedBonds returns the bonds at v ordered by the rank of the far atom.
func (w *writer) sortedBonds(v int) []int {
	bonds := slices.Clone(w.m.adj[v])
	slices.SortFunc(bonds, func(a, b int) int {
		return cmp.Compare(w.ranks[w.m.bonds[a].Other(v)], w.ranks[w.m.bonds[b].Other(v)])
	})
	return bonds
}

// discover runs the depth-first search that fixes the spanning tree, the
// ring-closure bonds and the preorder used by emit.
func (w *writer) discover(v, parent int) {
	w.visited[v] = true
	w.pos[v] = w.next
	w.next++
	for _, b := range w.sortedBonds(v) {
		if b == parent {
			continue
		}
		u := w.m.bonds[b].Other(v)
		if w.visited[u] {
			if !w.isRing[b] {
				w.isRing[b] = true
				w.rings[v] = append(w.rings[v], b)
				w.rings[u] = append(w.rings[u], b)
			}
			continue
		}
		w.children[v] = append(w.children[v], b)
		w.discover(u, b)
	}
}

func (w *writer) emit(v int) error {
	w.sb.WriteString(w.atomText(v))

	var closing, opening []int
	for _, b := range w.rings[v] {
		if w.pos[w.m.bonds[b].Other(v)] < w.pos[v] {
			closing = append(closing, b)
		} else {
			opening = append(opening, b)
		}
	}
	slices.SortFunc(closing, func(a, b int) int { return cmp.Compare(w.digit[a], w.digit[b]) })
	slices.SortFunc(opening, func(a, b int) int {
		return cmp.Compare(w.ranks[w.m.bonds[a].Other(v)], w.ranks[w.m.bonds[b].Other(v)])
	})

	for _, b := range closing {
		w.sb.WriteString(digitText(w.digit[b]))
	}
	for _, b := range opening {
		d, err := w.allocDigit()
		if err != nil {
			return err
		}
		w.digit[b] = d
		w.sb.WriteString(w.bondText(b))
		w.sb.WriteString(digitText(d))
	}
	for _, b := range closing {
		w.inUse[w.digit[b]] = false
	}

	for i, b := range w.children[v] {
		u := w.m.bonds[b].Other(v)
		last := i == len(w.children[v])-1
		if !last {
			w.sb.WriteByte('(')
		}
		w.sb.WriteString(w.bondText(b))
		if err := w.emit(u); err != nil {
			return err
		}
		if !last {
			w.sb.WriteByte(')')
		}
	}
	return nil
}

func (w *writer) allocDigit() (int, error) {
	for d := 1; d <= maxRingDigit; d++ {
		if !w.inUse[d] {
			w.inUse[d] = true
			return d, nil
		}
	}
	return 0, fmt.Errorf("smiles: more than %d simultaneously open rings", maxRingDigit)
}

func digitText(d int) string {
	if d < 10 {
		return strconv.Itoa(d)
	}
	return "%" + strconv.Itoa(d)
}

func (w *writer) atomText(v int) string {
	a := w.m.atoms[v]
	if a.Symbol == "*" && !a.Bracket {
		return "*"
	}
	if a.Aromatic {
		sym := strings.ToLower(a.Symbol)
		if _, bare := aromaticSymbols[sym]; bare && len(sym) == 1 && !a.Bracket {
			return sym
		}
		return "[" + sym + "]"
	}
	if a.Bracket || !IsOrganic(a.Symbol) {
		return "[" + a.Symbol + "]"
	}
	return a.Symbol
}

func (w *writer) bondText(b int) string {
	bond := w.m.bonds[b]
	bothAromatic := w.m.atoms[bond.Begin].Aromatic && w.m.atoms[bond.End].Aromatic
	switch {
	case bond.Order == Single && bothAromatic:
		return "-"
	case bond.Order == Aromatic && bothAromatic:
		return ""
	default:
		return bond.Order.symbol()
	}
}

// Engine exposes the package functions as a value that satisfies the
// structure-engine interface used by the lgi codec.
type Engine struct{}

// Parse implements the engine interface with [Parse].
func (Engine) Parse(s string) (*Molecule, error) { return Parse(s) }

// Build implements the engine interface with [Build].
func (Engine) Build(elements []string, bonds [][2]int) (*Molecule, error) {
	return Build(elements, bonds)
}

// Serialize implements the engine interface with [Write].
func (Engine) Serialize(m *Molecule, canonical bool, rng *rand.Rand) (string, error) {
	return Write(m, WriteOptions{Canonical: canonical, Rand: rng})
}
