package smiles

import (
	"fmt"
	"slices"
)

// Order is a bond order.
type Order int

const (
	Single Order = iota + 1
	Double
	Triple
	Quadruple
	Aromatic
)

// symbol returns the explicit SMILES bond symbol for o. Single bonds have
// none.
func (o Order) symbol() string {
	switch o {
	case Double:
		return "="
	case Triple:
		return "#"
	case Quadruple:
		return "$"
	case Aromatic:
		return ":"
	default:
		return ""
	}
}

// halfValence is twice the valence contribution of o so that aromatic bonds
// (1.5) stay integral.
func (o Order) halfValence() int {
	switch o {
	case Double:
		return 4
	case Triple:
		return 6
	case Quadruple:
		return 8
	case Aromatic:
		return 3
	default:
		return 2
	}
}

// Atom is a parsed or built atom.
type Atom struct {
	Symbol   string // Element symbol, capitalized ("Cl", "C", "*")
	Aromatic bool   // Written in lowercase aromatic form
	Bracket  bool   // Written inside brackets
}

// Bond joins two atoms by index.
type Bond struct {
	Begin, End int
	Order      Order
}

// Other returns the endpoint of b that is not a.
func (b Bond) Other(a int) int {
	if b.Begin == a {
		return b.End
	}
	return b.Begin
}

// Molecule is an atom/bond structure. It is not safe for concurrent
// mutation, but the package never mutates a molecule after returning it.
type Molecule struct {
	atoms []Atom
	bonds []Bond
	adj   [][]int // bond indices per atom
	pairs map[[2]int]struct{}
}

func newMolecule() *Molecule {
	return &Molecule{pairs: make(map[[2]int]struct{})}
}

func (m *Molecule) addAtom(a Atom) int {
	m.atoms = append(m.atoms, a)
	m.adj = append(m.adj, nil)
	return len(m.atoms) - 1
}

func (m *Molecule) addBond(a, b int, o Order) error {
	if a == b {
		return fmt.Errorf("atom %d bonded to itself", a)
	}
	key := [2]int{min(a, b), max(a, b)}
	if _, dup := m.pairs[key]; dup {
		return fmt.Errorf("duplicate bond between atoms %d and %d", key[0], key[1])
	}
	m.pairs[key] = struct{}{}
	m.bonds = append(m.bonds, Bond{Begin: a, End: b, Order: o})
	idx := len(m.bonds) - 1
	m.adj[a] = append(m.adj[a], idx)
	m.adj[b] = append(m.adj[b], idx)
	return nil
}

// NumAtoms returns the number of atoms.
func (m *Molecule) NumAtoms() int { return len(m.atoms) }

// NumBonds returns the number of bonds.
func (m *Molecule) NumBonds() int { return len(m.bonds) }

// Atom returns the atom at index i.
func (m *Molecule) Atom(i int) Atom { return m.atoms[i] }

// Atoms returns a copy of the atom list in index order.
func (m *Molecule) Atoms() []Atom { return slices.Clone(m.atoms) }

// Bonds returns a copy of the bond list in creation order.
func (m *Molecule) Bonds() []Bond { return slices.Clone(m.bonds) }

// Degree returns the number of bonds incident to atom i.
func (m *Molecule) Degree(i int) int { return len(m.adj[i]) }

// Neighbors returns the atoms bonded to atom i, in bond creation order.
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, len(m.adj[i]))
	for k, b := range m.adj[i] {
		out[k] = m.bonds[b].Other(i)
	}
	return out
}

// valence returns twice the explicit valence of atom i.
func (m *Molecule) valence(i int) int {
	v := 0
	for _, b := range m.adj[i] {
		v += m.bonds[b].Order.halfValence()
	}
	return v
}

// Build creates a single-bonded molecule with one atom per element symbol.
// Organic-subset elements are written bare, all others in brackets.
func Build(elements []string, bonds [][2]int) (*Molecule, error) {
	m := newMolecule()
	for i, sym := range elements {
		if !IsElement(sym) {
			return nil, fmt.Errorf("atom %d: unknown element %q", i, sym)
		}
		m.addAtom(Atom{Symbol: sym, Bracket: !IsOrganic(sym)})
	}
	for _, b := range bonds {
		if b[0] < 0 || b[1] < 0 || b[0] >= len(elements) || b[1] >= len(elements) {
			return nil, fmt.Errorf("bond (%d,%d) references a missing atom", b[0], b[1])
		}
		if err := m.addBond(b[0], b[1], Single); err != nil {
			return nil, err
		}
	}
	return m, nil
}
