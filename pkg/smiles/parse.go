package smiles

import (
	"fmt"
	"strings"
)

// SyntaxError reports a position in the input where parsing failed.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("smiles: %s at position %d in %q", e.Msg, e.Pos, e.Input)
}

// ValenceError reports an organic-subset atom carrying more bond order than
// its element allows.
type ValenceError struct {
	Atom    int
	Symbol  string
	Valence float64
	Max     int
}

func (e *ValenceError) Error() string {
	return fmt.Sprintf("smiles: explicit valence %g of atom %d (%s) exceeds %d", e.Valence, e.Atom, e.Symbol, e.Max)
}

type ringOpen struct {
	atom  int
	order Order
	set   bool
	pos   int
}

type parser struct {
	in      string
	pos     int
	mol     *Molecule
	prev    int
	order   Order
	bondSet bool
	bondPos int
	sepPos  int // position of a '.' not yet followed by an atom, or -1
	branch  []int
	rings   map[int]ringOpen
}

// Parse reads a SMILES string. The empty string yields an empty molecule.
func Parse(s string) (*Molecule, error) {
	p := &parser{in: s, mol: newMolecule(), prev: -1, sepPos: -1, rings: make(map[int]ringOpen)}
	if err := p.run(); err != nil {
		return nil, err
	}
	if err := checkValence(p.mol); err != nil {
		return nil, err
	}
	return p.mol, nil
}

func (p *parser) fail(pos int, format string, args ...any) error {
	return &SyntaxError{Input: p.in, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) run() error {
	for p.pos < len(p.in) {
		c := p.in[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.fail(p.pos, "branch before any atom")
			}
			if p.bondSet {
				return p.fail(p.pos, "bond before branch")
			}
			p.branch = append(p.branch, p.prev)
			p.pos++
		case c == ')':
			if len(p.branch) == 0 {
				return p.fail(p.pos, "unbalanced ')'")
			}
			if p.bondSet {
				return p.fail(p.bondPos, "dangling bond")
			}
			if p.sepPos >= 0 {
				return p.fail(p.sepPos, "dangling component separator")
			}
			p.prev = p.branch[len(p.branch)-1]
			p.branch = p.branch[:len(p.branch)-1]
			p.pos++
		case strings.IndexByte(`-=#$:/\`, c) >= 0:
			if p.prev < 0 {
				return p.fail(p.pos, "bond before any atom")
			}
			if p.bondSet {
				return p.fail(p.pos, "consecutive bonds")
			}
			p.order, p.bondSet, p.bondPos = bondOrder(c), true, p.pos
			p.pos++
		case c == '.':
			if p.prev < 0 {
				return p.fail(p.pos, "component separator before any atom")
			}
			if p.bondSet {
				return p.fail(p.bondPos, "dangling bond")
			}
			p.prev, p.sepPos = -1, p.pos
			p.pos++
		case c >= '0' && c <= '9' || c == '%':
			if err := p.ringClosure(); err != nil {
				return err
			}
		case c == '[':
			a, err := p.bracketAtom()
			if err != nil {
				return err
			}
			if err := p.attach(a); err != nil {
				return err
			}
		default:
			a, err := p.organicAtom()
			if err != nil {
				return err
			}
			if err := p.attach(a); err != nil {
				return err
			}
		}
	}

	if p.bondSet {
		return p.fail(p.bondPos, "dangling bond")
	}
	if p.sepPos >= 0 {
		return p.fail(p.sepPos, "dangling component separator")
	}
	if len(p.branch) > 0 {
		return p.fail(len(p.in), "unclosed branch")
	}
	if len(p.rings) > 0 {
		first := -1
		for num, r := range p.rings {
			if first < 0 || r.pos < p.rings[first].pos {
				first = num
			}
		}
		return p.fail(p.rings[first].pos, "unclosed ring %d", first)
	}
	return nil
}

func bondOrder(c byte) Order {
	switch c {
	case '=':
		return Double
	case '#':
		return Triple
	case '$':
		return Quadruple
	case ':':
		return Aromatic
	default:
		return Single
	}
}

// attach adds a to the molecule and bonds it to the previous atom.
func (p *parser) attach(a Atom) error {
	idx := p.mol.addAtom(a)
	if p.prev >= 0 {
		order := p.order
		if !p.bondSet {
			order = p.implicitOrder(p.prev, idx)
		}
		if err := p.mol.addBond(p.prev, idx, order); err != nil {
			return p.fail(p.pos, "%v", err)
		}
	}
	p.prev = idx
	p.bondSet = false
	p.sepPos = -1
	return nil
}

func (p *parser) implicitOrder(a, b int) Order {
	if p.mol.atoms[a].Aromatic && p.mol.atoms[b].Aromatic {
		return Aromatic
	}
	return Single
}

func (p *parser) ringClosure() error {
	start := p.pos
	if p.prev < 0 {
		return p.fail(start, "ring closure before any atom")
	}

	var num int
	if p.in[p.pos] == '%' {
		if p.pos+2 >= len(p.in) || !isDigit(p.in[p.pos+1]) || !isDigit(p.in[p.pos+2]) {
			return p.fail(start, "'%%' must be followed by two digits")
		}
		num = int(p.in[p.pos+1]-'0')*10 + int(p.in[p.pos+2]-'0')
		p.pos += 3
	} else {
		num = int(p.in[p.pos] - '0')
		p.pos++
	}

	open, ok := p.rings[num]
	if !ok {
		p.rings[num] = ringOpen{atom: p.prev, order: p.order, set: p.bondSet, pos: start}
		p.bondSet = false
		return nil
	}

	delete(p.rings, num)
	order := Single
	switch {
	case open.set && p.bondSet && open.order != p.order:
		return p.fail(start, "conflicting bond orders on ring %d", num)
	case open.set:
		order = open.order
	case p.bondSet:
		order = p.order
	default:
		order = p.implicitOrder(open.atom, p.prev)
	}
	p.bondSet = false
	if err := p.mol.addBond(open.atom, p.prev, order); err != nil {
		return p.fail(start, "ring %d: %v", num, err)
	}
	return nil
}

func (p *parser) organicAtom() (Atom, error) {
	rest := p.in[p.pos:]
	for _, sym := range []string{"Cl", "Br"} {
		if strings.HasPrefix(rest, sym) {
			p.pos += 2
			return Atom{Symbol: sym}, nil
		}
	}

	c := string(rest[0])
	if IsOrganic(c) {
		p.pos++
		return Atom{Symbol: c}, nil
	}
	if sym, ok := aromaticSymbols[c]; ok {
		p.pos++
		return Atom{Symbol: sym, Aromatic: true}, nil
	}
	if c == "*" {
		p.pos++
		return Atom{Symbol: "*"}, nil
	}
	return Atom{}, p.fail(p.pos, "unexpected character %q", c)
}

// bracketAtom parses "[" isotope? symbol chiral? hcount? charge? class? "]".
// Everything after the element symbol is validated for its character set but
// otherwise discarded.
func (p *parser) bracketAtom() (Atom, error) {
	start := p.pos
	end := strings.IndexByte(p.in[start:], ']')
	if end < 0 {
		return Atom{}, p.fail(start, "unclosed bracket atom")
	}
	body := p.in[start+1 : start+end]
	p.pos = start + end + 1

	i := 0
	for i < len(body) && isDigit(body[i]) {
		i++
	}
	if i == len(body) {
		return Atom{}, p.fail(start, "bracket atom without element")
	}

	var a Atom
	a.Bracket = true
	switch {
	case body[i] == '*':
		a.Symbol = "*"
		i++
	case i+1 < len(body) && isLower(body[i]) && isLower(body[i+1]) && aromaticSymbols[body[i:i+2]] != "":
		a.Symbol, a.Aromatic = aromaticSymbols[body[i:i+2]], true
		i += 2
	case isLower(body[i]) && aromaticSymbols[body[i:i+1]] != "":
		a.Symbol, a.Aromatic = aromaticSymbols[body[i:i+1]], true
		i++
	case isUpper(body[i]):
		if i+1 < len(body) && isLower(body[i+1]) && IsElement(body[i:i+2]) {
			a.Symbol = body[i : i+2]
			i += 2
		} else if IsElement(body[i : i+1]) {
			a.Symbol = body[i : i+1]
			i++
		} else {
			return Atom{}, p.fail(start+1+i, "unknown element in bracket atom %q", body)
		}
	default:
		return Atom{}, p.fail(start+1+i, "unknown element in bracket atom %q", body)
	}

	for ; i < len(body); i++ {
		c := body[i]
		if !(isDigit(c) || isUpper(c) || isLower(c) || c == '@' || c == '+' || c == '-' || c == ':') {
			return Atom{}, p.fail(start+1+i, "unexpected %q in bracket atom", c)
		}
	}
	return a, nil
}

func checkValence(m *Molecule) error {
	for i, a := range m.atoms {
		if a.Bracket || a.Aromatic {
			continue
		}
		limit, ok := MaxValence(a.Symbol)
		if !ok {
			continue
		}
		if v := m.valence(i); v > 2*limit {
			return &ValenceError{Atom: i, Symbol: a.Symbol, Valence: float64(v) / 2, Max: limit}
		}
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
