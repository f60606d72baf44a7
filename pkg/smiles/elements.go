package smiles

import "strings"

// periodicTable lists element symbols in atomic-number order.
const periodicTable = "H He Li Be B C N O F Ne Na Mg Al Si P S Cl Ar K Ca Sc Ti V Cr Mn Fe Co Ni Cu Zn " +
	"Ga Ge As Se Br Kr Rb Sr Y Zr Nb Mo Tc Ru Rh Pd Ag Cd In Sn Sb Te I Xe Cs Ba La Ce Pr Nd Pm Sm " +
	"Eu Gd Tb Dy Ho Er Tm Yb Lu Hf Ta W Re Os Ir Pt Au Hg Tl Pb Bi Po At Rn Fr Ra Ac Th Pa U Np Pu " +
	"Am Cm Bk Cf Es Fm Md No Lr Rf Db Sg Bh Hs Mt Ds Rg Cn Nh Fl Mc Lv Ts Og"

var atomicNumbers = func() map[string]int {
	m := make(map[string]int, 118)
	for i, sym := range strings.Fields(periodicTable) {
		m[sym] = i + 1
	}
	return m
}()

// maxValence is the largest default valence of each organic-subset element.
// Atoms written without brackets may not carry more explicit bond order.
var maxValence = map[string]int{
	"B":  3,
	"C":  4,
	"N":  3,
	"O":  2,
	"P":  7,
	"S":  6,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  5,
}

// aromaticSymbols maps the lowercase aromatic spelling to its element.
var aromaticSymbols = map[string]string{
	"b":  "B",
	"c":  "C",
	"n":  "N",
	"o":  "O",
	"p":  "P",
	"s":  "S",
	"se": "Se",
	"as": "As",
}

// AtomicNumber returns the atomic number of sym, or 0 for unknown symbols
// and the wildcard "*".
func AtomicNumber(sym string) int {
	return atomicNumbers[sym]
}

// IsElement reports whether sym is a known element symbol.
func IsElement(sym string) bool {
	_, ok := atomicNumbers[sym]
	return ok
}

// IsOrganic reports whether sym belongs to the organic subset that may be
// written without brackets.
func IsOrganic(sym string) bool {
	_, ok := maxValence[sym]
	return ok
}

// MaxValence returns the largest default valence of an organic-subset
// element and whether sym is in the subset.
func MaxValence(sym string) (int, bool) {
	v, ok := maxValence[sym]
	return v, ok
}
