package lgi

import (
	"math/rand/v2"

	"github.com/matzehuels/lgi/pkg/smiles"
)

// Engine is the structure engine the codec drives. Serialize with
// canonical=true must be deterministic for a fixed molecule.
type Engine interface {
	Parse(s string) (*smiles.Molecule, error)
	Build(elements []string, bonds [][2]int) (*smiles.Molecule, error)
	Serialize(m *smiles.Molecule, canonical bool, rng *rand.Rand) (string, error)
}

// DefaultEngine is the in-process SMILES engine.
var DefaultEngine Engine = smiles.Engine{}
