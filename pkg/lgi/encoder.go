package lgi

import (
	"math/rand/v2"

	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/graph"
)

// Encoder converts graphs to LGI strings.
//
// An Encoder created without a random source is safe for concurrent use. One
// created with [WithRand] or [WithSeed] owns a *rand.Rand and must not be
// shared between goroutines that encode randomized strings.
type Encoder struct {
	engine Engine
	rng    *rand.Rand
}

// Option configures an [Encoder].
type Option func(*Encoder)

// WithEngine replaces the structure engine.
func WithEngine(e Engine) Option {
	return func(enc *Encoder) {
		if e != nil {
			enc.engine = e
		}
	}
}

// WithRand sets the random source for non-canonical encodings.
func WithRand(r *rand.Rand) Option {
	return func(enc *Encoder) { enc.rng = r }
}

// WithSeed makes non-canonical encodings reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewEncoder returns an encoder backed by [DefaultEngine] unless overridden.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{engine: DefaultEngine}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode returns the LGI string for g. With canonical set the same graph
// always yields the same string; otherwise the atom order is randomized.
//
// Encode fails with DEGREE_OUT_OF_RANGE if any vertex has more than
// MaxDegree neighbors, INVALID_GRAPH for a graph without nodes and
// ENGINE_FAILURE if the engine errors or panics.
func (e *Encoder) Encode(g graph.Graph, canonical bool) (lgi string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lgi, err = "", errors.Recovered(r)
		}
	}()

	if g.NodeCount() == 0 {
		return "", errors.New(errors.ErrCodeInvalidGraph, "graph has no nodes")
	}

	elements := make([]string, g.NodeCount())
	for v := range elements {
		sym, ok := Element(g.Degree(v))
		if !ok {
			return "", errors.New(errors.ErrCodeDegreeOutOfRange,
				"vertex %d has degree %d, max is %d", v, g.Degree(v), MaxDegree)
		}
		elements[v] = sym
	}

	edges := g.Edges()
	bonds := make([][2]int, len(edges))
	for i, edge := range edges {
		bonds[i] = [2]int{edge.U, edge.V}
	}

	mol, err := e.engine.Build(elements, bonds)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeEngine, err, "build structure")
	}

	var rng *rand.Rand
	if !canonical {
		rng = e.rng
	}
	native, err := e.engine.Serialize(mol, canonical, rng)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeEngine, err, "serialize structure")
	}
	return toLGI(native), nil
}
