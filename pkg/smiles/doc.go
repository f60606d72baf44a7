// Package smiles is a small in-process chemical structure engine for the
// SMILES line notation.
//
// It covers the part of SMILES the lgi codec depends on: reading notation
// strings into an atom/bond [Molecule], building molecules from element
// symbols and bonds, and writing them back out either canonically
// (deterministic for a fixed input) or in a randomized atom order.
//
// # Supported Syntax
//
//   - Organic subset atoms: B C N O P S F Cl Br I, aromatic b c n o p s
//   - Bracket atoms such as [NH4+], [13C@@H] or [Fe+2]; only the element is kept
//   - Bonds - = # $ : / \
//   - Branches ( ) and ring closures 0-9 and %nn
//   - Disconnected components separated by '.'
//
// Atom indices follow the order atoms appear in the string. This is the
// property the lgi decoder relies on to align degree characters with parsed
// atoms.
//
// # Valence
//
// [Parse] rejects organic-subset atoms whose explicit bond orders exceed the
// element's largest default valence (for example F with two bonds). Bracket
// and aromatic atoms are not valence checked. [Build] performs no valence
// check; callers choose elements whose capacity matches the bonds they add.
//
// # Writing
//
// [Write] emits single bonds implicitly, other bond orders explicitly, and
// assigns ring-closure digits lowest-first. Canonical output ranks atoms by
// iterative refinement of graph invariants; randomized output draws a fresh
// atom ranking from the supplied random source so that repeated calls produce
// different but equivalent strings.
package smiles
