// susen.go - a web-based Sudoku game and teaching tool.
// Copyright (C) 2015-2016 Daniel C. Brotsky.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

// Package satclause implements component B's clause primitives:
// at-least-one, pairwise at-most-one, and exactly-one over a set of
// variables. A Formula accumulates CNF clauses as this package (and
// satencode, which calls it) builds up the puzzle's encoding.
package satclause

import "github.com/samber/lo"

// A Lit is a signed variable reference: for variable v, the positive value
// v+1 means the variable is asserted true, the negative value -(v+1) means
// asserted false.
// Variable 0 is encoded as literal 1 (true) or -1 (false) so that the sign
// bit is always meaningful; callers should use Pos/Neg rather than
// constructing a Lit by hand.
type Lit int

// Pos returns the positive literal for variable v.
func Pos(v int) Lit { return Lit(v + 1) }

// Neg returns the negative literal for variable v.
func Neg(v int) Lit { return Lit(-(v + 1)) }

// Var recovers the variable index (always >= 0) that a literal refers to.
func (l Lit) Var() int {
	if l < 0 {
		return int(-l) - 1
	}
	return int(l) - 1
}

// Negate returns the complementary literal.
func (l Lit) Negate() Lit { return -l }

// A Clause is a disjunction of literals. An empty clause is unsatisfiable
// and is used (per §4.B/§7) to force UNSAT for a structurally invalid cage
// or inequality.
type Clause []Lit

// A Formula is an ordered collection of clauses.
type Formula struct {
	Clauses []Clause
}

// Add appends a clause built from the given literals.
func (f *Formula) Add(lits ...Lit) {
	f.Clauses = append(f.Clauses, Clause(lits))
}

// AddEmpty appends the empty (always-false) clause.
func (f *Formula) AddEmpty() {
	f.Clauses = append(f.Clauses, Clause{})
}

// AddAll appends every clause from another formula (used to merge the basic,
// cage, and inequality clause blocks into one formula).
func (f *Formula) AddAll(clauses []Clause) {
	f.Clauses = append(f.Clauses, clauses...)
}

// AtLeastOne returns the single clause asserting that at least one of the
// given literals is true.
func AtLeastOne(lits []Lit) Clause {
	c := make(Clause, len(lits))
	copy(c, lits)
	return c
}

// AtMostOne returns the pairwise encoding forbidding any two of the given
// literals from being simultaneously true: for every unordered pair
// {li, lj}, the clause (not li or not lj). O(n^2) clauses, chosen per §4.B
// because it beats ladder/commander encodings for the small set sizes (<=9)
// used throughout this encoder.
func AtMostOne(lits []Lit) []Clause {
	pairs := lo.Flatten(lo.Map(lits, func(li Lit, i int) []Clause {
		var cs []Clause
		for j := i + 1; j < len(lits); j++ {
			cs = append(cs, Clause{li.Negate(), lits[j].Negate()})
		}
		return cs
	}))
	return pairs
}

// ExactlyOne returns AtLeastOne plus AtMostOne over the given literals.
func ExactlyOne(lits []Lit) []Clause {
	clauses := []Clause{AtLeastOne(lits)}
	clauses = append(clauses, AtMostOne(lits)...)
	return clauses
}

// Implies returns the single clause encoding (a -> b), i.e. (not a or b).
func Implies(a, b Lit) Clause {
	return Clause{a.Negate(), b}
}

// ImpliesAny returns the clause encoding (a -> (b1 or b2 or ... )), i.e.
// (not a or b1 or b2 or ...).
func ImpliesAny(a Lit, bs []Lit) Clause {
	c := make(Clause, 0, len(bs)+1)
	c = append(c, a.Negate())
	c = append(c, bs...)
	return c
}
