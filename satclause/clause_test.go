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

package satclause

import (
	"reflect"
	"testing"
)

func TestPosNegVarRoundTrip(t *testing.T) {
	for v := 0; v < 10; v++ {
		if got := Pos(v).Var(); got != v {
			t.Errorf("Pos(%d).Var() = %d, want %d", v, got, v)
		}
		if got := Neg(v).Var(); got != v {
			t.Errorf("Neg(%d).Var() = %d, want %d", v, got, v)
		}
		if Pos(v) <= 0 {
			t.Errorf("Pos(%d) = %d, want a positive literal", v, Pos(v))
		}
		if Neg(v) >= 0 {
			t.Errorf("Neg(%d) = %d, want a negative literal", v, Neg(v))
		}
	}
}

func TestLitNegate(t *testing.T) {
	p := Pos(5)
	if got := p.Negate(); got != Neg(5) {
		t.Errorf("Pos(5).Negate() = %d, want Neg(5) = %d", got, Neg(5))
	}
	if got := p.Negate().Negate(); got != p {
		t.Errorf("double negate = %d, want original %d", got, p)
	}
}

func TestAtLeastOne(t *testing.T) {
	lits := []Lit{Pos(1), Pos(2), Neg(3)}
	got := AtLeastOne(lits)
	want := Clause{Pos(1), Pos(2), Neg(3)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AtLeastOne(%v) = %v, want %v", lits, got, want)
	}
}

// TestAtMostOnePairwise checks the count (n choose 2) and that every
// generated clause is exactly the negation of one distinct pair.
func TestAtMostOnePairwise(t *testing.T) {
	lits := []Lit{Pos(0), Pos(1), Pos(2), Pos(3)}
	clauses := AtMostOne(lits)
	wantCount := len(lits) * (len(lits) - 1) / 2
	if len(clauses) != wantCount {
		t.Fatalf("AtMostOne returned %d clauses, want %d (n choose 2)", len(clauses), wantCount)
	}
	seen := make(map[[2]Lit]bool)
	for _, c := range clauses {
		if len(c) != 2 {
			t.Fatalf("clause %v has %d literals, want 2", c, len(c))
		}
		a, b := c[0].Negate(), c[1].Negate()
		seen[[2]Lit{a, b}] = true
	}
	for i := 0; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			if !seen[[2]Lit{lits[i], lits[j]}] {
				t.Errorf("missing pairwise clause forbidding %v and %v together", lits[i], lits[j])
			}
		}
	}
}

func TestExactlyOneCount(t *testing.T) {
	lits := []Lit{Pos(0), Pos(1), Pos(2)}
	clauses := ExactlyOne(lits)
	// 1 at-least-one clause + (3 choose 2) = 3 at-most-one clauses.
	if want := 1 + 3; len(clauses) != want {
		t.Errorf("ExactlyOne returned %d clauses, want %d", len(clauses), want)
	}
}

func TestFormulaAddAndAddEmpty(t *testing.T) {
	var f Formula
	f.Add(Pos(0), Neg(1))
	f.AddEmpty()
	if len(f.Clauses) != 2 {
		t.Fatalf("Formula has %d clauses, want 2", len(f.Clauses))
	}
	if !reflect.DeepEqual(f.Clauses[0], Clause{Pos(0), Neg(1)}) {
		t.Errorf("first clause = %v, want {Pos(0), Neg(1)}", f.Clauses[0])
	}
	if len(f.Clauses[1]) != 0 {
		t.Errorf("AddEmpty produced a non-empty clause: %v", f.Clauses[1])
	}
}

func TestFormulaAddAll(t *testing.T) {
	var f Formula
	f.Add(Pos(0))
	more := []Clause{{Pos(1)}, {Neg(2)}}
	f.AddAll(more)
	if len(f.Clauses) != 3 {
		t.Fatalf("Formula has %d clauses, want 3", len(f.Clauses))
	}
}

func TestImplies(t *testing.T) {
	got := Implies(Pos(0), Pos(1))
	want := Clause{Neg(0), Pos(1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Implies(Pos(0), Pos(1)) = %v, want %v", got, want)
	}
}

func TestImpliesAny(t *testing.T) {
	got := ImpliesAny(Pos(0), []Lit{Pos(1), Pos(2)})
	want := Clause{Neg(0), Pos(1), Pos(2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ImpliesAny(Pos(0), [Pos(1), Pos(2)]) = %v, want %v", got, want)
	}
}
