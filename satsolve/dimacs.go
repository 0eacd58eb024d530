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

package satsolve

import (
	"bufio"
	"fmt"
	"io"

	"github.com/FabianWe/dimacscnf"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/satsudoku/satsudoku/satencode"
	"github.com/satsudoku/satsudoku/sudoku"
)

// DumpCNF writes p's §4.B encoding out in the simplified DIMACS cnf format
// (the "p cnf <nbvar> <nbclauses>" problem line followed by one
// zero-terminated clause per line), for `sudoku-cli solve --dump-cnf`
// diagnostics. satclause.Lit already uses DIMACS's one-based,
// sign-carries-negation convention (Pos(v) = v+1, Neg(v) = -(v+1)), so a
// clause's literals write out as plain ints. dimacscnf itself is a parser,
// not a writer, so this side of the round trip is hand-rolled against the
// same format its ParseDimacs consumes; SolveRawCNF below is the half that
// does use the library.
func DumpCNF(w io.Writer, p *sudoku.Puzzle) error {
	formula, vars := satencode.Encode(p)
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", vars.Count(), len(formula.Clauses))
	for _, clause := range formula.Clauses {
		for _, l := range clause {
			fmt.Fprintf(bw, "%d ", int(l))
		}
		fmt.Fprintln(bw, "0")
	}
	return bw.Flush()
}

// rawLit converts a signed, one-based DIMACS literal into a gini z.Lit.
func rawLit(n int) z.Lit {
	if n < 0 {
		return z.Var(-n).Neg()
	}
	return z.Var(n).Pos()
}

// SolveRawCNF parses a DIMACS cnf file with dimacscnf.ParseDimacs and solves
// it directly with gini, bypassing the Sudoku encoder entirely. This is a
// debugging entry point for `sudoku-cli solve-cnf`: it lets a CNF dumped by
// DumpCNF (or produced by any other DIMACS-emitting tool) be replayed
// against the same solver backend satsolve.Solve uses, to isolate whether a
// reported failure is in the encoding or in the solver integration.
func SolveRawCNF(r io.Reader) (sat bool, model []int, err error) {
	clauses, _, nbvar, err := dimacscnf.ParseDimacs(r)
	if err != nil {
		return false, nil, fmt.Errorf("parsing DIMACS cnf: %w", err)
	}

	g := gini.New()
	for _, clause := range clauses {
		for _, lit := range clause {
			g.Add(rawLit(lit))
		}
		g.Add(0)
	}

	if g.Solve() != 1 {
		return false, nil, nil
	}

	model = make([]int, 0, nbvar)
	for v := 1; v <= nbvar; v++ {
		if g.Value(rawLit(v)) {
			model = append(model, v)
		} else {
			model = append(model, -v)
		}
	}
	return true, model, nil
}
