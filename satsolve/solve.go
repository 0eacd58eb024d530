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

// Package satsolve implements component C: it drives an external CDCL
// solver (github.com/go-air/gini, satisfying the minimal interface in §6.4)
// against a satclause.Formula, decodes the model into a sudoku.Grid, and
// implements the blocking-clause uniqueness re-solve.
package satsolve

import (
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/satsudoku/satsudoku/satclause"
	"github.com/satsudoku/satsudoku/satencode"
	"github.com/satsudoku/satsudoku/satvar"
	"github.com/satsudoku/satsudoku/sudoku"
	"github.com/satsudoku/satsudoku/sudokuerr"
	"github.com/satsudoku/satsudoku/verify"
)

// Solve implements §4.C's public solve(puzzle, check_uniqueness) operation.
// Each call builds a fresh gini.Gini instance and variable map; the instance
// is never shared across calls or goroutines (§5's "one core instance per
// worker" rule), except internally between the first solve and the
// uniqueness re-solve, which is a logical continuation of the same call.
func Solve(p *sudoku.Puzzle, checkUniqueness bool) sudoku.Solution {
	formula, vars := satencode.Encode(p)

	g := gini.New()
	addClauses(g, formula)

	start := time.Now()
	sat := g.Solve() == 1
	elapsed := time.Since(start)

	result := sudoku.Solution{
		Solved:      sat,
		Uniqueness:  sudoku.NotChecked,
		Variables:   vars.Count(),
		Clauses:     len(formula.Clauses),
		SolveTimeMs: float64(elapsed.Microseconds()) / 1000.0,
	}
	if !sat {
		result.Message = sudokuerr.NoSolution().Error()
		return result
	}

	result.Grid = decode(g)
	if !verify.Verify(p, &result.Grid) {
		sudokuerr.Verification("decoded grid failed post-solve verification")
	}

	if !checkUniqueness {
		return result
	}

	blocking := blockingClause(result.Grid)
	addLits(g, blocking)
	start2 := time.Now()
	sat2 := g.Solve() == 1
	result.SolveTimeMs += float64(time.Since(start2).Microseconds()) / 1000.0
	if sat2 {
		result.Uniqueness = sudoku.NotUnique
	} else {
		result.Uniqueness = sudoku.Unique
	}
	return result
}

func lit(l satclause.Lit) z.Lit {
	v := z.Var(l.Var() + 1)
	if l < 0 {
		return v.Neg()
	}
	return v.Pos()
}

func addClauses(g *gini.Gini, f *satclause.Formula) {
	for _, clause := range f.Clauses {
		addLits(g, clause)
	}
}

func addLits(g *gini.Gini, clause satclause.Clause) {
	for _, l := range clause {
		g.Add(lit(l))
	}
	g.Add(0)
}

// decode chooses, for each cell, the unique v with var(r,c,v) true. If more
// than one is true the encoding is buggy; per §4.C step 5 this is treated
// as fatal and panics here. If none is true the cell stays Empty, which the
// verifier's range check in Solve rejects (also fatally).
func decode(g *gini.Gini) sudoku.Grid {
	var grid sudoku.Grid
	for r := 0; r < sudoku.Side; r++ {
		for c := 0; c < sudoku.Side; c++ {
			for v := 1; v <= 9; v++ {
				if g.Value(lit(satclause.Pos(satvar.Var(r, c, v)))) {
					if grid[r][c] != sudoku.Empty {
						sudokuerr.Verification("decoded model assigns more than one value to a cell")
					}
					grid[r][c] = v
				}
			}
		}
	}
	return grid
}

// blockingClause builds the disjunction of the negations of the model's true
// literals, per §4.C step 7: any further satisfying assignment must differ
// in at least one cell.
func blockingClause(grid sudoku.Grid) satclause.Clause {
	clause := make(satclause.Clause, 0, sudoku.Side*sudoku.Side)
	for r := 0; r < sudoku.Side; r++ {
		for c := 0; c < sudoku.Side; c++ {
			clause = append(clause, satclause.Neg(satvar.Var(r, c, grid[r][c])))
		}
	}
	return clause
}
