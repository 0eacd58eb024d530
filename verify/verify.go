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

// Package verify implements component E: an independent cross-check of a
// candidate solution against all of a puzzle's constraints, performed
// without invoking the SAT solver. It is the last line of defense called by
// satsolve after every successful solve, and is exercised directly by
// tests.
package verify

import "github.com/satsudoku/satsudoku/sudoku"

// Verify reports whether solution is a valid completion of puzzle. Checks,
// in order (§4.E): every cell is in [1,9]; every row/column/box is a
// permutation of {1..9}; every given is preserved; every cage's cells are
// distinct and sum to its target; every inequality holds.
func Verify(p *sudoku.Puzzle, solution *sudoku.Grid) bool {
	for r := 0; r < sudoku.Side; r++ {
		for c := 0; c < sudoku.Side; c++ {
			if v := solution[r][c]; v < 1 || v > 9 {
				return false
			}
		}
	}

	for r := 0; r < sudoku.Side; r++ {
		if !isPermutation(rowValues(solution, r)) {
			return false
		}
	}
	for c := 0; c < sudoku.Side; c++ {
		if !isPermutation(colValues(solution, c)) {
			return false
		}
	}
	for br := 0; br < sudoku.Side; br += sudoku.BoxSide {
		for bc := 0; bc < sudoku.Side; bc += sudoku.BoxSide {
			if !isPermutation(boxValues(solution, br, bc)) {
				return false
			}
		}
	}

	for r := 0; r < sudoku.Side; r++ {
		for c := 0; c < sudoku.Side; c++ {
			if given := p.Grid[r][c]; given != sudoku.Empty && solution[r][c] != given {
				return false
			}
		}
	}

	for _, cage := range p.Cages {
		if !verifyCage(cage, solution) {
			return false
		}
	}

	for _, ineq := range p.Inequalities {
		if !verifyInequality(ineq, solution) {
			return false
		}
	}

	return true
}

func rowValues(g *sudoku.Grid, r int) []int {
	vals := make([]int, sudoku.Side)
	for c := 0; c < sudoku.Side; c++ {
		vals[c] = g[r][c]
	}
	return vals
}

func colValues(g *sudoku.Grid, c int) []int {
	vals := make([]int, sudoku.Side)
	for r := 0; r < sudoku.Side; r++ {
		vals[r] = g[r][c]
	}
	return vals
}

func boxValues(g *sudoku.Grid, br, bc int) []int {
	vals := make([]int, 0, 9)
	for dr := 0; dr < sudoku.BoxSide; dr++ {
		for dc := 0; dc < sudoku.BoxSide; dc++ {
			vals = append(vals, g[br+dr][bc+dc])
		}
	}
	return vals
}

func isPermutation(vals []int) bool {
	var seen [10]bool
	for _, v := range vals {
		if v < 1 || v > 9 || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func verifyCage(cage sudoku.Cage, solution *sudoku.Grid) bool {
	sum := 0
	var seen [10]bool
	for _, cell := range cage.Cells {
		v := solution.Get(cell)
		if seen[v] {
			return false
		}
		seen[v] = true
		sum += v
	}
	return sum == cage.Sum
}

func verifyInequality(ineq sudoku.Inequality, solution *sudoku.Grid) bool {
	a, b := solution.Get(ineq.A), solution.Get(ineq.B)
	if ineq.Kind == sudoku.GT {
		return a > b
	}
	return a < b
}
