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

package satencode

import (
	"github.com/satsudoku/satsudoku/satclause"
	"github.com/satsudoku/satsudoku/satvar"
	"github.com/satsudoku/satsudoku/sudoku"
)

// EncodeBasic emits the standard Sudoku clauses (§4.B "Basic Sudoku
// clauses"): one cell-value exactly-one per cell, one exactly-one per
// row/value, column/value, and box/value, plus unit clauses for every
// given.
func EncodeBasic(f *satclause.Formula, p *sudoku.Puzzle) {
	// 1. Every cell holds exactly one value.
	for r := 0; r < sudoku.Side; r++ {
		for c := 0; c < sudoku.Side; c++ {
			lits := cellLits(r, c)
			f.AddAll(satclause.ExactlyOne(lits))
		}
	}

	// 2. Every row holds each value exactly once.
	for r := 0; r < sudoku.Side; r++ {
		for v := 1; v <= 9; v++ {
			lits := make([]satclause.Lit, sudoku.Side)
			for c := 0; c < sudoku.Side; c++ {
				lits[c] = satclause.Pos(satvar.Var(r, c, v))
			}
			f.AddAll(satclause.ExactlyOne(lits))
		}
	}

	// 3. Every column holds each value exactly once.
	for c := 0; c < sudoku.Side; c++ {
		for v := 1; v <= 9; v++ {
			lits := make([]satclause.Lit, sudoku.Side)
			for r := 0; r < sudoku.Side; r++ {
				lits[r] = satclause.Pos(satvar.Var(r, c, v))
			}
			f.AddAll(satclause.ExactlyOne(lits))
		}
	}

	// 4. Every 3x3 box holds each value exactly once.
	for br := 0; br < sudoku.Side; br += sudoku.BoxSide {
		for bc := 0; bc < sudoku.Side; bc += sudoku.BoxSide {
			for v := 1; v <= 9; v++ {
				lits := make([]satclause.Lit, 0, 9)
				for dr := 0; dr < sudoku.BoxSide; dr++ {
					for dc := 0; dc < sudoku.BoxSide; dc++ {
						lits = append(lits, satclause.Pos(satvar.Var(br+dr, bc+dc, v)))
					}
				}
				f.AddAll(satclause.ExactlyOne(lits))
			}
		}
	}

	// 5. Unit clauses for the givens.
	for r := 0; r < sudoku.Side; r++ {
		for c := 0; c < sudoku.Side; c++ {
			if v := p.Grid[r][c]; v != sudoku.Empty {
				f.Add(satclause.Pos(satvar.Var(r, c, v)))
			}
		}
	}
}

func cellLits(r, c int) []satclause.Lit {
	lits := make([]satclause.Lit, 9)
	for v := 1; v <= 9; v++ {
		lits[v-1] = satclause.Pos(satvar.Var(r, c, v))
	}
	return lits
}
