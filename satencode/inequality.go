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

// EncodeInequality implements §4.B's forbidden-tuple-pair encoding: for
// A > B, forbid every (v1, v2) with v1 <= v2; for A < B, forbid every
// (v1, v2) with v1 >= v2. O(81) clauses, matching
// original_source/src/SudokuEncoder.cpp's encodeInequality. A structurally
// invalid inequality (coincident cells) forces UNSAT via the empty clause.
func EncodeInequality(f *satclause.Formula, ineq sudoku.Inequality) {
	if !ineq.Valid() {
		f.AddEmpty()
		return
	}
	for v1 := 1; v1 <= 9; v1++ {
		for v2 := 1; v2 <= 9; v2++ {
			forbidden := false
			switch ineq.Kind {
			case sudoku.GT:
				forbidden = v1 <= v2
			case sudoku.LT:
				forbidden = v1 >= v2
			}
			if forbidden {
				f.Add(
					satclause.Neg(satvar.VarForCell(ineq.A, v1)),
					satclause.Neg(satvar.VarForCell(ineq.B, v2)),
				)
			}
		}
	}
}
