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
	"github.com/samber/lo"
	"github.com/satsudoku/satsudoku/satclause"
	"github.com/satsudoku/satsudoku/satvar"
	"github.com/satsudoku/satsudoku/sudoku"
)

// combinations enumerates every strictly increasing tuple of distinct values
// in [1,9] that sums to target, via a backtracking search pruned by the
// achievable min/max sum of the remaining slots. This is the combinatorial
// core named in §4.B step 1; original_source/src/SudokuEncoder.cpp's
// generateSumCombinationsHelper performs the identical search (and the same
// two pruning tests), though there it feeds a permutation-level encoder
// rather than this spec's combination+channeling one.
func combinations(n, target int) [][]int {
	var results [][]int
	var cur []int
	var rec func(start, remaining int)
	rec = func(start, remaining int) {
		if len(cur) == n {
			if remaining == 0 {
				combo := make([]int, n)
				copy(combo, cur)
				results = append(results, combo)
			}
			return
		}
		slotsLeft := n - len(cur)
		for v := start; v <= 9; v++ {
			// Prune: can the remaining slots (after choosing v) still bracket
			// the residual sum?
			slotsAfter := slotsLeft - 1
			minRest := sumRange(v+1, v+slotsAfter)
			maxRest := sumRange(9-slotsAfter+1, 9)
			residual := remaining - v
			if residual < minRest || residual > maxRest {
				continue
			}
			cur = append(cur, v)
			rec(v+1, remaining-v)
			cur = cur[:len(cur)-1]
		}
	}
	rec(1, target)
	return results
}

func sumRange(lo, hi int) int {
	if hi < lo {
		return 0
	}
	return (lo + hi) * (hi - lo + 1) / 2
}

// EncodeCageUniqueness emits, for every cage and every value v in [1,9], an
// at-most-one over the cage's cells for v (§4.B "Cage uniqueness").
func EncodeCageUniqueness(f *satclause.Formula, cage sudoku.Cage) {
	for v := 1; v <= 9; v++ {
		lits := make([]satclause.Lit, len(cage.Cells))
		for i, cell := range cage.Cells {
			lits[i] = satclause.Pos(satvar.VarForCell(cell, v))
		}
		f.AddAll(satclause.AtMostOne(lits))
	}
}

// EncodeCageSum implements §4.B's combination+channeling cage-sum encoding.
// If the cage is structurally invalid (empty, or sum out of bounds), it
// emits the empty clause, forcing UNSAT. If no combination sums to target,
// likewise. A single surviving combination is asserted directly; multiple
// surviving combinations are channeled through fresh "combination chosen"
// auxiliary variables so they are functionally determined by the primary
// assignment, per the redesign note in SPEC_FULL.md §4.B (this replaces
// original_source/src/SudokuEncoder.cpp's permutation-per-cell encoding,
// which is exponential in cage size).
func EncodeCageSum(f *satclause.Formula, vars *satvar.Map, cage sudoku.Cage) {
	if !cage.Valid() {
		f.AddEmpty()
		return
	}
	n := len(cage.Cells)
	combos := combinations(n, cage.Sum)
	if len(combos) == 0 {
		f.AddEmpty()
		return
	}

	if len(combos) == 1 {
		encodeSingleCombination(f, cage, combos[0])
		return
	}
	encodeChanneledCombinations(f, vars, cage, combos)
}

func encodeSingleCombination(f *satclause.Formula, cage sudoku.Cage, combo []int) {
	present := valueSet(combo)
	for v := 1; v <= 9; v++ {
		if present[v] {
			lits := make([]satclause.Lit, len(cage.Cells))
			for i, cell := range cage.Cells {
				lits[i] = satclause.Pos(satvar.VarForCell(cell, v))
			}
			f.Add(satclause.AtLeastOne(lits)...)
		} else {
			for _, cell := range cage.Cells {
				f.Add(satclause.Neg(satvar.VarForCell(cell, v)))
			}
		}
	}
}

func encodeChanneledCombinations(f *satclause.Formula, vars *satvar.Map, cage sudoku.Cage, combos [][]int) {
	chVars := vars.AllocN(len(combos))
	chLits := lo.Map(chVars, func(v int, _ int) satclause.Lit { return satclause.Pos(v) })

	// exactly one combination is chosen
	f.AddAll(satclause.ExactlyOne(chLits))

	presentSets := lo.Map(combos, func(combo []int, _ int) map[int]bool { return valueSet(combo) })

	for i, present := range presentSets {
		ch := chLits[i]
		for v := 1; v <= 9; v++ {
			cellLits := make([]satclause.Lit, len(cage.Cells))
			for j, cell := range cage.Cells {
				cellLits[j] = satclause.Pos(satvar.VarForCell(cell, v))
			}
			if present[v] {
				// not ch_i or (cell1=v or cell2=v or ...)
				f.Add(satclause.ImpliesAny(ch, cellLits)...)
			} else {
				for _, cell := range cage.Cells {
					f.Add(ch.Negate(), satclause.Neg(satvar.VarForCell(cell, v)))
				}
			}
		}
	}

	// channeling: var(cell,v) -> OR over combos containing v of ch_i
	for _, cell := range cage.Cells {
		for v := 1; v <= 9; v++ {
			cellVar := satclause.Pos(satvar.VarForCell(cell, v))
			var containing []satclause.Lit
			for i, present := range presentSets {
				if present[v] {
					containing = append(containing, chLits[i])
				}
			}
			if len(containing) == 0 {
				f.Add(satclause.Neg(satvar.VarForCell(cell, v)))
				continue
			}
			f.Add(satclause.ImpliesAny(cellVar, containing)...)
		}
	}
}

func valueSet(combo []int) map[int]bool {
	set := make(map[int]bool, len(combo))
	for _, v := range combo {
		set[v] = true
	}
	return set
}
