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

package generator

import (
	"math"
	"math/rand"

	"github.com/satsudoku/satsudoku/satsolve"
	"github.com/satsudoku/satsudoku/sudoku"
)

// minimizeConstraints implements §4.D step 6: with uniqueness already
// established, try to remove constraints while the puzzle remains UNIQUE,
// processing categories in order inequalities -> cages -> givens (since
// inequalities tend to carry the least information). difficulty (0-100)
// bounds the fraction of each category's shuffled candidates that are
// attempted, resolving SPEC_FULL.md §9's open question in favor of an
// explicit fraction rather than an unconditional full pass.
func minimizeConstraints(rng *rand.Rand, puzzle *sudoku.Puzzle, difficulty int) {
	minimizeInequalities(rng, puzzle, difficulty)
	minimizeCages(rng, puzzle, difficulty)
	minimizeGivens(rng, puzzle, difficulty)
}

func attemptCount(total, difficulty int) int {
	if total == 0 {
		return 0
	}
	frac := float64(difficulty) / 100.0
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	n := int(math.Ceil(frac * float64(total)))
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	return n
}

func minimizeInequalities(rng *rand.Rand, puzzle *sudoku.Puzzle, difficulty int) {
	if len(puzzle.Inequalities) == 0 {
		return
	}
	order := rng.Perm(len(puzzle.Inequalities))
	order = order[:attemptCount(len(order), difficulty)]
	removed := make(map[int]bool)
	base := puzzle.Inequalities

	for _, idx := range order {
		original := puzzle.Inequalities
		puzzle.Inequalities = filterIndex(base, idx, removed)
		result := satsolve.Solve(puzzle, true)
		if result.Solved && result.Uniqueness == sudoku.Unique {
			removed[idx] = true
		} else {
			puzzle.Inequalities = original
		}
	}
}

func filterIndex(all []sudoku.Inequality, skip int, removed map[int]bool) []sudoku.Inequality {
	kept := make([]sudoku.Inequality, 0, len(all))
	for i, v := range all {
		if i == skip || removed[i] {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

func minimizeCages(rng *rand.Rand, puzzle *sudoku.Puzzle, difficulty int) {
	if len(puzzle.Cages) == 0 {
		return
	}
	order := rng.Perm(len(puzzle.Cages))
	order = order[:attemptCount(len(order), difficulty)]
	removed := make(map[int]bool)
	base := puzzle.Cages

	for _, idx := range order {
		original := puzzle.Cages
		puzzle.Cages = filterCageIndex(base, idx, removed)
		result := satsolve.Solve(puzzle, true)
		if result.Solved && result.Uniqueness == sudoku.Unique {
			removed[idx] = true
		} else {
			puzzle.Cages = original
		}
	}
}

func filterCageIndex(all []sudoku.Cage, skip int, removed map[int]bool) []sudoku.Cage {
	kept := make([]sudoku.Cage, 0, len(all))
	for i, v := range all {
		if i == skip || removed[i] {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

func minimizeGivens(rng *rand.Rand, puzzle *sudoku.Puzzle, difficulty int) {
	var givenCells []sudoku.Cell
	for r := 0; r < sudoku.Side; r++ {
		for c := 0; c < sudoku.Side; c++ {
			cell := sudoku.Cell{Row: r, Col: c}
			if puzzle.Grid.Get(cell) != sudoku.Empty {
				givenCells = append(givenCells, cell)
			}
		}
	}
	if len(givenCells) == 0 {
		return
	}
	rng.Shuffle(len(givenCells), func(i, j int) { givenCells[i], givenCells[j] = givenCells[j], givenCells[i] })
	givenCells = givenCells[:attemptCount(len(givenCells), difficulty)]

	for _, cell := range givenCells {
		original := puzzle.Grid.Get(cell)
		puzzle.Grid.Set(cell, sudoku.Empty)
		result := satsolve.Solve(puzzle, true)
		if !result.Solved || result.Uniqueness != sudoku.Unique {
			puzzle.Grid.Set(cell, original)
		}
	}
}
