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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/satsudoku/satsudoku/satsolve"
	"github.com/satsudoku/satsudoku/sudoku"
	"github.com/satsudoku/satsudoku/verify"
)

func TestDefaultConfigShape(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Type != sudoku.Mixed {
		t.Errorf("DefaultConfig().Type = %v, want Mixed", cfg.Type)
	}
	if !cfg.EnsureUniqueSolution {
		t.Error("DefaultConfig().EnsureUniqueSolution = false, want true")
	}
	if cfg.MinCageSize > cfg.MaxCageSize || cfg.MinCages > cfg.MaxCages {
		t.Errorf("DefaultConfig() has inverted min/max bounds: %+v", cfg)
	}
}

// smallCageConfig keeps the generator's SAT-solving pipeline fast while
// still exercising cage carving, givens, and uniqueness repair.
func smallCageConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Type = sudoku.Killer
	cfg.Seed = seed
	cfg.MinCages, cfg.MaxCages = 3, 4
	cfg.MinCageSize, cfg.MaxCageSize = 2, 3
	cfg.MinInequalities, cfg.MaxInequalities = 0, 0
	return cfg
}

// TestGenerateSeedDeterminism covers §8's seed-determinism universal
// property: the same seed and configuration produce the identical puzzle
// and solution on every run.
func TestGenerateSeedDeterminism(t *testing.T) {
	cfg := smallCageConfig(42)
	p1, s1 := Generate(cfg)
	p2, s2 := Generate(cfg)
	if diff := cmp.Diff(s1, s2); diff != "" {
		t.Errorf("two Generate(seed=42) calls produced different solutions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Errorf("two Generate(seed=42) calls produced different puzzles (-want +got):\n%s", diff)
	}
}

// TestGenerateProducesVerifiableSolution covers §8's generator-correctness
// universal property: the carved puzzle's own solution grid passes
// independent verification against the puzzle's constraints.
func TestGenerateProducesVerifiableSolution(t *testing.T) {
	cfg := smallCageConfig(7)
	puzzle, solution := Generate(cfg)
	if !verify.Verify(puzzle, &solution) {
		t.Error("generated solution failed independent verification against the generated puzzle")
	}
}

// TestGenerateCageConnectivity covers §8's cage-connectivity universal
// property: every carved cage's cells form a single 4-connected region.
func TestGenerateCageConnectivity(t *testing.T) {
	cfg := smallCageConfig(13)
	puzzle, _ := Generate(cfg)
	if len(puzzle.Cages) == 0 {
		t.Fatal("expected at least one carved cage")
	}
	for _, cage := range puzzle.Cages {
		if !isConnected(cage.Cells) {
			t.Errorf("cage %v is not 4-connected", cage.Cells)
		}
	}
}

func isConnected(cells []sudoku.Cell) bool {
	if len(cells) == 0 {
		return false
	}
	set := make(map[sudoku.Cell]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	visited := map[sudoku.Cell]bool{cells[0]: true}
	queue := []sudoku.Cell{cells[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, adj := range adjacentCells(cur) {
			if set[adj] && !visited[adj] {
				visited[adj] = true
				queue = append(queue, adj)
			}
		}
	}
	return len(visited) == len(cells)
}

// TestGenerateCageSumsMatchSolution confirms every carved cage's declared
// sum matches the solution values actually assigned to its cells.
func TestGenerateCageSumsMatchSolution(t *testing.T) {
	cfg := smallCageConfig(99)
	puzzle, solution := Generate(cfg)
	for _, cage := range puzzle.Cages {
		if got := cageSum(cage.Cells, solution); got != cage.Sum {
			t.Errorf("cage %v declares sum %d, solution sums to %d", cage.Cells, cage.Sum, got)
		}
	}
}

// TestGenerateFillAllCellsCoversEveryCell covers §4.D's fill_all_cells
// mode: carved cages must partition the entire grid with no gaps or
// overlaps.
func TestGenerateFillAllCellsCoversEveryCell(t *testing.T) {
	cfg := smallCageConfig(5)
	cfg.FillAllCells = true
	cfg.EnsureUniqueSolution = false
	puzzle, _ := Generate(cfg)

	covered := make(map[sudoku.Cell]int)
	for _, cage := range puzzle.Cages {
		for _, cell := range cage.Cells {
			covered[cell]++
		}
	}
	if len(covered) != sudoku.Side*sudoku.Side {
		t.Errorf("fill_all_cells covered %d cells, want %d", len(covered), sudoku.Side*sudoku.Side)
	}
	for cell, count := range covered {
		if count != 1 {
			t.Errorf("cell %v covered by %d cages, want exactly 1", cell, count)
		}
	}
}

// TestGenerateInequalitiesRespectSolutionOrdering confirms every carved
// inequality's kind is consistent with the actual solution values.
func TestGenerateInequalitiesRespectSolutionOrdering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Type = sudoku.InequalityType
	cfg.Seed = 21
	cfg.MinCages, cfg.MaxCages = 0, 0
	cfg.MinInequalities, cfg.MaxInequalities = 5, 8
	puzzle, solution := Generate(cfg)
	if len(puzzle.Inequalities) == 0 {
		t.Fatal("expected at least one carved inequality")
	}
	for _, ineq := range puzzle.Inequalities {
		a, b := solution.Get(ineq.A), solution.Get(ineq.B)
		switch ineq.Kind {
		case sudoku.GT:
			if !(a > b) {
				t.Errorf("GT inequality %v violated by solution (%d, %d)", ineq, a, b)
			}
		case sudoku.LT:
			if !(a < b) {
				t.Errorf("LT inequality %v violated by solution (%d, %d)", ineq, a, b)
			}
		}
	}
}

// TestGenerateUniquenessRepairLeavesUniquePuzzle covers §4.D step 5: when
// EnsureUniqueSolution is requested, the final carved puzzle must actually
// decide as unique.
func TestGenerateUniquenessRepairLeavesUniquePuzzle(t *testing.T) {
	cfg := smallCageConfig(3)
	cfg.MinGivens, cfg.MaxGivens = 0, 0
	puzzle, _ := Generate(cfg)

	result := satsolve.Solve(puzzle, true)
	if result.Uniqueness != sudoku.Unique {
		t.Errorf("Uniqueness = %v after repair, want Unique", result.Uniqueness)
	}
}

func TestCountGivens(t *testing.T) {
	p := &sudoku.Puzzle{}
	if got := countGivens(p); got != 0 {
		t.Errorf("countGivens(empty) = %d, want 0", got)
	}
	p.Grid.Set(sudoku.Cell{Row: 0, Col: 0}, 5)
	p.Grid.Set(sudoku.Cell{Row: 8, Col: 8}, 1)
	if got := countGivens(p); got != 2 {
		t.Errorf("countGivens = %d, want 2", got)
	}
}
