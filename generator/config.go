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

import "github.com/satsudoku/satsudoku/sudoku"

// Config holds the §4.D generator pipeline's knobs. All fields have the
// documented defaults via DefaultConfig.
type Config struct {
	Type sudoku.Type

	MinCages, MaxCages         int
	MinCageSize, MaxCageSize   int
	MinInequalities, MaxInequalities int
	MinGivens, MaxGivens       int

	// Seed is the RNG seed; 0 means time-based (resolved by the caller
	// before construction, since math/rand's time seeding is a host
	// concern, not a pure-function one).
	Seed int64

	EnsureUniqueSolution bool
	FillAllCells         bool

	// Difficulty is 0-100; it bounds the fraction of each minimization
	// category's candidates that are attempted for removal.
	Difficulty int
}

// DefaultConfig returns the §4.D default configuration (variant MIXED).
func DefaultConfig() Config {
	return Config{
		Type:                 sudoku.Mixed,
		MinCages:             15,
		MaxCages:             25,
		MinCageSize:          2,
		MaxCageSize:          5,
		MinInequalities:      20,
		MaxInequalities:      40,
		MinGivens:            0,
		MaxGivens:            0,
		Seed:                 0,
		EnsureUniqueSolution: true,
		FillAllCells:         false,
		Difficulty:           50,
	}
}

// defaultRandomPreseeds is the number of random (cell, value) assignments
// pre-seeded into an empty grid before the first solve, to bias the
// otherwise-deterministic CDCL search into diverse complete grids. Resolves
// SPEC_FULL.md §9's open question: a tunable default, not a literal to
// preserve verbatim from the original.
const defaultRandomPreseeds = 11

// maxCageGrowthAttempts caps BFS expansion attempts per cage to avoid
// livelock, matching original_source/src/SudokuGenerator.cpp's maxAttempts.
const maxCageGrowthAttempts = 100

// maxUniquenessConstraintAttempts caps the first phase of uniqueness
// repair (adding batches of constraints), matching the original's
// kMaxConstraintAttempts.
const maxUniquenessConstraintAttempts = 10

// maxGivensToAdd caps the second phase of uniqueness repair (adding givens
// one at a time); 81 is a hard ceiling since the grid has 81 cells and an
// all-given puzzle is trivially unique, matching the original's
// kMaxGivensToAdd.
const maxGivensToAdd = 81
