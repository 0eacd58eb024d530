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

// Package webapi exposes solve and generate as JSON HTTP endpoints, using
// gorilla/mux for routing and the teacher's writeJSON/writeError convention
// from puzzle/service.go, generalized from puzzle-assignment handlers to
// solve/generate handlers.
package webapi

import (
	"github.com/satsudoku/satsudoku/sudoku"
)

// SolveResult is the §6.3 JSON response shape for a solve call.
type SolveResult struct {
	Solved      bool    `json:"solved"`
	SolveTimeMs float64 `json:"solveTimeMs"`
	Variables   int     `json:"variables"`
	Clauses     int     `json:"clauses"`
	Uniqueness  string  `json:"uniqueness,omitempty"`
	Grid        *Grid9  `json:"grid,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Grid9 is the JSON-friendly 9x9 array form of sudoku.Grid.
type Grid9 [9][9]int

// FromSolution converts a sudoku.Solution into its §6.3 JSON shape, shared
// by the HTTP handlers and the sudoku-cli --json output mode.
func FromSolution(s sudoku.Solution) SolveResult {
	return fromSolution(s)
}

func fromSolution(s sudoku.Solution) SolveResult {
	result := SolveResult{
		Solved:      s.Solved,
		SolveTimeMs: s.SolveTimeMs,
		Variables:   s.Variables,
		Clauses:     s.Clauses,
	}
	if s.Uniqueness != sudoku.NotChecked {
		result.Uniqueness = s.Uniqueness.String()
	}
	if s.Solved {
		g := Grid9(s.Grid)
		result.Grid = &g
	} else {
		result.Error = s.Message
	}
	return result
}

// GenerateResult is the §6.3 JSON response shape for a generate call: the
// generated puzzle (in its §6.1 sectioned text form) plus its known
// solution grid and the generator's reported difficulty.
type GenerateResult struct {
	Puzzle     string `json:"puzzle"`
	Solution   Grid9  `json:"solution"`
	Type       string `json:"type"`
	Difficulty int    `json:"difficulty"`
}
