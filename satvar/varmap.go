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

// Package satvar implements component A: the bijection between (row, col,
// value) triples and primary SAT variable indices, plus allocation of
// auxiliary variables used by the cage-sum encoder.
package satvar

import "github.com/satsudoku/satsudoku/sudoku"

// PrimaryCount is the number of primary Boolean variables: one per
// (row, col, value) triple over a 9x9 grid.
const PrimaryCount = sudoku.Side * sudoku.Side * 9

// Var returns the 0-based primary variable index for "cell (r,c) equals v"
// (v in [1,9]), using the index function var(r,c,v) = r*81 + c*9 + (v-1).
func Var(r, c, v int) int {
	return r*81 + c*9 + (v - 1)
}

// VarForCell is a convenience wrapper over Var taking a sudoku.Cell.
func VarForCell(cell sudoku.Cell, v int) int {
	return Var(cell.Row, cell.Col, v)
}

// Map tracks the next free auxiliary variable index; auxiliary variables
// (used by the cage-sum "combination chosen" encoding) always start after
// the 729 primary variables, so the model decoder (satsolve) never needs to
// consult Map to know which indices are primary.
type Map struct {
	next int
}

// NewMap returns a Map with auxiliary allocation starting right after the
// primary variable block.
func NewMap() *Map {
	return &Map{next: PrimaryCount}
}

// Alloc returns the next unused auxiliary variable index.
func (m *Map) Alloc() int {
	v := m.next
	m.next++
	return v
}

// AllocN returns n consecutive fresh auxiliary variable indices.
func (m *Map) AllocN(n int) []int {
	vs := make([]int, n)
	for i := range vs {
		vs[i] = m.Alloc()
	}
	return vs
}

// Count returns the total number of variables allocated so far (primary
// plus auxiliary), for reporting in sudoku.Solution.Variables.
func (m *Map) Count() int {
	return m.next
}
