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

// Package satencode implements component B: it turns a sudoku.Puzzle into a
// satclause.Formula over the variables allocated by satvar. Dispatch across
// puzzle variants is a plain conditional on which constraint collections
// are non-empty (Design Note 9: no inheritance hierarchy for variants).
package satencode

import (
	"github.com/satsudoku/satsudoku/satclause"
	"github.com/satsudoku/satsudoku/satvar"
	"github.com/satsudoku/satsudoku/sudoku"
)

// Encode builds the full CNF formula for a puzzle: basic clauses always,
// cage clauses for every cage present, and inequality clauses for every
// inequality present. It returns the formula and the variable map used (so
// the caller can report the total variable count).
func Encode(p *sudoku.Puzzle) (*satclause.Formula, *satvar.Map) {
	f := &satclause.Formula{}
	vars := satvar.NewMap()

	EncodeBasic(f, p)

	for _, cage := range p.Cages {
		EncodeCageUniqueness(f, cage)
		EncodeCageSum(f, vars, cage)
	}

	for _, ineq := range p.Inequalities {
		EncodeInequality(f, ineq)
	}

	return f, vars
}
