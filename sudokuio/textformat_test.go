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

package sudokuio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/satsudoku/satsudoku/sudoku"
)

func TestParseSimpleGridIgnoresNonGridChars(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 81; i++ {
		sb.WriteByte('.')
	}
	text := "noise-before " + sb.String() + " noise-after"
	p, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse simple grid: %v", err)
	}
	for r := 0; r < sudoku.Side; r++ {
		for c := 0; c < sudoku.Side; c++ {
			if p.Grid[r][c] != sudoku.Empty {
				t.Fatalf("cell (%d,%d) = %d, want Empty", r, c, p.Grid[r][c])
			}
		}
	}
}

func TestParseSimpleGridTooShortIsError(t *testing.T) {
	_, err := Parse(strings.NewReader("123456789"))
	if err == nil {
		t.Fatal("expected an error for a grid with fewer than 81 cells")
	}
}

func TestParseSectionedGridAndCagesAndInequalities(t *testing.T) {
	text := `GRID
1........
.........
.........
.........
.........
.........
.........
.........
.........

CAGES
3 0 1 0 2
17 1 1 1 2

INEQUALITIES
0 3 > 0 4
`
	p, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse sectioned: %v", err)
	}
	if got := p.Grid.Get(sudoku.Cell{Row: 0, Col: 0}); got != 1 {
		t.Errorf("grid(0,0) = %d, want 1", got)
	}
	if len(p.Cages) != 2 {
		t.Fatalf("len(Cages) = %d, want 2", len(p.Cages))
	}
	if p.Cages[0].Sum != 3 || len(p.Cages[0].Cells) != 2 {
		t.Errorf("Cages[0] = %+v, want sum 3 over 2 cells", p.Cages[0])
	}
	if len(p.Inequalities) != 1 {
		t.Fatalf("len(Inequalities) = %d, want 1", len(p.Inequalities))
	}
	ineq := p.Inequalities[0]
	if ineq.Kind != sudoku.GT || ineq.A != (sudoku.Cell{Row: 0, Col: 3}) || ineq.B != (sudoku.Cell{Row: 0, Col: 4}) {
		t.Errorf("Inequalities[0] = %+v, want GT (0,3)>(0,4)", ineq)
	}
}

func TestParseSectionHeadersAreCaseInsensitive(t *testing.T) {
	text := "grid\n1........\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n"
	p, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse with lowercase header: %v", err)
	}
	if got := p.Grid.Get(sudoku.Cell{Row: 0, Col: 0}); got != 1 {
		t.Errorf("grid(0,0) = %d, want 1", got)
	}
}

func TestParseSolutionSectionIgnoredOnRead(t *testing.T) {
	text := `GRID
.........
.........
.........
.........
.........
.........
.........
.........
.........

SOLUTION
123456789
456789123
789123456
234567891
567891234
891234567
345678912
678912345
912345678
`
	p, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse with trailing SOLUTION: %v", err)
	}
	for r := 0; r < sudoku.Side; r++ {
		for c := 0; c < sudoku.Side; c++ {
			if p.Grid[r][c] != sudoku.Empty {
				t.Fatalf("SOLUTION section leaked into Grid at (%d,%d)", r, c)
			}
		}
	}
}

func TestParseMalformedCageLineIsError(t *testing.T) {
	text := "GRID\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n\nCAGES\n3 0 1 0\n"
	_, err := Parse(strings.NewReader(text))
	if err == nil {
		t.Fatal("expected an error for a cage line with an odd number of coordinate tokens")
	}
}

func TestParseMalformedCageSumIsError(t *testing.T) {
	text := "GRID\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n\nCAGES\nabc 0 1 0 2\n"
	_, err := Parse(strings.NewReader(text))
	if err == nil {
		t.Fatal("expected an error for a non-numeric cage sum")
	}
}

func TestParseMalformedInequalityLineIsError(t *testing.T) {
	text := "GRID\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n\nINEQUALITIES\n0 3 > 0\n"
	_, err := Parse(strings.NewReader(text))
	if err == nil {
		t.Fatal("expected an error for an inequality line with too few tokens")
	}
}

func TestParseUnknownInequalityOperatorIsError(t *testing.T) {
	text := "GRID\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n.........\n\nINEQUALITIES\n0 3 ? 0 4\n"
	_, err := Parse(strings.NewReader(text))
	if err == nil {
		t.Fatal("expected an error for an unknown inequality operator")
	}
}

func TestWriteThenParseRoundTrip(t *testing.T) {
	p := &sudoku.Puzzle{}
	p.Grid.Set(sudoku.Cell{Row: 0, Col: 0}, 1)
	p.Grid.Set(sudoku.Cell{Row: 8, Col: 8}, 9)
	p.AddCage(sudoku.Cage{Cells: []sudoku.Cell{{Row: 0, Col: 1}, {Row: 0, Col: 2}}, Sum: 5})
	p.AddInequality(sudoku.Inequality{A: sudoku.Cell{Row: 3, Col: 3}, B: sudoku.Cell{Row: 3, Col: 4}, Kind: sudoku.LT})

	var buf bytes.Buffer
	if err := Write(&buf, p, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse(Write(p)): %v", err)
	}
	if got.Grid != p.Grid {
		t.Errorf("round-tripped grid = %v, want %v", got.Grid, p.Grid)
	}
	if len(got.Cages) != 1 || got.Cages[0].Sum != 5 {
		t.Errorf("round-tripped cages = %+v, want one sum-5 cage", got.Cages)
	}
	if len(got.Inequalities) != 1 || got.Inequalities[0].Kind != sudoku.LT {
		t.Errorf("round-tripped inequalities = %+v, want one LT inequality", got.Inequalities)
	}
}

func TestWriteWithSolutionEmitsSolutionSection(t *testing.T) {
	p := &sudoku.Puzzle{}
	solution := sudoku.Grid{}
	solution.Set(sudoku.Cell{Row: 4, Col: 4}, 7)

	var buf bytes.Buffer
	if err := Write(&buf, p, &solution); err != nil {
		t.Fatalf("Write with solution: %v", err)
	}
	if !strings.Contains(buf.String(), "SOLUTION") {
		t.Error("Write with a non-nil solution did not emit a SOLUTION section")
	}
}

func TestWriteOmitsEmptySections(t *testing.T) {
	p := &sudoku.Puzzle{}
	var buf bytes.Buffer
	if err := Write(&buf, p, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "CAGES") {
		t.Error("Write emitted a CAGES section for a puzzle with no cages")
	}
	if strings.Contains(out, "INEQUALITIES") {
		t.Error("Write emitted an INEQUALITIES section for a puzzle with no inequalities")
	}
}
