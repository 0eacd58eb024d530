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

package dbprep

import (
	"strings"
	"testing"

	"github.com/satsudoku/satsudoku/sudokuio"
)

// TestSampleDataHashes makes sure each seed puzzle's content-addressed ID
// is a lowercase hex sha256 digest, matching the teacher's data_test.go
// case-invariant check (there on sampleHashes/sampleNames, here on
// sampleHashes alone since this domain has no separate name field).
func TestSampleDataHashes(t *testing.T) {
	if len(sampleHashes) != len(samplePuzzles) {
		t.Fatalf("have %d sample hashes for %d sample puzzles", len(sampleHashes), len(samplePuzzles))
	}
	for i, hash := range sampleHashes {
		if hash != strings.ToLower(hash) {
			t.Errorf("hash %d (%s) contains an uppercase letter", i, hash)
		}
		if len(hash) != 64 {
			t.Errorf("hash %d (%s) is %d characters, want 64 (sha256 hex)", i, hash, len(hash))
		}
	}
}

// TestSampleDataRoundTrip checks that every seeded puzzle's serialized
// text parses back into a puzzle of the same variant, guarding against a
// future change to sudokuio.Write breaking the seed data silently.
func TestSampleDataRoundTrip(t *testing.T) {
	for i, text := range sampleTexts {
		p, err := sudokuio.Parse(strings.NewReader(text))
		if err != nil {
			t.Fatalf("sample puzzle %d failed to reparse: %v", i, err)
		}
		if p.Type() != samplePuzzles[i].Type() {
			t.Errorf("sample puzzle %d reparsed as %v, want %v", i, p.Type(), samplePuzzles[i].Type())
		}
	}
}
