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
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/satsudoku/satsudoku/satsolve"
	"github.com/satsudoku/satsudoku/sudoku"
	"github.com/satsudoku/satsudoku/sudokuio"
)

// dataFunction mirrors the teacher's dataFunction: a unit of seed-data
// work run in its own transaction, adapted from *pgx.Tx (v4) to pgx.Tx
// (v5's interface type) and from synchronous calls to the context-carrying
// pgx/v5 API.
type dataFunction func(context.Context, pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp loads the sample puzzles into the database. Run this after
// SchemaUp.
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown removes the sample puzzles from the database. Run this before
// SchemaDown.
func DataDown() error {
	return applyFunctions(downFunctions)
}

// applyFunctions runs each dataFunction in its own transaction, so later
// ones can rely on the effect of earlier ones having been committed,
// matching the teacher's applyFunctions.
func applyFunctions(fns []dataFunction) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/satsudoku?sslmode=disable"
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	runFunc := func(fn dataFunction) (err error) {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback(ctx)
				panic(r)
			}
		}()
		if err := fn(ctx, tx); err != nil {
			tx.Rollback(ctx)
			return err
		}
		return tx.Commit(ctx)
	}

	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return fmt.Errorf("%v failed: %v", fn, err)
		}
	}
	return nil
}

/*

sample puzzles

*/

// samplePuzzles holds the three solvable puzzles that the satsolve tests
// also exercise, so the same grids double as database seed data and test
// fixtures: an empty standard grid, a Killer puzzle whose cages each cover
// a whole row, and a chain of inequalities forcing the 1..9 order.
var samplePuzzles = []*sudoku.Puzzle{
	emptyStandardPuzzle(),
	rowLockingKillerPuzzle(),
	ascendingChainInequalityPuzzle(),
}

func emptyStandardPuzzle() *sudoku.Puzzle {
	return &sudoku.Puzzle{}
}

// rowLockingKillerPuzzle covers one cage per row of the top band, each
// summing to 45 (the sum of 1..9), which pins that cage to exactly the
// cells of its row without constraining individual values.
func rowLockingKillerPuzzle() *sudoku.Puzzle {
	p := &sudoku.Puzzle{}
	for r := 0; r < 3; r++ {
		cells := make([]sudoku.Cell, sudoku.Side)
		for c := 0; c < sudoku.Side; c++ {
			cells[c] = sudoku.Cell{Row: r, Col: c}
		}
		p.AddCage(sudoku.Cage{Cells: cells, Sum: 45})
	}
	return p
}

// ascendingChainInequalityPuzzle chains GT inequalities down column 0,
// forcing row 0's value to be the smallest and row 8's the largest of a
// strictly increasing run.
func ascendingChainInequalityPuzzle() *sudoku.Puzzle {
	p := &sudoku.Puzzle{}
	for r := 0; r < sudoku.Side-1; r++ {
		p.AddInequality(sudoku.Inequality{
			A:    sudoku.Cell{Row: r + 1, Col: 0},
			B:    sudoku.Cell{Row: r, Col: 0},
			Kind: sudoku.GT,
		})
	}
	return p
}

var (
	sampleHashes []string
	sampleTexts  []string
	sampleSolns  []sudoku.Grid
)

// init solves each sample puzzle once (panicking if a seed puzzle turns
// out not to have a solution, since that would mean the seed data itself
// is broken) and computes its content-addressed hash, matching the
// teacher's init() that precomputes sampleHashes/sampleNames from
// puzzle.Summary.Hash().
func init() {
	sampleHashes = make([]string, len(samplePuzzles))
	sampleTexts = make([]string, len(samplePuzzles))
	sampleSolns = make([]sudoku.Grid, len(samplePuzzles))
	for i, p := range samplePuzzles {
		result := satsolve.Solve(p, false)
		if !result.Solved {
			panic(fmt.Sprintf("can't happen! seed puzzle %d has no solution", i))
		}
		sampleSolns[i] = result.Grid

		var buf bytes.Buffer
		if err := sudokuio.Write(&buf, p, &result.Grid); err != nil {
			panic(fmt.Sprintf("can't happen! seed puzzle %d failed to serialize: %v", i, err))
		}
		sampleTexts[i] = buf.String()

		sum := sha256.Sum256(buf.Bytes())
		sampleHashes[i] = hex.EncodeToString(sum[:])
	}
}

// SampleSessionName names the session that owns the seeded sample
// puzzles, matching the teacher's SampleSessionName marker value.
const SampleSessionName = "satsudoku sample session - not a user session"

func insertSamples(ctx context.Context, tx pgx.Tx) error {
	var count int64
	row := tx.QueryRow(ctx, "SELECT COUNT(*) FROM sessions WHERE session_id = $1", SampleSessionName)
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("database error looking for session %q: %v", SampleSessionName, err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()

	for i := range samplePuzzles {
		var solutionBuf bytes.Buffer
		if err := sudokuio.Write(&solutionBuf, &sudoku.Puzzle{Grid: sampleSolns[i]}, nil); err != nil {
			return fmt.Errorf("serializing sample solution %d: %v", i, err)
		}
		_, err := tx.Exec(ctx,
			"INSERT INTO puzzles (puzzle_id, type, puzzle_text, solution_text, created) "+
				"VALUES ($1, $2, $3, $4, $5)",
			sampleHashes[i], samplePuzzles[i].Type().String(), sampleTexts[i], solutionBuf.String(), now)
		if err != nil {
			return fmt.Errorf("database error saving sample puzzle %d: %v", i, err)
		}
	}

	_, err := tx.Exec(ctx,
		"INSERT INTO sessions (session_id, created, updated) VALUES ($1, $2, $3)",
		SampleSessionName, now, now)
	if err != nil {
		return fmt.Errorf("database error saving sample session: %v", err)
	}

	for i := range samplePuzzles {
		_, err := tx.Exec(ctx,
			"INSERT INTO session_steps (session_id, step, request, result, created) "+
				"VALUES ($1, $2, $3, $4, $5)",
			SampleSessionName, i+1, sampleTexts[i], `{"seeded":true}`, now)
		if err != nil {
			return fmt.Errorf("database error saving sample session step %d: %v", i, err)
		}
	}

	return nil
}

func deleteSamples(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, "DELETE FROM session_steps WHERE session_id = $1", SampleSessionName); err != nil {
		return fmt.Errorf("database error deleting sample session steps: %v", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM sessions WHERE session_id = $1", SampleSessionName); err != nil {
		return fmt.Errorf("database error deleting sample session: %v", err)
	}
	for i, hash := range sampleHashes {
		if _, err := tx.Exec(ctx, "DELETE FROM puzzles WHERE puzzle_id = $1", hash); err != nil {
			return fmt.Errorf("database error deleting sample puzzle %d: %v", i, err)
		}
	}
	return nil
}
