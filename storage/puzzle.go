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

package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"
)

// puzzleEntry is the stored form of a generated puzzle: its §6.1 text plus
// the known solution text, content-addressed by a hash of the puzzle
// text. Matches the teacher's puzzleEntry cache-then-database pattern in
// storage/puzzle.go, adapted from a geometry/value-list shape to this
// domain's text-format shape.
type puzzleEntry struct {
	PuzzleID     string
	Type         string
	PuzzleText   string
	SolutionText string
}

// PuzzleID returns the content-addressed ID for a puzzle's text form.
func PuzzleID(puzzleText string) string {
	sum := sha256.Sum256([]byte(puzzleText))
	return hex.EncodeToString(sum[:])
}

func (pe *puzzleEntry) key() string {
	return rdEnv + ":PID:" + pe.PuzzleID
}

// SavePuzzle persists a generated puzzle, inserting it into Postgres and
// priming the Redis cache, matching the teacher's cacheInsert/
// databaseInsert pair.
func (s *Store) SavePuzzle(puzzleType, puzzleText, solutionText string) (id string, err error) {
	id = PuzzleID(puzzleText)
	pe := &puzzleEntry{PuzzleID: id, Type: puzzleType, PuzzleText: puzzleText, SolutionText: solutionText}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("SavePuzzle panic: %v", r)
			}
		}
	}()

	pgExecute(func(tx pgx.Tx) error {
		_, execErr := tx.Exec(context.Background(),
			"INSERT INTO puzzles (puzzle_id, type, puzzle_text, solution_text, created) "+
				"VALUES ($1, $2, $3, $4, $5) ON CONFLICT (puzzle_id) DO NOTHING",
			pe.PuzzleID, pe.Type, pe.PuzzleText, pe.SolutionText, time.Now())
		return execErr
	})

	pe.cacheInsert()
	return id, nil
}

// LoadPuzzle fetches a persisted puzzle by ID, checking the cache before
// falling back to the database, matching the teacher's loadPuzzleEntry.
func (s *Store) LoadPuzzle(id string) (puzzleType, puzzleText, solutionText string, err error) {
	pe := &puzzleEntry{PuzzleID: id}
	if pe.cacheLoad() {
		return pe.Type, pe.PuzzleText, pe.SolutionText, nil
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("LoadPuzzle panic: %v", r)
			}
		}
	}()

	pgExecute(func(tx pgx.Tx) error {
		row := tx.QueryRow(context.Background(),
			"SELECT type, puzzle_text, solution_text FROM puzzles WHERE puzzle_id = $1", id)
		return row.Scan(&pe.Type, &pe.PuzzleText, &pe.SolutionText)
	})
	pe.cacheInsert()
	return pe.Type, pe.PuzzleText, pe.SolutionText, nil
}

func (pe *puzzleEntry) cacheLoad() bool {
	var raw []byte
	rdExecute(func(tx redis.Conn) (err error) {
		raw, err = redis.Bytes(tx.Do("GET", pe.key()))
		if err == redis.ErrNil {
			return nil
		}
		return err
	})
	if len(raw) == 0 {
		return false
	}
	var cached puzzleEntry
	if err := json.Unmarshal(raw, &cached); err != nil {
		return false
	}
	*pe = cached
	return true
}

func (pe *puzzleEntry) cacheInsert() {
	raw, err := json.Marshal(pe)
	if err != nil {
		panic(fmt.Errorf("failed to marshal puzzleEntry %q: %v", pe.PuzzleID, err))
	}
	rdExecute(func(tx redis.Conn) error {
		_, err := tx.Do("SET", pe.key(), raw)
		return err
	})
}
