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
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/satsudoku/satsudoku/webapi"
)

// Store is the concrete webapi.SessionStore backed by Redis (the live
// step list) and Postgres (the durable session record), generalizing the
// teacher's Session type from a play-state undo stack to a log of
// solve/generate requests and their results.
type Store struct{}

// NewStore returns a Store. Connect must be called first to establish the
// underlying cache and database connections.
func NewStore() *Store {
	return &Store{}
}

// rdEnv namespaces cache keys by deployment environment, matching the
// teacher's rdEnv prefix (set there from a CLI flag; fixed here since this
// package has no interactive CLI of its own).
var rdEnv = "satsudoku"

func sessionKey(id string) string {
	return rdEnv + ":SID:" + id
}

func stepsKey(id string) string {
	return sessionKey(id) + ":Steps"
}

// CreateSession allocates a fresh session ID, records it in Postgres, and
// initializes its empty step list in Redis, matching the teacher's
// StartPuzzle's combination of an HMSET plus a DEL of the steps key.
func (s *Store) CreateSession() (id string, err error) {
	id = uuid.NewString()
	now := time.Now()

	if err = s.insertSessionRow(id, now); err != nil {
		return "", err
	}

	rdExecute(func(tx redis.Conn) error {
		_, derr := tx.Do("DEL", stepsKey(id))
		return derr
	})
	return id, nil
}

func (s *Store) insertSessionRow(id string, now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("insertSessionRow panic: %v", r)
			}
		}
	}()
	pgExecute(func(tx pgx.Tx) error {
		_, execErr := tx.Exec(context.Background(),
			"INSERT INTO sessions (session_id, created, updated) VALUES ($1, $2, $3)",
			id, now, now)
		return execErr
	})
	return nil
}

// stepRecord is the JSON shape pushed to the Redis step list, matching the
// teacher's marshalStep/unmarshalStep pattern but carrying a SolveResult
// instead of a puzzle.Summary.
type stepRecord struct {
	Request string             `json:"request"`
	Result  webapi.SolveResult `json:"result"`
	Created time.Time          `json:"created"`
}

// AddStep appends a request/result pair to a session's step list, in
// Redis for fast undo/replay and in Postgres for durability, mirroring
// the teacher's AddStep split between the two stores.
func (s *Store) AddStep(id string, request string, result webapi.SolveResult) (err error) {
	now := time.Now()
	step := stepRecord{Request: request, Result: result, Created: now}
	body, err := json.Marshal(step)
	if err != nil {
		return fmt.Errorf("failed to marshal step for session %q: %v", id, err)
	}

	var stepNum int
	rdExecute(func(tx redis.Conn) error {
		n, rerr := redis.Int(tx.Do("RPUSH", stepsKey(id), body))
		if rerr != nil {
			return fmt.Errorf("cache failure saving step for session %q: %v", id, rerr)
		}
		stepNum = n
		return nil
	})

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("AddStep panic: %v", r)
			}
		}
	}()
	pgExecute(func(tx pgx.Tx) error {
		ctx := context.Background()
		resultJSON, merr := json.Marshal(result)
		if merr != nil {
			return merr
		}
		if _, execErr := tx.Exec(ctx,
			"INSERT INTO session_steps (session_id, step, request, result, created) "+
				"VALUES ($1, $2, $3, $4, $5)",
			id, stepNum, request, resultJSON, now); execErr != nil {
			return fmt.Errorf("database error saving step %d for session %q: %v", stepNum, id, execErr)
		}
		_, execErr := tx.Exec(ctx, "UPDATE sessions SET updated = $1 WHERE session_id = $2", now, id)
		return execErr
	})

	log.Printf("added session %v step %d", id, stepNum)
	return nil
}

// LoadSteps returns every step recorded for a session, oldest first, for
// replay or undo, matching the teacher's LoadStep/RemoveStep pattern of
// reading back from the cached step list.
func (s *Store) LoadSteps(id string) ([]stepRecord, error) {
	var raws [][]byte
	var outerErr error
	rdExecute(func(tx redis.Conn) error {
		vals, rerr := redis.ByteSlices(tx.Do("LRANGE", stepsKey(id), 0, -1))
		if rerr != nil {
			outerErr = fmt.Errorf("cache failure loading steps for session %q: %v", id, rerr)
			return outerErr
		}
		raws = vals
		return nil
	})
	if outerErr != nil {
		return nil, outerErr
	}
	steps := make([]stepRecord, 0, len(raws))
	for _, raw := range raws {
		var step stepRecord
		if err := json.Unmarshal(raw, &step); err != nil {
			return nil, fmt.Errorf("failed to unmarshal step for session %q: %v", id, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}
