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

// Package storage persists solve/generate sessions and generated puzzles
// across a Redis cache and a Postgres database, mirroring the teacher's
// dual-store design (storage/storage.go) but for this domain's sessions
// instead of play-state sessions.
package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/satsudoku/satsudoku/dbprep"
)

// Connect ensures the database schema and seed data are in place, then
// opens both the cache and database connections, matching the teacher's
// Connect.
func Connect() (cacheID, databaseID string, err error) {
	if err = dbprep.EnsureData(); err != nil {
		err = fmt.Errorf("couldn't initialize database: %v", err)
		return
	}

	rdInit()
	rdMutex.Lock()
	defer rdMutex.Unlock()
	cacheID, err = rdConnect()
	if err != nil {
		return
	}

	pgInit()
	databaseID, err = pgConnect()
	return
}

// Close tears down both connections.
func Close() {
	rdMutex.Lock()
	defer rdMutex.Unlock()
	pgClose()
	rdClose()
}

/*

cache using Redis

*/

var (
	rdc     redis.Conn
	rdURL   string
	rdMutex sync.Mutex
)

func rdInit() {
	url := os.Getenv("REDISTOGO_URL")
	if url == "" {
		rdURL = "redis://localhost:6379/"
	} else {
		rdURL = url
	}
}

func rdConnect() (string, error) {
	conn, err := redis.DialURL(rdURL)
	if err != nil {
		return "", fmt.Errorf("couldn't connect to cache at %q: %v", rdURL, err)
	}
	rdc = conn
	return rdURL, nil
}

func rdClose() {
	if rdc != nil {
		rdc.Close()
		rdc = nil
	}
}

// rdExecute runs body inside the Redis mutex, pinging first and
// reconnecting if the connection has gone stale, then panics back to
// package entry level on any error. Matches the teacher's rdExecute.
func rdExecute(body func(tx redis.Conn) error) {
	wrapper := func(tx redis.Conn) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok {
					err = e
				} else {
					err = fmt.Errorf("caught panic during rdExecute: %v", r)
				}
			}
		}()
		if _, err := rdc.Do("PING"); err != nil {
			rdClose()
			if _, err := rdConnect(); err != nil {
				return fmt.Errorf("failed to reconnect to cache at %q", rdURL)
			}
		}
		return body(rdc)
	}
	rdMutex.Lock()
	defer func(err error) {
		rdMutex.Unlock()
		if err != nil {
			panic(err)
		}
	}(wrapper(rdc))
}

/*

persistence using Postgres

*/

var (
	pgConn *pgx.Conn
	pgURL  string
)

func pgInit() {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		pgURL = "postgres://localhost/satsudoku?sslmode=disable"
	} else {
		pgURL = url
	}
}

func pgConnect() (string, error) {
	conn, err := pgx.Connect(context.Background(), pgURL)
	if err != nil {
		return "", fmt.Errorf("couldn't connect to db at %q: %v", pgURL, err)
	}
	pgConn = conn
	return pgURL, nil
}

func pgClose() {
	if pgConn != nil {
		pgConn.Close(context.Background())
		pgConn = nil
	}
}

// pgExecute runs body inside a single transaction, committing on success
// and rolling back (then panicking) on error, matching the teacher's
// pgExecute.
func pgExecute(body func(tx pgx.Tx) error) {
	ctx := context.Background()
	wrapper := func(tx pgx.Tx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok {
					err = e
				} else {
					err = fmt.Errorf("caught panic during pgExecute: %v", r)
				}
			}
		}()
		return body(tx)
	}
	tx, err := pgConn.Begin(ctx)
	if err != nil {
		panic(fmt.Errorf("can't open a transaction against database: %v", err))
	}
	defer func(err error) {
		if err != nil {
			tx.Rollback(ctx)
			panic(err)
		}
		tx.Commit(ctx)
	}(wrapper(tx))
}
