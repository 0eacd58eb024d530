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

package webapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/satsudoku/satsudoku/generator"
	"github.com/satsudoku/satsudoku/satsolve"
	"github.com/satsudoku/satsudoku/sudoku"
	"github.com/satsudoku/satsudoku/sudokuio"
)

// SessionStore is the subset of storage.Store the web API needs: creating a
// named solve/generate session and recording each step (request/result
// pair) against it. Depending on this interface rather than the concrete
// storage package keeps webapi buildable and testable without a live
// Postgres/Redis connection.
type SessionStore interface {
	CreateSession() (id string, err error)
	AddStep(id string, request string, result SolveResult) error
}

// Server holds the dependencies shared by the HTTP handlers.
type Server struct {
	Store SessionStore
}

// NewServer constructs a Server. store may be nil, in which case the
// session-recording handlers respond with 501 Not Implemented rather than
// panicking on a nil dereference.
func NewServer(store SessionStore) *Server {
	return &Server{Store: store}
}

// Router builds the gorilla/mux route table for the solve/generate/session
// surface described in SPEC_FULL.md §10.3.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/solve", s.SolveHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/generate", s.GenerateHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions", s.CreateSessionHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{id}/solve", s.SessionSolveHandler).Methods(http.MethodPost)
	return r
}

// solveRequest is the JSON body accepted by /api/solve and the session
// solve endpoint: a puzzle in §6.1 text form, plus whether to check
// uniqueness.
type solveRequest struct {
	Puzzle          string `json:"puzzle"`
	CheckUniqueness bool   `json:"checkUniqueness"`
}

// generateRequest is the JSON body accepted by /api/generate; zero-valued
// fields fall back to generator.DefaultConfig().
type generateRequest struct {
	Type            string `json:"type"`
	MinCages        int    `json:"minCages"`
	MaxCages        int    `json:"maxCages"`
	MinCageSize     int    `json:"minCageSize"`
	MaxCageSize     int    `json:"maxCageSize"`
	MinInequalities int    `json:"minInequalities"`
	MaxInequalities int    `json:"maxInequalities"`
	MinGivens       int    `json:"minGivens"`
	MaxGivens       int    `json:"maxGivens"`
	Seed            int64  `json:"seed"`
	FillAllCells    bool   `json:"fillAllCells"`
	Difficulty      int    `json:"difficulty"`
}

// SolveHandler decodes a puzzle from the request body, solves it, and
// writes back a SolveResult. Malformed puzzle text yields a 400 response;
// the teacher's service.go makes the same request/response-decoding
// distinction via requestDecodingError.
func (s *Server) SolveHandler(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding request: %v", err))
		return
	}
	puzzle, err := parsePuzzleText(req.Puzzle)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	solution := satsolve.Solve(puzzle, req.CheckUniqueness)
	writeJSON(w, http.StatusOK, fromSolution(solution))
}

// parsePuzzleText wraps sudokuio.Parse for the string-bodied JSON requests
// this package accepts, turning a malformed-puzzle error into a plain Go
// error the handlers can surface as a 400.
func parsePuzzleText(text string) (*sudoku.Puzzle, error) {
	return sudokuio.Parse(strings.NewReader(text))
}

// GenerateHandler builds a generator.Config from the request (falling back
// to generator.DefaultConfig() for zero-valued fields) and returns the
// generated puzzle, its solution, and the effective difficulty.
func (s *Server) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding request: %v", err))
		return
	}
	cfg := configFromRequest(req)
	puzzle, solution := generator.Generate(cfg)

	var buf bytes.Buffer
	if err := sudokuio.Write(&buf, puzzle, &solution); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("serializing puzzle: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, GenerateResult{
		Puzzle:     buf.String(),
		Solution:   Grid9(solution),
		Type:       puzzle.Type().String(),
		Difficulty: cfg.Difficulty,
	})
}

// CreateSessionHandler allocates a new session ID via the configured store.
func (s *Server) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, "no session store configured")
		return
	}
	id, err := s.Store.CreateSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// SessionSolveHandler solves a puzzle in the context of an existing
// session, recording the request/result pair as a step, mirroring the
// teacher's AssignHandler pattern of persisting each update.
func (s *Server) SessionSolveHandler(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, "no session store configured")
		return
	}
	id := mux.Vars(r)["id"]
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding request: %v", err))
		return
	}
	puzzle, err := parsePuzzleText(req.Puzzle)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	solution := satsolve.Solve(puzzle, req.CheckUniqueness)
	result := fromSolution(solution)
	if err := s.Store.AddStep(id, req.Puzzle, result); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func configFromRequest(req generateRequest) generator.Config {
	cfg := generator.DefaultConfig()
	if req.MinCages > 0 || req.MaxCages > 0 {
		cfg.MinCages, cfg.MaxCages = req.MinCages, req.MaxCages
	}
	if req.MinCageSize > 0 || req.MaxCageSize > 0 {
		cfg.MinCageSize, cfg.MaxCageSize = req.MinCageSize, req.MaxCageSize
	}
	if req.MinInequalities > 0 || req.MaxInequalities > 0 {
		cfg.MinInequalities, cfg.MaxInequalities = req.MinInequalities, req.MaxInequalities
	}
	if req.MinGivens > 0 || req.MaxGivens > 0 {
		cfg.MinGivens, cfg.MaxGivens = req.MinGivens, req.MaxGivens
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	if req.Difficulty > 0 {
		cfg.Difficulty = req.Difficulty
	}
	cfg.FillAllCells = req.FillAllCells
	switch req.Type {
	case "standard":
		cfg.Type = sudoku.Standard
	case "killer":
		cfg.Type = sudoku.Killer
	case "inequality":
		cfg.Type = sudoku.InequalityType
	case "mixed", "":
		cfg.Type = sudoku.Mixed
	}
	return cfg
}

// newSessionID returns a fresh random UUID string. Nothing in this package
// calls it; storage.Store generates its session IDs itself.
func newSessionID() string {
	return uuid.NewString()
}

// writeError sends a JSON error body, matching the shape's "error" field in
// SolveResult, generalizing the teacher's writeError/writeJSON convention
// from puzzle/service.go to a single status+message pair.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeJSON encodes obj as the response body. If encoding fails (which
// should never happen for these response types), a 500 is sent instead,
// matching the teacher's defensive double-check in writeJSON.
func writeJSON(w http.ResponseWriter, status int, obj interface{}) {
	bytes, err := json.Marshal(obj)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "{%q:%q}", "error", fmt.Sprintf("encoding response: %v", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}
