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

// sudoku-server runs the JSON solve/generate HTTP API, replacing the
// teacher's cmd/susen (which served the HTML client dropped from this
// repo; see DESIGN.md).
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/satsudoku/satsudoku/storage"
	"github.com/satsudoku/satsudoku/webapi"
)

func main() {
	cacheID, databaseID, err := storage.Connect()
	if err != nil {
		log.Fatalf("Couldn't connect to storage: %v", err)
	}
	defer storage.Close()
	log.Printf("Connected to cache %q and database %q", cacheID, databaseID)

	server := webapi.NewServer(storage.NewStore())

	addr := os.Getenv("PORT")
	if addr == "" {
		addr = "8080"
	}
	log.Printf("Listening on :%s", addr)
	if err := http.ListenAndServe(":"+addr, server.Router()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
