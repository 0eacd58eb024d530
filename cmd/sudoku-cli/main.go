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

// sudoku-cli is a two-command replacement for the teacher's REPL-style
// cmd/susen-cli: instead of a listener loop dispatching inline commands
// read from a terminal, it exposes "solve" and "generate" as cobra
// subcommands, one invocation per process. Progress and statistics go to
// stderr via log.Printf (the teacher's convention throughout
// cmd/susen-cli/main.go); the puzzle or solved grid goes to stdout
// untouched by logging.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satsudoku/satsudoku/generator"
	"github.com/satsudoku/satsudoku/satsolve"
	"github.com/satsudoku/satsudoku/sudoku"
	"github.com/satsudoku/satsudoku/sudokuerr"
	"github.com/satsudoku/satsudoku/sudokuio"
	"github.com/satsudoku/satsudoku/webapi"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Printf("CLI failure: %v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sudoku-cli",
		Short:         "Solve and generate SAT-backed Sudoku variants",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCommand(), newGenerateCommand(), newSolveCNFCommand())
	return root
}

func newSolveCommand() *cobra.Command {
	var (
		puzzleString string
		unique       bool
		asJSON       bool
		dumpCNFPath  string
	)
	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a puzzle in the §6.1 text format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPuzzleInput(args, puzzleString)
			if err != nil {
				return err
			}
			puzzle, err := sudokuio.Parse(strings.NewReader(text))
			if err != nil {
				return err
			}
			log.Printf("parsed %s puzzle, solving (check uniqueness: %v)", puzzle.Type(), unique)

			if dumpCNFPath != "" {
				if err := dumpCNF(dumpCNFPath, puzzle); err != nil {
					return err
				}
			}

			solution := satsolve.Solve(puzzle, unique)
			log.Printf("solved=%v uniqueness=%v variables=%d clauses=%d solveTimeMs=%.3f",
				solution.Solved, solution.Uniqueness, solution.Variables, solution.Clauses, solution.SolveTimeMs)

			if asJSON {
				if err := writeSolveJSON(os.Stdout, solution); err != nil {
					return err
				}
			} else if solution.Solved {
				if err := sudokuio.Write(os.Stdout, puzzle, &solution.Grid); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(os.Stdout, solution.Message)
			}

			if !solution.Solved {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&puzzleString, "string", "", "inline puzzle text instead of a file argument")
	cmd.Flags().BoolVarP(&unique, "unique", "u", false, "check the solution for uniqueness")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the §6.3 JSON solve result instead of a grid")
	cmd.Flags().StringVar(&dumpCNFPath, "dump-cnf", "", "write the §4.B DIMACS cnf encoding to this path before solving")
	return cmd
}

func dumpCNF(path string, puzzle *sudoku.Puzzle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("couldn't create %q: %v", path, err)
	}
	defer f.Close()
	if err := satsolve.DumpCNF(f, puzzle); err != nil {
		return fmt.Errorf("dumping cnf to %q: %v", path, err)
	}
	log.Printf("wrote DIMACS cnf encoding to %s", path)
	return nil
}

// newSolveCNFCommand is a diagnostic entry point that bypasses the Sudoku
// encoder entirely: it feeds a raw DIMACS cnf file straight to the same
// gini backend satsolve.Solve uses, to isolate whether a reported failure
// is in the encoding or in the solver integration.
func newSolveCNFCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "solve-cnf <file>",
		Short: "Solve a raw DIMACS cnf file directly against the CDCL backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("couldn't open %q: %v", args[0], err)
			}
			defer f.Close()

			sat, model, err := satsolve.SolveRawCNF(f)
			if err != nil {
				return err
			}
			if !sat {
				fmt.Fprintln(os.Stdout, "UNSAT")
				os.Exit(1)
			}
			fmt.Fprintln(os.Stdout, "SAT")
			for _, v := range model {
				fmt.Fprintf(os.Stdout, "%d ", v)
			}
			fmt.Fprintln(os.Stdout, "0")
			return nil
		},
	}
}

func newGenerateCommand() *cobra.Command {
	cfg := generator.DefaultConfig()
	var (
		typeName      string
		cageRange     string
		ineqRange     string
		givensRange   string
		outputPath    string
		withSolution  bool
		noUnique      bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random puzzle of a given variant",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if typeName != "" {
				if cfg.Type, err = parseVariant(typeName); err != nil {
					return err
				}
			}
			if cageRange != "" {
				if cfg.MinCages, cfg.MaxCages, err = parseIntPair(cageRange); err != nil {
					return fmt.Errorf("--cages: %v", err)
				}
			}
			if ineqRange != "" {
				if cfg.MinInequalities, cfg.MaxInequalities, err = parseIntPair(ineqRange); err != nil {
					return fmt.Errorf("--ineq: %v", err)
				}
			}
			if givensRange != "" {
				if cfg.MinGivens, cfg.MaxGivens, err = parseIntPair(givensRange); err != nil {
					return fmt.Errorf("--givens: %v", err)
				}
			}
			cfg.EnsureUniqueSolution = !noUnique

			out, closeOut, err := openOutput(outputPath)
			if err != nil {
				return err
			}
			defer closeOut()

			return runGenerate(cfg, out, withSolution)
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "standard|killer|inequality|mixed (default: mixed)")
	cmd.Flags().StringVar(&cageRange, "cages", "", "\"MIN MAX\" number of cages")
	cmd.Flags().StringVar(&ineqRange, "ineq", "", "\"MIN MAX\" number of inequalities")
	cmd.Flags().StringVar(&givensRange, "givens", "", "\"MIN MAX\" number of givens")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 means time-based)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file path (default: stdout)")
	cmd.Flags().BoolVar(&withSolution, "with-solution", false, "append the SOLUTION section")
	cmd.Flags().BoolVar(&cfg.FillAllCells, "fill-all", false, "tile the entire grid with cages")
	cmd.Flags().BoolVar(&noUnique, "no-unique", false, "skip the uniqueness repair pass")
	cmd.Flags().IntVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "0-100 minimization aggressiveness")
	return cmd
}

// runGenerate recovers from the generator's GeneratorExhaustion panic
// (sudokuerr.GeneratorExhaustion), matching the teacher's dispatch
// functions, which turn exceptional conditions into a returned error
// rather than letting the process crash with a stack trace.
func runGenerate(cfg generator.Config, out *os.File, withSolution bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*sudokuerr.Error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	puzzle, solution := generator.Generate(cfg)
	log.Printf("generated %s puzzle: %d cages, %d inequalities, %d givens",
		puzzle.Type(), len(puzzle.Cages), len(puzzle.Inequalities), countGivens(&puzzle.Grid))

	if withSolution {
		return sudokuio.Write(out, puzzle, &solution)
	}
	return sudokuio.Write(out, puzzle, nil)
}

func countGivens(g *sudoku.Grid) int {
	n := 0
	for r := 0; r < sudoku.Side; r++ {
		for c := 0; c < sudoku.Side; c++ {
			if g[r][c] != sudoku.Empty {
				n++
			}
		}
	}
	return n
}

func parseVariant(name string) (sudoku.Type, error) {
	switch strings.ToLower(name) {
	case "standard":
		return sudoku.Standard, nil
	case "killer":
		return sudoku.Killer, nil
	case "inequality":
		return sudoku.InequalityType, nil
	case "mixed":
		return sudoku.Mixed, nil
	default:
		return 0, fmt.Errorf("unknown puzzle type %q", name)
	}
}

// parseIntPair parses a "MIN MAX" flag value, the closest a single pflag
// string flag can get to the spec's two-argument "--cages MIN MAX" form.
func parseIntPair(s string) (min, max int, err error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected \"MIN MAX\", got %q", s)
	}
	if min, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, err
	}
	if max, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

func readPuzzleInput(args []string, inline string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("couldn't read %q: %v", args[0], err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("solve requires a puzzle file argument or --string")
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't create %q: %v", path, err)
	}
	return f, func() { f.Close() }, nil
}

func writeSolveJSON(out *os.File, solution sudoku.Solution) error {
	result := webapi.FromSolution(solution)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
