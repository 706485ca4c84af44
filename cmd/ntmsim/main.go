// Copyright (C) 2026 NTM Sim Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command ntmsim reads a nondeterministic Turing machine description and
// a sequence of input tapes from stdin (or a file given with -f) in the
// line-oriented tr/acc/max/run grammar, and writes one verdict character
// (0, 1 or U) per run line to stdout.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ntmsim/ntmsim/engine"
	"github.com/ntmsim/ntmsim/parser"
)

var (
	dashf string
	dashv bool
)

func init() {
	flag.StringVar(&dashf, "f", "", "read the machine description and run inputs from this file instead of stdin")
	flag.BoolVar(&dashv, "v", false, "log per-run scheduling traces to stderr")
}

func main() {
	flag.Parse()
	if err := run(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "ntmsim:", err)
		os.Exit(1)
	}
}

func run(stdout io.Writer, stderr io.Writer) error {
	src := io.Reader(os.Stdin)
	if dashf != "" {
		f, err := os.Open(dashf)
		if err != nil {
			return fmt.Errorf("opening %s: %w", dashf, err)
		}
		defer f.Close()
		src = f
	}

	m, runs, err := parser.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing machine description: %w", err)
	}

	var logger *log.Logger
	if dashv {
		logger = log.New(stderr, "ntmsim: ", log.LstdFlags)
	}
	eng := engine.New(m.Table, m.MaxSteps, logger)

	w := bufio.NewWriter(stdout)
	defer w.Flush()
	ctx := context.Background()
	for _, input := range runs {
		verdict := eng.Run(ctx, input)
		if _, err := fmt.Fprintln(w, verdict.String()); err != nil {
			return fmt.Errorf("writing verdict: %w", err)
		}
	}
	return nil
}
