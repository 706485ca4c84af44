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

// Package parser reads the line-oriented machine-description grammar
// (tr/acc/max/run sections) and drives the table package's construction
// API. It is deliberately simple: the engine treats whatever Table it
// builds as already well-formed, so this package's only job is to get a
// well-formed Table and a step bound out of the input stream, skipping
// anything it cannot parse once the next section keyword is recognized.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ntmsim/ntmsim/table"
)

type section int

const (
	sectionNone section = iota
	sectionTr
	sectionAcc
	sectionMax
	sectionRun
)

// Machine is the fixed, constructed part of a run: the transition table
// and the per-branch step bound.
type Machine struct {
	Table    *table.Table
	MaxSteps int
}

// Parse reads the tr/acc/max/run grammar from r. It returns the
// constructed Machine and the sequence of run inputs, in the order they
// appeared. A malformed line within the tr or acc sections is silently
// skipped rather than aborting the whole parse; only a malformed max
// line is a hard error, since it leaves the step bound undefined.
func Parse(r io.Reader) (*Machine, []string, error) {
	m := &Machine{Table: &table.Table{}}
	var runs []string

	sec := sectionNone
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" && sec != sectionRun {
			continue
		}
		switch trimmed {
		case "tr":
			sec = sectionTr
			continue
		case "acc":
			sec = sectionAcc
			continue
		case "max":
			sec = sectionMax
			continue
		case "run":
			sec = sectionRun
			continue
		}

		switch sec {
		case sectionTr:
			if err := parseTransitionLine(m.Table, trimmed); err != nil {
				// Skip malformed lines; the next section keyword has
				// already been recognized above when it appears.
				continue
			}
		case sectionAcc:
			q, err := strconv.Atoi(trimmed)
			if err != nil || q < 0 {
				continue
			}
			m.Table.MarkAccepting(q)
		case sectionMax:
			n, err := strconv.Atoi(trimmed)
			if err != nil {
				return nil, nil, fmt.Errorf("parser: invalid max line %q: %w", trimmed, err)
			}
			m.MaxSteps = n
		case sectionRun:
			// run inputs may legitimately be empty lines (S5): do not
			// skip blanks in this section.
			runs = append(runs, line)
		default:
			// Content before any recognized section keyword is ignored.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("parser: reading input: %w", err)
	}
	return m, runs, nil
}

// parseTransitionLine parses "<state> <in> <out> <move> <next_state>"
// and records it via tbl.AddTransition.
func parseTransitionLine(tbl *table.Table, line string) error {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return fmt.Errorf("want 5 fields, got %d", len(fields))
	}
	qIn, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("state field: %w", err)
	}
	if qIn < 0 {
		return fmt.Errorf("state field must be nonnegative, got %d", qIn)
	}
	in, err := symbolOf(fields[1])
	if err != nil {
		return err
	}
	out, err := symbolOf(fields[2])
	if err != nil {
		return err
	}
	move, err := moveOf(fields[3])
	if err != nil {
		return err
	}
	qOut, err := strconv.Atoi(fields[4])
	if err != nil {
		return fmt.Errorf("next_state field: %w", err)
	}
	if qOut < 0 {
		return fmt.Errorf("next_state field must be nonnegative, got %d", qOut)
	}
	tbl.AddTransition(qIn, in, out, move, qOut)
	return nil
}

func symbolOf(field string) (byte, error) {
	if len(field) != 1 {
		return 0, fmt.Errorf("symbol field must be a single character, got %q", field)
	}
	return field[0], nil
}

func moveOf(field string) (table.Move, error) {
	switch field {
	case "L":
		return table.Left, nil
	case "S":
		return table.Stay, nil
	case "R":
		return table.Right, nil
	default:
		return 0, fmt.Errorf("move field must be L, S or R, got %q", field)
	}
}
