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

// Package table implements the transition table of a nondeterministic
// Turing machine: for each (state, symbol) pair, the nonempty set of
// (next state, write, move) successors reachable from it.
package table

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Blank is the distinguished symbol that fills every unwritten tape cell.
const Blank byte = '_'

// Move is a head displacement.
type Move int8

const (
	Left Move = iota
	Stay
	Right
)

func (m Move) String() string {
	switch m {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "S"
	}
}

// Transition is one nondeterministic successor of a (state, symbol) pair.
type Transition struct {
	NextState int
	Write     byte
	Move      Move
}

// denseThreshold is the row count above which a state switches from
// linear scan to a binary search over the sorted rows. Alphabets seen
// in practice are small, so this rarely triggers, but it keeps lookup
// cost from growing linearly with a dense alphabet.
const denseThreshold = 4

type symbolRow struct {
	symbol byte
	succ   []Transition
}

type state struct {
	rows      []symbolRow
	cache     map[byte]int // symbol -> index in rows, built lazily by Alphabet once len(rows) > denseThreshold
	accepting bool
}

func (s *state) invalidateCache() {
	s.cache = nil
}

func (s *state) buildCache() {
	s.cache = make(map[byte]int, len(s.rows))
	for i, r := range s.rows {
		s.cache[r.symbol] = i
	}
}

// rowIndex returns the index of the row for symbol, or -1 if none. Small
// row counts use a linear scan (cheaper than a binary search's branch
// mispredictions for k <= denseThreshold); larger ones use a binary
// search over the sorted rows.
func (s *state) rowIndex(symbol byte) int {
	if len(s.rows) <= denseThreshold {
		for i := range s.rows {
			if s.rows[i].symbol == symbol {
				return i
			}
		}
		return -1
	}
	idx, found := slices.BinarySearchFunc(s.rows, symbol, func(r symbolRow, sym byte) int {
		return int(r.symbol) - int(sym)
	})
	if found {
		return idx
	}
	return -1
}

// Table is a transition table plus accepting-set, built incrementally via
// AddTransition and MarkAccepting. The zero value is an empty table ready
// for construction.
type Table struct {
	states []state
}

// grow extends the state array so that index q is valid.
func (t *Table) grow(q int) {
	for len(t.states) <= q {
		t.states = append(t.states, state{})
	}
}

// AddTransition records that, from qIn on reading in, the machine may
// write write, move in direction move, and transition to qOut. Calling
// this repeatedly for the same (qIn, in) pair adds nondeterministic
// successors; it never replaces an existing one. Both qIn and qOut grow
// the state array on demand, per the "extend, don't reject" rule for
// out-of-range state ids named during construction.
func (t *Table) AddTransition(qIn int, in, write byte, move Move, qOut int) {
	t.grow(qIn)
	t.grow(qOut)
	s := &t.states[qIn]
	idx, found := slices.BinarySearchFunc(s.rows, in, func(r symbolRow, sym byte) int {
		return int(r.symbol) - int(sym)
	})
	tr := Transition{NextState: qOut, Write: write, Move: move}
	if found {
		s.rows[idx].succ = append(s.rows[idx].succ, tr)
		return
	}
	s.rows = slices.Insert(s.rows, idx, symbolRow{symbol: in, succ: []Transition{tr}})
	s.invalidateCache()
}

// MarkAccepting marks q as an accepting state, growing the state array if
// necessary. There is no way to mark a state that cannot also be named by
// AddTransition, so an out-of-range q is simply grown into existence
// rather than rejected.
func (t *Table) MarkAccepting(q int) {
	t.grow(q)
	t.states[q].accepting = true
}

// Accepting reports whether q is an accepting state. A q beyond the
// current state array is never accepting.
func (t *Table) Accepting(q int) bool {
	if q < 0 || q >= len(t.states) {
		return false
	}
	return t.states[q].accepting
}

// Successors returns the ordered (insertion order) successor list for
// (state, symbol), or nil if there is no transition. A nil result means
// the branch halts.
// The returned slice must not be mutated by the caller.
func (t *Table) Successors(st int, symbol byte) []Transition {
	if st < 0 || st >= len(t.states) {
		return nil
	}
	s := &t.states[st]
	idx := s.rowIndex(symbol)
	if idx < 0 {
		return nil
	}
	return s.rows[idx].succ
}

// NumStates returns the size of the state array as grown so far.
func (t *Table) NumStates() int {
	return len(t.states)
}

// Alphabet returns the sorted set of symbols with a defined transition
// out of state st, for diagnostics/tracing.
func (t *Table) Alphabet(st int) []byte {
	if st < 0 || st >= len(t.states) {
		return nil
	}
	s := &t.states[st]
	if len(s.rows) > denseThreshold {
		if s.cache == nil {
			s.buildCache()
		}
		syms := maps.Keys(s.cache)
		slices.Sort(syms)
		return syms
	}
	syms := make([]byte, len(s.rows))
	for i, r := range s.rows {
		syms[i] = r.symbol
	}
	return syms
}
