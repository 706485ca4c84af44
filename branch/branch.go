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

// Package branch models one live path through a nondeterministic
// computation tree: a state, a head position on a (possibly shared)
// tape, a step counter, and a pending transition awaiting application.
package branch

import (
	"github.com/ntmsim/ntmsim/table"
	"github.com/ntmsim/ntmsim/tape"
)

func toDir(m table.Move) tape.Dir {
	switch m {
	case table.Left:
		return tape.DirLeft
	case table.Right:
		return tape.DirRight
	default:
		return tape.DirStay
	}
}

// Branch is one point in the computation tree.
type Branch struct {
	State   int
	Head    tape.Head
	Steps   int
	Pending *table.Transition
	tp      *tape.Tape
}

// New returns a root branch at state 0, the leftmost position of tp,
// zero steps, and no pending transition. It takes ownership of one
// reference on tp.
func New(tp *tape.Tape) *Branch {
	return &Branch{State: 0, Head: tp.Leftmost(), tp: tp}
}

// ReadHead returns the symbol under the head, Blank if unallocated.
func (b *Branch) ReadHead() byte {
	return tape.Read(b.Head)
}

// WriteHead writes sym at the head. If the tape is shared with another
// branch, it first clones the tape (copy-on-write), unless sym already
// sits under the head, in which case the write is a no-op and sharing is
// preserved.
func (b *Branch) WriteHead(sym byte) {
	if tape.Read(b.Head) == sym {
		return
	}
	if b.tp.Shared() {
		clone := b.tp.Clone()
		b.Head = tape.TranslateHead(b.Head, clone)
		b.tp.Release()
		b.tp = clone
	}
	b.Head = b.tp.Write(b.Head, sym)
}

// MoveHead displaces the head by one cell in direction dir, lazily
// extending the page chain at either edge; Stay never allocates.
func (b *Branch) MoveHead(dir table.Move) {
	b.Head = b.tp.Move(b.Head, toDir(dir))
}

// CloneSharingTape produces a sibling branch at the same state, head and
// step count, sharing b's tape (the tape's reference count is
// incremented), with Pending set to pending. The sibling inherits no
// ownership of anything beyond the tape reference.
func (b *Branch) CloneSharingTape(pending *table.Transition) *Branch {
	return &Branch{
		State:   b.State,
		Head:    b.Head,
		Steps:   b.Steps,
		Pending: pending,
		tp:      b.tp.Retain(),
	}
}

// Release drops b's reference on its tape. b must not be used again
// after Release.
func (b *Branch) Release() {
	b.tp.Release()
}
