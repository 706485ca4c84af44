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

// Package engine drives one input tape to a verdict: it seeds the root
// branch, runs the depth-first scheduling loop over the runqueue,
// enforces the per-branch step bound, and aggregates the ACCEPT / REJECT
// / UNDETERMINED outcome.
package engine

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/ntmsim/ntmsim/branch"
	"github.com/ntmsim/ntmsim/runqueue"
	"github.com/ntmsim/ntmsim/table"
	"github.com/ntmsim/ntmsim/tape"
)

// Verdict is the outcome of running one input to completion or to the
// step bound.
type Verdict byte

const (
	Reject       Verdict = '0'
	Accept       Verdict = '1'
	Undetermined Verdict = 'U'
)

func (v Verdict) String() string {
	return string(v)
}

// Engine decides inputs against a fixed, already-constructed transition
// table and step bound. The zero value is not usable; construct with
// New.
type Engine struct {
	tbl      *table.Table
	maxSteps int
	log      *log.Logger // nil disables trace logging
}

// New returns an Engine that decides inputs against tbl with at most
// maxSteps steps on any single branch. logger may be nil to disable
// per-step tracing.
func New(tbl *table.Table, maxSteps int, logger *log.Logger) *Engine {
	return &Engine{tbl: tbl, maxSteps: maxSteps, log: logger}
}

type outcomeKind int

const (
	outcomeContinue outcomeKind = iota
	outcomeHalt
	outcomeAccept
)

// Run decides w: it builds the root tape and branch, writes w onto the
// tape starting at offset 0 (truncating any suffix a branch could never
// read before being preempted, see the limit computation below), and
// runs the scheduling loop to completion. ctx is polled once per
// dequeued branch so a caller can bound an unexpectedly long run. This
// is not part of the base algorithm, only a Go-idiomatic escape hatch:
// a cancelled context yields Undetermined, the same verdict a bound on
// steps would have produced.
func (e *Engine) Run(ctx context.Context, w string) Verdict {
	runID := uuid.New()
	if e.log != nil {
		e.log.Printf("run %s: start input=%q max_steps=%d", runID, w, e.maxSteps)
	}

	tp := tape.New()
	h := tp.Leftmost()
	// A branch reads one cell beyond every completed step before the
	// scheduling loop's step-bound check can preempt it (the read that
	// produces the maxSteps-th pending transition happens with
	// b.Steps == maxSteps-1, one step before the check fires), so up to
	// maxSteps+1 symbols of w can still influence the verdict. Anything
	// beyond that is truncated: no branch can ever read that far before
	// being preempted.
	limit := len(w)
	if limit > e.maxSteps+1 {
		limit = e.maxSteps + 1
	}
	for i := 0; i < limit; i++ {
		h = tp.Write(h, w[i])
		if i < limit-1 {
			h = tp.Move(h, tape.DirRight)
		}
	}

	var rq runqueue.Stack[*branch.Branch]
	rq.Push(branch.New(tp))

	preempted := false
	for {
		b, ok := rq.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			if e.log != nil {
				e.log.Printf("run %s: cancelled: %v", runID, err)
			}
			b.Release()
			rq.Drain(func(leftover *branch.Branch) { leftover.Release() })
			return Undetermined
		}
		if b.Steps == e.maxSteps {
			if e.log != nil {
				e.log.Printf("run %s: branch preempted at step bound state=%d", runID, b.State)
			}
			b.Release()
			preempted = true
			continue
		}
		kind, next, siblings := e.step(runID, b)
		switch kind {
		case outcomeAccept:
			b.Release()
			if e.log != nil {
				e.log.Printf("run %s: accept state=%d steps=%d", runID, b.State, b.Steps)
			}
			rq.Drain(func(leftover *branch.Branch) { leftover.Release() })
			return Accept
		case outcomeHalt:
			b.Release()
		case outcomeContinue:
			rq.Push(next)
			for _, sib := range siblings {
				rq.Push(sib)
			}
		}
	}

	if preempted {
		if e.log != nil {
			e.log.Printf("run %s: verdict=undetermined", runID)
		}
		return Undetermined
	}
	if e.log != nil {
		e.log.Printf("run %s: verdict=reject", runID)
	}
	return Reject
}

// step applies b's pending transition (if any), reads the symbol now
// under the head, and looks up successors. It returns outcomeAccept or
// outcomeHalt when b halts (with b left for the caller to Release), or
// outcomeContinue with b (as next, carrying the first successor as its
// new Pending) plus zero or more freshly cloned siblings (carrying the
// remaining successors) to be pushed after it.
func (e *Engine) step(runID uuid.UUID, b *branch.Branch) (kind outcomeKind, next *branch.Branch, siblings []*branch.Branch) {
	if b.Pending != nil {
		p := b.Pending
		b.State = p.NextState
		b.WriteHead(p.Write)
		b.MoveHead(p.Move)
		b.Steps++
		b.Pending = nil
	}

	sym := b.ReadHead()
	if e.log != nil {
		e.log.Printf("run %s: state=%d symbol=%q alphabet=%q", runID, b.State, sym, e.tbl.Alphabet(b.State))
	}
	succ := e.tbl.Successors(b.State, sym)
	if len(succ) == 0 {
		if e.tbl.Accepting(b.State) {
			return outcomeAccept, nil, nil
		}
		return outcomeHalt, nil, nil
	}

	b.Pending = &succ[0]
	siblings = make([]*branch.Branch, 0, len(succ)-1)
	for i := 1; i < len(succ); i++ {
		siblings = append(siblings, b.CloneSharingTape(&succ[i]))
	}
	return outcomeContinue, b, siblings
}
