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

// Package runqueue implements the engine's scheduler: a LIFO stack of
// runnable branches. LIFO is the only discipline, no priority, no
// fairness, no bounds. It yields depth-first exploration of the
// computation tree and bounds live-branch count roughly linearly in the
// current depth.
package runqueue

// Stack is a generic, slice-backed LIFO container. The zero value is an
// empty, ready-to-use stack.
type Stack[T any] struct {
	items []T
}

// Push adds item to the top of the stack.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns the item most recently pushed. ok is false if
// the stack is empty, in which case the zero value of T is returned.
func (s *Stack[T]) Pop() (item T, ok bool) {
	if len(s.items) == 0 {
		return item, false
	}
	last := len(s.items) - 1
	item = s.items[last]
	s.items[last] = *new(T) // drop the reference so a pointer-typed T can be collected
	s.items = s.items[:last]
	return item, true
}

// Len returns the number of items currently queued.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Drain removes every remaining item, calling f once for each, in
// top-to-bottom (pop) order.
func (s *Stack[T]) Drain(f func(T)) {
	for {
		item, ok := s.Pop()
		if !ok {
			return
		}
		f(item)
	}
}
