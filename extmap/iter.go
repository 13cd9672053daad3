// Copyright 2025 The extlib Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package extmap

// Iterator walks the live entries of a Map in slot order. The usual shape:
//
//	for it := m.Iter(); it.Next(); {
//		e := it.Entry()
//		...
//	}
//
// Any mutating operation on the map (Put, Erase, Clear, Close) invalidates
// the iterator and every pointer previously returned by Entry.
type Iterator[E any] struct {
	m *Map[E]
	// idx is the slot of the current entry, -1 before the first Next.
	idx int
}

// Iter returns an iterator positioned before the first live entry.
func (m *Map[E]) Iter() Iterator[E] {
	return Iterator[E]{m: m, idx: -1}
}

// Next advances to the next live slot and reports whether one exists.
func (it *Iterator[E]) Next() bool {
	for i := it.idx + 1; i < len(it.m.marks); i++ {
		if live(it.m.marks[i]) {
			it.idx = i
			return true
		}
	}
	it.idx = len(it.m.marks)
	return false
}

// Entry returns a pointer to the current entry's storage inside the table.
// Mutating key fields through it corrupts the table; mutating non-key
// fields is allowed. Valid only after Next has returned true.
func (it *Iterator[E]) Entry() *E {
	return &it.m.entries[it.idx]
}
