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

// Package extmap provides an open-addressing hash table over caller-defined
// entries. Unlike Go's builtin map, which is keyed on a comparable type, an
// extmap.Map stores whole entries and delegates both hashing and equality to
// closures supplied at construction. This makes it natural to key a struct
// on a subset of its fields: entries that compare equal (per the equality
// closure) occupy a single slot, and Put overwrites the non-key fields in
// place.
//
// # Layout
//
// The table owns two index-aligned slices sized to a power of two: a mark
// slice holding one 32-bit value per slot, and an entry slice holding the
// entry values. A mark is either markEmpty (0), markTombstone (1), or the
// hash of the entry stored in the slot. Hash values returned by the caller's
// hash function are remapped away from 0 and 1 (0 becomes 2, 1 becomes 3) so
// the two sentinels can never collide with a legitimately computed hash.
// Storing the hash in the mark lets probing skip most non-matching slots
// without invoking the equality closure.
//
// # Probing and deletion
//
// Collisions are resolved by linear probing: start at hash&mask and step by
// one, wrapping via the mask. Deletion writes a tombstone rather than
// emptying the slot, so probe sequences that passed through the deleted slot
// still find entries clustered beyond it. The probe routine remembers the
// first tombstone it crosses and hands that slot to insertion when the
// search ends at an empty slot, which keeps clusters from accumulating dead
// slots on hot put/erase key ranges.
//
// Tombstoned slots still lengthen probe sequences, so the growth trigger
// counts them: the table grows when occupied-plus-tombstoned slots would exceed 3/4
// of capacity. Growing re-places live entries by their stored hashes into a
// fresh table and discards tombstones entirely.
//
// A Map is NOT goroutine-safe.
package extmap

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	debug = false

	// initialCapacity is the slot count of the first allocation. Capacity
	// is always zero or a power of two.
	initialCapacity = 8

	// Slot marks. Any value above markTombstone is the remapped hash of a
	// live entry.
	markEmpty     uint32 = 0
	markTombstone uint32 = 1
	minEntryHash  uint32 = 2
)

// live reports whether a slot mark denotes a live entry.
func live(mark uint32) bool {
	return mark > markTombstone
}

// maxEntryLoad returns how many slots may be occupied or tombstoned before
// an insertion must grow the table. capacity/2 + capacity/4 is exactly 3/4
// of any power-of-two capacity, computed without floating point.
func maxEntryLoad(capacity int) int {
	return capacity>>1 + capacity>>2
}

// Map is an unordered collection of entries of type E, keyed by whatever
// notion of identity the hash and equal closures express. Two entries for
// which equal returns true must hash to the same value.
//
// The zero value is not usable; construct with New. Entries are copied into
// the table by value: mutating the argument after Put has no effect on the
// stored entry. Any mutating operation (Put, Erase, Clear) invalidates
// in-progress iteration and pointers previously obtained from an Iterator.
type Map[E any] struct {
	hash  func(E) uint32
	equal func(E, E) bool
	// The allocator for the marks and entries slices.
	allocator Allocator[E]
	// marks and entries have identical length (the capacity) and are
	// index-aligned: entries[i] is meaningful iff live(marks[i]).
	marks   []uint32
	entries []E
	// mask is capacity-1, used to wrap probe indexes. Zero while the table
	// is unallocated.
	mask uint32
	// extant counts slots that are not empty, i.e. live entries plus
	// tombstones. Tombstones lengthen probe sequences just like live
	// entries, so this is the count the growth trigger watches.
	extant int
	// live counts slots holding a live entry. This is Len().
	live int
}

// New constructs a Map for entries of type E. The hash closure must be
// deterministic and consistent with equal: entries that compare equal must
// hash identically. Typically equal compares only the key fields of E and
// hash digests the same fields (see HashBytes and HashString).
//
// If initialCap is 0 the map starts unallocated and grows on the first Put.
// Otherwise the table is sized so that initialCap entries can be inserted
// without growing.
func New[E any](initialCap int, hash func(E) uint32, equal func(E, E) bool, options ...Option[E]) *Map[E] {
	if hash == nil || equal == nil {
		panic("extmap: New requires non-nil hash and equal functions")
	}
	m := &Map[E]{
		hash:      hash,
		equal:     equal,
		allocator: defaultAllocator[E]{},
	}

	for _, op := range options {
		op.apply(m)
	}

	if initialCap > 0 {
		// Smallest power of two whose 3/4 load bound admits initialCap
		// entries.
		target := (4*initialCap + 2) / 3
		capacity := 1 << bits.Len(uint(target-1))
		if capacity < initialCapacity {
			capacity = initialCapacity
		}
		m.rehash(capacity)
	}

	m.checkInvariants()
	return m
}

// Len returns the number of live entries in the map.
func (m *Map[E]) Len() int {
	return m.live
}

// Cap returns the current slot capacity. It is zero until the first
// insertion (or a non-zero initial capacity) allocates the table.
func (m *Map[E]) Cap() int {
	if m.entries == nil {
		return 0
	}
	return int(m.mask) + 1
}

// Empty reports whether the map holds no live entries.
func (m *Map[E]) Empty() bool {
	return m.live == 0
}

// hashEntry invokes the caller's hash function and remaps the results 0 and
// 1 to 2 and 3, keeping the sentinel mark values unreachable.
func (m *Map[E]) hashEntry(entry E) uint32 {
	h := m.hash(entry)
	if h < minEntryHash {
		h += minEntryHash
	}
	return h
}

// findIndex is the single probe routine backing Get, Put, and Erase. It
// walks the probe sequence of entry starting at h&mask. If a slot holds a
// live entry with a matching stored hash and the equality closure agrees,
// that slot is returned. Otherwise the walk ends at the first empty slot:
// if a tombstone was crossed on the way, the FIRST such tombstone is
// returned (so insertion reuses it and keeps the cluster compact), else the
// empty slot itself. Callers distinguish "match" from "free slot" by
// checking live(marks[i]) on the result.
//
// Termination is guaranteed by the load-factor invariant: at most 3/4 of
// the slots are non-empty, so every probe sequence reaches an empty slot.
func (m *Map[E]) findIndex(entry E, h uint32) uint32 {
	i := h & m.mask
	tombIdx := uint32(0)
	tombFound := false

	if debug {
		fmt.Printf("find: start=%d h=%08x\n", i, h)
	}

	for {
		switch mark := m.marks[i]; mark {
		case markEmpty:
			if tombFound {
				return tombIdx
			}
			return i
		case markTombstone:
			// Keep probing: a match may live beyond the tombstone. Remember
			// only the first tombstone, the one insertion should reuse.
			if !tombFound {
				tombFound = true
				tombIdx = i
			}
		default:
			if mark == h && m.equal(m.entries[i], entry) {
				return i
			}
		}
		i = (i + 1) & m.mask
	}
}

// Get returns the stored entry that equals the query entry (which needs
// only its key fields populated), or ok=false if no such entry exists. Get
// never mutates the map.
func (m *Map[E]) Get(entry E) (stored E, ok bool) {
	if m.entries == nil {
		return stored, false
	}

	h := m.hashEntry(entry)
	i := m.findIndex(entry, h)
	if !live(m.marks[i]) {
		return stored, false
	}
	return m.entries[i], true
}

// Contains reports whether an entry equal to the query entry is present.
func (m *Map[E]) Contains(entry E) bool {
	_, ok := m.Get(entry)
	return ok
}

// Put inserts entry, overwriting any existing entry that compares equal to
// it. It returns true if the entry was newly inserted and false if an
// existing entry was replaced.
func (m *Map[E]) Put(entry E) bool {
	// Grow before probing: growth changes every probe sequence, so the
	// target slot must be computed against the post-growth table.
	if m.extant+1 > maxEntryLoad(m.Cap()) {
		m.grow()
	}

	h := m.hashEntry(entry)
	i := m.findIndex(entry, h)

	isNew := !live(m.marks[i])
	if isNew {
		m.live++
		if m.marks[i] == markEmpty {
			// Reusing a tombstone does not lengthen any probe sequence, so
			// extant only grows when a pristine slot is consumed.
			m.extant++
		}
	}

	if debug {
		fmt.Printf("put: index=%d h=%08x new=%t live=%d extant=%d\n",
			i, h, isNew, m.live, m.extant)
	}

	m.marks[i] = h
	m.entries[i] = entry
	m.checkInvariants()
	return isNew
}

// Erase removes the stored entry equal to the query entry, returning
// whether one was present. The slot is tombstoned rather than emptied; the
// capacity and the occupied-or-tombstoned count are unchanged until the
// next growth discards tombstones.
func (m *Map[E]) Erase(entry E) bool {
	if m.entries == nil {
		return false
	}

	h := m.hashEntry(entry)
	i := m.findIndex(entry, h)
	if !live(m.marks[i]) {
		return false
	}

	var zero E
	m.marks[i] = markTombstone
	m.entries[i] = zero // release anything the erased entry referenced
	m.live--

	if debug {
		fmt.Printf("erase: index=%d h=%08x live=%d extant=%d\n",
			i, h, m.live, m.extant)
	}

	m.checkInvariants()
	return true
}

// Clear removes all entries while retaining the allocated capacity. It is a
// no-op on a never-allocated map.
func (m *Map[E]) Clear() {
	clear(m.marks)
	clear(m.entries)
	m.extant = 0
	m.live = 0
	m.checkInvariants()
}

// All calls yield sequentially for each live entry. If yield returns false,
// iteration stops. Entries are visited in slot order, which is neither
// insertion order nor stable across mutations; the map must not be mutated
// during iteration.
func (m *Map[E]) All(yield func(entry E) bool) {
	for i, mark := range m.marks {
		if live(mark) {
			if !yield(m.entries[i]) {
				return
			}
		}
	}
}

// grow doubles the capacity (first allocation is initialCapacity slots) and
// re-places every live entry, dropping all tombstones.
func (m *Map[E]) grow() {
	newCapacity := initialCapacity
	if m.entries != nil {
		newCapacity = 2 * m.Cap()
	}
	m.rehash(newCapacity)
}

// rehash replaces the backing slices with fresh ones of the given
// power-of-two capacity and reinserts every live entry. Entries are placed
// by probing from storedHash&newMask for the first empty slot: the stored
// hash is reused, never recomputed, and since the new table starts empty no
// tombstone handling is needed. Afterwards extant equals live.
func (m *Map[E]) rehash(newCapacity int) {
	newMask := uint32(newCapacity - 1)
	marks := m.allocator.AllocMarks(newCapacity)
	entries := m.allocator.AllocEntries(newCapacity)
	clear(marks) // the allocator may hand back reused memory

	if m.entries != nil {
		for i, mark := range m.marks {
			if !live(mark) {
				continue
			}
			j := mark & newMask
			for marks[j] != markEmpty {
				j = (j + 1) & newMask
			}
			marks[j] = mark
			entries[j] = m.entries[i]
		}
		m.allocator.FreeMarks(m.marks)
		m.allocator.FreeEntries(m.entries)
	}

	if debug {
		fmt.Printf("rehash: capacity=%d->%d live=%d extant=%d->%d\n",
			m.Cap(), newCapacity, m.live, m.extant, m.live)
	}

	m.marks = marks
	m.entries = entries
	m.mask = newMask
	m.extant = m.live
	m.checkInvariants()
}

// Close releases the backing slices to the configured allocator. It is
// unnecessary when using the default allocator. Using the map after Close
// is invalid, though Close itself is idempotent.
func (m *Map[E]) Close() {
	if m.entries != nil {
		m.allocator.FreeMarks(m.marks)
		m.allocator.FreeEntries(m.entries)
	}
	m.marks = nil
	m.entries = nil
	m.mask = 0
	m.extant = 0
	m.live = 0
}

func (m *Map[E]) checkInvariants() {
	if invariants {
		capacity := m.Cap()
		if capacity != 0 && capacity&(capacity-1) != 0 {
			panic(fmt.Sprintf("invariant failed: capacity %d is not a power of two\n%s",
				capacity, m.debugString()))
		}
		if capacity != 0 && int(m.mask) != capacity-1 {
			panic(fmt.Sprintf("invariant failed: mask %d does not match capacity %d\n%s",
				m.mask, capacity, m.debugString()))
		}

		var liveCount, tombCount int
		for i, mark := range m.marks {
			switch {
			case mark == markEmpty:
			case mark == markTombstone:
				tombCount++
			default:
				// Every live slot must store the entry's own remapped hash
				// and be reachable through Get.
				if h := m.hashEntry(m.entries[i]); h != mark {
					panic(fmt.Sprintf("invariant failed: slot %d stores hash %08x, entry hashes to %08x\n%s",
						i, mark, h, m.debugString()))
				}
				if _, ok := m.Get(m.entries[i]); !ok {
					panic(fmt.Sprintf("invariant failed: entry at slot %d not found by Get\n%s",
						i, m.debugString()))
				}
				liveCount++
			}
		}

		if liveCount != m.live {
			panic(fmt.Sprintf("invariant failed: found %d live slots, live count is %d\n%s",
				liveCount, m.live, m.debugString()))
		}
		if liveCount+tombCount != m.extant {
			panic(fmt.Sprintf("invariant failed: found %d live+tombstoned slots, extant count is %d\n%s",
				liveCount+tombCount, m.extant, m.debugString()))
		}
		if m.extant > capacity {
			panic(fmt.Sprintf("invariant failed: extant %d exceeds capacity %d\n%s",
				m.extant, capacity, m.debugString()))
		}
	}
}

func (m *Map[E]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d live=%d extant=%d\n", m.Cap(), m.live, m.extant)
	for i, mark := range m.marks {
		switch mark {
		case markEmpty:
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
		case markTombstone:
			fmt.Fprintf(&buf, "  %4d: tombstone\n", i)
		default:
			fmt.Fprintf(&buf, "  %4d: %v [hash=%08x home=%d]\n",
				i, m.entries[i], mark, mark&m.mask)
		}
	}
	return buf.String()
}
