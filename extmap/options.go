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

// Option configures a Map while it is being created.
type Option[E any] interface {
	apply(m *Map[E])
}

// Allocator specifies an interface for allocating and releasing the memory
// used by a Map. The default allocator uses Go's builtin make() and lets the
// GC reclaim memory.
//
// If the allocator manages memory manually, Map.Close must be called so
// FreeMarks and FreeEntries are invoked for the final backing slices.
type Allocator[E any] interface {
	// AllocMarks should return a slice equivalent to make([]uint32, n).
	// The Map clears it before use, so reused memory is acceptable.
	AllocMarks(n int) []uint32

	// AllocEntries should return a slice equivalent to make([]E, n).
	AllocEntries(n int) []E

	// FreeMarks may release the memory of a slice previously returned by
	// AllocMarks.
	FreeMarks(v []uint32)

	// FreeEntries may release the memory of a slice previously returned by
	// AllocEntries.
	FreeEntries(v []E)
}

type defaultAllocator[E any] struct{}

func (defaultAllocator[E]) AllocMarks(n int) []uint32 {
	return make([]uint32, n)
}

func (defaultAllocator[E]) AllocEntries(n int) []E {
	return make([]E, n)
}

func (defaultAllocator[E]) FreeMarks(v []uint32) {
}

func (defaultAllocator[E]) FreeEntries(v []E) {
}

type allocatorOption[E any] struct {
	allocator Allocator[E]
}

func (op allocatorOption[E]) apply(m *Map[E]) {
	m.allocator = op.allocator
}

// WithAllocator is an option specifying the Allocator to use for a Map[E].
func WithAllocator[E any](allocator Allocator[E]) Option[E] {
	return allocatorOption[E]{allocator}
}
