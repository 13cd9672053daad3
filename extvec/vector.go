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

// Package extvec provides a growable contiguous sequence with
// amortized-constant append. Capacity doubles whenever an append outgrows
// it, independent of the runtime's append growth policy, so Reserve/Cap
// behave predictably.
//
// A Vector is NOT goroutine-safe. The zero value is an empty vector ready
// for use.
package extvec

import "fmt"

// Vector is a growable sequence of T. Elements are stored contiguously and
// indexed from 0.
type Vector[T any] struct {
	elems []T
}

// New returns an empty vector with capacity for at least n elements.
func New[T any](n int) *Vector[T] {
	v := &Vector[T]{}
	v.Reserve(n)
	return v
}

// FromSlice returns a vector holding a copy of s.
func FromSlice[T any](s []T) *Vector[T] {
	v := New[T](len(s))
	v.elems = v.elems[:len(s)]
	copy(v.elems, s)
	return v
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return len(v.elems)
}

// Cap returns the number of elements the vector can hold without growing.
func (v *Vector[T]) Cap() int {
	return cap(v.elems)
}

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool {
	return len(v.elems) == 0
}

func (v *Vector[T]) rangeCheck(i, length int) {
	if i < 0 || i >= length {
		panic(fmt.Sprintf("extvec: index %d out of range [0:%d]", i, length))
	}
}

// At returns the element at index i.
func (v *Vector[T]) At(i int) T {
	v.rangeCheck(i, len(v.elems))
	return v.elems[i]
}

// Set replaces the element at index i.
func (v *Vector[T]) Set(i int, e T) {
	v.rangeCheck(i, len(v.elems))
	v.elems[i] = e
}

// Front returns the first element.
func (v *Vector[T]) Front() T {
	return v.At(0)
}

// Back returns the last element.
func (v *Vector[T]) Back() T {
	return v.At(len(v.elems) - 1)
}

// maybeGrow ensures room for n more elements, doubling the capacity
// (starting from 1) until the requirement fits.
func (v *Vector[T]) maybeGrow(n int) {
	need := len(v.elems) + n
	if need <= cap(v.elems) {
		return
	}
	newCap := cap(v.elems)
	if newCap == 0 {
		newCap = 1
	}
	for need > newCap {
		newCap *= 2
	}
	v.Reserve(newCap)
}

// Push appends e.
func (v *Vector[T]) Push(e T) {
	v.maybeGrow(1)
	v.elems = append(v.elems, e)
}

// PushAll appends every element of s.
func (v *Vector[T]) PushAll(s ...T) {
	v.maybeGrow(len(s))
	v.elems = append(v.elems, s...)
}

// Pop removes and returns the last element. It panics on an empty vector.
func (v *Vector[T]) Pop() T {
	if len(v.elems) == 0 {
		panic("extvec: Pop on empty vector")
	}
	var zero T
	last := len(v.elems) - 1
	e := v.elems[last]
	v.elems[last] = zero // release the popped element for the GC
	v.elems = v.elems[:last]
	return e
}

// Insert inserts e at index i, shifting elements [i:] one position right.
// i may equal Len(), in which case Insert behaves like Push.
func (v *Vector[T]) Insert(i int, e T) {
	v.rangeCheck(i, len(v.elems)+1)
	v.maybeGrow(1)
	v.elems = v.elems[:len(v.elems)+1]
	copy(v.elems[i+1:], v.elems[i:])
	v.elems[i] = e
}

// Remove removes the element at index i, shifting elements [i+1:] one
// position left.
func (v *Vector[T]) Remove(i int) {
	v.rangeCheck(i, len(v.elems))
	var zero T
	last := len(v.elems) - 1
	copy(v.elems[i:], v.elems[i+1:])
	v.elems[last] = zero
	v.elems = v.elems[:last]
}

// Clear removes all elements while retaining capacity.
func (v *Vector[T]) Clear() {
	clear(v.elems) // release elements for the GC
	v.elems = v.elems[:0]
}

// Reserve grows the capacity to at least n elements. It never shrinks.
func (v *Vector[T]) Reserve(n int) {
	if n <= cap(v.elems) {
		return
	}
	elems := make([]T, len(v.elems), n)
	copy(elems, v.elems)
	v.elems = elems
}

// Resize sets the length to n. Shrinking discards trailing elements;
// growing appends copies of fill.
func (v *Vector[T]) Resize(n int, fill T) {
	switch {
	case n < 0:
		panic(fmt.Sprintf("extvec: Resize to negative length %d", n))
	case n < len(v.elems):
		tail := v.elems[n:]
		clear(tail)
		v.elems = v.elems[:n]
	case n > len(v.elems):
		v.maybeGrow(n - len(v.elems))
		for len(v.elems) < n {
			v.elems = append(v.elems, fill)
		}
	}
}

// ShrinkToFit reallocates so that capacity equals length. An empty vector
// drops its allocation entirely.
func (v *Vector[T]) ShrinkToFit() {
	switch {
	case len(v.elems) == 0:
		v.elems = nil
	case len(v.elems) < cap(v.elems):
		elems := make([]T, len(v.elems))
		copy(elems, v.elems)
		v.elems = elems
	}
}

// Slice returns the underlying storage as a slice of length Len(). It is a
// borrowed view: it stays valid until the next operation that grows or
// shrinks the vector.
func (v *Vector[T]) Slice() []T {
	return v.elems
}

// All calls yield for each element in index order. If yield returns false,
// iteration stops.
func (v *Vector[T]) All(yield func(e T) bool) {
	for _, e := range v.elems {
		if !yield(e) {
			return
		}
	}
}
