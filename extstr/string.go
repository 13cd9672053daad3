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

// Package extstr provides a growable mutable byte string. Appends are
// amortized constant time: capacity doubles up to a 1MiB threshold, beyond
// which it grows by exactly the required amount so that very large strings
// do not over-allocate.
//
// A String is NOT goroutine-safe. The zero value is an empty string ready
// for use.
package extstr

import "bytes"

// logGrowthThresh is the capacity beyond which growth switches from
// doubling to exact sizing.
const logGrowthThresh = 1024 * 1024

// String is a growable byte string.
type String struct {
	buf []byte
}

// New returns a String holding a copy of s.
func New(s string) *String {
	str := WithCapacity(len(s))
	str.buf = append(str.buf, s...)
	return str
}

// FromBytes returns a String holding a copy of b.
func FromBytes(b []byte) *String {
	str := WithCapacity(len(b))
	str.buf = append(str.buf, b...)
	return str
}

// WithCapacity returns an empty String with room for n bytes.
func WithCapacity(n int) *String {
	return &String{buf: make([]byte, 0, n)}
}

// Clone returns an independent copy of s.
func (s *String) Clone() *String {
	return FromBytes(s.buf)
}

// Len returns the number of bytes.
func (s *String) Len() int {
	return len(s.buf)
}

// Cap returns the number of bytes the string can hold without growing.
func (s *String) Cap() int {
	return cap(s.buf)
}

// Empty reports whether the string holds no bytes.
func (s *String) Empty() bool {
	return len(s.buf) == 0
}

// String returns the contents as an immutable Go string.
func (s *String) String() string {
	return string(s.buf)
}

// Bytes returns the underlying storage. It is a borrowed view: it stays
// valid until the next operation that grows the string.
func (s *String) Bytes() []byte {
	return s.buf
}

// maybeGrow ensures room for n more bytes. Capacity doubles until it
// crosses logGrowthThresh, after which it grows by exactly what is needed.
func (s *String) maybeGrow(n int) {
	need := len(s.buf) + n
	if need <= cap(s.buf) {
		return
	}
	newCap := cap(s.buf)
	if newCap > logGrowthThresh {
		newCap = need
	} else {
		if newCap == 0 {
			newCap = 1
		}
		for need > newCap {
			newCap *= 2
		}
	}
	buf := make([]byte, len(s.buf), newCap)
	copy(buf, s.buf)
	s.buf = buf
}

// Append appends the contents of a Go string.
func (s *String) Append(str string) {
	s.maybeGrow(len(str))
	s.buf = append(s.buf, str...)
}

// AppendBytes appends the contents of b.
func (s *String) AppendBytes(b []byte) {
	s.maybeGrow(len(b))
	s.buf = append(s.buf, b...)
}

// AppendByte appends a single byte.
func (s *String) AppendByte(b byte) {
	s.maybeGrow(1)
	s.buf = append(s.buf, b)
}

// AppendString appends the contents of another String.
func (s *String) AppendString(other *String) {
	s.AppendBytes(other.buf)
}

// Substr returns a new String holding the bytes in [start:end). It panics
// if the range is invalid, like a Go slice expression would.
func (s *String) Substr(start, end int) *String {
	return FromBytes(s.buf[start:end])
}

// Compare lexicographically compares s with other, returning -1, 0, or +1.
func (s *String) Compare(other *String) int {
	return bytes.Compare(s.buf, other.buf)
}

// ToLower lowercases ASCII letters in place.
func (s *String) ToLower() {
	for i, b := range s.buf {
		if b >= 'A' && b <= 'Z' {
			s.buf[i] = b + ('a' - 'A')
		}
	}
}

// ToUpper uppercases ASCII letters in place.
func (s *String) ToUpper() {
	for i, b := range s.buf {
		if b >= 'a' && b <= 'z' {
			s.buf[i] = b - ('a' - 'A')
		}
	}
}

// Reserve grows the capacity to at least n bytes. It never shrinks.
func (s *String) Reserve(n int) {
	if n <= cap(s.buf) {
		return
	}
	buf := make([]byte, len(s.buf), n)
	copy(buf, s.buf)
	s.buf = buf
}

// ShrinkToFit reallocates so that capacity equals length.
func (s *String) ShrinkToFit() {
	if len(s.buf) < cap(s.buf) {
		buf := make([]byte, len(s.buf))
		copy(buf, s.buf)
		s.buf = buf
	}
}

// Join concatenates parts with sep between them.
func Join(sep string, parts []string) *String {
	if len(parts) == 0 {
		return WithCapacity(0)
	}

	joined := WithCapacity(len(parts[0]) * 2)
	for i, p := range parts {
		joined.Append(p)
		if i != len(parts)-1 {
			joined.Append(sep)
		}
	}
	return joined
}
