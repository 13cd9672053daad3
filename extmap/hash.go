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

import "github.com/cespare/xxhash/v2"

const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
)

// HashBytes is a convenience hasher over raw key bytes: 32-bit FNV-1a, one
// XOR-then-multiply step per byte, no finalization mixing. Returning 0 or 1
// is fine; the Map remaps those away from its sentinel values itself.
func HashBytes(data []byte) uint32 {
	h := fnvOffsetBasis
	for _, b := range data {
		h ^= uint32(b)
		h *= fnvPrime
	}
	return h
}

// HashString is a convenience hasher for string keys, xxhash truncated to
// 32 bits. Prefer it over HashBytes for anything longer than a handful of
// bytes.
func HashString(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

// HashUint64 is a convenience hasher for integer keys, a single round of
// multiplicative mixing so sequential keys don't probe sequential slots.
func HashUint64(v uint64) uint32 {
	v *= 0x9e3779b97f4a7c15
	return uint32(v >> 32)
}
