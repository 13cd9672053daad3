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

package extvec

import (
	"testing"

	"github.com/emirpasic/gods/lists/arraylist"
)

const benchmarkItemCount = 1024

func BenchmarkPushVector(b *testing.B) {
	for n := 0; n < b.N; n++ {
		var v Vector[int]
		for i := 0; i < benchmarkItemCount; i++ {
			v.Push(i)
		}
	}
}

func BenchmarkPushSlice(b *testing.B) {
	for n := 0; n < b.N; n++ {
		var s []int
		for i := 0; i < benchmarkItemCount; i++ {
			s = append(s, i)
		}
	}
}

// gods' ArrayList stores interface{} values, so this also measures boxing.
func BenchmarkPushArrayList(b *testing.B) {
	for n := 0; n < b.N; n++ {
		l := arraylist.New()
		for i := 0; i < benchmarkItemCount; i++ {
			l.Add(i)
		}
	}
}

func BenchmarkIndexVector(b *testing.B) {
	var v Vector[int]
	for i := 0; i < benchmarkItemCount; i++ {
		v.Push(i)
	}
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		for i := 0; i < benchmarkItemCount; i++ {
			if v.At(i) != i {
				b.Fail()
			}
		}
	}
}

func BenchmarkIndexArrayList(b *testing.B) {
	l := arraylist.New()
	for i := 0; i < benchmarkItemCount; i++ {
		l.Add(i)
	}
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		for i := 0; i < benchmarkItemCount; i++ {
			if e, _ := l.Get(i); e != i {
				b.Fail()
			}
		}
	}
}
