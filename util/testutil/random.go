/*
   Copyright The Rgzip Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package testutil

import (
	"hash/fnv"
	"math/rand/v2"
	"testing"
)

// Seed rand source
const TestRandomSeed = 7381592846103164513

// TestRand wraps rand/v2 Rand with helpers for generating test payloads.
// It is seeded with TestRandomSeed plus the calling test's name, so runs
// are deterministic per test while different tests see different data.
// Not thread-safe; keep all use within one goroutine.
type TestRand struct {
	*rand.Rand
}

// NewTestRand returns a deterministic random source for t.
func NewTestRand(t testing.TB) *TestRand {
	h := fnv.New64a()
	h.Write([]byte(t.Name()))
	return &TestRand{rand.New(rand.NewPCG(TestRandomSeed, h.Sum64()))}
}

func (r *TestRand) Read(b []byte) {
	for i := range b {
		b[i] = byte(r.Int64())
	}
}

// RandomByteData returns size bytes of uniformly random data. Random
// bytes are nearly incompressible, so streams built from them are mostly
// literals.
func (r *TestRand) RandomByteData(size int64) []byte {
	b := make([]byte, size)
	r.Read(b)
	return b
}

// RandomTextData returns a byte slice of length between minBytes and
// maxBytes drawn from a small alphabet. Text-like data compresses well
// and produces streams dense with back-references.
func (r *TestRand) RandomTextData(minBytes, maxBytes int) []byte {
	const charset = "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" + " "

	n := r.IntN(maxBytes-minBytes) + minBytes
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[r.IntN(len(charset))]
	}
	return b
}
