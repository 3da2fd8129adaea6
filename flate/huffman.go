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

package flate

import (
	"fmt"
	"sync"
)

const (
	maxCodeLen = 15  // longest allowed Huffman code (RFC 1951 3.2.1)
	maxNumLit  = 286 // literal/length symbols actually assigned codes
	maxNumDist = 30  // distance symbols actually assigned codes
	numCodes   = 19  // code-length code alphabet size
)

// huffmanDecoder maps deflate bit sequences to symbols for one canonical
// Huffman code. The code is fully determined by the per-symbol bit-length
// list: codes of each length are assigned in ascending symbol order, and
// the first code of each length follows from the counts of shorter codes.
//
// Rather than a pointer-based tree, the decoder keeps the per-length code
// counts and a flat symbol table sorted by (length, symbol). Decoding
// extends a candidate code one bit at a time and checks it against the
// contiguous code range of the current length.
type huffmanDecoder struct {
	count   [maxCodeLen + 1]int // codes per bit length
	symbols []int               // symbols ordered by code value
}

// build constructs the decoder from per-symbol code lengths (0 = unused).
// The length multiset must exactly fill the code space (Kraft equality).
// The single exception is a code consisting of exactly one length-1 code:
// real encoders emit such degenerate distance trees and zlib accepts them,
// so interoperability requires that we do too.
func (h *huffmanDecoder) build(lengths []int) error {
	h.count = [maxCodeLen + 1]int{}
	h.symbols = h.symbols[:0]

	var min, max int
	for _, n := range lengths {
		if n == 0 {
			continue
		}
		if n < 0 || n > maxCodeLen {
			return fmt.Errorf("%w: code length %d out of range", ErrInvalidTable, n)
		}
		if min == 0 || n < min {
			min = n
		}
		if n > max {
			max = n
		}
		h.count[n]++
	}
	if max == 0 {
		// No codes at all. Valid for an unused distance alphabet; any
		// attempt to decode through it fails.
		return nil
	}

	code := 0
	for i := min; i <= max; i++ {
		code <<= 1
		code += h.count[i]
	}
	if code != 1<<uint(max) && !(code == 1 && max == 1) {
		return fmt.Errorf("%w: code space is %d/%d for max length %d",
			ErrInvalidTable, code, 1<<uint(max), max)
	}

	for n := min; n <= max; n++ {
		for sym, l := range lengths {
			if l == n {
				h.symbols = append(h.symbols, sym)
			}
		}
	}
	return nil
}

// decode reads bits until they spell a complete code, and returns the
// symbol it resolves to. Codes are transmitted most-significant bit first
// while the byte stream yields bits least-significant first, so the
// candidate is extended at the low end.
func (h *huffmanDecoder) decode(br *bitReader) (int, error) {
	var code, first, index int
	for n := 1; n <= maxCodeLen; n++ {
		bit, err := br.readBits(1)
		if err != nil {
			return 0, err
		}
		code = code<<1 | int(bit)
		cnt := h.count[n]
		if code-first < cnt {
			return h.symbols[index+code-first], nil
		}
		index += cnt
		first = (first + cnt) << 1
	}
	return 0, fmt.Errorf("%w: bit sequence matches no code at offset %d", ErrCorrupt, br.offset())
}

var (
	fixedOnce    sync.Once
	fixedLiteral huffmanDecoder
	fixedDist    huffmanDecoder
)

// fixedHuffmanTables builds the block-type-1 code tables defined by
// RFC 1951 3.2.6: 288 literal/length symbols with lengths 8/9/7/8 and 32
// distance symbols of length 5. Symbols 286-287 and 30-31 complete the
// code space but are invalid if they ever decode.
func fixedHuffmanTables() (*huffmanDecoder, *huffmanDecoder) {
	fixedOnce.Do(func() {
		var lengths [288]int
		for i := 0; i < 144; i++ {
			lengths[i] = 8
		}
		for i := 144; i < 256; i++ {
			lengths[i] = 9
		}
		for i := 256; i < 280; i++ {
			lengths[i] = 7
		}
		for i := 280; i < 288; i++ {
			lengths[i] = 8
		}
		if err := fixedLiteral.build(lengths[:]); err != nil {
			panic("flate: fixed literal table: " + err.Error())
		}

		var distLengths [32]int
		for i := range distLengths {
			distLengths[i] = 5
		}
		if err := fixedDist.build(distLengths[:]); err != nil {
			panic("flate: fixed distance table: " + err.Error())
		}
	})
	return &fixedLiteral, &fixedDist
}
