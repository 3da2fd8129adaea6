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

import "fmt"

// bitReader consumes a byte slice as a deflate bit stream: bits are
// delivered least-significant-bit first within each byte. The slice is
// never modified. Reading past the end fails with ErrTruncated rather
// than panicking, so untrusted input cannot drive an out-of-bounds read.
type bitReader struct {
	data []byte
	pos  int // next byte to load into the bit buffer

	// Pending bits, LSB-aligned. nb is the number of valid bits in b.
	b  uint32
	nb uint
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// moreBits loads one more byte into the bit buffer.
func (br *bitReader) moreBits() error {
	if br.pos >= len(br.data) {
		return fmt.Errorf("%w: need bits at offset %d", ErrTruncated, br.pos)
	}
	br.b |= uint32(br.data[br.pos]) << br.nb
	br.pos++
	br.nb += 8
	return nil
}

// readBits returns the next n bits (n <= 16), assembled LSB-first.
func (br *bitReader) readBits(n uint) (uint32, error) {
	for br.nb < n {
		if err := br.moreBits(); err != nil {
			return 0, err
		}
	}
	v := br.b & (1<<n - 1)
	br.b >>= n
	br.nb -= n
	return v, nil
}

// alignByte discards any partially consumed byte. Deflate requires this
// before a stored block's LEN/NLEN pair, and gzip before the trailer.
func (br *bitReader) alignByte() {
	discard := br.nb % 8
	br.b >>= discard
	br.nb -= discard
}

// readBytes fills p from the byte-aligned stream. The caller must call
// alignByte first, which leaves the bit buffer empty: readBits never
// buffers a full byte ahead, so aligning always discards at most 7 bits.
func (br *bitReader) readBytes(p []byte) error {
	n := copy(p, br.data[br.pos:])
	br.pos += n
	if n < len(p) {
		return fmt.Errorf("%w: need %d more bytes at offset %d", ErrTruncated, len(p)-n, br.pos)
	}
	return nil
}

// offset returns the stream position in whole bytes; a partially
// consumed byte counts as read. Used for error context and to locate the
// gzip trailer after the final block (where alignByte has emptied the
// bit buffer, making this exact).
func (br *bitReader) offset() int {
	return br.pos
}
