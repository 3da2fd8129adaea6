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

// Package flate decodes DEFLATE (RFC 1951) compressed data in a single
// pass over an in-memory buffer. It is the engine underneath package
// gunzip and deliberately exposes no streaming interface: one call
// decodes one complete stream or fails with a typed error.
package flate

import "fmt"

const endBlockMarker = 256

// codeOrder is the fixed permutation in which code-length-code lengths
// appear in a dynamic block header (RFC 1951 3.2.7).
var codeOrder = [numCodes]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// Match lengths for codes 257-285 resolve through these tables to 3-258.
var (
	lengthBase = [29]int{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	lengthExtra = [29]uint{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	}
)

// Distances for codes 0-29 resolve through these tables to 1-32768.
var (
	distBase = [30]int{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
	}
	distExtra = [30]uint{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
)

// decoder walks the deflate block sequence. All state is per-call; the
// zero decoder plus init is ready to use and nothing is shared between
// concurrent decodes.
type decoder struct {
	br *bitReader
	w  *window

	// Dynamic-block tables, reused across blocks to avoid reallocation.
	litDec  huffmanDecoder
	distDec huffmanDecoder

	codeLengths [numCodes]int
	lengths     [maxNumLit + maxNumDist]int
}

// Decompress decodes a complete raw deflate stream from data. It returns
// the decoded bytes and the number of compressed bytes consumed, counted
// to the byte boundary after the final block (the caller needs this to
// find a trailing container checksum). maxSize, when positive, bounds the
// decoded size; exceeding it fails with ErrTooLarge.
func Decompress(data []byte, maxSize int64) ([]byte, int, error) {
	d := decoder{
		br: newBitReader(data),
		w:  newWindow(maxSize),
	}
	if err := d.decode(); err != nil {
		return nil, 0, err
	}
	d.br.alignByte()
	return d.w.bytes(), d.br.offset(), nil
}

// decode runs the block loop: a 3-bit header (final flag + type), then
// the block body, until a block with the final flag set completes.
func (d *decoder) decode() error {
	for {
		final, err := d.br.readBits(1)
		if err != nil {
			return err
		}
		typ, err := d.br.readBits(2)
		if err != nil {
			return err
		}

		switch typ {
		case 0:
			err = d.storedBlock()
		case 1:
			lit, dist := fixedHuffmanTables()
			err = d.huffmanBlock(lit, dist)
		case 2:
			if err = d.readHuffmanTables(); err != nil {
				break
			}
			err = d.huffmanBlock(&d.litDec, &d.distDec)
		default:
			err = fmt.Errorf("%w: reserved block type at offset %d", ErrCorrupt, d.br.offset())
		}
		if err != nil {
			return err
		}

		if final == 1 {
			return nil
		}
	}
}

// storedBlock copies LEN raw bytes after verifying the LEN/NLEN
// one's-complement pair (RFC 1951 3.2.4).
func (d *decoder) storedBlock() error {
	d.br.alignByte()
	var hdr [4]byte
	if err := d.br.readBytes(hdr[:]); err != nil {
		return err
	}
	n := int(hdr[0]) | int(hdr[1])<<8
	nn := int(hdr[2]) | int(hdr[3])<<8
	if uint16(nn) != ^uint16(n) {
		return fmt.Errorf("%w: stored block length checksum at offset %d", ErrCorrupt, d.br.offset())
	}
	if n == 0 {
		return nil
	}
	if err := d.w.grow(n); err != nil {
		return err
	}
	start := d.w.size()
	d.w.buf = d.w.buf[:start+n]
	if err := d.br.readBytes(d.w.buf[start:]); err != nil {
		d.w.buf = d.w.buf[:start]
		return err
	}
	return nil
}

// readHuffmanTables parses a dynamic block's code-length preamble
// (RFC 1951 3.2.7) and builds the literal/length and distance decoders.
func (d *decoder) readHuffmanTables() error {
	hlit, err := d.br.readBits(5)
	if err != nil {
		return err
	}
	hdist, err := d.br.readBits(5)
	if err != nil {
		return err
	}
	hclen, err := d.br.readBits(4)
	if err != nil {
		return err
	}
	nlit := int(hlit) + 257
	ndist := int(hdist) + 1
	nclen := int(hclen) + 4
	if nlit > maxNumLit {
		return fmt.Errorf("%w: HLIT %d exceeds %d", ErrCorrupt, nlit, maxNumLit)
	}
	if ndist > maxNumDist {
		return fmt.Errorf("%w: HDIST %d exceeds %d", ErrCorrupt, ndist, maxNumDist)
	}

	// Code lengths for the code-length alphabet itself, 3 bits each, in
	// the fixed permuted order. Unsent entries are zero.
	for i := 0; i < nclen; i++ {
		v, err := d.br.readBits(3)
		if err != nil {
			return err
		}
		d.codeLengths[codeOrder[i]] = int(v)
	}
	for i := nclen; i < numCodes; i++ {
		d.codeLengths[codeOrder[i]] = 0
	}
	var clDec huffmanDecoder
	if err := clDec.build(d.codeLengths[:]); err != nil {
		return err
	}

	// The literal/length and distance code lengths form one run-length
	// encoded sequence: 0-15 are literal lengths, 16 repeats the previous
	// length 3-6 times, 17 and 18 repeat zero 3-10 and 11-138 times.
	for i, n := 0, nlit+ndist; i < n; {
		sym, err := clDec.decode(d.br)
		if err != nil {
			return err
		}
		if sym < 16 {
			d.lengths[i] = sym
			i++
			continue
		}

		var rep int
		var nb uint
		var fill int
		switch sym {
		case 16:
			if i == 0 {
				return fmt.Errorf("%w: repeat code with no previous length", ErrCorrupt)
			}
			rep, nb, fill = 3, 2, d.lengths[i-1]
		case 17:
			rep, nb, fill = 3, 3, 0
		case 18:
			rep, nb, fill = 11, 7, 0
		}
		extra, err := d.br.readBits(nb)
		if err != nil {
			return err
		}
		rep += int(extra)
		if i+rep > n {
			return fmt.Errorf("%w: repeat code overruns code lengths", ErrCorrupt)
		}
		for ; rep > 0; rep-- {
			d.lengths[i] = fill
			i++
		}
	}

	if err := d.litDec.build(d.lengths[:nlit]); err != nil {
		return err
	}
	return d.distDec.build(d.lengths[nlit : nlit+ndist])
}

// huffmanBlock emits symbols from a compressed block until the
// end-of-block marker: literals append directly, length codes pull their
// extra bits, a distance code, and its extra bits, then replay history
// through the window.
func (d *decoder) huffmanBlock(lit, dist *huffmanDecoder) error {
	for {
		sym, err := lit.decode(d.br)
		if err != nil {
			return err
		}

		switch {
		case sym < endBlockMarker:
			if err := d.w.writeByte(byte(sym)); err != nil {
				return err
			}
			continue
		case sym == endBlockMarker:
			return nil
		case sym >= maxNumLit:
			return fmt.Errorf("%w: reserved length symbol %d at offset %d", ErrCorrupt, sym, d.br.offset())
		}

		li := sym - 257
		length := lengthBase[li]
		if nb := lengthExtra[li]; nb > 0 {
			extra, err := d.br.readBits(nb)
			if err != nil {
				return err
			}
			length += int(extra)
		}

		distSym, err := dist.decode(d.br)
		if err != nil {
			return err
		}
		if distSym >= maxNumDist {
			return fmt.Errorf("%w: reserved distance symbol %d at offset %d", ErrCorrupt, distSym, d.br.offset())
		}
		distance := distBase[distSym]
		if nb := distExtra[distSym]; nb > 0 {
			extra, err := d.br.readBits(nb)
			if err != nil {
				return err
			}
			distance += int(extra)
		}

		if err := d.w.writeCopy(distance, length); err != nil {
			return err
		}
	}
}
