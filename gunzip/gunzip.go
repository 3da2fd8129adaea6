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

// Package gunzip decodes gzip (RFC 1952) members from in-memory buffers.
//
// Unlike compress/gzip this is not a streaming reader: Decompress takes
// the whole compressed input and returns the whole decoded output, sized
// exactly, or fails with a typed error and no output at all. Only the
// first gzip member of the input is decoded; trailing bytes are ignored.
//
// Every call is self-contained, so concurrent calls on independent
// buffers need no coordination.
package gunzip

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/rgzip/rgzip/flate"
)

// minValidLen is the smallest conceivable gzip member: a bare 10-byte
// header followed by the 8-byte trailer. Shorter inputs are rejected
// before any decoding work or output allocation.
const minValidLen = fixedHeaderLen + trailerLen

// Decompress decodes the first gzip member in data and returns the
// uncompressed bytes. The returned slice is freshly allocated and owned
// by the caller. On any failure the result is nil: partially decoded
// output is never exposed.
func Decompress(data []byte) ([]byte, error) {
	out, _, err := decompress(data, 0)
	return out, err
}

// DecompressLimit is Decompress with an output-size guard: decoding fails
// with ErrTooLarge as soon as the output would exceed maxSize bytes.
// A highly repetitive stream can legally expand by a factor of ~1000, so
// callers handling untrusted input should set a limit. maxSize <= 0 means
// no limit.
func DecompressLimit(data []byte, maxSize int64) ([]byte, error) {
	out, _, err := decompress(data, maxSize)
	return out, err
}

// DecompressHeader is DecompressLimit but additionally returns the parsed
// member header for callers interested in the embedded metadata.
func DecompressHeader(data []byte, maxSize int64) ([]byte, Header, error) {
	return decompress(data, maxSize)
}

func decompress(data []byte, maxSize int64) ([]byte, Header, error) {
	if len(data) < minValidLen {
		return nil, Header{}, fmt.Errorf("%w: %d bytes is shorter than a minimal gzip member", ErrTruncated, len(data))
	}

	hdr, headerLen, err := ParseHeader(data)
	if err != nil {
		return nil, Header{}, err
	}

	out, n, err := flate.Decompress(data[headerLen:], maxSize)
	if err != nil {
		return nil, Header{}, err
	}

	trailer := data[headerLen+n:]
	if len(trailer) < trailerLen {
		return nil, Header{}, fmt.Errorf("%w: stream ends inside the trailer", ErrTruncated)
	}
	wantCRC := binary.LittleEndian.Uint32(trailer[0:4])
	wantSize := binary.LittleEndian.Uint32(trailer[4:8])

	if crc := crc32.ChecksumIEEE(out); crc != wantCRC {
		return nil, Header{}, fmt.Errorf("%w: crc32 %#08x, trailer says %#08x", ErrChecksum, crc, wantCRC)
	}
	if size := uint32(len(out)); size != wantSize {
		return nil, Header{}, fmt.Errorf("%w: decoded %d bytes, trailer says %d (mod 2^32)", ErrChecksum, len(out), wantSize)
	}

	return out, hdr, nil
}
