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

package gunzip

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"time"
)

const (
	gzipID1     = 0x1f
	gzipID2     = 0x8b
	gzipDeflate = 8

	// Header flag bits (RFC 1952 2.3.1).
	flagText    = 1 << 0
	flagHdrCRC  = 1 << 1
	flagExtra   = 1 << 2
	flagName    = 1 << 3
	flagComment = 1 << 4

	fixedHeaderLen = 10
	trailerLen     = 8
)

// Header holds the gzip member header metadata. All fields are optional
// producer hints except OS; none of them affect decompression.
type Header struct {
	Name    string    // original filename, if present
	Comment string    // file comment, if present
	Extra   []byte    // raw FEXTRA payload, if present
	ModTime time.Time // modification time, zero if unset
	OS      byte      // operating system identifier, 255 = unknown
	Text    bool      // FTEXT hint: content is probably text
}

// ParseHeader reads a gzip member header from the start of data and
// returns it along with its encoded length. The magic bytes and
// compression method are checked before anything else, so a non-gzip
// input is rejected without any decompression work.
func ParseHeader(data []byte) (Header, int, error) {
	var hdr Header
	if len(data) < fixedHeaderLen {
		return hdr, 0, fmt.Errorf("%w: %d bytes is shorter than a gzip header", ErrTruncated, len(data))
	}
	if data[0] != gzipID1 || data[1] != gzipID2 {
		return hdr, 0, fmt.Errorf("%w: bad magic bytes %#02x %#02x", ErrUnsupported, data[0], data[1])
	}
	if data[2] != gzipDeflate {
		return hdr, 0, fmt.Errorf("%w: compression method %d", ErrUnsupported, data[2])
	}

	flags := data[3]
	if mtime := binary.LittleEndian.Uint32(data[4:8]); mtime != 0 {
		hdr.ModTime = time.Unix(int64(mtime), 0)
	}
	// data[8] is XFL, a compressor hint with no bearing on decoding.
	hdr.OS = data[9]
	hdr.Text = flags&flagText != 0

	pos := fixedHeaderLen

	if flags&flagExtra != 0 {
		if pos+2 > len(data) {
			return hdr, 0, fmt.Errorf("%w: header ends inside FEXTRA length", ErrTruncated)
		}
		xlen := int(binary.LittleEndian.Uint16(data[pos : pos+2]))
		pos += 2
		if pos+xlen > len(data) {
			return hdr, 0, fmt.Errorf("%w: header ends inside FEXTRA data", ErrTruncated)
		}
		hdr.Extra = data[pos : pos+xlen]
		pos += xlen
	}

	if flags&flagName != 0 {
		s, next, err := readCString(data, pos, "FNAME")
		if err != nil {
			return hdr, 0, err
		}
		hdr.Name = s
		pos = next
	}

	if flags&flagComment != 0 {
		s, next, err := readCString(data, pos, "FCOMMENT")
		if err != nil {
			return hdr, 0, err
		}
		hdr.Comment = s
		pos = next
	}

	if flags&flagHdrCRC != 0 {
		if pos+2 > len(data) {
			return hdr, 0, fmt.Errorf("%w: header ends inside FHCRC", ErrTruncated)
		}
		stored := binary.LittleEndian.Uint16(data[pos : pos+2])
		computed := uint16(crc32.ChecksumIEEE(data[:pos]))
		pos += 2
		if stored != computed {
			return hdr, 0, fmt.Errorf("%w: header crc16 %#04x, computed %#04x", ErrChecksum, stored, computed)
		}
	}

	return hdr, pos, nil
}

// readCString reads a NUL-terminated latin-1 string starting at pos.
func readCString(data []byte, pos int, field string) (string, int, error) {
	end := pos
	for end < len(data) && data[end] != 0 {
		end++
	}
	if end == len(data) {
		return "", 0, fmt.Errorf("%w: unterminated %s field", ErrTruncated, field)
	}
	return string(data[pos:end]), end + 1, nil
}
