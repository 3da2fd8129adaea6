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
	"bytes"
	"errors"
	"testing"
)

func TestReadBitsLSBFirst(t *testing.T) {
	// 00000001 00000010 00000011 00000100, read LSB-first.
	br := newBitReader([]byte{1, 2, 3, 4})

	v, err := br.readBits(9)
	if err != nil {
		t.Fatalf("readBits(9): %v", err)
	}
	if v != 1 {
		t.Fatalf("first 9 bits = %d, want 1", v)
	}

	v, err = br.readBits(9)
	if err != nil {
		t.Fatalf("readBits(9): %v", err)
	}
	if v != 385 {
		t.Fatalf("second 9 bits = %d, want 385", v)
	}
}

func TestReadBitsSingle(t *testing.T) {
	br := newBitReader([]byte{1, 2, 3, 4})

	// Bit positions of the set bits in the 32-bit stream: 0, 9, 16, 17, 26.
	want := map[int]uint32{0: 1, 9: 1, 16: 1, 17: 1, 26: 1}
	for i := 0; i < 32; i++ {
		v, err := br.readBits(1)
		if err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
		if v != want[i] {
			t.Fatalf("bit %d = %d, want %d", i, v, want[i])
		}
	}

	if _, err := br.readBits(1); !errors.Is(err, ErrTruncated) {
		t.Fatalf("read past end = %v, want ErrTruncated", err)
	}
}

func TestReadBitsTruncated(t *testing.T) {
	br := newBitReader([]byte{0xff})
	if _, err := br.readBits(9); !errors.Is(err, ErrTruncated) {
		t.Fatalf("readBits(9) of 1 byte = %v, want ErrTruncated", err)
	}
}

func TestAlignByte(t *testing.T) {
	br := newBitReader([]byte{0b00000101, 0xaa})

	v, err := br.readBits(3)
	if err != nil {
		t.Fatal(err)
	}
	if v != 5 {
		t.Fatalf("readBits(3) = %d, want 5", v)
	}

	br.alignByte()
	v, err = br.readBits(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xaa {
		t.Fatalf("byte after align = %#02x, want 0xaa", v)
	}
}

func TestAlignByteAlreadyAligned(t *testing.T) {
	br := newBitReader([]byte{0x12, 0x34})
	if _, err := br.readBits(8); err != nil {
		t.Fatal(err)
	}
	br.alignByte() // no-op on a byte boundary
	v, err := br.readBits(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x34 {
		t.Fatalf("got %#02x, want 0x34", v)
	}
}

func TestReadBytes(t *testing.T) {
	br := newBitReader([]byte{0x0f, 0x01, 0x02, 0x03})

	if _, err := br.readBits(4); err != nil {
		t.Fatal(err)
	}
	br.alignByte()

	got := make([]byte, 3)
	if err := br.readBytes(got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("readBytes = %v, want [1 2 3]", got)
	}

	if err := br.readBytes(make([]byte, 1)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("readBytes past end = %v, want ErrTruncated", err)
	}
}

func TestOffset(t *testing.T) {
	br := newBitReader([]byte{1, 2, 3, 4})
	if br.offset() != 0 {
		t.Fatalf("initial offset = %d, want 0", br.offset())
	}
	if _, err := br.readBits(3); err != nil {
		t.Fatal(err)
	}
	// Partially consumed byte counts as read.
	if br.offset() != 1 {
		t.Fatalf("offset after 3 bits = %d, want 1", br.offset())
	}
	br.alignByte()
	if _, err := br.readBits(16); err != nil {
		t.Fatal(err)
	}
	if br.offset() != 3 {
		t.Fatalf("offset = %d, want 3", br.offset())
	}
}
