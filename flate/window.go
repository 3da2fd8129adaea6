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

// WindowSize is the deflate sliding-window bound: no back-reference may
// reach further than this many bytes behind the write position.
const WindowSize = 32768

const initialWindowCap = 4096

// window is the decoded output buffer. It plays two roles at once: it
// accumulates the final result, and it is the LZ77 history that
// back-references copy from. Keeping both in one contiguous, index-addressed
// slice means a match is just a copy within the slice, and the whole buffer
// can be handed to the caller when decoding finishes.
//
// The buffer grows geometrically since the decoded size is unknown until
// the stream ends. limit, when positive, caps the decoded size so a
// decompression bomb cannot grow memory without bound.
type window struct {
	buf   []byte
	limit int64 // <= 0 means unlimited
}

func newWindow(limit int64) *window {
	return &window{
		buf:   make([]byte, 0, initialWindowCap),
		limit: limit,
	}
}

func (w *window) size() int { return len(w.buf) }

// bytes returns the decoded output. Ownership transfers to the caller;
// the window must not be written to afterwards.
func (w *window) bytes() []byte { return w.buf }

func (w *window) grow(n int) error {
	if w.limit > 0 && int64(len(w.buf))+int64(n) > w.limit {
		return fmt.Errorf("%w: output exceeds %d bytes", ErrTooLarge, w.limit)
	}
	need := len(w.buf) + n
	if need <= cap(w.buf) {
		return nil
	}
	newCap := cap(w.buf) * 2
	if newCap < initialWindowCap {
		newCap = initialWindowCap
	}
	for newCap < need {
		newCap *= 2
	}
	grown := make([]byte, len(w.buf), newCap)
	copy(grown, w.buf)
	w.buf = grown
	return nil
}

func (w *window) writeByte(c byte) error {
	if err := w.grow(1); err != nil {
		return err
	}
	w.buf = append(w.buf, c)
	return nil
}

func (w *window) writeBytes(p []byte) error {
	if err := w.grow(len(p)); err != nil {
		return err
	}
	w.buf = append(w.buf, p...)
	return nil
}

// writeCopy replays a back-reference: length bytes starting dist bytes
// before the current end. Source and destination overlap whenever
// dist < length; the copy must proceed forward so already-replayed bytes
// become the source for the rest (that is how deflate encodes runs).
func (w *window) writeCopy(dist, length int) error {
	if dist <= 0 || dist > len(w.buf) {
		return fmt.Errorf("%w: distance %d with only %d bytes of history", ErrInvalidDistance, dist, len(w.buf))
	}
	if err := w.grow(length); err != nil {
		return err
	}
	srcPos := len(w.buf) - dist
	dstPos := len(w.buf)
	w.buf = w.buf[:dstPos+length]
	endPos := dstPos + length
	for dstPos < endPos {
		// Doubles the copied span each pass once dist < length.
		dstPos += copy(w.buf[dstPos:endPos], w.buf[srcPos:dstPos])
	}
	return nil
}
