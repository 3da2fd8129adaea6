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

import "errors"

var (
	// ErrTruncated is returned when the compressed stream ends in the
	// middle of a block, a Huffman code, or a stored-block payload.
	ErrTruncated = errors.New("truncated deflate stream")

	// ErrInvalidTable is returned when a code-length assignment does not
	// describe a valid canonical Huffman code (over- or under-subscribed
	// code space).
	ErrInvalidTable = errors.New("invalid huffman table")

	// ErrCorrupt is returned when a decoded value has no valid
	// interpretation: a reserved block type or symbol, a stored-block
	// length checksum mismatch, or a bit sequence matching no code.
	ErrCorrupt = errors.New("corrupt deflate stream")

	// ErrInvalidDistance is returned when a back-reference points before
	// the start of the decoded output.
	ErrInvalidDistance = errors.New("invalid back-reference distance")

	// ErrTooLarge is returned when the decoded output would exceed the
	// caller-imposed size limit.
	ErrTooLarge = errors.New("decompressed output too large")
)
