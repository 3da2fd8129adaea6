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
	"errors"

	"github.com/rgzip/rgzip/flate"
)

var (
	// ErrUnsupported is returned for inputs that are not gzip at all or
	// use a compression method other than deflate.
	ErrUnsupported = errors.New("unsupported gzip format")

	// ErrChecksum is returned when the trailer CRC-32 or size field, or
	// an FHCRC header checksum, disagrees with the decoded data.
	ErrChecksum = errors.New("gzip checksum mismatch")
)

// Failures originating in the deflate engine surface unchanged, so one
// errors.Is check works at the boundary regardless of which layer failed.
var (
	ErrTruncated       = flate.ErrTruncated
	ErrInvalidTable    = flate.ErrInvalidTable
	ErrCorrupt         = flate.ErrCorrupt
	ErrInvalidDistance = flate.ErrInvalidDistance
	ErrTooLarge        = flate.ErrTooLarge
)
