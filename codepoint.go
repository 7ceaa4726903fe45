// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package runefsm

import (
	"github.com/tanelik/runefsm/internal/ucp"
)

// BadCodePoint is the sentinel returned by the layout conversions when the
// size argument does not name a UTF-8 encoding length.
const BadCodePoint = ucp.Bad

// UTF8ToUTF32 converts the packed UTF-8 encoding of a single code point
// into its UTF-32 scalar value. enc holds the size encoded bytes in
// little-endian order; size must be in 1..4 or the result is
// [BadCodePoint].
//
// The conversion is a pure bit shuffle with no validation: feeding it bytes
// that are not a well-formed encoding of length size yields garbage, not an
// error. Use a [Parser] to validate first.
func UTF8ToUTF32(enc uint32, size int) uint32 {
	if size < 0 || size > 255 {
		return BadCodePoint
	}
	return ucp.ToUTF32(enc, ucp.Kind(size))
}

// UTF32ToUTF8 converts a UTF-32 scalar value into its packed UTF-8
// encoding of the given size, marker bits included, in little-endian byte
// order. size must be in 1..4 or the result is [BadCodePoint].
//
// Like [UTF8ToUTF32] this performs no validation: it will happily encode a
// surrogate, an out-of-range scalar, or an overlong form if asked to.
func UTF32ToUTF8(scalar uint32, size int) uint32 {
	if size < 0 || size > 255 {
		return BadCodePoint
	}
	return ucp.ToUTF8(scalar, ucp.Kind(size).AsUTF32())
}

// Scalar returns the UTF-32 scalar value of the last parsed code point as a
// rune.
//
// The result is only meaningful immediately after a successful
// [Parser.ParseNext] call; at any other time Scalar returns -1.
func (p *Parser) Scalar() rune {
	if p.err != errCodeOk || p.cache[0] == 0 {
		return -1
	}

	enc := uint32(p.cache[1]) |
		uint32(p.cache[2])<<8 |
		uint32(p.cache[3])<<16 |
		uint32(p.cache[4])<<24
	return rune(ucp.ToUTF32(enc, ucp.Kind(p.cache[0])))
}
