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
	"math/bits"

	"github.com/tanelik/runefsm/internal/debug"
)

// state is a parser state, numbered so that transitions can be encoded as
// bitmasks: the one-hot value 1<<s is what the lookup tables traffic in.
//
// States 0 through 7 are entered on a leading byte or an ASCII byte, states
// 8 through 14 on a continuation byte, and state 15 is the initial state.
// States stateASC, stateCB1 and stateINI mark code point boundaries and can
// be followed by any of the 8 leading-byte states. The remaining 13 states
// have exactly one legal successor.
//
// Not every leading byte may be followed by every continuation byte value,
// which is why continuation states come in several flavors. Three encoding
// restrictions drive the split:
//
//  1. Overlong encodings: the leading bytes 0xc0-0xc1 are rejected
//     outright, and the first continuation byte after 0xe0 and 0xf0 has a
//     raised lower bound.
//
//  2. Surrogate code points: the first continuation byte after 0xed has a
//     lowered upper bound.
//
//  3. Code points above 0x10ffff: the leading bytes 0xf5-0xff are rejected
//     outright, and the first continuation byte after 0xf4 has a lowered
//     upper bound.
type state uint8

const (
	stateASC   state = iota // ASCII, never followed by a continuation byte
	stateLB2                // start of 2-byte sequence, any continuation may follow
	stateLB3E0              // start of 3-byte sequence, next byte must be 0xa0-0xbf
	stateLB3                // start of 3-byte sequence, any continuation may follow
	stateLB3ED              // start of 3-byte sequence, next byte must be 0x80-0x9f
	stateLB4F0              // start of 4-byte sequence, next byte must be 0x90-0xbf
	stateLB4                // start of 4-byte sequence, any continuation may follow
	stateLB4F4              // start of 4-byte sequence, next byte must be 0x80-0x8f
	stateCB3F4              // 3rd-to-last continuation, follows 0xf4
	stateCB3                // 3rd-to-last continuation, follows 0xf1-0xf3
	stateCB3F0              // 3rd-to-last continuation, follows 0xf0
	stateCB2ED              // 2nd-to-last continuation, follows 0xed
	stateCB2                // 2nd-to-last continuation, follows 0xe1-0xec,0xee-0xef
	stateCB2E0              // 2nd-to-last continuation, follows 0xe0
	stateCB1                // last continuation, common to all multi-byte sequences
	stateINI                // initial state, never set in the byte lookup table

	numStates = 16
)

// bit returns the one-hot mask for s.
func (s state) bit() uint16 { return 1 << s }

// leading reports whether s is entered on a leading byte or an ASCII byte.
func (s state) leading() bool { return s < 8 }

// stateFromBit converts a one-hot state mask back into a state enumeration.
// ok is false if mask is zero, has more than one bit set, or is out of
// range; in that case the mask does not name a state at all.
func stateFromBit(mask uint16) (_ state, ok bool) {
	if mask == 0 || mask&(mask-1) != 0 {
		return 0, false
	}
	return state(bits.TrailingZeros16(mask)), true
}

// boundaryMask covers the states at which a whole code point has just been
// accepted, or nothing has been consumed yet.
const boundaryMask = uint16(1<<stateASC | 1<<stateCB1 | 1<<stateINI)

// leadingMask covers the states entered on a leading or ASCII byte; it is
// the successor set of every boundary state.
const leadingMask = uint16(1<<stateASC | 1<<stateLB2 | 1<<stateLB3E0 |
	1<<stateLB3 | 1<<stateLB3ED | 1<<stateLB4F0 | 1<<stateLB4 | 1<<stateLB4F4)

// byteClass maps each input byte to the mask of states it may legally
// enter. A zero entry means the byte is never valid in any context.
var byteClass = func() (lut [256]uint16) {
	set := func(lo, hi int, mask uint16) {
		for b := lo; b <= hi; b++ {
			lut[b] = mask
		}
	}

	set(0x00, 0x7f, stateASC.bit())

	set(0x80, 0x8f, stateCB3.bit()|stateCB3F4.bit()|stateCB2.bit()|stateCB2ED.bit()|stateCB1.bit())
	set(0x90, 0x9f, stateCB3.bit()|stateCB3F0.bit()|stateCB2.bit()|stateCB2ED.bit()|stateCB1.bit())
	set(0xa0, 0xbf, stateCB3.bit()|stateCB3F0.bit()|stateCB2.bit()|stateCB2E0.bit()|stateCB1.bit())

	// 0xc0-0xc1: overlong, always illegal.
	set(0xc2, 0xdf, stateLB2.bit())
	set(0xe0, 0xe0, stateLB3E0.bit())
	set(0xe1, 0xec, stateLB3.bit())
	set(0xed, 0xed, stateLB3ED.bit())
	set(0xee, 0xef, stateLB3.bit())
	set(0xf0, 0xf0, stateLB4F0.bit())
	set(0xf1, 0xf3, stateLB4.bit())
	set(0xf4, 0xf4, stateLB4F4.bit())
	// 0xf5-0xff: out of Unicode range, always illegal.

	return lut
}()

// nextState maps each state to the mask of states that may follow it.
var nextState = [numStates]uint16{
	stateASC:   leadingMask,
	stateLB2:   stateCB1.bit(),
	stateLB3E0: stateCB2E0.bit(),
	stateLB3:   stateCB2.bit(),
	stateLB3ED: stateCB2ED.bit(),
	stateLB4F0: stateCB3F0.bit(),
	stateLB4:   stateCB3.bit(),
	stateLB4F4: stateCB3F4.bit(),
	stateCB3F4: stateCB2.bit(),
	stateCB3:   stateCB2.bit(),
	stateCB3F0: stateCB2.bit(),
	stateCB2ED: stateCB1.bit(),
	stateCB2:   stateCB1.bit(),
	stateCB2E0: stateCB1.bit(),
	stateCB1:   leadingMask,
	stateINI:   leadingMask,
}

// seqLen maps each leading or ASCII state to the total byte length of the
// code point it starts, and each continuation state to the number of bytes
// from that state to the end of the sequence, itself included.
// stateCB1/CB2/CB3 are shared between sequence lengths, so the parser
// recovers the true position from the length cached when the leading byte
// was accepted.
var seqLen = [numStates]uint8{
	stateASC:   1,
	stateLB2:   2,
	stateLB3E0: 3,
	stateLB3:   3,
	stateLB3ED: 3,
	stateLB4F0: 4,
	stateLB4:   4,
	stateLB4F4: 4,
	stateCB3F4: 3,
	stateCB3:   3,
	stateCB3F0: 3,
	stateCB2ED: 2,
	stateCB2:   2,
	stateCB2E0: 2,
	stateCB1:   1,
	stateINI:   0,
}

// stateNames are the short labels used in traces and stringers.
var stateNames = [numStates]string{
	"asc", "lb2", "lb3_e0", "lb3", "lb3_ed", "lb4_f0", "lb4", "lb4_f4",
	"cb3_f4", "cb3", "cb3_f0", "cb2_ed", "cb2", "cb2_e0", "cb1", "ini",
}

func init() {
	if !debug.Enabled {
		return
	}
	// Self-test: every (byte, state) pair must have at most one successor.
	for b, mask := range byteClass {
		for s, next := range nextState {
			debug.Assert(bits.OnesCount16(mask&next) <= 1,
				"ambiguous transition: byte %#02x in state %s", b, stateNames[s])
		}
	}
}

// byteRange describes the (possibly split) range of byte values that enter
// a state: a run of run1 values starting at start, a gap of skip excluded
// values, then a second run of run2 values. The split shape captures
// stateLB3, whose leaders are 0xe1-0xec and 0xee-0xef.
type byteRange struct {
	start uint8
	run1  uint8
	skip  uint8
	run2  uint8
}

// byteRanges gives the entry range for each state. stateINI is empty: no
// byte leads into the initial state.
var byteRanges = [numStates]byteRange{
	stateASC:   {0x01, 127, 0, 0},
	stateLB2:   {0xc2, 30, 0, 0},
	stateLB3E0: {0xe0, 1, 0, 0},
	stateLB3:   {0xe1, 12, 1, 2},
	stateLB3ED: {0xed, 1, 0, 0},
	stateLB4F0: {0xf0, 1, 0, 0},
	stateLB4:   {0xf1, 3, 0, 0},
	stateLB4F4: {0xf4, 1, 0, 0},
	stateCB3F4: {0x80, 16, 0, 0},
	stateCB3:   {0x80, 64, 0, 0},
	stateCB3F0: {0x90, 48, 0, 0},
	stateCB2ED: {0x80, 32, 0, 0},
	stateCB2:   {0x80, 64, 0, 0},
	stateCB2E0: {0xa0, 32, 0, 0},
	stateCB1:   {0x80, 64, 0, 0},
	stateINI:   {},
}
