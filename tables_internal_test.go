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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeterminism: the intersection of any byte class with any successor
// mask has at most one bit set, so a transition never has to choose.
func TestDeterminism(t *testing.T) {
	t.Parallel()

	for b := 0; b < 256; b++ {
		for s := state(0); s < numStates; s++ {
			mask := byteClass[b] & nextState[s]
			assert.LessOrEqual(t, bits.OnesCount16(mask), 1,
				"byte %#02x in state %v", b, s)
		}
	}
}

// TestSuccessorMasks: every successor mask stays within the 16 valid
// states and never offers more than the 8 leading-or-ASCII successors.
func TestSuccessorMasks(t *testing.T) {
	t.Parallel()

	for s := state(0); s < numStates; s++ {
		mask := nextState[s]
		assert.LessOrEqual(t, bits.OnesCount16(mask), 8, "state %v", s)
		assert.NotZero(t, mask, "state %v", s)

		for mask != 0 {
			tag := state(bits.TrailingZeros16(mask))
			mask &= mask - 1
			assert.Less(t, tag, state(numStates), "state %v", s)
		}
	}
}

// TestByteRangesMatchClasses: the per-state range descriptors used by the
// graph emitter and the byte classifier describe the same sets, except for
// NUL, which the descriptors leave out of the ASCII node label.
func TestByteRangesMatchClasses(t *testing.T) {
	t.Parallel()

	for s := state(0); s < numStates; s++ {
		r := byteRanges[s]

		inRange := func(b int) bool {
			lo1, hi1 := int(r.start), int(r.start)+int(r.run1)-1
			lo2 := hi1 + 1 + int(r.skip)
			hi2 := lo2 + int(r.run2) - 1
			return (r.run1 != 0 && b >= lo1 && b <= hi1) ||
				(r.run2 != 0 && b >= lo2 && b <= hi2)
		}

		for b := 0; b < 256; b++ {
			classified := byteClass[b]&s.bit() != 0
			if s == stateASC && b == 0 {
				require.True(t, classified)
				continue
			}
			assert.Equal(t, classified, inRange(b),
				"byte %#02x, state %v", b, s)
		}
	}
}

func TestStateFromBit(t *testing.T) {
	t.Parallel()

	for s := state(0); s < numStates; s++ {
		got, ok := stateFromBit(s.bit())
		require.True(t, ok)
		require.Equal(t, s, got)
	}

	for _, mask := range []uint16{0, 0b11, 0b101, 0xffff, 0x8001} {
		_, ok := stateFromBit(mask)
		require.False(t, ok, "mask %#04x", mask)
	}
}

// TestUnrecoverableState poisons a parser's state mask directly; the
// public API can never do this, it models memory corruption.
func TestUnrecoverableState(t *testing.T) {
	t.Parallel()

	for _, mask := range []uint16{0, 0b11, 0xffff} {
		p := NewParser()
		p.state = mask

		next, err := p.ParseNext([]byte("abc"), 0)
		require.ErrorIs(t, err, ErrUnrecoverableState, "mask %#04x", mask)
		require.Equal(t, 0, next, "no input may be consumed")
		require.ErrorIs(t, p.Err(), ErrUnrecoverableState)

		// Reset un-poisons the value; corruption is not sticky across an
		// explicit re-initialization.
		p.Reset()
		require.NoError(t, p.Err())
		_, err = p.ParseNext([]byte("abc"), 0)
		require.NoError(t, err)
	}
}
