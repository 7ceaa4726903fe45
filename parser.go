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
	"github.com/tanelik/runefsm/internal/debug"
)

// Parser is a streaming UTF-8 decoder.
//
// A Parser consumes one code point per [Parser.ParseNext] call and retains
// its progress between calls, so a multi-byte sequence may straddle buffer
// boundaries. A Parser must not be shared between goroutines; independent
// Parser values need no coordination.
//
// The zero Parser is not ready to use; construct one with [NewParser] or
// call [Parser.Reset] first.
type Parser struct {
	// state is the one-hot mask of the current machine state. Exactly one
	// bit is set between calls.
	state uint16

	// cache[0] is the total byte length of the code point in progress;
	// cache[1:1+cache[0]] are its validated bytes so far.
	cache [5]byte

	err errCode
}

// NewParser returns a parser in the initial state.
func NewParser() *Parser {
	p := new(Parser)
	p.Reset()
	return p
}

// Reset restores the initial state in place. Any sequence in progress is
// discarded, as is a sticky error.
func (p *Parser) Reset() {
	*p = Parser{state: stateINI.bit()}
}

// ParseNext consumes the next code point from src, starting at offset
// start.
//
// On success it returns the offset one past the accepted code point and a
// nil error; the validated encoding is available from [Parser.Bytes] and
// its scalar value from [Parser.Scalar]. On malformed input it returns the
// offset of the byte that failed and an error wrapping
// [ErrIllegalSequence]; the failing byte is not consumed and the parser
// keeps the state it had immediately before it. Running out of src while a
// sequence is in progress is an illegal sequence at len(src).
//
// If the parser's state mask is corrupt the error wraps
// [ErrUnrecoverableState], start is returned unchanged, and the parser is
// poisoned.
//
// A NUL byte is an ordinary ASCII byte: accepted at a code point boundary,
// rejected inside a multi-byte sequence.
func (p *Parser) ParseNext(src []byte, start int) (int, error) {
	cur, ok := stateFromBit(p.state)
	if !ok {
		if debug.Enabled {
			debug.Log(nil, "corrupt", "state mask %#04x\ntrace:\n%s", p.state, debug.Stack(2))
		}
		p.err = errCodeUnrecoverableState
		return start, &errParse{errCodeUnrecoverableState, start}
	}

	pos := start
	for {
		if pos < 0 || pos >= len(src) {
			p.err = errCodeIllegalSequence
			return pos, &errParse{errCodeIllegalSequence, pos}
		}

		next, ok := p.step(cur, src[pos])
		if !ok {
			p.err = errCodeIllegalSequence
			return pos, &errParse{errCodeIllegalSequence, pos}
		}
		cur = next
		pos++

		if p.state&(stateASC.bit()|stateCB1.bit()) != 0 {
			p.err = errCodeOk
			return pos, nil
		}
	}
}

// step validates b against the transition rules for cur. If b is a legal
// next byte, the parser state advances and b is pushed into the cache;
// otherwise the parser is left untouched and ok is false.
func (p *Parser) step(cur state, b byte) (_ state, ok bool) {
	mask := byteClass[b] & nextState[cur]

	next, ok := stateFromBit(mask)
	if !ok {
		debug.Log(nil, "step", "%v -> reject on %#02x", cur, b)
		return cur, false
	}

	p.state = mask
	p.push(next, b)
	debug.Log(nil, "step", "%v -> %v on %#02x", cur, next, b)
	return next, true
}

// push writes b into the cache slot owned by the state that accepted it.
//
// A leading or ASCII byte restarts the cache: the expected sequence length
// goes to cache[0] and the byte itself to cache[1]. A continuation byte
// lands at an offset computed from the cached length, because the tail
// states are shared between 2-, 3- and 4-byte sequences and do not identify
// the position on their own.
func (p *Parser) push(next state, b byte) {
	n := seqLen[next]
	if next.leading() {
		p.cache = [5]byte{0: n}
	}
	p.cache[p.cache[0]+1-n] = b
}

// Bytes returns the validated bytes of the last parsed code point.
//
// The slice aliases the parser's internal cache and is only complete if the
// last [Parser.ParseNext] call succeeded.
func (p *Parser) Bytes() []byte {
	return p.cache[1 : 1+p.cache[0]]
}

// Len returns the intended byte length of the last code point. After a
// parse that fails inside a multi-byte sequence this is larger than the
// number of bytes of that sequence consumed so far.
func (p *Parser) Len() int {
	return int(p.cache[0])
}

// ExpectsLeading reports whether the parser is at a code point boundary,
// i.e. the next input byte must be a leading byte or an ASCII byte.
func (p *Parser) ExpectsLeading() bool {
	return p.state&boundaryMask != 0
}

// Err returns the status of the last operation: nil, or one of
// [ErrIllegalSequence] and [ErrUnrecoverableState].
func (p *Parser) Err() error {
	return errs[p.err]
}
