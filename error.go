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
	"errors"
	"fmt"
)

const (
	errCodeOk errCode = iota
	errCodeIllegalSequence
	errCodeUnrecoverableState
	errCodeTruncatedOutput
	errCodeBadOutput
)

type errCode int

// Sentinel errors reported by this package. Errors returned by
// [Parser.ParseNext] and [EmitGraph] wrap one of these, so callers can
// classify them with [errors.Is]. [WriteGraph] returns the writer's own
// error unchanged.
var (
	// ErrIllegalSequence reports a byte that cannot extend the UTF-8
	// sequence in progress. Recoverable: reset the parser and continue.
	ErrIllegalSequence = errors.New("illegal byte sequence")

	// ErrUnrecoverableState reports a parser whose state mask is corrupt.
	// The parser instance is poisoned.
	ErrUnrecoverableState = errors.New("parser state is unrecoverable")

	// ErrTruncatedOutput reports that a caller-owned output buffer filled
	// up before the graph description was complete.
	ErrTruncatedOutput = errors.New("output buffer truncated")

	// ErrBadOutput reports a nil output buffer.
	ErrBadOutput = errors.New("nil output buffer")
)

var errs = [...]error{
	errCodeOk:                 nil,
	errCodeIllegalSequence:    ErrIllegalSequence,
	errCodeUnrecoverableState: ErrUnrecoverableState,
	errCodeTruncatedOutput:    ErrTruncatedOutput,
	errCodeBadOutput:          ErrBadOutput,
}

// errParse is an error returned by the FSM parser.
type errParse struct {
	code   errCode
	offset int
}

// Offset returns the offset at which the error occurred.
func (e *errParse) Offset() int {
	return e.offset
}

// Unwrap implements error unwrapping viz [errors.Unwrap].
func (e *errParse) Unwrap() error {
	return errs[e.code]
}

// Error implements [error].
func (e *errParse) Error() string {
	return fmt.Sprintf("runefsm: parser error at offset %d/%#x: %v", e.offset, e.offset, e.Unwrap())
}
