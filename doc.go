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

// Package runefsm is a streaming UTF-8 decoder built around a sixteen-state
// finite-state machine with lookup-table driven transitions.
//
// To use this package, construct a [Parser] with [NewParser] and feed it a
// byte slice one code point at a time with [Parser.ParseNext]. The parser
// keeps its progress between calls, so a multi-byte sequence may be split
// across buffers. After each successful call the validated encoding is
// available through [Parser.Bytes] and its scalar value through
// [Parser.Scalar].
//
// The state machine rejects every sequence forbidden by the UTF-8 encoding
// scheme at the earliest possible byte: overlong encodings, surrogate code
// points, and code points above U+10FFFF all fail on the first byte that
// commits to them. That is the leading byte for 0xc0-0xc1 and 0xf5-0xff,
// and the first continuation byte otherwise.
//
// # Errors
//
// Malformed input is reported as an error wrapping [ErrIllegalSequence]
// together with the byte offset that failed; the parser state is left as it
// was before the failing byte, so callers may substitute U+FFFD, reset, and
// continue. [ErrUnrecoverableState] signals a corrupted parser value and
// cannot occur through normal use of the public API.
//
// # Diagnostics
//
// [WriteGraph] and [EmitGraph] render the transition tables as a Graphviz
// dot description, which doubles as an executable witness of the transition
// relation.
package runefsm
