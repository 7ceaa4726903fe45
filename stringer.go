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
	"fmt"

	"github.com/tanelik/runefsm/internal/debug"
)

// Stringer implementations for various internal types. These are only
// relevant for debugging and are thus placed off to the side here.

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Format implements [fmt.Formatter].
func (p *Parser) Format(s fmt.State, verb rune) {
	st := any(debug.Fprintf("%#04x", p.state))
	if dec, ok := stateFromBit(p.state); ok {
		st = dec
	}

	debug.Dict("Parser",
		"state", st,
		"cache", debug.Fprintf("% 02x", p.cache),
		"err", func() any {
			if p.err == errCodeOk {
				return nil
			}
			return errs[p.err]
		}(),
	).Format(s, verb)
}
