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

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		cfg     scanConfig
		want    string
		bytes   int
		chars   int
		invalid bool
	}{
		{
			name:  "ascii",
			input: "hello",
			want:  "hello",
			bytes: 5,
			chars: 5,
		},
		{
			name:  "mixed-widths",
			input: "h€llo żółw \U0001f422",
			want:  "h€llo żółw \U0001f422",
			bytes: 20,
			chars: 12,
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:    "substitute-stray-continuation",
			input:   "a\x80b",
			want:    "a�b",
			bytes:   2,
			chars:   2,
			invalid: true,
		},
		{
			name:    "substitute-overlong",
			input:   "a\xc0\xafb",
			want:    "a��b",
			bytes:   2,
			chars:   2,
			invalid: true,
		},
		{
			name:    "skip-invalid",
			input:   "a\xc0\xafb",
			cfg:     scanConfig{skip: true},
			want:    "ab",
			bytes:   2,
			chars:   2,
			invalid: true,
		},
		{
			name:    "interrupted-sequence-reparses-ascii",
			input:   "\xe2A",
			want:    "�A",
			bytes:   1,
			chars:   1,
			invalid: true,
		},
		{
			name:    "truncated-tail",
			input:   "ok\xf0\x9f",
			want:    "ok�",
			bytes:   2,
			chars:   2,
			invalid: true,
		},
		{
			name:    "marked-substitution",
			input:   "\xff",
			cfg:     scanConfig{mark: true},
			want:    "\x1b[7m�\x1b[m",
			invalid: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out strings.Builder
			res := scan(&out, []byte(tt.input), tt.cfg)

			assert.Equal(t, tt.want, out.String())
			assert.Equal(t, tt.bytes, res.bytes)
			assert.Equal(t, tt.chars, res.chars)
			assert.Equal(t, tt.invalid, res.invalid)
		})
	}
}

func TestScanNilOutput(t *testing.T) {
	t.Parallel()

	res := scan(nil, []byte("h€llo"), scanConfig{})
	require.Equal(t, 7, res.bytes)
	require.Equal(t, 5, res.chars)
	require.False(t, res.invalid)
}
