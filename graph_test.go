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

package runefsm_test

import (
	"bytes"
	_ "embed"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tanelik/runefsm"
)

//go:embed testdata/graph.dot
var graphDot []byte

func TestWriteGraph(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := runefsm.WriteGraph(&buf)
	require.NoError(t, err)
	require.Equal(t, len(graphDot), n)
	require.Equal(t, string(graphDot), buf.String())
	require.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestEmitGraph(t *testing.T) {
	t.Parallel()

	buf := make([]byte, len(graphDot))
	n, err := runefsm.EmitGraph(buf)
	require.NoError(t, err)
	require.Equal(t, len(graphDot), n)
	require.Equal(t, graphDot, buf[:n])
}

func TestEmitGraphTruncated(t *testing.T) {
	t.Parallel()

	for _, size := range []int{1, 16, 256, len(graphDot) - 1} {
		buf := make([]byte, size)
		n, err := runefsm.EmitGraph(buf)
		require.ErrorIs(t, err, runefsm.ErrTruncatedOutput, "size %d", size)
		require.LessOrEqual(t, n, size, "size %d", size)
		require.Equal(t, graphDot[:n], buf[:n], "size %d", size)
	}
}

func TestEmitGraphNilBuffer(t *testing.T) {
	t.Parallel()

	n, err := runefsm.EmitGraph(nil)
	require.ErrorIs(t, err, runefsm.ErrBadOutput)
	require.Zero(t, n)

	// A non-nil empty buffer is not a bad pointer, it is just too small.
	_, err = runefsm.EmitGraph(make([]byte, 0))
	require.ErrorIs(t, err, runefsm.ErrTruncatedOutput)
}

// failWriter fails after passing through a fixed number of bytes.
type failWriter struct {
	remaining int
	err       error
}

func (w *failWriter) Write(p []byte) (int, error) {
	if len(p) > w.remaining {
		n := w.remaining
		w.remaining = 0
		return n, w.err
	}
	w.remaining -= len(p)
	return len(p), nil
}

func TestWriteGraphIOError(t *testing.T) {
	t.Parallel()

	broken := errors.New("broken pipe")
	n, err := runefsm.WriteGraph(&failWriter{remaining: 64, err: broken})
	require.ErrorIs(t, err, broken)
	require.LessOrEqual(t, n, 64)
}
