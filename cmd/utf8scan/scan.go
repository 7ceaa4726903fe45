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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"
	"golang.org/x/term"

	"github.com/tanelik/runefsm"
)

const replacement = "�"

// scanConfig holds the settings that affect how a single input is scanned.
type scanConfig struct {
	// skip drops invalid sequences instead of substituting U+FFFD.
	skip bool
	// mark wraps each substitution in ANSI reverse video.
	mark bool
}

// scanResult is what the scanner saw in one input.
type scanResult struct {
	bytes   int // bytes inside valid code points
	chars   int // valid code points
	invalid bool
}

// scan walks data one code point at a time. Valid code points are counted
// and appended verbatim to out; invalid sequences set the invalid flag and
// are either dropped or substituted, per cfg. A nil out counts without
// collecting output.
//
// Recovery after an illegal sequence: when the parser was expecting a
// leading byte, the offending byte cannot start any code point and is
// skipped. Mid-sequence the offending byte may itself be a valid leading
// byte, so scanning resumes at the same offset after a reset.
func scan(out *strings.Builder, data []byte, cfg scanConfig) scanResult {
	var res scanResult
	p := runefsm.NewParser()

	for pos := 0; pos < len(data); {
		next, err := p.ParseNext(data, pos)
		if err == nil {
			if out != nil {
				out.Write(p.Bytes())
			}
			res.bytes += p.Len()
			res.chars++
			pos = next
			continue
		}

		res.invalid = true
		if out != nil && !cfg.skip {
			if cfg.mark {
				out.WriteString("\x1b[7m" + replacement + "\x1b[m")
			} else {
				out.WriteString(replacement)
			}
		}
		if p.ExpectsLeading() {
			next++
		}
		pos = next
		p.Reset()
	}

	return res
}

// scanAction is the app-level action: scan files and argument strings.
func scanAction(c *cli.Context) error {
	var inputs [][]byte
	for _, path := range c.StringSlice("file") {
		data, err := readInput(path)
		if err != nil {
			return err
		}
		inputs = append(inputs, data)
	}
	for _, arg := range c.Args() {
		inputs = append(inputs, []byte(arg))
	}

	if c.Bool("join") {
		var joined []byte
		for _, in := range inputs {
			joined = append(joined, in...)
		}
		inputs = [][]byte{joined}
	}

	cfg := scanConfig{
		skip: c.Bool("skip"),
		mark: term.IsTerminal(int(os.Stdout.Fd())),
	}
	quiet := c.Bool("quiet")
	counting := c.Bool("bytes") || c.Bool("chars")
	printing := !counting || c.Bool("print")

	invalid := false
	for _, in := range inputs {
		var out *strings.Builder
		if printing && !quiet {
			out = new(strings.Builder)
		}

		res := scan(out, in, cfg)
		invalid = invalid || res.invalid

		if quiet {
			continue
		}

		var cols []string
		if c.Bool("bytes") {
			cols = append(cols, strconv.Itoa(res.bytes))
		}
		if c.Bool("chars") {
			cols = append(cols, strconv.Itoa(res.chars))
		}
		if out != nil {
			cols = append(cols, out.String())
		}
		fmt.Fprintln(c.App.Writer, strings.Join(cols, "\t"))
	}

	if quiet && invalid {
		return cli.NewExitError("", 1)
	}
	return nil
}

// readInput slurps a whole regular file. Anything else (directories,
// devices) is refused rather than read.
func readInput(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", path)
	}
	return os.ReadFile(path)
}
