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

// Utf8scan inspects UTF-8 encoded strings and files.
//
// Without options it prints its inputs with the replacement character
// U+FFFD substituted for invalid sequences. Counting and validity-check
// modes are available through flags, and the decoder's state machine can be
// rendered with the graph subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/tanelik/runefsm"
	"github.com/tanelik/runefsm/internal/version"
)

func main() {
	app := cli.NewApp()
	app.Name = "utf8scan"
	app.Usage = "Inspect UTF-8 encoded strings"
	app.ArgsUsage = "[STRING]..."
	app.Version = version.FullVersion()
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "bytes, b",
			Usage: "count bytes inside valid UTF-8",
		},
		cli.BoolFlag{
			Name:  "chars, c",
			Usage: "count valid unicode characters",
		},
		cli.BoolFlag{
			Name:  "join, j",
			Usage: "treat arguments as one string",
		},
		cli.BoolFlag{
			Name:  "print, p",
			Usage: "print strings even when counting",
		},
		cli.BoolFlag{
			Name:  "skip, s",
			Usage: "skip invalid UTF-8, don't replace",
		},
		cli.BoolFlag{
			Name:  "quiet, q",
			Usage: "report invalid UTF-8 via exit code",
		},
		cli.StringSliceFlag{
			Name:  "file, f",
			Usage: "read input from `FILE` (may be repeated)",
		},
	}

	app.Action = scanAction
	app.Commands = []cli.Command{graphCommand}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(app.ErrWriter, "utf8scan: %v\n", err)
		os.Exit(1)
	}
}

var graphCommand = cli.Command{
	Name:  "graph",
	Usage: "Write the decoder's state machine as a Graphviz dot description",
	Description: `Usage:

    utf8scan graph [options...]

Description:

Writes the UTF-8 decoder's transition tables as a directed graph in
Graphviz dot syntax. Each node is a parser state labeled with the byte
values that lead into it; each edge is a legal state transition.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "output, o",
			Usage: "write to `FILE` instead of stdout",
		},
	},
	Action: func(c *cli.Context) error {
		out := os.Stdout
		if path := c.String("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		_, err := runefsm.WriteGraph(out)
		return err
	},
}
