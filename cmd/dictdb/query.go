// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/dictdb/internal/folding"
	"github.com/ianlewis/dictdb/normalize"
	"github.com/ianlewis/dictdb/store"
)

func newQueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "look up a word in a converted database",
		ArgsUsage: "WORD",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "read the database at `PATH`",
				Value:   "dpd.db",
				EnvVars: []string{"DICTDB_DATABASE"},
			},
			&cli.BoolFlag{
				Name:               "html",
				Usage:              "print definition markup instead of plain text",
				DisableDefaultText: true,
			},
		},
		OnUsageError: usageError,
		Action:       query,
	}
}

func query(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: expected one WORD argument, got %d", ErrFlagParse, c.NArg())
	}
	raw := c.Args().First()
	word := normalize.Word(raw)
	if word == "" {
		return fmt.Errorf("%w: %q", ErrNotFound, raw)
	}

	s, err := store.Open(c.Context, c.String("db"))
	if err != nil {
		return err
	}
	defer s.Close()

	defs, err := s.Lookup(c.Context, word)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, word)
	}

	for i, d := range defs {
		if i > 0 {
			fmt.Fprintln(c.App.Writer)
		}
		var syns []string
		if d.Via == "" {
			syns, err = s.Synonyms(c.Context, d.Word)
			if err != nil {
				return err
			}
		}
		printDefinition(c.App.Writer, d, syns, c.Bool("html"))
	}

	return nil
}

// printDefinition writes a heading line followed by the definition body.
func printDefinition(w io.Writer, d store.Definition, syns []string, raw bool) {
	heading := d.Word
	if d.Via != "" {
		heading = fmt.Sprintf("%s (%s)", d.Word, d.Via)
	}
	fmt.Fprintln(w, heading)
	if len(syns) > 0 {
		fmt.Fprintf(w, "synonyms: %s\n", strings.Join(syns, ", "))
	}

	body := d.Definition
	if !raw {
		body = folding.Lines(html2text.HTML2Text(body))
	}
	fmt.Fprintln(w, body)
}
