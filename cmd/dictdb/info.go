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
	"errors"
	"fmt"
	"io/fs"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/dictdb/stardict"
)

// ErrOpen indicates some dictionaries could not be opened.
var ErrOpen = fmt.Errorf("%w: opening dictionaries", ErrDictDB)

func newInfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "list StarDict dictionaries that can be converted",
		ArgsUsage: "[DIR...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "include dictionaries in `DIR`",
				Aliases: []string{"d"},
				Value:   cli.NewStringSlice(dictLocations()...),
			},
		},
		OnUsageError: usageError,
		Action:       info,
	}
}

func openStardicts(dirs []string) ([]*stardict.Dictionary, []error) {
	var dicts []*stardict.Dictionary
	var errs []error

	for _, path := range dirs {
		openDicts, openErrs := stardict.OpenAll(path)

		dicts = append(dicts, openDicts...)
		for _, err := range openErrs {
			// Default data directories often do not exist.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			errs = append(errs, err)
		}
	}

	return dicts, errs
}

func info(c *cli.Context) error {
	dirs := c.Args().Slice()
	if len(dirs) == 0 {
		dirs = c.StringSlice("data-dir")
	}

	dicts, errs := openStardicts(uniqueDirs(dirs))
	defer func() {
		for _, d := range dicts {
			_ = d.Close()
		}
	}()
	for _, err := range errs {
		fmt.Fprintln(c.App.ErrWriter, err)
	}

	tbl := table.New("NAME", "WORDS", "SYNONYMS", "VERSION", "AUTHOR", "PATH").WithWriter(c.App.Writer)
	for _, d := range dicts {
		i := d.Info()
		tbl.AddRow(i.Bookname, i.WordCount, i.SynWordCount, i.Version, i.Author, d.Path())
	}
	tbl.Print()

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrOpen, errors.Join(errs...))
	}
	return nil
}
