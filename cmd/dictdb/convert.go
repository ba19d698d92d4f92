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

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/dictdb"
	"github.com/ianlewis/dictdb/css"
	"github.com/ianlewis/dictdb/internal/config"
	"github.com/ianlewis/dictdb/internal/logging"
	"github.com/ianlewis/dictdb/internal/manifest"
)

func newConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert a dictionary to a SQLite database",
		ArgsUsage: "SOURCE",
		Description: "SOURCE is a tabfile, '-' for standard input, a StarDict .ifo file,\n" +
			"or a directory containing a single StarDict dictionary.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from YAML `FILE`",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "write the database to `PATH`",
			},
			&cli.StringFlag{
				Name:  "css",
				Usage: "write the stylesheet to `PATH`",
			},
			&cli.StringFlag{
				Name:  "raw-styles",
				Usage: "write the extracted style log to `PATH`",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "write a YAML run manifest to `PATH`",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "insert entries in batches of `N`",
			},
			&cli.BoolFlag{
				Name:               "strict",
				Usage:              "abort on the first malformed record",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "lenient",
				Usage:              "skip malformed records",
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:  "dedup-mode",
				Usage: "style deduplication `MODE` (positional, legacy, content)",
			},
			&cli.BoolFlag{
				Name:               "word-index",
				Usage:              "create an index on dictionary.word",
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log `LEVEL` (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log `FORMAT` (text, json)",
			},
		},
		OnUsageError: usageError,
		Action:       convert,
	}
}

// loadConfig loads the configuration file and environment and applies the
// command line flags on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.Bool("strict") && c.Bool("lenient") {
		return nil, fmt.Errorf("%w: --strict and --lenient are mutually exclusive", ErrFlagParse)
	}

	for name, dst := range map[string]*string{
		"db":         &cfg.Database,
		"css":        &cfg.Stylesheet,
		"raw-styles": &cfg.RawStyles,
		"manifest":   &cfg.Manifest,
		"dedup-mode": &cfg.DedupMode,
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
	} {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	if c.IsSet("batch-size") {
		cfg.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("strict") {
		cfg.Lenient = false
	}
	if c.IsSet("lenient") {
		cfg.Lenient = true
	}
	if c.IsSet("word-index") {
		cfg.WordIndex = c.Bool("word-index")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func convert(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: expected one SOURCE argument, got %d", ErrFlagParse, c.NArg())
	}
	source := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	opts := &dictdb.BuildOptions{
		Options: dictdb.Options{
			BatchSize: cfg.BatchSize,
			Strict:    !cfg.Lenient,
			DedupMode: cfg.Mode(),
			WordIndex: cfg.WordIndex,
			Logger:    logging.New(c.App.ErrWriter, cfg.Log),
		},
		Database:   cfg.Database,
		Stylesheet: cfg.Stylesheet,
		RawStyles:  cfg.RawStyles,
		CSS:        css.DefaultOptions,
	}

	res, err := dictdb.Build(c.Context, dictdb.FileSource(source), opts)
	if err != nil {
		return err
	}

	if cfg.Manifest != "" {
		m, err := manifest.New(source, opts, res)
		if err != nil {
			return err
		}
		if err := m.Write(cfg.Manifest); err != nil {
			return err
		}
	}

	return nil
}
