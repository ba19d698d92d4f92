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

package dictdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"

	"github.com/ianlewis/dictdb/css"
	"github.com/ianlewis/dictdb/stardict"
	"github.com/ianlewis/dictdb/store"
)

// ErrSource indicates the input could not be opened.
var ErrSource = fmt.Errorf("%w: opening source", ErrDictDB)

// Source opens the tabfile stream to convert.
type Source func(ctx context.Context) (io.ReadCloser, error)

// ReaderSource returns a Source reading from r. The reader is not closed.
func ReaderSource(r io.Reader) Source {
	return func(context.Context) (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	}
}

// FileSource returns a Source for the given path. The path can be a tabfile,
// "-" for standard input, a Stardict .ifo file or a directory holding a single
// Stardict dictionary.
func FileSource(path string) Source {
	return func(context.Context) (io.ReadCloser, error) {
		if path == "-" {
			return io.NopCloser(os.Stdin), nil
		}

		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSource, err)
		}

		ifoPath := ""
		switch {
		case fi.IsDir():
			matches, err := filepath.Glob(filepath.Join(path, "*.ifo"))
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSource, err)
			}
			if len(matches) != 1 {
				return nil, fmt.Errorf("%w: %q: want one .ifo file, found %d", ErrSource, path, len(matches))
			}
			ifoPath = matches[0]
		case strings.EqualFold(filepath.Ext(path), ".ifo"):
			ifoPath = path
		default:
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSource, err)
			}
			return f, nil
		}

		d, err := stardict.Open(ifoPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSource, err)
		}
		r, err := d.TabReader()
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("%w: %w", ErrSource, err)
		}
		return &stardictSource{TabReader: r, d: d}, nil
	}
}

type stardictSource struct {
	*stardict.TabReader
	d *stardict.Dictionary
}

func (s *stardictSource) Close() error {
	return errors.Join(s.TabReader.Close(), s.d.Close())
}

// skipCounter is implemented by sources that drop entries they cannot
// express as records.
type skipCounter interface {
	Skipped() int
}

// BuildOptions are options for Build.
type BuildOptions struct {
	Options

	// Database is the output database path.
	Database string

	// Stylesheet is the output stylesheet path.
	Stylesheet string

	// RawStyles is an optional path to write the serialized style log.
	RawStyles string

	// CSS are the stylesheet compiler options.
	CSS *css.Options
}

// Result describes a completed build.
type Result struct {
	RunID      string
	Stats      Stats
	Counts     store.Counts
	Database   string
	Stylesheet string
	RawStyles  string
	Started    time.Time
	Duration   time.Duration
}

// Build converts the source into a new database and writes the compiled
// stylesheet. The database is committed before the stylesheet is written.
// If the conversion fails no rows are persisted.
func Build(ctx context.Context, src Source, opts *BuildOptions) (*Result, error) {
	if opts.Database == "" {
		return nil, fmt.Errorf("%w: no database path", ErrDictDB)
	}

	started := time.Now()
	runID := ulid.Make().String()

	convOpts := opts.Options
	log := convOpts.logger().With("run_id", runID)
	convOpts.Logger = log

	r, err := src(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	w, err := store.Create(ctx, opts.Database, &store.Options{
		BatchSize: convOpts.BatchSize,
		WordIndex: convOpts.WordIndex,
		OnFlush: func(total int64) {
			log.Info("inserted entries", "count", total)
		},
	})
	if err != nil {
		return nil, err
	}
	defer w.Close()

	c := NewConverter(&convOpts)
	log.Info("converting", "database", opts.Database, "dedup_mode", convOpts.DedupMode.String(), "strict", convOpts.Strict)
	if err := c.Convert(ctx, r, w); err != nil {
		return nil, err
	}
	if err := w.Commit(ctx); err != nil {
		return nil, err
	}
	counts, err := w.Counts(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:    runID,
		Stats:    c.Stats(),
		Counts:   counts,
		Database: opts.Database,
		Started:  started,
	}
	if s, ok := r.(skipCounter); ok {
		res.Stats.SourceSkipped = int64(s.Skipped())
	}

	styles := c.StyleLog().String()
	if opts.RawStyles != "" {
		if err := writeFileAtomic(opts.RawStyles, styles); err != nil {
			return nil, err
		}
		res.RawStyles = opts.RawStyles
	}
	if opts.Stylesheet != "" {
		if err := writeFileAtomic(opts.Stylesheet, css.Compile(styles, opts.CSS)); err != nil {
			return nil, err
		}
		res.Stylesheet = opts.Stylesheet
	}

	res.Duration = time.Since(started)
	log.Info("done",
		"entries", counts.Entries,
		"synonyms", counts.Synonyms,
		"classes", res.Stats.Classes,
		"skipped", res.Stats.Skipped,
		"source_skipped", res.Stats.SourceSkipped,
		"size", fileSize(opts.Database),
		"duration", res.Duration.Round(time.Millisecond).String(),
	)
	return res, nil
}

// writeFileAtomic writes s to a temporary file next to path and renames it
// into place.
func writeFileAtomic(path, s string) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: writing %q: %w", ErrDictDB, path, err)
	}
	tmp := f.Name()
	if _, err := io.WriteString(f, s); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: writing %q: %w", ErrDictDB, path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: writing %q: %w", ErrDictDB, path, err)
	}
	//nolint:gosec // output files are world readable.
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: writing %q: %w", ErrDictDB, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: writing %q: %w", ErrDictDB, path, err)
	}
	return nil
}

// fileSize returns the humanized size of the file at path.
func fileSize(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return "unknown"
	}
	//nolint:gosec // file sizes are not negative.
	return humanize.Bytes(uint64(fi.Size()))
}
