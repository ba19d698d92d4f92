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
	"log/slog"

	"github.com/ianlewis/dictdb/normalize"
	"github.com/ianlewis/dictdb/store"
	"github.com/ianlewis/dictdb/style"
	"github.com/ianlewis/dictdb/synonym"
	"github.com/ianlewis/dictdb/tabfile"
)

var (
	// ErrDictDB is the parent error for all conversion errors.
	ErrDictDB = errors.New("dictdb")

	// ErrConvert indicates a failed conversion.
	ErrConvert = fmt.Errorf("%w: converting", ErrDictDB)
)

// checkInterval is the number of records between context checks.
const checkInterval = 1000

// Options are options for a conversion run.
type Options struct {
	// BatchSize is the number of entries per bulk insert.
	BatchSize int

	// Strict aborts the run on the first malformed record. Otherwise
	// malformed records are logged and skipped.
	Strict bool

	// DedupMode selects how repeated style blocks are identified.
	DedupMode style.Mode

	// WordIndex creates an index on the dictionary word column.
	WordIndex bool

	// Logger receives progress and warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions are the default conversion options.
var DefaultOptions = &Options{
	BatchSize: store.DefaultBatchSize,
	Strict:    true,
	DedupMode: style.Positional,
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Stats are the counts of a conversion run.
type Stats struct {
	// Records is the number of records read.
	Records int64

	// Entries is the number of dictionary entries written.
	Entries int64

	// Synonyms is the number of new synonym relations written.
	Synonyms int64

	// Skipped is the number of malformed records skipped.
	Skipped int64

	// SourceSkipped is the number of source entries dropped before they
	// became records, such as StarDict entries without text.
	SourceSkipped int64

	// Classes is the number of style classes assigned.
	Classes int

	// Scripts is the number of distinct scripts found.
	Scripts int
}

// Converter holds the state of a single conversion run. A Converter must not
// be reused.
type Converter struct {
	opts  Options
	dedup *style.Deduplicator
	stats Stats
	log   *slog.Logger
}

// NewConverter returns a new Converter.
func NewConverter(opts *Options) *Converter {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Converter{
		opts:  *opts,
		dedup: style.New(opts.DedupMode),
		log:   opts.logger(),
	}
}

// Convert reads tabfile records from r and writes them to w. Convert does
// not commit w.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w *store.Writer) error {
	s := tabfile.NewScanner(r)
	for {
		if !s.Scan() {
			err := s.Err()
			if err == nil {
				break
			}
			if !c.opts.Strict && errors.Is(err, tabfile.ErrMalformedRecord) && s.Resume() {
				c.skip(err)
				continue
			}
			return fmt.Errorf("%w: %w", ErrConvert, err)
		}

		c.stats.Records++
		if c.stats.Records%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrConvert, err)
			}
		}

		err := c.add(ctx, s.Record(), w)
		var mErr *tabfile.MalformedRecordError
		if errors.As(err, &mErr) && !c.opts.Strict {
			c.skip(err)
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConvert, err)
		}
	}

	c.stats.Entries = w.Entries() + int64(w.Buffered())
	c.stats.Synonyms = w.SynonymsAdded()
	c.stats.Classes = c.dedup.Classes()
	c.stats.Scripts = len(c.dedup.Log().Scripts())
	return nil
}

// add converts a single record.
func (c *Converter) add(ctx context.Context, rec tabfile.Record, w *store.Writer) error {
	word := normalize.Word(rec.Primary())
	if word == "" {
		return &tabfile.MalformedRecordError{
			Line:   rec.Line,
			Reason: fmt.Sprintf("empty headword %q", rec.Primary()),
		}
	}

	def, err := c.dedup.Scope(rec.Body)
	if err != nil {
		return fmt.Errorf("line %d: %w", rec.Line, err)
	}

	if err := w.AddEntry(ctx, store.Entry{Word: word, Definition: def}); err != nil {
		return err
	}

	for _, rel := range synonym.Extract(rec.Spellings, word) {
		if _, err := w.AddSynonym(ctx, store.Synonym{Synonym: rel.Synonym, Word: rel.Word}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) skip(err error) {
	c.stats.Skipped++
	c.log.Warn("skipping malformed record", "error", err)
}

// Stats returns the counts of the run so far.
func (c *Converter) Stats() Stats {
	return c.stats
}

// StyleLog returns the style log collected by the run.
func (c *Converter) StyleLog() *style.Log {
	return c.dedup.Log()
}
