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

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultBatchSize is the default number of entries per bulk insert.
const DefaultBatchSize = 10000

// maxVariables is the SQLite host parameter limit. Entry batches larger than
// maxVariables/2 rows are split across statements.
const maxVariables = 32766

// Options are options for creating a database.
type Options struct {
	// BatchSize is the number of buffered entries that triggers a flush.
	BatchSize int

	// WordIndex creates an index on dictionary.word at commit.
	WordIndex bool

	// OnFlush is called after each flush with the number of entries written
	// so far.
	OnFlush func(total int64)
}

// DefaultOptions are the default options for Create.
var DefaultOptions = &Options{
	BatchSize: DefaultBatchSize,
}

// Writer writes a new dictionary database. All rows are written inside a
// single transaction that is committed by Commit. A Writer that is closed
// without Commit leaves no rows behind.
type Writer struct {
	db      *sql.DB
	tx      *sql.Tx
	synStmt *sql.Stmt
	opts    Options

	batch   []Entry
	entries int64
	added   int64
	done    bool
}

// Create creates a new database at path. An existing database at path is
// removed first. The import transaction is started before Create returns.
func Create(ctx context.Context, path string, opts *Options) (*Writer, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	o := *opts
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}

	if err := removeDB(path); err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %q: %w", ErrStore, path, err)
	}
	// A transaction holds a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %w", ErrStore, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: beginning transaction: %w", ErrStore, err)
	}

	synStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO synonyms (synonym, word) VALUES (?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("%w: preparing statement: %w", ErrStore, err)
	}

	return &Writer{
		db:      db,
		tx:      tx,
		synStmt: synStmt,
		opts:    o,
		batch:   make([]Entry, 0, o.BatchSize),
	}, nil
}

// removeDB removes the database file and any journal files left next to it.
func removeDB(path string) error {
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: removing %q: %w", ErrStore, p, err)
		}
	}
	return nil
}

// AddEntry buffers a dictionary entry. The buffer is flushed when it reaches
// the batch size.
func (w *Writer) AddEntry(ctx context.Context, e Entry) error {
	if w.done {
		return ErrCommitted
	}
	w.batch = append(w.batch, e)
	if len(w.batch) >= w.opts.BatchSize {
		return w.Flush(ctx)
	}
	return nil
}

// AddSynonym inserts a synonym relation immediately. Existing pairs are
// ignored. AddSynonym reports whether a new row was inserted.
func (w *Writer) AddSynonym(ctx context.Context, s Synonym) (bool, error) {
	if w.done {
		return false, ErrCommitted
	}
	res, err := w.synStmt.ExecContext(ctx, s.Synonym, s.Word)
	if err != nil {
		return false, fmt.Errorf("%w: inserting synonym %q: %w", ErrStore, s.Synonym, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: inserting synonym %q: %w", ErrStore, s.Synonym, err)
	}
	if n > 0 {
		w.added++
	}
	return n > 0, nil
}

// Flush writes all buffered entries.
func (w *Writer) Flush(ctx context.Context) error {
	if w.done {
		return ErrCommitted
	}
	if len(w.batch) == 0 {
		return nil
	}

	rowsPerStmt := maxVariables / 2
	for start := 0; start < len(w.batch); start += rowsPerStmt {
		end := min(start+rowsPerStmt, len(w.batch))
		if err := w.insertEntries(ctx, w.batch[start:end]); err != nil {
			return err
		}
	}

	w.entries += int64(len(w.batch))
	w.batch = w.batch[:0]
	if w.opts.OnFlush != nil {
		w.opts.OnFlush(w.entries)
	}
	return nil
}

func (w *Writer) insertEntries(ctx context.Context, entries []Entry) error {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO dictionary (word, defi) VALUES `)
	args := make([]any, 0, len(entries)*2)
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString("(?, ?)")
		args = append(args, e.Word, e.Definition)
	}

	if _, err := w.tx.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("%w: inserting %d entries: %w", ErrStore, len(entries), err)
	}
	return nil
}

// Entries returns the number of entries written so far, not including
// buffered entries.
func (w *Writer) Entries() int64 {
	return w.entries
}

// Buffered returns the number of buffered entries.
func (w *Writer) Buffered() int {
	return len(w.batch)
}

// SynonymsAdded returns the number of synonym rows inserted so far.
func (w *Writer) SynonymsAdded() int64 {
	return w.added
}

// Commit flushes buffered entries and commits the import. Commit may only be
// called once.
func (w *Writer) Commit(ctx context.Context) error {
	if w.done {
		return ErrCommitted
	}
	if err := w.Flush(ctx); err != nil {
		return err
	}
	if w.opts.WordIndex {
		if _, err := w.tx.ExecContext(ctx, wordIndex); err != nil {
			return fmt.Errorf("%w: creating word index: %w", ErrStore, err)
		}
	}
	if err := w.synStmt.Close(); err != nil {
		return fmt.Errorf("%w: closing statement: %w", ErrStore, err)
	}
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %w", ErrStore, err)
	}
	w.done = true
	return nil
}

// Counts returns the number of rows written in the import transaction.
func (w *Writer) Counts(ctx context.Context) (Counts, error) {
	if w.done {
		return counts(ctx, w.db)
	}
	return counts(ctx, w.tx)
}

// Close closes the database. An uncommitted import is rolled back.
func (w *Writer) Close() error {
	var errs []error
	if !w.done {
		// Closing the statement is done by the rollback.
		if err := w.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			errs = append(errs, fmt.Errorf("%w: rolling back: %w", ErrStore, err))
		}
		w.done = true
	}
	if err := w.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("%w: closing: %w", ErrStore, err))
	}
	return errors.Join(errs...)
}
