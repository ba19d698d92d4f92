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

// Package store implements the SQLite dictionary database.
//
// The database has two tables:
//
//	dictionary(idx INTEGER PRIMARY KEY AUTOINCREMENT, word TEXT, defi TEXT)
//	synonyms(synonym TEXT, word TEXT, PRIMARY KEY (synonym, word))
//
// A database is written once by a Writer inside a single transaction and
// read with a Store.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	// Register the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

var (
	// ErrStore is the parent error for all store errors.
	ErrStore = errors.New("store")

	// ErrCommitted indicates a write after the import was committed.
	ErrCommitted = fmt.Errorf("%w: already committed", ErrStore)
)

const schema = `
CREATE TABLE IF NOT EXISTS dictionary (
	idx INTEGER PRIMARY KEY AUTOINCREMENT,
	word TEXT NOT NULL,
	defi TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS synonyms (
	synonym TEXT NOT NULL,
	word TEXT NOT NULL,
	PRIMARY KEY (synonym, word)
);
`

const wordIndex = `CREATE INDEX IF NOT EXISTS dictionary_word ON dictionary (word)`

// Entry is a dictionary row.
type Entry struct {
	Word       string
	Definition string
}

// Synonym is a synonyms row.
type Synonym struct {
	Synonym string
	Word    string
}

// Counts are the number of rows in each table.
type Counts struct {
	Entries  int64
	Synonyms int64
}

// Store is a read-only view of a dictionary database.
type Store struct {
	db *sql.DB
}

// Open opens an existing dictionary database.
func Open(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrStore, path, err)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrStore, path, err)
	}
	// The pragma applies per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: opening %q: %w", ErrStore, path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%w: closing: %w", ErrStore, err)
	}
	return nil
}

// Definition is a definition found by Lookup.
type Definition struct {
	// ID is the row's surrogate id.
	ID int64

	// Word is the stored headword.
	Word string

	// Definition is the definition markup.
	Definition string

	// Via is the synonym the definition was found through. It is empty for
	// direct matches.
	Via string
}

// Lookup returns the definitions stored for word followed by the definitions
// of words that word is a synonym of. Results are ordered by insertion
// within each group. word must already be normalized.
func (s *Store) Lookup(ctx context.Context, word string) ([]Definition, error) {
	const stmt = `
SELECT idx, word, defi, '' FROM dictionary WHERE word = ?
UNION ALL
SELECT d.idx, d.word, d.defi, s.synonym
	FROM synonyms s JOIN dictionary d ON d.word = s.word
	WHERE s.synonym = ? AND s.word <> ?
ORDER BY 4, 1`

	rows, err := s.db.QueryContext(ctx, stmt, word, word, word)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup %q: %w", ErrStore, word, err)
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var d Definition
		if err := rows.Scan(&d.ID, &d.Word, &d.Definition, &d.Via); err != nil {
			return nil, fmt.Errorf("%w: lookup %q: %w", ErrStore, word, err)
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: lookup %q: %w", ErrStore, word, err)
	}
	return defs, nil
}

// Synonyms returns the synonyms recorded for word.
func (s *Store) Synonyms(ctx context.Context, word string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT synonym FROM synonyms WHERE word = ? ORDER BY synonym`, word)
	if err != nil {
		return nil, fmt.Errorf("%w: synonyms %q: %w", ErrStore, word, err)
	}
	defer rows.Close()

	var syns []string
	for rows.Next() {
		var syn string
		if err := rows.Scan(&syn); err != nil {
			return nil, fmt.Errorf("%w: synonyms %q: %w", ErrStore, word, err)
		}
		syns = append(syns, syn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: synonyms %q: %w", ErrStore, word, err)
	}
	return syns, nil
}

// Entries returns every dictionary row in insertion order.
func (s *Store) Entries(ctx context.Context) ([]Definition, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, word, defi FROM dictionary ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading entries: %w", ErrStore, err)
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var d Definition
		if err := rows.Scan(&d.ID, &d.Word, &d.Definition); err != nil {
			return nil, fmt.Errorf("%w: reading entries: %w", ErrStore, err)
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading entries: %w", ErrStore, err)
	}
	return defs, nil
}

// Relations returns every synonym relation ordered by synonym and word.
func (s *Store) Relations(ctx context.Context) ([]Synonym, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT synonym, word FROM synonyms ORDER BY synonym, word`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading synonyms: %w", ErrStore, err)
	}
	defer rows.Close()

	var syns []Synonym
	for rows.Next() {
		var syn Synonym
		if err := rows.Scan(&syn.Synonym, &syn.Word); err != nil {
			return nil, fmt.Errorf("%w: reading synonyms: %w", ErrStore, err)
		}
		syns = append(syns, syn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading synonyms: %w", ErrStore, err)
	}
	return syns, nil
}

// Counts returns the number of rows in each table.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	return counts(ctx, s.db)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func counts(ctx context.Context, q queryRower) (Counts, error) {
	var c Counts
	if err := q.QueryRowContext(ctx, `SELECT count(*) FROM dictionary`).Scan(&c.Entries); err != nil {
		return Counts{}, fmt.Errorf("%w: counting entries: %w", ErrStore, err)
	}
	if err := q.QueryRowContext(ctx, `SELECT count(*) FROM synonyms`).Scan(&c.Synonyms); err != nil {
		return Counts{}, fmt.Errorf("%w: counting synonyms: %w", ErrStore, err)
	}
	return c, nil
}
