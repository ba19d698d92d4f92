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

// Package stardict implements reading Stardict dictionaries as a tabfile
// source.
//
// A Stardict dictionary is made up of the following files:
//
//   - .ifo: a text file holding dictionary metadata.
//   - .idx: the sorted word index. It can be compressed with gzip.
//   - .dict: the article data. It can be compressed using the dictzip format.
//   - .syn: an optional synonym index.
//
// See: https://github.com/huzheng001/stardict-3/blob/master/dict/doc/StarDictFileFormat
package stardict

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
)

var (
	// ErrStardict is the parent error for all stardict errors.
	ErrStardict = errors.New("stardict")

	// ErrInvalidInfo indicates invalid .ifo metadata.
	ErrInvalidInfo = fmt.Errorf("%w: invalid .ifo", ErrStardict)

	// ErrInvalidIdxOffset indicates that idxoffsetbits is an invalid value.
	ErrInvalidIdxOffset = fmt.Errorf("%w: invalid idxoffsetbits", ErrStardict)

	// ErrInvalidIndex indicates a malformed .idx or .syn file.
	ErrInvalidIndex = fmt.Errorf("%w: invalid index", ErrStardict)

	// ErrInvalidType indicates an unknown article data type.
	ErrInvalidType = fmt.Errorf("%w: invalid type", ErrStardict)

	// ErrInvalidArticle indicates malformed article data.
	ErrInvalidArticle = fmt.Errorf("%w: invalid article", ErrStardict)

	// ErrMissingFile indicates a required dictionary file was not found.
	ErrMissingFile = fmt.Errorf("%w: missing file", ErrStardict)
)

var (
	idxExts  = []string{".idx", ".idx.gz", ".IDX", ".IDX.gz", ".IDX.GZ"}
	dictExts = []string{".dict.dz", ".dict", ".DICT", ".DICT.dz", ".DICT.DZ"}
	synExts  = []string{".syn", ".syn.gz", ".SYN", ".SYN.gz", ".SYN.GZ"}
)

// Dictionary is an open Stardict dictionary.
type Dictionary struct {
	info *Info

	ifoPath  string
	idxPath  string
	dictPath string
	synPath  string

	dict    io.ReaderAt
	closers []io.Closer
}

// Open opens a Stardict dictionary from the given .ifo file path. The .dict
// file is held open until Close is called.
func Open(path string) (*Dictionary, error) {
	ext := filepath.Ext(path)
	if ext != ".ifo" && ext != ".IFO" {
		return nil, fmt.Errorf("%w: bad extension: %q", ErrStardict, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrStardict, path, err)
	}
	defer f.Close()

	info, err := ParseInfo(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	d := &Dictionary{
		info:    info,
		ifoPath: path,
	}

	base := strings.TrimSuffix(path, ext)
	if d.idxPath, err = findFile(base, idxExts); err != nil {
		return nil, err
	}
	if d.dictPath, err = findFile(base, dictExts); err != nil {
		return nil, err
	}
	// The .syn file is optional.
	d.synPath, _ = findFile(base, synExts)

	if err := d.openDict(); err != nil {
		return nil, err
	}
	return d, nil
}

// OpenAll opens all dictionaries under a directory. It returns all
// successfully opened dictionaries along with any errors that occurred.
func OpenAll(path string) ([]*Dictionary, []error) {
	var dicts []*Dictionary
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		ext := filepath.Ext(info.Name())
		if !info.IsDir() && (ext == ".ifo" || ext == ".IFO") {
			d, err := Open(path)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			dicts = append(dicts, d)
		}
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return dicts, errs
}

func findFile(base string, exts []string) (string, error) {
	for _, ext := range exts {
		p := base + ext
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s%s", ErrMissingFile, base, exts[0])
}

func (d *Dictionary) openDict() error {
	f, err := os.Open(d.dictPath)
	if err != nil {
		return fmt.Errorf("%w: opening %q: %w", ErrStardict, d.dictPath, err)
	}

	if strings.EqualFold(filepath.Ext(d.dictPath), ".dz") {
		z, err := dictzip.NewReader(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("%w: reading %q: %w", ErrStardict, d.dictPath, err)
		}
		d.dict = z
		d.closers = []io.Closer{z, f}
		return nil
	}

	d.dict = f
	d.closers = []io.Closer{f}
	return nil
}

// Info returns the dictionary metadata.
func (d *Dictionary) Info() *Info {
	return d.info
}

// Path returns the path to the .ifo file.
func (d *Dictionary) Path() string {
	return d.ifoPath
}

// Close closes the dictionary files.
func (d *Dictionary) Close() error {
	var errs []error
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: closing %q: %w", ErrStardict, d.dictPath, err)
	}
	return nil
}

// openMaybeGzip opens path and decompresses it if it has a .gz extension.
func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrStardict, path, err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".gz") {
		return f, nil
	}
	z, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: reading %q: %w", ErrStardict, path, err)
	}
	return &gzipFile{Reader: z, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}

// Index returns a scanner over the dictionary's .idx file. The returned
// closer must be closed by the caller.
func (d *Dictionary) Index() (*IndexScanner, io.Closer, error) {
	r, err := openMaybeGzip(d.idxPath)
	if err != nil {
		return nil, nil, err
	}
	s, err := NewIndexScanner(r, d.info.IdxOffsetBits)
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	return s, r, nil
}

// Synonyms returns the synonyms in the .syn file keyed by the position of the
// related .idx entry. Synonyms are in file order. Dictionaries without a .syn
// file have no synonyms.
func (d *Dictionary) Synonyms() (map[uint32][]string, error) {
	syns := map[uint32][]string{}
	if d.synPath == "" {
		return syns, nil
	}

	r, err := openMaybeGzip(d.synPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	s := NewSynonymScanner(r)
	for s.Scan() {
		e := s.Entry()
		syns[e.OriginalWordIndex] = append(syns[e.OriginalWordIndex], e.Word)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", d.synPath, err)
	}
	return syns, nil
}

// Article reads the article data for the index entry.
func (d *Dictionary) Article(e *IndexEntry) ([]*Data, error) {
	if e.Offset > math.MaxInt64 {
		return nil, fmt.Errorf("%w: offset too large: %d", ErrInvalidArticle, e.Offset)
	}
	b := make([]byte, e.Size)
	//nolint:gosec // offset size is bounds checked above.
	n, err := d.dict.ReadAt(b, int64(e.Offset))
	if n < len(b) {
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: reading %q: %w", ErrStardict, e.Word, err)
		}
		return nil, fmt.Errorf("%w: %q extends past end of data", ErrInvalidArticle, e.Word)
	}
	items, err := decodeArticle(b, d.info.SameTypeSequence)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", e.Word, err)
	}
	return items, nil
}
