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

package stardict

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

var (
	textEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

	// wordEscaper also replaces the spelling separator.
	wordEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`, "|", " ")
)

// TabReader reads a dictionary as tabfile lines. Each .idx entry becomes a
// line holding the headword, its synonyms from the .syn file and the text
// items of its article:
//
//	word|synonym1|synonym2\tdefinition\n
//
// Articles are read lazily as the TabReader is read.
type TabReader struct {
	d     *Dictionary
	idx   *IndexScanner
	c     io.Closer
	syns  map[uint32][]string
	pos   uint32
	buf   bytes.Buffer
	err   error
	skips int
}

// TabReader returns a new TabReader for the dictionary. The TabReader must be
// closed after use. Closing it does not close the Dictionary.
func (d *Dictionary) TabReader() (*TabReader, error) {
	syns, err := d.Synonyms()
	if err != nil {
		return nil, err
	}
	idx, c, err := d.Index()
	if err != nil {
		return nil, err
	}
	return &TabReader{
		d:    d,
		idx:  idx,
		c:    c,
		syns: syns,
	}, nil
}

// Read implements io.Reader.
func (r *TabReader) Read(p []byte) (int, error) {
	for r.buf.Len() == 0 && r.err == nil {
		r.next()
	}
	if r.buf.Len() > 0 {
		return r.buf.Read(p)
	}
	return 0, r.err
}

// next writes the line for the next index entry to the buffer.
func (r *TabReader) next() {
	if !r.idx.Scan() {
		r.err = r.idx.Err()
		if r.err == nil {
			r.err = io.EOF
		}
		return
	}
	e := r.idx.Entry()
	pos := r.pos
	r.pos++

	items, err := r.d.Article(e)
	if err != nil {
		r.err = err
		return
	}

	var texts []string
	for _, item := range items {
		if item.Type.IsText() && len(item.Data) > 0 {
			texts = append(texts, string(item.Data))
		}
	}
	word := strings.TrimSpace(wordEscaper.Replace(e.Word))
	def := strings.TrimSpace(textEscaper.Replace(strings.Join(texts, "\n")))
	if word == "" || def == "" {
		// The line would not parse as a record.
		r.skips++
		return
	}

	r.buf.WriteString(word)
	for _, syn := range r.syns[pos] {
		if s := strings.TrimSpace(wordEscaper.Replace(syn)); s != "" {
			r.buf.WriteByte('|')
			r.buf.WriteString(s)
		}
	}
	r.buf.WriteByte('\t')
	r.buf.WriteString(def)
	r.buf.WriteByte('\n')
}

// Skipped returns the number of entries skipped because they had no
// headword or no text data.
func (r *TabReader) Skipped() int {
	return r.skips
}

// Close closes the index file.
func (r *TabReader) Close() error {
	if err := r.c.Close(); err != nil {
		return fmt.Errorf("%w: closing %q: %w", ErrStardict, r.d.idxPath, err)
	}
	return nil
}
