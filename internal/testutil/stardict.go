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

// Package testutil builds Stardict dictionary files for tests.
package testutil

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/dictdb/stardict"
)

// MakeIndex makes .idx file data given a list of entries.
func MakeIndex(t *testing.T, entries []*stardict.IndexEntry, offsetBits int) []byte {
	t.Helper()

	b := []byte{}
	for _, e := range entries {
		b = append(b, []byte(e.Word)...)
		b = append(b, 0) // Add the zero byte terminator.
		switch offsetBits {
		case 32:
			if e.Offset > math.MaxUint32 {
				t.Fatalf("word offset too large %d > %d", e.Offset, offsetBits)
			}
			//nolint:gosec // offset size checked above.
			b = binary.BigEndian.AppendUint32(b, uint32(e.Offset))
		case 64:
			b = binary.BigEndian.AppendUint64(b, e.Offset)
		default:
			t.Fatalf("unsupported offset bits: %d", offsetBits)
		}
		b = binary.BigEndian.AppendUint32(b, e.Size)
	}
	return b
}

// MakeSyn makes .syn file data given a list of entries.
func MakeSyn(t *testing.T, entries []*stardict.SynonymEntry) []byte {
	t.Helper()

	b := []byte{}
	for _, e := range entries {
		b = append(b, []byte(e.Word)...)
		b = append(b, 0)
		b = binary.BigEndian.AppendUint32(b, e.OriginalWordIndex)
	}
	return b
}

// MakeArticle makes the .dict data for a single article.
func MakeArticle(t *testing.T, items []*stardict.Data, sameTypeSequence []stardict.DataType) []byte {
	t.Helper()

	b := []byte{}
	for i, d := range items {
		last := i == len(items)-1
		if len(sameTypeSequence) == 0 {
			b = append(b, byte(d.Type))
		}
		switch {
		case d.Type.IsText():
			b = append(b, d.Data...)
			// The last item has no terminator when sametypesequence is set.
			if len(sameTypeSequence) == 0 || !last {
				b = append(b, 0)
			}
		case len(sameTypeSequence) > 0 && last:
			b = append(b, d.Data...)
		default:
			if len(d.Data) > math.MaxUint32 {
				t.Fatalf("word data too long: %d", len(d.Data))
			}
			//nolint:gosec // length checked above.
			b = binary.BigEndian.AppendUint32(b, uint32(len(d.Data)))
			b = append(b, d.Data...)
		}
	}
	return b
}

// Word is a dictionary word for WriteDictionary.
type Word struct {
	Word     string
	Data     []*stardict.Data
	Synonyms []string
}

// Dictionary describes a dictionary for WriteDictionary.
type Dictionary struct {
	// Name is the base file name. Defaults to "dictionary".
	Name string

	// Bookname defaults to "test".
	Bookname string

	Words            []*Word
	SameTypeSequence []stardict.DataType

	// OffsetBits is 32 or 64. Defaults to 32.
	OffsetBits int

	// DictZip compresses the .dict file with dictzip.
	DictZip bool

	// GzipIndex compresses the .idx file with gzip.
	GzipIndex bool
}

// WriteDictionary writes the dictionary files to dir and returns the path to
// the .ifo file.
func WriteDictionary(t *testing.T, dir string, d *Dictionary) string {
	t.Helper()

	name := d.Name
	if name == "" {
		name = "dictionary"
	}
	bookname := d.Bookname
	if bookname == "" {
		bookname = "test"
	}
	offsetBits := d.OffsetBits
	if offsetBits == 0 {
		offsetBits = 32
	}

	var dict []byte
	var entries []*stardict.IndexEntry
	var syns []*stardict.SynonymEntry
	for i, w := range d.Words {
		article := MakeArticle(t, w.Data, d.SameTypeSequence)
		entries = append(entries, &stardict.IndexEntry{
			Word:   w.Word,
			Offset: uint64(len(dict)),
			//nolint:gosec // test data is small.
			Size: uint32(len(article)),
		})
		dict = append(dict, article...)
		for _, s := range w.Synonyms {
			syns = append(syns, &stardict.SynonymEntry{
				Word: s,
				//nolint:gosec // test data is small.
				OriginalWordIndex: uint32(i),
			})
		}
	}
	idx := MakeIndex(t, entries, offsetBits)

	base := filepath.Join(dir, name)

	var seq strings.Builder
	for _, s := range d.SameTypeSequence {
		seq.WriteByte(byte(s))
	}
	ifo := []string{
		"StarDict's dict ifo file",
		"version=3.0.0",
		"bookname=" + bookname,
		fmt.Sprintf("wordcount=%d", len(entries)),
		fmt.Sprintf("idxfilesize=%d", len(idx)),
		fmt.Sprintf("idxoffsetbits=%d", offsetBits),
		"author=Tester",
		"description=A test dictionary",
	}
	if len(syns) > 0 {
		ifo = append(ifo, fmt.Sprintf("synwordcount=%d", len(syns)))
	}
	if seq.Len() > 0 {
		ifo = append(ifo, "sametypesequence="+seq.String())
	}
	writeFile(t, base+".ifo", []byte(strings.Join(ifo, "\n")+"\n"))

	if d.GzipIndex {
		writeFile(t, base+".idx.gz", gzipBytes(t, idx))
	} else {
		writeFile(t, base+".idx", idx)
	}

	if d.DictZip {
		writeDictZip(t, base+".dict.dz", dict)
	} else {
		writeFile(t, base+".dict", dict)
	}

	if len(syns) > 0 {
		writeFile(t, base+".syn", MakeSyn(t, syns))
	}

	return base + ".ifo"
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
}

func gzipBytes(t *testing.T, b []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	z := gzip.NewWriter(&buf)
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeDictZip(t *testing.T, path string, b []byte) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
}
