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

package stardict_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/dictdb/internal/testutil"
	"github.com/ianlewis/dictdb/stardict"
)

func html(s string) []*stardict.Data {
	return []*stardict.Data{{Type: stardict.HTMLType, Data: []byte(s)}}
}

func mustOpen(t *testing.T, path string) *stardict.Dictionary {
	t.Helper()
	d, err := stardict.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return d
}

func readTab(t *testing.T, d *stardict.Dictionary) string {
	t.Helper()
	r, err := d.TabReader()
	if err != nil {
		t.Fatalf("TabReader: %v", err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return string(b)
}

// TestTabReader tests reading dictionaries as tabfile lines.
func TestTabReader(t *testing.T) {
	t.Parallel()

	words := []*testutil.Word{
		{
			Word:     "dhamma",
			Data:     html("<b>dhamma</b>"),
			Synonyms: []string{"dhammo", "dhammaṃ"},
		},
		{
			Word: "mettā",
			Data: html("line 1\nline 2\tx\\y"),
		},
	}
	expected := "dhamma|dhammo|dhammaṃ\t<b>dhamma</b>\n" +
		"mettā\tline 1\\nline 2\\tx\\\\y\n"

	tests := []struct {
		name string
		dict *testutil.Dictionary
	}{
		{
			name: "plain",
			dict: &testutil.Dictionary{Words: words},
		},
		{
			name: "sametypesequence",
			dict: &testutil.Dictionary{
				Words:            words,
				SameTypeSequence: []stardict.DataType{stardict.HTMLType},
			},
		},
		{
			name: "64 bit offsets",
			dict: &testutil.Dictionary{Words: words, OffsetBits: 64},
		},
		{
			name: "compressed",
			dict: &testutil.Dictionary{Words: words, DictZip: true, GzipIndex: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := testutil.WriteDictionary(t, t.TempDir(), test.dict)
			d := mustOpen(t, path)
			if diff := cmp.Diff(expected, readTab(t, d)); diff != "" {
				t.Fatalf("TabReader (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestTabReader_Items tests articles with multiple data items.
func TestTabReader_Items(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDictionary(t, t.TempDir(), &testutil.Dictionary{
		Words: []*testutil.Word{
			{
				Word: "hoge",
				Data: []*stardict.Data{
					{Type: stardict.PhoneticType, Data: []byte("ho-ge")},
					{Type: stardict.WavType, Data: []byte{0, 1, 2, 3}},
					{Type: stardict.UTFTextType, Data: []byte("fuga")},
				},
			},
			{
				// No text data.
				Word: "pico",
				Data: []*stardict.Data{
					{Type: stardict.PictureType, Data: []byte{9}},
				},
			},
			{
				Word: "a|b",
				Data: html("x"),
			},
		},
	})

	d := mustOpen(t, path)
	r, err := d.TabReader()
	if err != nil {
		t.Fatalf("TabReader: %v", err)
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if diff := cmp.Diff("hoge\tho-ge\\nfuga\na b\tx\n", string(b)); diff != "" {
		t.Fatalf("TabReader (-want, +got):\n%s", diff)
	}
	if want, got := 1, r.Skipped(); want != got {
		t.Fatalf("Skipped; want: %d, got: %d", want, got)
	}
}

// TestDictionary_Article tests reading article data.
func TestDictionary_Article(t *testing.T) {
	t.Parallel()

	data := []*stardict.Data{
		{Type: stardict.UTFTextType, Data: []byte("hoge")},
		{Type: stardict.WavType, Data: []byte{1, 2}},
	}
	path := testutil.WriteDictionary(t, t.TempDir(), &testutil.Dictionary{
		Words: []*testutil.Word{{Word: "hoge", Data: data}},
	})
	d := mustOpen(t, path)

	idx, c, err := d.Index()
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	defer c.Close()

	if !idx.Scan() {
		t.Fatalf("Scan: %v", idx.Err())
	}
	e := idx.Entry()
	got, err := d.Article(e)
	if err != nil {
		t.Fatalf("Article: %v", err)
	}
	if diff := cmp.Diff(data, got); diff != "" {
		t.Fatalf("Article (-want, +got):\n%s", diff)
	}

	// Reading past the end of the data fails.
	e.Size += 10
	if _, err := d.Article(e); !errors.Is(err, stardict.ErrInvalidArticle) {
		t.Fatalf("Article; want: %v, got: %v", stardict.ErrInvalidArticle, err)
	}
}

// TestIndexScanner tests scanning .idx data.
func TestIndexScanner(t *testing.T) {
	t.Parallel()

	entries := []*stardict.IndexEntry{
		{Word: "hoge", Offset: 0, Size: 5},
		{Word: "fuga pico", Offset: 5, Size: 300},
	}

	for _, bits := range []int{32, 64} {
		b := testutil.MakeIndex(t, entries, bits)
		s, err := stardict.NewIndexScanner(bytes.NewReader(b), bits)
		if err != nil {
			t.Fatalf("NewIndexScanner: %v", err)
		}
		var got []*stardict.IndexEntry
		for s.Scan() {
			got = append(got, s.Entry())
		}
		if err := s.Err(); err != nil {
			t.Fatalf("Err: %v", err)
		}
		if diff := cmp.Diff(entries, got); diff != "" {
			t.Fatalf("entries %d bit (-want, +got):\n%s", bits, diff)
		}

		// Truncated data.
		s, err = stardict.NewIndexScanner(bytes.NewReader(b[:len(b)-2]), bits)
		if err != nil {
			t.Fatalf("NewIndexScanner: %v", err)
		}
		for s.Scan() {
		}
		if err := s.Err(); !errors.Is(err, stardict.ErrInvalidIndex) {
			t.Fatalf("Err; want: %v, got: %v", stardict.ErrInvalidIndex, err)
		}
	}

	if _, err := stardict.NewIndexScanner(bytes.NewReader(nil), 16); !errors.Is(err, stardict.ErrInvalidIdxOffset) {
		t.Fatalf("NewIndexScanner; want: %v, got: %v", stardict.ErrInvalidIdxOffset, err)
	}
}

// TestSynonymScanner tests scanning .syn data.
func TestSynonymScanner(t *testing.T) {
	t.Parallel()

	entries := []*stardict.SynonymEntry{
		{Word: "hoge", OriginalWordIndex: 5},
		{Word: "fuga pico", OriginalWordIndex: 3},
	}
	s := stardict.NewSynonymScanner(bytes.NewReader(testutil.MakeSyn(t, entries)))
	var got []*stardict.SynonymEntry
	for s.Scan() {
		got = append(got, s.Entry())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Fatalf("entries (-want, +got):\n%s", diff)
	}
}

// TestOpen_Errors tests opening invalid dictionaries.
func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteDictionary(t, dir, &testutil.Dictionary{
		Words: []*testutil.Word{{Word: "hoge", Data: html("x")}},
	})

	if _, err := stardict.Open(filepath.Join(dir, "dictionary.idx")); !errors.Is(err, stardict.ErrStardict) {
		t.Fatalf("Open: want: %v, got: %v", stardict.ErrStardict, err)
	}

	if err := os.Remove(filepath.Join(dir, "dictionary.dict")); err != nil {
		t.Fatal(err)
	}
	if _, err := stardict.Open(path); !errors.Is(err, stardict.ErrMissingFile) {
		t.Fatalf("Open: want: %v, got: %v", stardict.ErrMissingFile, err)
	}
}

// TestOpenAll tests opening all dictionaries under a directory.
func TestOpenAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"one", "two"} {
		sub := filepath.Join(dir, name)
		if err := os.Mkdir(sub, 0o700); err != nil {
			t.Fatal(err)
		}
		testutil.WriteDictionary(t, sub, &testutil.Dictionary{
			Name:     name,
			Bookname: name,
			Words:    []*testutil.Word{{Word: "hoge", Data: html("x")}},
		})
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.ifo"), []byte("bad"), 0o600); err != nil {
		t.Fatal(err)
	}

	dicts, errs := stardict.OpenAll(dir)
	defer func() {
		for _, d := range dicts {
			d.Close()
		}
	}()

	if want, got := 1, len(errs); want != got {
		t.Fatalf("errors; want: %d, got: %d: %v", want, got, errs)
	}
	var names []string
	for _, d := range dicts {
		names = append(names, d.Info().Bookname)
	}
	if diff := cmp.Diff([]string{"one", "two"}, names); diff != "" {
		t.Fatalf("dictionaries (-want, +got):\n%s", diff)
	}
}
