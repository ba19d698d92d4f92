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

package normalize_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/dictdb/normalize"
)

var wordTests = []struct {
	name     string
	raw      string
	expected string
}{
	{
		name:     "already normal",
		raw:      "mettā",
		expected: "mettā",
	},
	{
		name:     "uppercase",
		raw:      "Mettā",
		expected: "mettā",
	},
	{
		name:     "uppercase diacritic",
		raw:      "ĀKĀSA",
		expected: "ākāsa",
	},
	{
		name:     "surrounding whitespace",
		raw:      "  hoge \t",
		expected: "hoge",
	},
	{
		name:     "homonym number",
		raw:      "dhamma 1",
		expected: "dhamma",
	},
	{
		name:     "leading digits and punctuation",
		raw:      "1. (a)bhidhamma!",
		expected: "a)bhidhamma",
	},
	{
		name:     "underscores",
		raw:      "__hoge__",
		expected: "hoge",
	},
	{
		name:     "interior untouched",
		raw:      "-Sāti-Putta's-",
		expected: "sāti-putta's",
	},
	{
		name:     "interior digits untouched",
		raw:      "a1b",
		expected: "a1b",
	},
	{
		name:     "all clutter",
		raw:      " 123 ?! ",
		expected: "",
	},
	{
		name:     "empty",
		raw:      "",
		expected: "",
	},
	{
		name:     "decomposed diacritic",
		raw:      "metta\u0304",
		expected: "mettā",
	},
	{
		name:     "non-latin script with marks",
		raw:      "(मेत्ता)",
		expected: "मेत्ता",
	},
	{
		name:     "dotted capital i",
		raw:      "İ",
		expected: "i\u0307",
	},
}

// TestWord tests Word.
func TestWord(t *testing.T) {
	t.Parallel()

	for _, test := range wordTests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, normalize.Word(test.raw)); diff != "" {
				t.Fatalf("Word(%q) (-want, +got):\n%s", test.raw, diff)
			}
		})
	}
}

// TestWord_Idempotent tests that Word(Word(x)) == Word(x).
func TestWord_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"İstanbul",
		"ǅemal",
		"ß1",
		"́á",
		"ṂṂ--",
		"x_1_",
		"①word②",
		"ⅻ",
		"'quoted'",
		" nbsp ",
	}
	for _, test := range wordTests {
		inputs = append(inputs, test.raw)
	}

	for _, in := range inputs {
		once := normalize.Word(in)
		twice := normalize.Word(once)
		if once != twice {
			t.Errorf("Word not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

// TestIsLatinScript tests IsLatinScript.
func TestIsLatinScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word     string
		expected bool
	}{
		{"metta", true},
		{"mettā", true},
		{"ñ", true},
		{"Ṅ", true},
		{"मेत्ता", false},
		{"မေတ္တာ", false},
		{"เมตตา", false},
		{"123", false},
		{"", false},
		{"မေတ္တာ a", true},
		{"\u00e9", false},
		{"e\u0301", true},
	}

	for _, test := range tests {
		t.Run(test.word, func(t *testing.T) {
			t.Parallel()

			if want, got := test.expected, normalize.IsLatinScript(test.word); want != got {
				t.Fatalf("IsLatinScript(%q); want: %v, got: %v", test.word, want, got)
			}
		})
	}
}

// TestFilterLatin tests FilterLatin.
func TestFilterLatin(t *testing.T) {
	t.Parallel()

	got := normalize.FilterLatin([]string{"मेत्ता", "metta", "เมตตา", "Mettā"})
	if diff := cmp.Diff([]string{"metta", "Mettā"}, got); diff != "" {
		t.Fatalf("FilterLatin (-want, +got):\n%s", diff)
	}

	if got := normalize.FilterLatin([]string{"मेत्ता"}); got != nil {
		t.Fatalf("FilterLatin; want: nil, got: %q", got)
	}
}
