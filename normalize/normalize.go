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

// Package normalize implements headword normalization and script filtering.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/rangetable"
)

// RomanChars are the characters accepted by IsLatinScript. These are the
// ASCII letters plus the precomposed diacritics used in romanized Pāḷi.
const RomanChars = "ĀĪŪṀṂṆḌḶṚṢŚÑṄāīūṁṃṇḍḷṛṣśñṅ" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var romanTable = rangetable.New([]rune(RomanChars)...)

// Word returns the canonical storage form of a headword. Whitespace is
// trimmed, runs of punctuation, symbols, decimal digits and underscores are
// removed from both ends and the result is lowercased. Interior characters
// are left untouched. Word is idempotent.
func Word(raw string) string {
	w := strings.TrimSpace(norm.NFC.String(raw))
	w = stripClutter(w)
	w = cases.Lower(language.Und).String(w)
	// Lowercasing can change the composed form at the edges.
	w = stripClutter(norm.NFC.String(w))
	return strings.TrimSpace(w)
}

// stripClutter removes non-word runes, decimal digits and underscores from
// the start and end of s.
func stripClutter(s string) string {
	return strings.TrimFunc(s, isClutter)
}

// isClutter reports whether r is trimmed from the edges of a word. A word rune
// is a letter, number or combining mark; decimal digits and '_' are trimmed
// regardless.
func isClutter(r rune) bool {
	if r == '_' || unicode.IsDigit(r) {
		return true
	}
	return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsMark(r)
}

// IsLatinScript reports whether s contains at least one romanized character.
func IsLatinScript(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.Is(romanTable, r)
	}) >= 0
}

// FilterLatin returns the elements of words that pass IsLatinScript. Order is
// preserved.
func FilterLatin(words []string) []string {
	var latin []string
	for _, w := range words {
		if IsLatinScript(w) {
			latin = append(latin, w)
		}
	}
	return latin
}
