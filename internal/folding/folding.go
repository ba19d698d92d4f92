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

// Package folding tidies plain text rendered from definitions.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// LineFolder folds whitespace while keeping line structure. Runs of
// horizontal whitespace become a single space, lines are trimmed, and runs
// of blank lines become a single line break. Leading and trailing
// whitespace of the whole input is dropped.
type LineFolder struct {
	// started is true after the first non-whitespace rune.
	started bool

	// space is true inside a horizontal whitespace span.
	space bool

	// newline is true inside a span containing a line break.
	newline bool
}

// Transform implements [transform.Transformer.Transform].
func (f *LineFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(c) {
			nSrc += size
			if !f.started {
				continue
			}
			if c == '\n' {
				f.newline = true
			} else {
				f.space = true
			}
			continue
		}

		// Pending separator. A line break wins over spaces.
		var sep rune
		switch {
		case f.newline:
			sep = '\n'
		case f.space:
			sep = ' '
		}
		need := utf8.RuneLen(c)
		if sep != 0 {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if sep != 0 {
			dst[nDst] = byte(sep)
			nDst++
		}
		f.space, f.newline = false, false
		f.started = true

		nSrc += size
		// c may be utf8.RuneError which encodes to three bytes.
		nDst += utf8.EncodeRune(dst[nDst:], c)
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *LineFolder) Reset() {
	*f = LineFolder{}
}

// Lines folds s using a [LineFolder].
func Lines(s string) string {
	out, _, err := transform.String(&LineFolder{}, s)
	if err != nil {
		return s
	}
	return out
}
