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

package tabfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxLineSize is the maximum size of a single tabfile line.
const MaxLineSize = 64 << 20

// Scanner scans a tabfile from start to end.
type Scanner struct {
	s      *bufio.Scanner
	line   int
	record Record
	err    error
}

// NewScanner returns a new Scanner that reads records from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Scanner{s: s}
}

// Scan advances the Scanner to the next record. It returns false when the
// scan stops either by reaching the end of the input or an error. Blank lines
// are skipped.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.s.Scan() {
		s.line++
		text := s.s.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		r, err := Parse(text)
		if err != nil {
			var mErr *MalformedRecordError
			if errors.As(err, &mErr) {
				mErr.Line = s.line
			}
			s.err = err
			return false
		}
		r.Line = s.line
		s.record = r
		return true
	}
	if err := s.s.Err(); err != nil {
		s.err = fmt.Errorf("reading line %d: %w", s.line+1, err)
	}
	return false
}

// Record returns the most recent record read by Scan.
func (s *Scanner) Record() Record {
	return s.record
}

// Line returns the line number of the most recently read line.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the first error encountered by the Scanner.
func (s *Scanner) Err() error {
	return s.err
}

// Resume clears a malformed record error so that scanning can continue with
// the next line. Other errors are not cleared. Resume reports whether the
// Scanner can continue.
func (s *Scanner) Resume() bool {
	if errors.Is(s.err, ErrMalformedRecord) {
		s.err = nil
		return true
	}
	return s.err == nil
}
