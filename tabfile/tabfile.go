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

// Package tabfile implements reading tab separated dictionary exports.
//
// Each line of a tabfile holds a single record. The first field is a list of
// headword spellings separated by '|' and the second field, separated by the
// first tab character, is the definition body.
//
//	word|alternate|another\t<b>definition</b>
package tabfile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRecord is the parent error for all malformed records.
var ErrMalformedRecord = errors.New("malformed record")

const (
	fieldSeparator    = "\t"
	spellingSeparator = "|"
)

// MalformedRecordError is returned when a line cannot be read as a record.
type MalformedRecordError struct {
	// Line is the 1-based line number of the record, or zero if unknown.
	Line int

	// Reason describes what is wrong with the record.
	Reason string
}

// Error implements error.
func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: line %d: %s", ErrMalformedRecord, e.Line, e.Reason)
	}
	return fmt.Sprintf("%v: %s", ErrMalformedRecord, e.Reason)
}

// Unwrap returns ErrMalformedRecord.
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// Record is a single tabfile line.
type Record struct {
	// Spellings are the headword spellings. The first element is the primary
	// spelling.
	Spellings []string

	// Body is the raw definition markup.
	Body string

	// Line is the 1-based line number the record was read from.
	Line int
}

// Primary returns the primary spelling of the record.
func (r Record) Primary() string {
	if len(r.Spellings) == 0 {
		return ""
	}
	return r.Spellings[0]
}

// Alternates returns the non-primary spellings of the record.
func (r Record) Alternates() []string {
	if len(r.Spellings) < 2 {
		return nil
	}
	return r.Spellings[1:]
}

// Parse parses a single line into a Record. The line is trimmed before it is
// split on the first tab. Spellings are not validated here and may be empty.
func Parse(line string) (Record, error) {
	words, body, ok := strings.Cut(strings.TrimSpace(line), fieldSeparator)
	if !ok {
		return Record{}, &MalformedRecordError{Reason: "missing tab separator"}
	}

	return Record{
		Spellings: strings.Split(strings.TrimSpace(words), spellingSeparator),
		Body:      body,
	}, nil
}
