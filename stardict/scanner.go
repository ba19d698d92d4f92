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
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// maxWordSize bounds the size of a single .idx or .syn entry.
const maxWordSize = 1 << 20

// IndexEntry is an .idx file entry.
type IndexEntry struct {
	Word   string
	Offset uint64
	Size   uint32
}

// SynonymEntry is a .syn file entry.
type SynonymEntry struct {
	// Word is the synonym.
	Word string

	// OriginalWordIndex is the position of the related entry in the .idx
	// file.
	OriginalWordIndex uint32
}

// entryScanner scans null terminated words followed by a fixed size
// trailer. Both .idx and .syn files use this layout.
type entryScanner struct {
	s       *bufio.Scanner
	trailer int
	word    string
	data    []byte
	err     error
}

func newEntryScanner(r io.Reader, trailer int) *entryScanner {
	s := &entryScanner{
		s:       bufio.NewScanner(r),
		trailer: trailer,
	}
	s.s.Buffer(make([]byte, 0, 4096), maxWordSize)
	s.s.Split(s.split)
	return s
}

func (s *entryScanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if !s.s.Scan() {
		s.err = s.s.Err()
		return false
	}
	b := s.s.Bytes()
	i := bytes.IndexByte(b, 0)
	if i < 0 || len(b)-i-1 != s.trailer {
		s.err = fmt.Errorf("%w: truncated entry", ErrInvalidIndex)
		return false
	}
	s.word = string(b[:i])
	s.data = b[i+1:]
	return true
}

func (s *entryScanner) Err() error {
	return s.err
}

func (s *entryScanner) split(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		// Found zero byte.
		tokenSize := i + 1 + s.trailer
		if len(data) >= tokenSize {
			return tokenSize, data[:tokenSize], nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}

	// Request more data.
	return 0, nil, nil
}

// IndexScanner scans an .idx file from start to end.
type IndexScanner struct {
	s          *entryScanner
	offsetBits int
}

// NewIndexScanner returns a new IndexScanner reading from r. offsetBits must
// be 32 or 64.
func NewIndexScanner(r io.Reader, offsetBits int) (*IndexScanner, error) {
	if offsetBits != 32 && offsetBits != 64 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIdxOffset, offsetBits)
	}
	return &IndexScanner{
		s:          newEntryScanner(r, offsetBits/8+4),
		offsetBits: offsetBits,
	}, nil
}

// Scan advances to the next entry. It returns false if the scan stops either
// by reaching the end of the index or an error.
func (s *IndexScanner) Scan() bool {
	return s.s.Scan()
}

// Entry returns the current entry.
func (s *IndexScanner) Entry() *IndexEntry {
	e := &IndexEntry{Word: s.s.word}
	b := s.s.data
	if s.offsetBits == 64 {
		e.Offset = binary.BigEndian.Uint64(b)
		b = b[8:]
	} else {
		e.Offset = uint64(binary.BigEndian.Uint32(b))
		b = b[4:]
	}
	e.Size = binary.BigEndian.Uint32(b)
	return e
}

// Err returns the first error encountered.
func (s *IndexScanner) Err() error {
	return s.s.Err()
}

// SynonymScanner scans a .syn file from start to end.
type SynonymScanner struct {
	s *entryScanner
}

// NewSynonymScanner returns a new SynonymScanner reading from r.
func NewSynonymScanner(r io.Reader) *SynonymScanner {
	return &SynonymScanner{
		s: newEntryScanner(r, 4),
	}
}

// Scan advances to the next entry.
func (s *SynonymScanner) Scan() bool {
	return s.s.Scan()
}

// Entry returns the current entry.
func (s *SynonymScanner) Entry() *SynonymEntry {
	return &SynonymEntry{
		Word:              s.s.word,
		OriginalWordIndex: binary.BigEndian.Uint32(s.s.data),
	}
}

// Err returns the first error encountered.
func (s *SynonymScanner) Err() error {
	return s.s.Err()
}
