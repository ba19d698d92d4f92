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
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const ifoMagic = "StarDict's dict ifo file"

var keyRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Info is the dictionary metadata read from an .ifo file.
type Info struct {
	Version          string
	Bookname         string
	WordCount        int64
	SynWordCount     int64
	IdxFileSize      int64
	IdxOffsetBits    int
	Author           string
	Email            string
	Website          string
	Description      string
	Date             string
	SameTypeSequence []DataType

	// Values holds every key in the file, including unknown keys.
	Values map[string]string
}

// ParseInfo reads .ifo metadata from r.
func ParseInfo(r io.Reader) (*Info, error) {
	s := bufio.NewScanner(r)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("%w: reading .ifo: %w", ErrInvalidInfo, err)
		}
		return nil, fmt.Errorf("%w: empty file", ErrInvalidInfo)
	}
	if strings.TrimSpace(s.Text()) != ifoMagic {
		return nil, fmt.Errorf("%w: bad magic data", ErrInvalidInfo)
	}

	values := map[string]string{}
	i := 0
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("%w: missing '=': %q", ErrInvalidInfo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !keyRegex.MatchString(key) {
			return nil, fmt.Errorf("%w: invalid key: %q", ErrInvalidInfo, key)
		}
		if i == 0 && key != "version" {
			return nil, fmt.Errorf("%w: missing version", ErrInvalidInfo)
		}
		values[key] = value
		i++
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading .ifo: %w", ErrInvalidInfo, err)
	}

	return newInfo(values)
}

func newInfo(values map[string]string) (*Info, error) {
	info := &Info{
		Version:       values["version"],
		Bookname:      values["bookname"],
		Author:        values["author"],
		Email:         values["email"],
		Website:       values["website"],
		Description:   values["description"],
		Date:          values["date"],
		IdxOffsetBits: 32,
		Values:        values,
	}

	switch info.Version {
	case "2.4.2", "3.0.0":
	default:
		return nil, fmt.Errorf("%w: unsupported version: %q", ErrInvalidInfo, info.Version)
	}

	if info.Bookname == "" {
		return nil, fmt.Errorf("%w: missing bookname", ErrInvalidInfo)
	}

	var err error
	info.WordCount, err = parseCount(values, "wordcount", true)
	if err != nil {
		return nil, err
	}
	info.IdxFileSize, err = parseCount(values, "idxfilesize", true)
	if err != nil {
		return nil, err
	}
	info.SynWordCount, err = parseCount(values, "synwordcount", false)
	if err != nil {
		return nil, err
	}

	if bits := values["idxoffsetbits"]; bits != "" && info.Version == "3.0.0" {
		switch bits {
		case "32":
		case "64":
			info.IdxOffsetBits = 64
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdxOffset, bits)
		}
	}

	for _, r := range values["sametypesequence"] {
		if r > 0x7f || !DataType(r).valid() {
			return nil, fmt.Errorf("%w: sametypesequence: %q", ErrInvalidType, r)
		}
		info.SameTypeSequence = append(info.SameTypeSequence, DataType(r))
	}

	return info, nil
}

func parseCount(values map[string]string, key string, required bool) (int64, error) {
	v, ok := values[key]
	if !ok || v == "" {
		if required {
			return 0, fmt.Errorf("%w: missing %s", ErrInvalidInfo, key)
		}
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad %s: %q", ErrInvalidInfo, key, v)
	}
	return n, nil
}
