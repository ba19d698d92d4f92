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

package style

import (
	"fmt"
	"io"
	"strings"
)

const (
	// StartMarker precedes each block in the log.
	StartMarker = "Start"

	// EndMarker follows each block in the log.
	EndMarker = "End"

	entrySeparator = "\n\n"
)

// Block is a distinct style block and its assigned class id.
type Block struct {
	ClassID int
	CSS     string
}

// Tag returns the log tag pairing the class id with the block text.
func (b Block) Tag() string {
	return fmt.Sprintf(`<z class="%s">%s</z>`, ClassName(b.ClassID), b.CSS)
}

// Log records every newly assigned style block and every distinct script tag
// in the order they were encountered.
type Log struct {
	entries []string

	// texts holds every logged entry. Scripts and blocks share it.
	texts map[string]struct{}

	blocks  []Block
	scripts []string
}

func newLog() *Log {
	return &Log{
		texts: map[string]struct{}{},
	}
}

func (l *Log) seen(s string) bool {
	_, ok := l.texts[s]
	return ok
}

func (l *Log) append(entries ...string) {
	for _, e := range entries {
		l.entries = append(l.entries, e)
		l.texts[e] = struct{}{}
	}
}

func (l *Log) addBlock(id int, css string) {
	b := Block{ClassID: id, CSS: css}
	l.blocks = append(l.blocks, b)
	l.append(StartMarker, b.Tag(), css, EndMarker)
}

func (l *Log) addScript(script string) {
	l.scripts = append(l.scripts, script)
	l.append(script)
}

// Entries returns the log entries in order.
func (l *Log) Entries() []string {
	return l.entries
}

// Blocks returns the logged style blocks in ascending class id order.
func (l *Log) Blocks() []Block {
	return l.blocks
}

// Scripts returns the distinct script tags in the order they were found.
func (l *Log) Scripts() []string {
	return l.scripts
}

// String returns the serialized log. Entries are separated by a blank line.
func (l *Log) String() string {
	return strings.Join(l.entries, entrySeparator)
}

// WriteTo writes the serialized log to w.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, l.String())
	if err != nil {
		return int64(n), fmt.Errorf("writing style log: %w", err)
	}
	return int64(n), nil
}
