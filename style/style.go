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

// Package style implements deduplication of inline style blocks in
// definition bodies.
//
// Definitions exported from HTML dictionaries usually carry a full copy of
// the dictionary stylesheet in every article. A Deduplicator removes the
// inline <style> block, assigns it a numeric class id and wraps the article
// in a <section class="dpN"> element referencing that class. Every newly
// assigned block is recorded in a Log which is later compiled into a single
// stylesheet.
package style

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrStyle is the parent error for all style errors.
	ErrStyle = errors.New("style")

	// ErrUnbalancedStyle indicates a closing </style> without an opening
	// <style> tag.
	ErrUnbalancedStyle = fmt.Errorf("%w: </style> without opening <style>", ErrStyle)

	// ErrUnknownMode indicates an invalid deduplication mode name.
	ErrUnknownMode = fmt.Errorf("%w: unknown mode", ErrStyle)
)

const (
	styleOpen  = "<style"
	styleClose = "</style>"

	// ClassPrefix is the prefix of generated class names.
	ClassPrefix = "dp"
)

var (
	scriptRegex  = regexp.MustCompile(`<script>.*?</script>`)
	wrapperRegex = regexp.MustCompile(`<title>.*?</title><body>`)
)

// Mode selects how repeated style blocks are identified.
type Mode int

const (
	// Positional reuses the current class only while the same block repeats
	// contiguously. A block seen earlier but not current gets a new class.
	Positional Mode = iota

	// Legacy reuses the current class whenever the block text has been seen
	// anywhere before. Non-adjacent repeats are tagged with the current
	// class rather than the class originally assigned to the block.
	Legacy

	// Content reuses the class originally assigned to an identical block.
	Content
)

var modeNames = map[Mode]string{
	Positional: "positional",
	Legacy:     "legacy",
	Content:    "content",
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode with the given name.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return Positional, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// ClassName returns the class name for the given class id.
func ClassName(id int) string {
	return fmt.Sprintf("%s%d", ClassPrefix, id)
}

// Deduplicator assigns class ids to style blocks. A Deduplicator holds the
// state of a single conversion run and is not safe for concurrent use.
type Deduplicator struct {
	mode Mode

	// counter is the most recently assigned class id.
	counter int

	// current is the text of the most recently assigned block.
	current string

	// ids maps block text to its first assigned class id.
	ids map[string]int

	log *Log
}

// New returns a new Deduplicator using the given mode.
func New(mode Mode) *Deduplicator {
	return &Deduplicator{
		mode: mode,
		ids:  map[string]int{},
		log:  newLog(),
	}
}

// Mode returns the deduplication mode.
func (d *Deduplicator) Mode() Mode {
	return d.mode
}

// Classes returns the number of class ids assigned so far.
func (d *Deduplicator) Classes() int {
	return d.counter
}

// Log returns the style log.
func (d *Deduplicator) Log() *Log {
	return d.log
}

// Scope removes the inline style block from body and returns the rewritten
// definition. Bodies without a style block are returned with the title and
// body wrapper removed.
func (d *Deduplicator) Scope(body string) (string, error) {
	cssText, rest, found := strings.Cut(strings.TrimSpace(body), styleClose)
	if !found {
		return stripWrapper(body), nil
	}
	if !strings.Contains(cssText, styleOpen) {
		return "", ErrUnbalancedStyle
	}

	rest, script := extractScript(rest)
	if script != "" && !d.log.seen(script) {
		d.log.addScript(script)
	}

	css := strings.TrimSpace(cssText)
	id := d.classFor(css)
	return fmt.Sprintf(`<section class="%s">%s</section>`, ClassName(id), rest), nil
}

// classFor returns the class id for css, assigning and logging a new one
// when required by the mode.
func (d *Deduplicator) classFor(css string) int {
	switch d.mode {
	case Legacy:
		if d.log.seen(css) {
			return d.counter
		}
	case Content:
		if id, ok := d.ids[css]; ok {
			return id
		}
	default:
		if d.counter > 0 && css == d.current {
			return d.counter
		}
	}

	d.counter++
	d.current = css
	if _, ok := d.ids[css]; !ok {
		d.ids[css] = d.counter
	}
	d.log.addBlock(d.counter, css)
	return d.counter
}

// extractScript removes the first <script> element from s and returns the
// remaining definition with its wrapper removed, along with the script.
func extractScript(s string) (string, string) {
	script := scriptRegex.FindString(s)
	if script != "" {
		s = strings.ReplaceAll(s, script, "")
	}
	return stripWrapper(s), script
}

// stripWrapper removes the <title>…</title><body> wrapper and any <body> tags
// left by the HTML export.
func stripWrapper(s string) string {
	if loc := wrapperRegex.FindStringIndex(s); loc != nil {
		s = s[:loc[0]] + s[loc[1]:]
	}
	s = strings.ReplaceAll(s, "<body>", "")
	return strings.TrimSpace(s)
}
