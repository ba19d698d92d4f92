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

// Package css compiles a style log into a single class-scoped stylesheet.
//
// Each style block in the log is rewritten so that every rule only applies
// inside elements carrying the block's class:
//
//	a,b{color:red}  =>  .dp3 a, .dp3 b{color:red;}
//
// The rewrite is line based and does not parse CSS. Selectors containing
// commas inside parentheses or attribute values are split incorrectly.
package css

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ianlewis/dictdb/style"
)

// DefaultAppCSS is the application stylesheet placed before the compiled
// blocks.
const DefaultAppCSS = `/** your custom css */

#dictionary-res { display: none; position: fixed; top: 0px; right: 0%; left: 0%; max-height: 70%; width: auto; padding: 4px; /* border: #5abfde solid 1px; */ border-bottom: orange solid 1.5px; background-color: white !important; overflow-x: scroll; overflow-y: scroll; /* z-index: 999 = appears on top of all other elements on the page.*/ z-index: 999; }

.pword { color: brown; font-weight: bold; text-align: center; font-size: x-large; }`

// DefaultAttribution is the license notice for the compiled blocks.
const DefaultAttribution = `/**
 * The below inline css styles are adapted from
 * Digital Pāḷi Dictionary
 * Creative Commons Attribution-NonCommercial 4.0 International License
 * https://github.com/digitalpalidictionary/digitalpalidictionary/releases
 */`

// Options are options for Compile.
type Options struct {
	// AppCSS is placed at the top of the stylesheet.
	AppCSS string

	// Attribution is placed between AppCSS and the compiled blocks.
	Attribution string
}

// DefaultOptions are the default options for Compile.
var DefaultOptions = &Options{
	AppCSS:      DefaultAppCSS,
	Attribution: DefaultAttribution,
}

// Block is a style block extracted from a serialized style log.
type Block struct {
	ClassID int
	CSS     string
}

var (
	// artifactRegexes match markup left over from HTML exports.
	artifactRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<!doctype\s*html\s*>`),
		regexp.MustCompile(`(?i)</?html\b[^>]*>`),
		regexp.MustCompile(`(?i)<meta\s+charset\s*=\s*["']?[\w-]+["']?\s*/?>`),
		regexp.MustCompile(`(?i)</?style\b[^>]*>`),
		regexp.MustCompile(`(?i)@charset\s*"[^"]*"\s*;`),
	}

	blockRegex = regexp.MustCompile(`(?s)<z class="` + style.ClassPrefix + `(\d+)">(.*?)</z>`)
)

// Clean removes export artifacts from the serialized style log. Literal "\n"
// escapes become spaces and markup artifacts become line breaks.
func Clean(log string) string {
	log = strings.ReplaceAll(log, `\n`, " ")
	for _, re := range artifactRegexes {
		log = re.ReplaceAllLiteralString(log, "\n")
	}
	return log
}

// Extract returns the style blocks tagged in the serialized style log in
// ascending class id order.
func Extract(log string) []Block {
	var blocks []Block
	for _, m := range blockRegex.FindAllStringSubmatch(log, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			// The id is all digits but does not fit an int.
			continue
		}
		blocks = append(blocks, Block{ClassID: id, CSS: m[2]})
	}
	slices.SortStableFunc(blocks, func(a, b Block) int {
		return cmp.Compare(a.ClassID, b.ClassID)
	})
	return blocks
}

// Compile compiles the serialized style log into a stylesheet.
func Compile(log string, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions
	}

	var sb strings.Builder
	for _, header := range []string{opts.AppCSS, opts.Attribution} {
		if h := strings.TrimSpace(header); h != "" {
			sb.WriteString(h)
			sb.WriteString("\n\n")
		}
	}

	for _, b := range Extract(Clean(log)) {
		scoped := ScopeBlock(b.CSS, b.ClassID)
		if scoped == "" {
			continue
		}
		sb.WriteString(scoped)
		sb.WriteString("\n\n")
	}

	return strings.TrimSpace(sb.String()) + "\n"
}
