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

package css

import (
	"regexp"
	"strings"

	"github.com/ianlewis/dictdb/style"
)

var (
	// selectorListRegex matches the artifact left by ScopeRules between the
	// class selector and the next selector of a list.
	selectorListRegex = regexp.MustCompile(`\.` + style.ClassPrefix + `(\d+),\s*`)

	// unterminatedRegex matches a closing brace whose last declaration has
	// no trailing semicolon.
	unterminatedRegex = regexp.MustCompile(`([^;{}\s])(\s*)}`)

	commaRegex = regexp.MustCompile(`,\s*`)
)

// BreakRules puts every rule on its own line by adding a newline after each
// closing brace.
func BreakRules(css string) string {
	return strings.ReplaceAll(css, "}", "}\n")
}

// ScopeRules prefixes the selector of every rule line with the class selector
// for the class id n. Commas in selector lists are rewritten as ", .dpN,"
// which FixSelectorLists turns into a scoped selector.
//
// At-rules with a nested rule on the same line keep their header and have the
// nested rule scoped. Other at-rules, lone closing braces and lines without a
// declaration block are left as is. Leading whitespace and blank lines are
// removed.
func ScopeRules(css string, n int) string {
	class := "." + style.ClassName(n)

	var lines []string
	for _, line := range strings.Split(css, "\n") {
		line = strings.TrimLeft(line, " \t\r")
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "}"):
		case strings.HasPrefix(line, "@"):
			header, inner, found := strings.Cut(line, "{")
			if found && strings.Contains(inner, "{") {
				line = header + "{" + scopeRule(strings.TrimLeft(inner, " \t"), class)
			}
		default:
			line = scopeRule(line, class)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// scopeRule scopes the selector list of a single rule.
func scopeRule(rule, class string) string {
	selector, block, found := strings.Cut(rule, "{")
	if !found {
		return rule
	}
	selector = commaRegex.ReplaceAllLiteralString(selector, ", "+class+",")
	return class + " " + selector + "{" + block
}

// FixSelectorLists rewrites the ".dpN," artifacts produced by ScopeRules into
// ".dpN " so that every selector of a list is scoped.
func FixSelectorLists(css string) string {
	return selectorListRegex.ReplaceAllString(css, "."+style.ClassPrefix+"$1 ")
}

// TerminateDeclarations adds a semicolon after the last declaration of every
// declaration block that lacks one.
func TerminateDeclarations(css string) string {
	return unterminatedRegex.ReplaceAllString(css, "$1;$2}")
}

// ScopeBlock runs every rewrite pass over the style block css for the class
// id n.
func ScopeBlock(css string, n int) string {
	css = BreakRules(css)
	css = ScopeRules(css, n)
	css = FixSelectorLists(css)
	css = TerminateDeclarations(css)
	return strings.TrimSpace(css)
}
