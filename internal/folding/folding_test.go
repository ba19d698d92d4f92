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

package folding_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/transform"

	"github.com/ianlewis/dictdb/internal/folding"
)

func TestLineFolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    " \t\n\r\n ",
			expected: "",
		},
		{
			name:     "single line",
			input:    "  mettā   noun\tfriendliness  ",
			expected: "mettā noun friendliness",
		},
		{
			name:     "blank lines",
			input:    "mettā\n\n\n  friendliness \r\n\n  kindness\n",
			expected: "mettā\nfriendliness\nkindness",
		},
		{
			name:     "trailing spaces before newline",
			input:    "a   \n   b",
			expected: "a\nb",
		},
		{
			name:     "unicode spaces",
			input:    "a  b　c",
			expected: "a b c",
		},
		{
			name:     "invalid utf-8",
			input:    "a \xff b",
			expected: "a � b",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := folding.Lines(test.input)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Lines (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLineFolder_Reader(t *testing.T) {
	t.Parallel()

	// Larger than the transform.Reader buffers to exercise short writes.
	input := strings.Repeat("word   \n\n", 2000)
	expected := strings.TrimSuffix(strings.Repeat("word\n", 2000), "\n")

	var b bytes.Buffer
	r := transform.NewReader(strings.NewReader(input), &folding.LineFolder{})
	if _, err := b.ReadFrom(r); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if diff := cmp.Diff(expected, b.String()); diff != "" {
		t.Fatalf("Read (-want, +got):\n%s", diff)
	}
}
