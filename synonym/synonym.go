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

// Package synonym derives synonym relations from alternate headword
// spellings.
package synonym

import (
	"github.com/ianlewis/dictdb/normalize"
)

// Relation links an alternate spelling to its primary word.
type Relation struct {
	Synonym string
	Word    string
}

// Extract returns relations from the alternate spellings to word. The
// primary spelling is spellings[0] and is never a synonym. Alternates are
// filtered on the raw token with normalize.IsLatinScript before they are
// normalized. Alternates that normalize to an empty string are dropped.
func Extract(spellings []string, word string) []Relation {
	if len(spellings) < 2 {
		return nil
	}

	var rels []Relation
	for _, s := range spellings[1:] {
		if !normalize.IsLatinScript(s) {
			continue
		}
		syn := normalize.Word(s)
		if syn == "" {
			continue
		}
		rels = append(rels, Relation{
			Synonym: syn,
			Word:    word,
		})
	}
	return rels
}
