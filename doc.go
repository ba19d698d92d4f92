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

// Package dictdb converts dictionary exports into a compact SQLite database
// and a single stylesheet.
//
// The input is a tabfile: one record per line holding '|' separated headword
// spellings, a tab and an HTML definition. Stardict dictionaries can be used
// as input directly. For each record:
//
//  1. The inline <style> block of the definition is replaced by a reference
//     to a generated class (see package style).
//  2. The primary spelling is normalized and stored with the rewritten
//     definition in the dictionary table.
//  3. Latin script alternate spellings are stored in the synonyms table.
//
// All rows are written in a single transaction. After the transaction is
// committed the collected style blocks are compiled into one class-scoped
// stylesheet (see package css).
package dictdb
