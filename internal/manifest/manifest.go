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

// Package manifest records the outcome of a conversion run as YAML.
package manifest

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/ianlewis/dictdb"
)

// Manifest describes a conversion run.
type Manifest struct {
	RunID    string    `yaml:"run_id"`
	Source   string    `yaml:"source"`
	Started  time.Time `yaml:"started"`
	Duration string    `yaml:"duration"`

	Options Options `yaml:"options"`
	Counts  Counts  `yaml:"counts"`
	Files   []File  `yaml:"files"`
}

// Options are the conversion options used.
type Options struct {
	BatchSize int    `yaml:"batch_size"`
	Strict    bool   `yaml:"strict"`
	DedupMode string `yaml:"dedup_mode"`
	WordIndex bool   `yaml:"word_index"`
}

// Counts are the row and record counts of the run.
type Counts struct {
	Records  int64 `yaml:"records"`
	Skipped  int64 `yaml:"skipped"`
	Entries  int64 `yaml:"entries"`
	Synonyms int64 `yaml:"synonyms"`
	Classes  int   `yaml:"classes"`
	Scripts  int   `yaml:"scripts"`

	// SourceSkipped counts source entries that never became records.
	SourceSkipped int64 `yaml:"source_skipped"`
}

// File is an output file.
type File struct {
	Path  string `yaml:"path"`
	Bytes int64  `yaml:"bytes"`
	Size  string `yaml:"size"`
}

// New returns the manifest for a completed build.
func New(source string, opts *dictdb.BuildOptions, res *dictdb.Result) (*Manifest, error) {
	m := &Manifest{
		RunID:    res.RunID,
		Source:   source,
		Started:  res.Started.UTC().Truncate(time.Second),
		Duration: res.Duration.Round(time.Millisecond).String(),
		Options: Options{
			BatchSize: opts.BatchSize,
			Strict:    opts.Strict,
			DedupMode: opts.DedupMode.String(),
			WordIndex: opts.WordIndex,
		},
		Counts: Counts{
			Records:  res.Stats.Records,
			Skipped:  res.Stats.Skipped,
			Entries:  res.Counts.Entries,
			Synonyms: res.Counts.Synonyms,
			Classes:  res.Stats.Classes,
			Scripts:  res.Stats.Scripts,

			SourceSkipped: res.Stats.SourceSkipped,
		},
	}

	for _, path := range []string{res.Database, res.Stylesheet, res.RawStyles} {
		if path == "" {
			continue
		}
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
		m.Files = append(m.Files, File{
			Path:  path,
			Bytes: fi.Size(),
			//nolint:gosec // file sizes are not negative.
			Size: humanize.Bytes(uint64(fi.Size())),
		})
	}
	return m, nil
}

// Write writes the manifest to path.
func (m *Manifest) Write(path string) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	//nolint:gosec // manifests are world readable.
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}

// Read reads a manifest from path.
func Read(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("manifest: unmarshal %s: %w", path, err)
	}
	return &m, nil
}
