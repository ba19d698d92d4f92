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

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/dictdb/internal/config"
	"github.com/ianlewis/dictdb/style"
)

// TestLoad_Defaults tests loading defaults. Tests that set environment
// variables cannot run in parallel.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expected := &config.Config{
		Database:   "dpd.db",
		Stylesheet: "dpd.css",
		BatchSize:  10000,
		DedupMode:  "positional",
		Log: config.LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Fatalf("Load (-want, +got):\n%s", diff)
	}
	if want, got := style.Positional, cfg.Mode(); want != got {
		t.Fatalf("Mode; want: %v, got: %v", want, got)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictdb.yaml")
	data := `database: out/dict.db
batch_size: 500
lenient: true
dedup_mode: content
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DICTDB_BATCH_SIZE", "250")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expected := &config.Config{
		Database:   "out/dict.db",
		Stylesheet: "dpd.css",
		BatchSize:  250,
		Lenient:    true,
		DedupMode:  "content",
		Log: config.LogConfig{
			Level:  "debug",
			Format: "json",
		},
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Fatalf("Load (-want, +got):\n%s", diff)
	}
	if want, got := style.Content, cfg.Mode(); want != got {
		t.Fatalf("Mode; want: %v, got: %v", want, got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load: want %v, got: %v", os.ErrNotExist, err)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DICTDB_DEDUP_MODE", "bogus")

	_, err := config.Load("")
	if !errors.Is(err, style.ErrUnknownMode) {
		t.Fatalf("Load: want %v, got: %v", style.ErrUnknownMode, err)
	}
	if !errors.Is(err, config.ErrConfig) {
		t.Fatalf("Load: want %v, got: %v", config.ErrConfig, err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() config.Config {
		return config.Config{
			Database:  "dict.db",
			BatchSize: 1,
			DedupMode: "legacy",
			Log:       config.LogConfig{Format: "TEXT"},
		}
	}

	tests := []struct {
		name   string
		modify func(*config.Config)
		valid  bool
	}{
		{
			name:   "valid",
			modify: func(*config.Config) {},
			valid:  true,
		},
		{
			name:   "zero batch size",
			modify: func(c *config.Config) { c.BatchSize = 0 },
		},
		{
			name:   "unknown mode",
			modify: func(c *config.Config) { c.DedupMode = "x" },
		},
		{
			name:   "no database",
			modify: func(c *config.Config) { c.Database = " " },
		},
		{
			name:   "bad log format",
			modify: func(c *config.Config) { c.Log.Format = "xml" },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			test.modify(&cfg)
			err := cfg.Validate()
			if test.valid && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !test.valid && !errors.Is(err, config.ErrConfig) {
				t.Fatalf("Validate: want %v, got: %v", config.ErrConfig, err)
			}
		})
	}
}
