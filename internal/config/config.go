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

// Package config loads conversion settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ianlewis/dictdb/style"
)

// ErrConfig is the parent error for all configuration errors.
var ErrConfig = errors.New("config")

// Config holds conversion settings.
// Priority: flags > ENV > YAML > defaults (via env-default tags).
//
// env-default is applied to any field left at its zero value, so boolean
// settings default to false.
type Config struct {
	Database   string `yaml:"database"    env:"DICTDB_DATABASE"    env-default:"dpd.db"`
	Stylesheet string `yaml:"stylesheet"  env:"DICTDB_STYLESHEET"  env-default:"dpd.css"`
	RawStyles  string `yaml:"raw_styles"  env:"DICTDB_RAW_STYLES"`
	Manifest   string `yaml:"manifest"    env:"DICTDB_MANIFEST"`
	BatchSize  int    `yaml:"batch_size"  env:"DICTDB_BATCH_SIZE"  env-default:"10000"`
	Lenient    bool   `yaml:"lenient"     env:"DICTDB_LENIENT"`
	DedupMode  string `yaml:"dedup_mode"  env:"DICTDB_DEDUP_MODE"  env-default:"positional"`
	WordIndex  bool   `yaml:"word_index"  env:"DICTDB_WORD_INDEX"  env-default:"false"`

	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"  env:"DICTDB_LOG_LEVEL"  env-default:"info"`

	// Format is either text or json.
	Format string `yaml:"format" env:"DICTDB_LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from the YAML file at path and environment
// variables. If path is empty configuration is loaded from the environment
// and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: file %s: %w", ErrConfig, path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrConfig, path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%w: read env: %w", ErrConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be > 0 (got %d)", ErrConfig, c.BatchSize)
	}
	if _, err := style.ParseMode(c.DedupMode); err != nil {
		return fmt.Errorf("%w: dedup_mode: %w", ErrConfig, err)
	}
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("%w: database must be set", ErrConfig)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json (got %q)", ErrConfig, c.Log.Format)
	}
	return nil
}

// Mode returns the parsed deduplication mode.
func (c *Config) Mode() style.Mode {
	m, err := style.ParseMode(c.DedupMode)
	if err != nil {
		return style.Positional
	}
	return m
}
