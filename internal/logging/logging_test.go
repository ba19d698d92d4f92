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

package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/dictdb/internal/config"
	"github.com/ianlewis/dictdb/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logging.New(&buf, config.LogConfig{Level: "info", Format: "JSON"})
	log.Debug("hidden")
	log.Info("inserted entries", "count", 10000)

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("JSON handler should produce a single JSON object: %v: %q", err, buf.String())
	}
	if diff := cmp.Diff("inserted entries", m["msg"]); diff != "" {
		t.Fatalf("msg (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(float64(10000), m["count"]); diff != "" {
		t.Fatalf("count (-want, +got):\n%s", diff)
	}
}

func TestNew_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logging.New(&buf, config.LogConfig{Level: "debug", Format: "text"})
	log.Debug("visible", "run_id", "01ABC")

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "run_id=01ABC") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q); want: %v, got: %v", in, want, got)
		}
	}
}
