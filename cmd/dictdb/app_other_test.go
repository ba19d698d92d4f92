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

//go:build !windows

package main

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDictLocations(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_DATA_DIRS", "/opt/share::/usr/share")
	t.Setenv("STARDICT_DATA_DIR", "/opt/share/stardict")

	expected := []string{
		filepath.Join(home, ".local/share/stardict/dic"),
		"/opt/share/stardict/dic",
		"/usr/share/stardict/dic",
		filepath.Join(home, ".stardict/dic"),
	}
	if diff := cmp.Diff(expected, dictLocations()); diff != "" {
		t.Fatalf("dictLocations (-want, +got):\n%s", diff)
	}
}
