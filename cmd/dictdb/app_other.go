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
	"os"
	"path/filepath"
	"strings"
)

// dictLocations returns the StarDict data directories following the XDG base
// directory layout.
func dictLocations() []string {
	var loc []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	homeDir, _ := os.UserHomeDir()
	if dataHome == "" && homeDir != "" {
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	if dataHome != "" {
		loc = append(loc, filepath.Join(dataHome, "stardict", "dic"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(dataDirs, ":") {
		if d != "" {
			loc = append(loc, filepath.Join(d, "stardict", "dic"))
		}
	}

	if dataDir := os.Getenv("STARDICT_DATA_DIR"); dataDir != "" {
		loc = append(loc, filepath.Join(dataDir, "dic"))
	}
	if homeDir != "" {
		loc = append(loc, filepath.Join(homeDir, ".stardict", "dic"))
	}

	return uniqueDirs(loc)
}
