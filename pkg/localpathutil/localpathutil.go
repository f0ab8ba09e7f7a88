// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package localpathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a path like "~", "~/", "~/foo" against homeDir.
// Paths like "~foo/bar" are unsupported.
func ExpandHome(orig, homeDir string) (string, error) {
	s := strings.TrimSpace(orig)
	if s == "" {
		return "", errors.New("empty path")
	}

	if strings.HasPrefix(s, "~") {
		if s == "~" || strings.HasPrefix(s, "~/") {
			s = strings.Replace(s, "~", homeDir, 1)
		} else {
			return "", fmt.Errorf("unexpandable path %q", orig)
		}
	}
	return s, nil
}

// Expand expands "~" and environment variables, and returns an absolute, clean path.
// Directories typed at the `sidearm init` prompt go through Expand before being
// written to config.json, so that the config only ever holds absolute paths.
func Expand(orig string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	s, err := ExpandHome(os.ExpandEnv(orig), homeDir)
	if err != nil {
		return "", err
	}
	return filepath.Abs(s)
}
