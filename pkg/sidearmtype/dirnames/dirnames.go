// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package dirnames

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DotSidearm is a directory that appears under the home directory.
const DotSidearm = ".sidearm"

// HomeEnv overrides the location of the config directory.
const HomeEnv = "SIDEARM_HOME"

// SidearmDir returns the absolute path of `~/.sidearm` (or $SIDEARM_HOME, if set).
// The directory does not need to exist.
func SidearmDir() (string, error) {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(homeDir, DotSidearm)
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return filepath.Abs(dir)
	}
	realdir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", fmt.Errorf("cannot evaluate symlinks in %q: %w", dir, err)
	}
	return realdir, nil
}

// DefaultToolsDir returns the tools directory proposed during `sidearm init`.
func DefaultToolsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "tools"), nil
}

// DefaultBinDir returns the bin directory proposed during `sidearm init`
// for the given tools directory.
func DefaultBinDir(toolsDir string) string {
	return filepath.Join(toolsDir, "bin")
}
