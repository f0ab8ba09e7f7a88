// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package editorcmd

import (
	"os"
	"os/exec"
)

// Detect returns the absolute path of a text editor.
// $VISUAL and $EDITOR take precedence over the well-known editors.
// Returns an empty string when no editor is found.
func Detect() string {
	candidates := []string{
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		"editor",
		"nano",
		"vim",
		"vi",
	}
	for _, f := range candidates {
		if f == "" {
			continue
		}
		if x, err := exec.LookPath(f); err == nil {
			return x
		}
	}
	return ""
}
