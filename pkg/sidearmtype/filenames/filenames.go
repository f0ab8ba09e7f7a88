// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

// Package filenames defines the names of the files that appear under the
// sidearm config directory or inside the tools directory.
package filenames

// Filenames that appear under the config directory ($SIDEARM_HOME).
const (
	Config = "config.json"
)

// Filenames that appear under the tools directory.
const (
	Manifest = "tools.json"
)
