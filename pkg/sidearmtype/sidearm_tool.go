// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package sidearmtype

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/sidearm-dev/sidearm/pkg/sidearmtype/filenames"
)

type ToolType = string

const (
	GIT ToolType = "git"
	GO  ToolType = "go"
)

var ToolTypes = []ToolType{GIT, GO}

// Tool is an entry of the manifest (tools.json).
type Tool struct {
	Name string   `json:"name" jsonschema:"required"`
	Type ToolType `json:"type" jsonschema:"required,enum=git,enum=go"`
	// Repo is a clone URL for git tools, and a module path with an optional
	// "@version" suffix for go tools.
	Repo string `json:"repo" jsonschema:"required"`
	// Exec is the path of the executable relative to the clone, for git tools.
	// nil means the field is absent; an empty string means "no symlink".
	Exec *string `json:"exec,omitempty"`
}

// UnmarshalJSON decodes a manifest entry.
// Fields holding a non-string value are left unset, so that Validate can
// report them instead of failing the whole manifest.
func (t *Tool) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	str := func(k string) (string, bool) {
		s, ok := m[k].(string)
		return s, ok
	}
	*t = Tool{}
	t.Name, _ = str("name")
	t.Type, _ = str("type")
	t.Repo, _ = str("repo")
	if s, ok := str("exec"); ok {
		t.Exec = &s
	}
	return nil
}

// ExecPath returns Exec, or an empty string when it is absent.
func (t *Tool) ExecPath() string {
	if t.Exec == nil {
		return ""
	}
	return *t.Exec
}

// NormalizeRepo trims surrounding whitespace and trailing slashes.
func NormalizeRepo(repo string) string {
	return strings.TrimRight(strings.TrimSpace(repo), "/")
}

// Config is the content of config.json.
type Config struct {
	ToolsDir string `json:"tools_dir"`
	BinDir   string `json:"bin_dir"`
}

// ManifestPath returns the path of tools.json.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.ToolsDir, filenames.Manifest)
}

// ToolDir returns the directory a git tool is cloned into.
func (c *Config) ToolDir(name string) string {
	return filepath.Join(c.ToolsDir, name)
}

// SymlinkPath returns the path of the symlink published for a tool.
func (c *Config) SymlinkPath(name string) string {
	return filepath.Join(c.BinDir, name)
}
