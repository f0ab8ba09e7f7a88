// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

// Package store owns config.json and tools.json.
// No other package reads or writes these files directly.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sidearm-dev/sidearm/pkg/lockutil"
	"github.com/sidearm-dev/sidearm/pkg/osutil"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype/dirnames"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype/filenames"
)

var (
	ErrConfigMissing   = errors.New("sidearm is not initialized")
	ErrConfigCorrupt   = errors.New("config file is corrupt")
	ErrManifestCorrupt = errors.New("manifest is corrupt")
)

type Store struct {
	// Dir is the config directory, typically ~/.sidearm.
	Dir string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Default returns a Store rooted at dirnames.SidearmDir.
func Default() (*Store, error) {
	dir, err := dirnames.SidearmDir()
	if err != nil {
		return nil, err
	}
	return New(dir), nil
}

// ConfigFile returns the path of config.json.
func (s *Store) ConfigFile() string {
	return filepath.Join(s.Dir, filenames.Config)
}

// Exists reports whether the config directory exists.
func (s *Store) Exists() bool {
	return osutil.FileExists(s.Dir)
}

// LoadConfig reads config.json.
func (s *Store) LoadConfig() (*sidearmtype.Config, error) {
	b, err := os.ReadFile(s.ConfigFile())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q does not exist (Hint: run `sidearm init`)", ErrConfigMissing, s.ConfigFile())
		}
		return nil, err
	}
	var cfg sidearmtype.Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %q: %v", ErrConfigCorrupt, s.ConfigFile(), err)
	}
	if strings.TrimSpace(cfg.ToolsDir) == "" || strings.TrimSpace(cfg.BinDir) == "" {
		return nil, fmt.Errorf("%w: %q must set both tools_dir and bin_dir", ErrConfigCorrupt, s.ConfigFile())
	}
	return &cfg, nil
}

// GetDirs returns the tools directory and the bin directory.
func (s *Store) GetDirs() (toolsDir, binDir string, err error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return "", "", err
	}
	return cfg.ToolsDir, cfg.BinDir, nil
}

// SaveConfig writes config.json, creating the config directory if needed.
func (s *Store) SaveConfig(cfg *sidearmtype.Config) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return AtomicWriteJSON(cfg, s.ConfigFile())
}

// LoadManifest reads tools.json.
func (s *Store) LoadManifest(cfg *sidearmtype.Config) ([]sidearmtype.Tool, error) {
	return LoadManifestFile(cfg.ManifestPath())
}

// LoadManifestFile reads a manifest file at an arbitrary path.
func LoadManifestFile(path string) ([]sidearmtype.Tool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the manifest: %w", err)
	}
	return ParseManifest(b, path)
}

// ParseManifest decodes the content of a manifest file.
// path is only used for error messages.
func ParseManifest(b []byte, path string) ([]sidearmtype.Tool, error) {
	var tools []sidearmtype.Tool
	if err := json.Unmarshal(b, &tools); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %q: %v", ErrManifestCorrupt, path, err)
	}
	return tools, nil
}

// SeedManifest writes tools into tools.json unless the file already exists.
func (s *Store) SeedManifest(cfg *sidearmtype.Config, tools []sidearmtype.Tool) (bool, error) {
	path := cfg.ManifestPath()
	if osutil.FileExists(path) {
		return false, nil
	}
	if tools == nil {
		tools = []sidearmtype.Tool{}
	}
	if err := AtomicWriteJSON(tools, path); err != nil {
		return false, err
	}
	return true, nil
}

// AppendTool appends tool to tools.json.
//
// Existing entries are carried over as raw JSON values, so fields sidearm does
// not know about are preserved.
func (s *Store) AppendTool(cfg *sidearmtype.Config, tool sidearmtype.Tool) error {
	path := cfg.ManifestPath()
	return lockutil.WithDirLock(filepath.Dir(path), func() error {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read the manifest: %w", err)
		}
		var entries []json.RawMessage
		if err := json.Unmarshal(b, &entries); err != nil {
			return fmt.Errorf("%w: failed to parse %q: %v", ErrManifestCorrupt, path, err)
		}
		raw, err := json.Marshal(tool)
		if err != nil {
			return err
		}
		entries = append(entries, raw)
		return AtomicWriteJSON(entries, path)
	})
}

// ReplaceManifest overwrites tools.json with b, verbatim.
// The caller is expected to have validated b with ParseManifest.
func (s *Store) ReplaceManifest(cfg *sidearmtype.Config, b []byte) error {
	path := cfg.ManifestPath()
	return lockutil.WithDirLock(filepath.Dir(path), func() error {
		return AtomicWriteFile(path, b)
	})
}
