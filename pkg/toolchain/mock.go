// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package toolchain

import (
	"context"
	"os"
	"path/filepath"
)

// Operation records a call made against Mock.
type Operation struct {
	// Op is one of "clone", "pull", "go-install".
	Op string
	// URL is the clone URL, or the module reference for go-install.
	URL   string
	Dir   string
	Depth int
}

// Mock implements Git and GoToolchain without running anything.
// Clones create the destination directory and the files listed in Files,
// so that symlink publishing can be exercised.
type Mock struct {
	Operations []Operation

	// Files maps a clone URL to the relative paths created by Clone.
	Files map[string][]string

	CloneErr   error
	PullErr    error
	InstallErr error
}

var (
	_ Git         = (*Mock)(nil)
	_ GoToolchain = (*Mock)(nil)
)

func (m *Mock) Clone(_ context.Context, url, dest string, depth int) error {
	m.Operations = append(m.Operations, Operation{Op: "clone", URL: url, Dir: dest, Depth: depth})
	if m.CloneErr != nil {
		return m.CloneErr
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, f := range m.Files[url] {
		p := filepath.Join(dest, f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte("#!/bin/sh\n"), 0o755); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mock) Pull(_ context.Context, dir string) error {
	m.Operations = append(m.Operations, Operation{Op: "pull", Dir: dir})
	return m.PullErr
}

func (m *Mock) Install(_ context.Context, ref string) error {
	m.Operations = append(m.Operations, Operation{Op: "go-install", URL: ref})
	return m.InstallErr
}

// Ops returns the names of the recorded operations.
func (m *Mock) Ops() []string {
	ops := make([]string, 0, len(m.Operations))
	for _, o := range m.Operations {
		ops = append(ops, o.Op)
	}
	return ops
}
