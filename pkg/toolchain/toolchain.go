// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolchain wraps the external programs sidearm installs tools with:
// the git client and the Go toolchain.
package toolchain

import (
	"context"
	"strconv"

	"github.com/sidearm-dev/sidearm/pkg/executil"
)

const (
	// GitEnv overrides the git command.
	GitEnv = "SIDEARM_GIT"
	// GoEnv overrides the go command.
	GoEnv = "SIDEARM_GO"
)

// Git is the subset of git used by sidearm.
type Git interface {
	// Clone clones url into dest. depth > 0 makes a shallow clone.
	Clone(ctx context.Context, url, dest string, depth int) error
	// Pull updates the working tree in dir from its tracked remote.
	Pull(ctx context.Context, dir string) error
}

// GoToolchain is the subset of the go command used by sidearm.
type GoToolchain interface {
	// Install runs `go install ref`. The binary lands in $GOBIN (or $GOPATH/bin).
	Install(ctx context.Context, ref string) error
}

type execGit struct {
	opts []executil.Opt
}

// NewGit returns a Git backed by the git executable ($SIDEARM_GIT).
func NewGit(opts ...executil.Opt) Git {
	return &execGit{opts: opts}
}

func (g *execGit) Clone(ctx context.Context, url, dest string, depth int) error {
	argv, err := executil.CommandFromEnv(GitEnv, "git")
	if err != nil {
		return err
	}
	argv = append(argv, "clone")
	if depth > 0 {
		argv = append(argv, "--depth", strconv.Itoa(depth))
	}
	// "--" keeps a repo starting with "-" from being parsed as an option.
	argv = append(argv, "--", url, dest)
	return executil.Run(ctx, argv, g.opts...)
}

func (g *execGit) Pull(ctx context.Context, dir string) error {
	argv, err := executil.CommandFromEnv(GitEnv, "git")
	if err != nil {
		return err
	}
	argv = append(argv, "-C", dir, "pull")
	return executil.Run(ctx, argv, g.opts...)
}

type execGo struct {
	opts []executil.Opt
}

// NewGoToolchain returns a GoToolchain backed by the go executable ($SIDEARM_GO).
func NewGoToolchain(opts ...executil.Opt) GoToolchain {
	return &execGo{opts: opts}
}

func (g *execGo) Install(ctx context.Context, ref string) error {
	argv, err := executil.CommandFromEnv(GoEnv, "go")
	if err != nil {
		return err
	}
	argv = append(argv, "install", ref)
	return executil.Run(ctx, argv, g.opts...)
}
