// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/sidearm-dev/sidearm/pkg/ptr"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
	"github.com/sidearm-dev/sidearm/pkg/store"
	"github.com/sidearm-dev/sidearm/pkg/toolchain"
)

type fixture struct {
	cfg  *sidearmtype.Config
	st   *store.Store
	mock *toolchain.Mock
	inst *Installer
}

func newFixture(t *testing.T, tools ...sidearmtype.Tool) *fixture {
	t.Helper()
	root := t.TempDir()
	cfg := &sidearmtype.Config{
		ToolsDir: filepath.Join(root, "tools"),
		BinDir:   filepath.Join(root, "tools", "bin"),
	}
	assert.NilError(t, os.MkdirAll(cfg.ToolsDir, 0o755))
	st := store.New(filepath.Join(root, ".sidearm"))
	assert.NilError(t, st.SaveConfig(cfg))
	assert.NilError(t, store.AtomicWriteJSON(tools, cfg.ManifestPath()))
	mock := &toolchain.Mock{Files: map[string][]string{}}
	return &fixture{cfg: cfg, st: st, mock: mock, inst: New(cfg, st, mock, mock)}
}

func gitTool(name, exec string) sidearmtype.Tool {
	return sidearmtype.Tool{
		Name: name,
		Type: sidearmtype.GIT,
		Repo: "https://example.com/" + name + ".git",
		Exec: ptr.Of(exec),
	}
}

func TestGitClonesWhenMissing(t *testing.T) {
	tool := gitTool("sqlmap", "sqlmap.py")
	f := newFixture(t, tool)
	f.mock.Files[tool.Repo] = []string{"sqlmap.py"}

	res, err := f.inst.InstallOrUpdate(context.Background(), "sqlmap")
	assert.NilError(t, err)
	assert.NilError(t, res.Err)
	assert.Equal(t, res.Action, ActionClone)
	assert.DeepEqual(t, f.mock.Operations, []toolchain.Operation{
		{Op: "clone", URL: tool.Repo, Dir: f.cfg.ToolDir("sqlmap"), Depth: CloneDepth},
	})

	link := filepath.Join(f.cfg.BinDir, "sqlmap")
	assert.Equal(t, res.Symlink, link)
	target, err := os.Readlink(link)
	assert.NilError(t, err)
	expected, err := filepath.EvalSymlinks(filepath.Join(f.cfg.ToolDir("sqlmap"), "sqlmap.py"))
	assert.NilError(t, err)
	actual, err := filepath.EvalSymlinks(target)
	assert.NilError(t, err)
	assert.Equal(t, actual, expected)
}

func TestGitPullsWhenPresent(t *testing.T) {
	tool := gitTool("dirsearch", "dirsearch.py")
	f := newFixture(t, tool)
	dest := f.cfg.ToolDir("dirsearch")
	assert.NilError(t, os.MkdirAll(dest, 0o755))
	assert.NilError(t, os.WriteFile(filepath.Join(dest, "dirsearch.py"), nil, 0o755))

	// A stale symlink from a previous install is replaced.
	assert.NilError(t, os.MkdirAll(f.cfg.BinDir, 0o755))
	assert.NilError(t, os.Symlink("/nonexistent", f.cfg.SymlinkPath("dirsearch")))

	res, err := f.inst.InstallOrUpdate(context.Background(), "dirsearch")
	assert.NilError(t, err)
	assert.NilError(t, res.Err)
	assert.Equal(t, res.Action, ActionPull)
	assert.DeepEqual(t, f.mock.Ops(), []string{"pull"})

	target, err := os.Readlink(f.cfg.SymlinkPath("dirsearch"))
	assert.NilError(t, err)
	assert.Assert(t, target != "/nonexistent")
}

func TestGitRepoNormalized(t *testing.T) {
	tool := gitTool("x", "")
	tool.Repo = "  https://example.com/x/  "
	f := newFixture(t, tool)

	res := f.inst.Install(context.Background(), tool)
	assert.NilError(t, res.Err)
	assert.Equal(t, f.mock.Operations[0].URL, "https://example.com/x")
}

func TestGitEmptyExecSkipsSymlink(t *testing.T) {
	tool := gitTool("SecLists", "")
	f := newFixture(t, tool)

	res := f.inst.Install(context.Background(), tool)
	assert.NilError(t, res.Err)
	assert.Equal(t, res.Symlink, "")
	_, err := os.Stat(f.cfg.BinDir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGitMissingExecutable(t *testing.T) {
	tool := gitTool("x", "bin/x")
	f := newFixture(t, tool)

	res := f.inst.Install(context.Background(), tool)
	assert.ErrorIs(t, res.Err, ErrMissingExecutable)
	assert.Equal(t, res.Symlink, "")
	_, err := os.Lstat(f.cfg.SymlinkPath("x"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGitExecCannotEscapeClone(t *testing.T) {
	for _, exec := range []string{"../../../../etc/passwd", "/etc/passwd", "bin/../../x.sh"} {
		t.Run(exec, func(t *testing.T) {
			tool := gitTool("x", exec)
			f := newFixture(t, tool)

			res := f.inst.Install(context.Background(), tool)
			assert.ErrorIs(t, res.Err, ErrUnsafePath)
			assert.Equal(t, res.Symlink, "")
			_, err := os.Lstat(f.cfg.SymlinkPath("x"))
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestGitExecIsRelativeSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires symlinks")
	}
	tool := gitTool("y", "bin/y")
	f := newFixture(t, tool)
	dest := f.cfg.ToolDir("y")
	assert.NilError(t, os.MkdirAll(filepath.Join(dest, "bin"), 0o755))
	assert.NilError(t, os.WriteFile(filepath.Join(dest, "y.py"), nil, 0o755))
	assert.NilError(t, os.Symlink("../y.py", filepath.Join(dest, "bin", "y")))

	res := f.inst.Install(context.Background(), tool)
	assert.NilError(t, res.Err)
	target, err := os.Readlink(f.cfg.SymlinkPath("y"))
	assert.NilError(t, err)
	assert.Equal(t, target, filepath.Join(dest, "bin", "y"))
}

func TestGitExecIsAbsoluteSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires symlinks")
	}
	outside := filepath.Join(t.TempDir(), "real.sh")
	assert.NilError(t, os.WriteFile(outside, []byte("#!/bin/sh\n"), 0o755))
	tool := gitTool("x", "run")
	f := newFixture(t, tool)
	dest := f.cfg.ToolDir("x")
	assert.NilError(t, os.MkdirAll(dest, 0o755))
	assert.NilError(t, os.Symlink(outside, filepath.Join(dest, "run")))

	res := f.inst.Install(context.Background(), tool)
	assert.NilError(t, res.Err)
	assert.Equal(t, res.Symlink, f.cfg.SymlinkPath("x"))
	target, err := os.Readlink(res.Symlink)
	assert.NilError(t, err)
	assert.Equal(t, target, filepath.Join(dest, "run"))
}

func TestGitUnsafeNameTouchesNothing(t *testing.T) {
	for _, name := range []string{"../tools.json", "a/b", "..", ".", `a\b`} {
		t.Run(name, func(t *testing.T) {
			tool := gitTool(name, "x.sh")
			f := newFixture(t, tool)
			before, err := os.ReadFile(f.cfg.ManifestPath())
			assert.NilError(t, err)

			res := f.inst.Install(context.Background(), tool)
			assert.ErrorIs(t, res.Err, ErrUnsafePath)
			assert.Equal(t, len(f.mock.Operations), 0)
			after, err := os.ReadFile(f.cfg.ManifestPath())
			assert.NilError(t, err)
			assert.Equal(t, string(after), string(before))
		})
	}
}

func TestGitCloneFailureIsReported(t *testing.T) {
	tool := gitTool("x", "x.sh")
	f := newFixture(t, tool)
	errNetwork := errors.New("exit status 128")
	f.mock.CloneErr = errNetwork

	res, err := f.inst.InstallOrUpdate(context.Background(), "x")
	assert.NilError(t, err)
	assert.ErrorIs(t, res.Err, errNetwork)
	var extErr *ExternalError
	assert.Assert(t, errors.As(res.Err, &extErr))
	assert.Equal(t, extErr.Op, "clone")
	assert.Equal(t, extErr.Tool, "x")
	assert.Assert(t, !res.OK())
}

func TestGoModuleRef(t *testing.T) {
	assert.Equal(t, GoModuleRef("github.com/ffuf/ffuf/v2"), "github.com/ffuf/ffuf/v2@latest")
	assert.Equal(t, GoModuleRef("github.com/ffuf/ffuf/v2@v2.1.0"), "github.com/ffuf/ffuf/v2@v2.1.0")
	assert.Equal(t, GoModuleRef("github.com/ffuf/ffuf/v2@master"), "github.com/ffuf/ffuf/v2@master")
}

func TestGoInstall(t *testing.T) {
	testCases := map[string]string{
		"github.com/projectdiscovery/httpx/cmd/httpx":         "github.com/projectdiscovery/httpx/cmd/httpx@latest",
		"github.com/projectdiscovery/httpx/cmd/httpx/":        "github.com/projectdiscovery/httpx/cmd/httpx@latest",
		"github.com/projectdiscovery/httpx/cmd/httpx@v1.6.0":  "github.com/projectdiscovery/httpx/cmd/httpx@v1.6.0",
		" github.com/projectdiscovery/httpx/cmd/httpx@v1.6.0": "github.com/projectdiscovery/httpx/cmd/httpx@v1.6.0",
	}
	for repo, expected := range testCases {
		t.Run(repo, func(t *testing.T) {
			tool := sidearmtype.Tool{Name: "httpx", Type: sidearmtype.GO, Repo: repo}
			f := newFixture(t, tool)
			res, err := f.inst.InstallOrUpdate(context.Background(), "httpx")
			assert.NilError(t, err)
			assert.NilError(t, res.Err)
			assert.Equal(t, res.Action, ActionInstall)
			assert.DeepEqual(t, f.mock.Operations, []toolchain.Operation{{Op: "go-install", URL: expected}})
			_, err = os.Stat(f.cfg.BinDir)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestGoInstallFailureIsReported(t *testing.T) {
	tool := sidearmtype.Tool{Name: "httpx", Type: sidearmtype.GO, Repo: "example.com/httpx"}
	f := newFixture(t, tool)
	f.mock.InstallErr = errors.New("exit status 1")

	res := f.inst.Install(context.Background(), tool)
	assert.Error(t, res.Err, "failed to install httpx: exit status 1")
}

func TestNotFoundTouchesNothing(t *testing.T) {
	f := newFixture(t, gitTool("sqlmap", "sqlmap.py"))
	before, err := os.ReadDir(f.cfg.ToolsDir)
	assert.NilError(t, err)

	res, err := f.inst.InstallOrUpdate(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrToolNotFound)
	assert.Assert(t, res == nil)
	assert.Equal(t, len(f.mock.Operations), 0)

	after, err := os.ReadDir(f.cfg.ToolsDir)
	assert.NilError(t, err)
	assert.Equal(t, len(after), len(before))
	_, err = os.Stat(f.cfg.BinDir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFirstMatchWins(t *testing.T) {
	first := sidearmtype.Tool{Name: "dup", Type: sidearmtype.GO, Repo: "example.com/first"}
	second := sidearmtype.Tool{Name: "dup", Type: sidearmtype.GO, Repo: "example.com/second"}
	f := newFixture(t, first, second)

	_, err := f.inst.InstallOrUpdate(context.Background(), "dup")
	assert.NilError(t, err)
	assert.Equal(t, f.mock.Operations[0].URL, "example.com/first@latest")
}

func TestCorruptManifest(t *testing.T) {
	f := newFixture(t)
	assert.NilError(t, os.WriteFile(f.cfg.ManifestPath(), []byte("{"), 0o644))
	_, err := f.inst.InstallOrUpdate(context.Background(), "x")
	assert.ErrorIs(t, err, store.ErrManifestCorrupt)
}
