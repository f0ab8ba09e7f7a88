// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sidearm-dev/sidearm/pkg/osutil"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
	"github.com/sidearm-dev/sidearm/pkg/store"
	"github.com/sidearm-dev/sidearm/pkg/toolchain"
)

// CloneDepth is the depth of the initial clone of git tools.
const CloneDepth = 1

var (
	ErrToolNotFound      = errors.New("tool not found in the manifest")
	ErrMissingExecutable = errors.New("executable does not exist")
	// ErrUnsafePath is returned for a tool name that is not a single path
	// component, or an exec that is not a relative path inside the clone.
	ErrUnsafePath = errors.New("unsafe path")
)

// ExternalError is returned when git or go failed for a tool.
type ExternalError struct {
	Tool string
	// Op is "clone", "update" or "install".
	Op  string
	Err error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Tool, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

type Action = string

const (
	ActionClone   Action = "clone"
	ActionPull    Action = "pull"
	ActionInstall Action = "go-install"
)

// Result is the outcome of installing or updating a single tool.
type Result struct {
	Tool   sidearmtype.Tool
	Action Action
	// Symlink is the path of the symlink published into bin_dir, if any.
	Symlink  string
	Duration time.Duration
	// Err is nil on success. It may wrap an *ExternalError, ErrMissingExecutable,
	// or a filesystem error from the symlink step.
	Err error
}

func (r *Result) OK() bool {
	return r.Err == nil
}

type Installer struct {
	cfg   *sidearmtype.Config
	store *store.Store
	git   toolchain.Git
	gotc  toolchain.GoToolchain
}

func New(cfg *sidearmtype.Config, st *store.Store, git toolchain.Git, gotc toolchain.GoToolchain) *Installer {
	return &Installer{
		cfg:   cfg,
		store: st,
		git:   git,
		gotc:  gotc,
	}
}

// InstallOrUpdate looks name up in the manifest and installs or updates it.
//
// A missing manifest entry yields ErrToolNotFound and touches nothing.
// Failures of the tool itself are reported in Result.Err, not as an error.
func (inst *Installer) InstallOrUpdate(ctx context.Context, name string) (*Result, error) {
	tools, err := inst.store.LoadManifest(inst.cfg)
	if err != nil {
		return nil, err
	}
	for _, t := range tools {
		if t.Name == name {
			return inst.Install(ctx, t), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (see %q)", ErrToolNotFound, name, inst.cfg.ManifestPath())
}

// Install installs or updates t. It never returns nil.
func (inst *Installer) Install(ctx context.Context, t sidearmtype.Tool) *Result {
	start := time.Now()
	res := &Result{Tool: t}
	logger := logrus.WithField("tool", t.Name)
	repo := sidearmtype.NormalizeRepo(t.Repo)

	switch t.Type {
	case sidearmtype.GIT:
		if err := checkName(t.Name); err != nil {
			res.Err = err
			logger.Error(err)
			break
		}
		var errs []error
		if err := inst.fetchGit(ctx, res, repo); err != nil {
			logger.Error(err)
			errs = append(errs, err)
		}
		if err := inst.publish(res); err != nil {
			errs = append(errs, err)
		}
		res.Err = errors.Join(errs...)
	case sidearmtype.GO:
		ref := GoModuleRef(repo)
		logger.Infof("Installing %s", ref)
		res.Action = ActionInstall
		if err := inst.gotc.Install(ctx, ref); err != nil {
			res.Err = &ExternalError{Tool: t.Name, Op: "install", Err: err}
			logger.Error(res.Err)
		}
	default:
		res.Err = fmt.Errorf("unsupported tool type %q", t.Type)
		logger.Error(res.Err)
	}
	res.Duration = time.Since(start)
	return res
}

func (inst *Installer) fetchGit(ctx context.Context, res *Result, repo string) error {
	name := res.Tool.Name
	dest := inst.cfg.ToolDir(name)
	if osutil.FileExists(dest) {
		logrus.WithField("tool", name).Infof("Updating %s", name)
		res.Action = ActionPull
		if err := inst.git.Pull(ctx, dest); err != nil {
			return &ExternalError{Tool: name, Op: "update", Err: err}
		}
		return nil
	}
	logrus.WithField("tool", name).Infof("Installing %s", name)
	res.Action = ActionClone
	if err := inst.git.Clone(ctx, repo, dest, CloneDepth); err != nil {
		return &ExternalError{Tool: name, Op: "clone", Err: err}
	}
	return nil
}

// publish symlinks the executable of a git tool into bin_dir.
// An empty exec means the tool has nothing to publish.
func (inst *Installer) publish(res *Result) error {
	t := res.Tool
	logger := logrus.WithField("tool", t.Name)
	execRel := strings.TrimSpace(t.ExecPath())
	if execRel == "" {
		logger.Debug("No executable declared, skipping symlink")
		return nil
	}
	if !filepath.IsLocal(execRel) {
		return fmt.Errorf("%w: exec %q of %s must be a relative path inside the clone", ErrUnsafePath, execRel, t.Name)
	}
	// The link points at the path inside the clone, not at what it resolves to,
	// so in-repo symlinks re-pointed by a later pull are followed.
	execDest := filepath.Join(inst.cfg.ToolDir(t.Name), execRel)
	if !osutil.FileExists(execDest) {
		logger.Warnf("Executable %s does not exist, skipping symlink", execDest)
		return fmt.Errorf("%w: %q", ErrMissingExecutable, execDest)
	}
	if err := os.MkdirAll(inst.cfg.BinDir, 0o755); err != nil {
		return err
	}
	link := inst.cfg.SymlinkPath(t.Name)
	if osutil.LexistsNoFollow(link) {
		if err := os.Remove(link); err != nil {
			return fmt.Errorf("failed to remove the old symlink %q: %w", link, err)
		}
	}
	logger.Infof("Adding symlink to %s", link)
	if err := os.Symlink(execDest, link); err != nil {
		return err
	}
	res.Symlink = link
	return nil
}

// checkName rejects names that would not map to a single entry
// of tools_dir and bin_dir.
func checkName(name string) error {
	if name == "" || name == "." || !filepath.IsLocal(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: tool name %q must be a single path component", ErrUnsafePath, name)
	}
	return nil
}

// GoModuleRef appends "@latest" to repo unless it already carries a version.
func GoModuleRef(repo string) string {
	if strings.Contains(repo, "@") {
		return repo
	}
	return repo + "@latest"
}
