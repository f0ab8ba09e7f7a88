// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

// Package onboard implements `sidearm init`.
package onboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sidearm-dev/sidearm/pkg/installer"
	"github.com/sidearm-dev/sidearm/pkg/localpathutil"
	"github.com/sidearm-dev/sidearm/pkg/ptr"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype/dirnames"
	"github.com/sidearm-dev/sidearm/pkg/store"
	"github.com/sidearm-dev/sidearm/pkg/toolchain"
	"github.com/sidearm-dev/sidearm/pkg/uiutil"
)

const (
	// SelfName is the manifest name of sidearm itself.
	SelfName = "sidearm"
	// SelfRepo is where sidearm is cloned from.
	SelfRepo = "https://github.com/sidearm-dev/sidearm.git"
	// SelfExec is the launcher script at the root of the sidearm repository.
	SelfExec = "sidearm.sh"
)

// Bootstrap returns the manifest entry describing sidearm itself.
func Bootstrap() sidearmtype.Tool {
	return sidearmtype.Tool{
		Name: SelfName,
		Type: sidearmtype.GIT,
		Repo: SelfRepo,
		Exec: ptr.Of(SelfExec),
	}
}

type Options struct {
	Store    *store.Store
	Prompter uiutil.Prompter
	Git      toolchain.Git
	Go       toolchain.GoToolchain
	// Out receives the PATH guidance printed at the end.
	Out io.Writer
}

// Init creates the configuration, or repairs it when it already exists and
// the user declines to overwrite it.
func Init(ctx context.Context, o Options) error {
	if o.Store.Exists() {
		overwrite, err := o.Prompter.Confirm(
			fmt.Sprintf("Config directory already exists at %s. Overwrite?", o.Store.Dir), false)
		if err != nil {
			return err
		}
		if !overwrite {
			logrus.Info("Keeping existing configuration")
			return repair(ctx, o)
		}
	}
	return fresh(ctx, o)
}

func fresh(ctx context.Context, o Options) error {
	if err := os.MkdirAll(o.Store.Dir, 0o755); err != nil {
		return err
	}
	logrus.Infof("Created config directory at %s", o.Store.Dir)

	defaultToolsDir, err := dirnames.DefaultToolsDir()
	if err != nil {
		return err
	}
	toolsDir, err := askDir(o.Prompter, "Tools directory", defaultToolsDir)
	if err != nil {
		return err
	}
	binDir, err := askDir(o.Prompter, "Bin directory", dirnames.DefaultBinDir(toolsDir))
	if err != nil {
		return err
	}
	cfg := &sidearmtype.Config{ToolsDir: toolsDir, BinDir: binDir}
	if err := prepare(o.Store, cfg); err != nil {
		return err
	}
	if err := o.Store.SaveConfig(cfg); err != nil {
		return err
	}
	logrus.Infof("Sidearm initialized. Tools will be installed in %s", toolsDir)
	installSelf(ctx, o, cfg)

	fmt.Fprintf(o.Out, "You can edit %s and then run \"sidearm sync\".\n", cfg.ManifestPath())
	fmt.Fprintln(o.Out, "Add the bin directory to PATH by running the following command or pasting it into ~/.profile:")
	fmt.Fprintf(o.Out, "\texport PATH=\"%s:$PATH\"\n", binDir)
	return nil
}

func repair(ctx context.Context, o Options) error {
	cfg, err := o.Store.LoadConfig()
	if err != nil {
		return err
	}
	if err := prepare(o.Store, cfg); err != nil {
		return err
	}
	installSelf(ctx, o, cfg)
	return nil
}

// prepare creates tools_dir and bin_dir, and seeds the manifest if missing.
func prepare(st *store.Store, cfg *sidearmtype.Config) error {
	for _, d := range []string{cfg.ToolsDir, cfg.BinDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	seeded, err := st.SeedManifest(cfg, []sidearmtype.Tool{Bootstrap()})
	if err != nil {
		return err
	}
	if seeded {
		logrus.Infof("Created %s", cfg.ManifestPath())
	}
	return nil
}

// installSelf installs sidearm through the manifest.
// Failures are logged; init itself has succeeded at this point.
func installSelf(ctx context.Context, o Options, cfg *sidearmtype.Config) {
	inst := installer.New(cfg, o.Store, o.Git, o.Go)
	res, err := inst.InstallOrUpdate(ctx, SelfName)
	switch {
	case errors.Is(err, installer.ErrToolNotFound):
		logrus.Warnf("%q is not listed in %s, skipping self-install", SelfName, cfg.ManifestPath())
	case err != nil:
		logrus.WithError(err).Warn("Failed to install sidearm")
	case !res.OK():
		logrus.WithError(res.Err).Warn("Failed to install sidearm")
	}
}

func askDir(p uiutil.Prompter, message, defaultValue string) (string, error) {
	ans, err := p.Input(message, defaultValue)
	if err != nil {
		return "", err
	}
	if ans == "" {
		ans = defaultValue
	}
	return localpathutil.Expand(ans)
}
