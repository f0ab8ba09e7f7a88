// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidearm-dev/sidearm/pkg/installer"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
	"github.com/sidearm-dev/sidearm/pkg/store"
	"github.com/sidearm-dev/sidearm/pkg/toolchain"
	"github.com/sidearm-dev/sidearm/pkg/uiutil"
)

// newToolchain is replaced in tests.
var newToolchain = func() (toolchain.Git, toolchain.GoToolchain) {
	return toolchain.NewGit(), toolchain.NewGoToolchain()
}

func prompter(cmd *cobra.Command) uiutil.Prompter {
	if tty, _ := cmd.Flags().GetBool("tty"); tty {
		return uiutil.NewSurvey()
	}
	return uiutil.NewLineReader(cmd.InOrStdin(), cmd.ErrOrStderr())
}

// loadEnv loads the configuration for commands that need an initialized sidearm.
func loadEnv() (*store.Store, *sidearmtype.Config, *installer.Installer, error) {
	st, err := store.Default()
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := st.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	git, gotc := newToolchain()
	return st, cfg, installer.New(cfg, st, git, gotc), nil
}

func reportResult(res *installer.Result) {
	if res.OK() {
		logrus.Infof("%s => Done (%s)", res.Tool.Name, units.HumanDuration(res.Duration))
		return
	}
	logrus.Warnf("%s => Failed: %v", res.Tool.Name, res.Err)
}
