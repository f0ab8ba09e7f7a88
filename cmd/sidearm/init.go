// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/sidearm-dev/sidearm/pkg/onboard"
	"github.com/sidearm-dev/sidearm/pkg/store"
)

func newInitCommand() *cobra.Command {
	initCommand := &cobra.Command{
		Use:               "init",
		Short:             "Initialize sidearm and set directories",
		Args:              WrapArgsError(cobra.NoArgs),
		RunE:              initAction,
		ValidArgsFunction: cobra.NoFileCompletions,
		GroupID:           basicCommand,
	}
	return initCommand
}

func initAction(cmd *cobra.Command, _ []string) error {
	st, err := store.Default()
	if err != nil {
		return err
	}
	git, gotc := newToolchain()
	return onboard.Init(cmd.Context(), onboard.Options{
		Store:    st,
		Prompter: prompter(cmd),
		Git:      git,
		Go:       gotc,
		Out:      cmd.OutOrStdout(),
	})
}
