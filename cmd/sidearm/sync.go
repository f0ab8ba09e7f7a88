// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/sidearm-dev/sidearm/pkg/toolsync"
)

func newSyncCommand() *cobra.Command {
	syncCommand := &cobra.Command{
		Use:               "sync",
		Short:             "Install or update every tool listed in tools.json",
		Args:              WrapArgsError(cobra.NoArgs),
		RunE:              syncAction,
		ValidArgsFunction: cobra.NoFileCompletions,
		GroupID:           basicCommand,
	}
	return syncCommand
}

func syncAction(cmd *cobra.Command, _ []string) error {
	st, cfg, inst, err := loadEnv()
	if err != nil {
		return err
	}
	_, err = toolsync.Sync(cmd.Context(), st, cfg, inst)
	return err
}
