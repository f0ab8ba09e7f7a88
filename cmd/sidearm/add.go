// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/sidearm-dev/sidearm/pkg/addtool"
)

func newAddCommand() *cobra.Command {
	addCommand := &cobra.Command{
		Use:               "add",
		Short:             "Add a tool interactively and install it",
		Args:              WrapArgsError(cobra.NoArgs),
		RunE:              addAction,
		ValidArgsFunction: cobra.NoFileCompletions,
		GroupID:           basicCommand,
	}
	return addCommand
}

func addAction(cmd *cobra.Command, _ []string) error {
	st, cfg, inst, err := loadEnv()
	if err != nil {
		return err
	}
	_, res, err := addtool.Add(cmd.Context(), addtool.Options{
		Store:     st,
		Config:    cfg,
		Prompter:  prompter(cmd),
		Installer: inst,
	})
	if err != nil {
		return err
	}
	reportResult(res)
	return nil
}
