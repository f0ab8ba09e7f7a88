// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidearm-dev/sidearm/pkg/installer"
)

func newGetCommand() *cobra.Command {
	getCommand := &cobra.Command{
		Use:               "get TOOL",
		Aliases:           []string{"install", "update"},
		Short:             "Install or update a specific tool by name",
		Args:              WrapArgsError(cobra.ExactArgs(1)),
		RunE:              getAction,
		ValidArgsFunction: getBashComplete,
		GroupID:           basicCommand,
	}
	return getCommand
}

func getAction(cmd *cobra.Command, args []string) error {
	_, _, inst, err := loadEnv()
	if err != nil {
		return err
	}
	name := args[0]
	res, err := inst.InstallOrUpdate(cmd.Context(), name)
	if err != nil {
		if errors.Is(err, installer.ErrToolNotFound) {
			logrus.Warnf("Tool %q not found in tools.json", name)
			return nil
		}
		return err
	}
	reportResult(res)
	return nil
}

func getBashComplete(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	st, cfg, _, err := loadEnv()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	tools, err := st.LoadManifest(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
