// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
	"github.com/sidearm-dev/sidearm/pkg/store"
)

func newValidateCommand() *cobra.Command {
	validateCommand := &cobra.Command{
		Use:   "validate [FILE.json, ...]",
		Short: "Validate tools.json, or the given manifest files",
		Args:  WrapArgsError(cobra.ArbitraryArgs),
		RunE:  validateAction,
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
		},
		GroupID: advancedCommand,
	}
	return validateCommand
}

func validateAction(_ *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		st, err := store.Default()
		if err != nil {
			return err
		}
		cfg, err := st.LoadConfig()
		if err != nil {
			return err
		}
		files = []string{cfg.ManifestPath()}
	}

	invalid := 0
	for _, f := range files {
		tools, err := store.LoadManifestFile(f)
		if err != nil {
			return err
		}
		n := validateTools(f, tools)
		if n == 0 {
			logrus.Infof("%q: OK", f)
		}
		invalid += n
	}
	if invalid > 0 {
		return fmt.Errorf("found %d invalid entries", invalid)
	}
	return nil
}

// validateTools logs every invalid entry of tools and returns how many there are.
func validateTools(file string, tools []sidearmtype.Tool) int {
	invalid := 0
	for i, t := range tools {
		if err := sidearmtype.Validate(t); err != nil {
			logrus.WithField("index", i).WithField("name", t.Name).Errorf("%q: %v", file, err)
			invalid++
		}
	}
	return invalid
}
