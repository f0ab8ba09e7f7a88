// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidearm-dev/sidearm/pkg/editutil"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
	"github.com/sidearm-dev/sidearm/pkg/store"
)

const rejectedManifest = "tools.REJECTED.json"

func newEditCommand() *cobra.Command {
	editCommand := &cobra.Command{
		Use:   "edit",
		Short: "Edit tools.json",
		Long: `Edit tools.json with $VISUAL or $EDITOR.

With --tty=false, the new content of tools.json is read from stdin.
The content is validated before being saved; invalid content is saved as ` + rejectedManifest + `
in the tools directory, and tools.json is left untouched.`,
		Args:              WrapArgsError(cobra.NoArgs),
		RunE:              editAction,
		ValidArgsFunction: cobra.NoFileCompletions,
		GroupID:           advancedCommand,
	}
	return editCommand
}

func editAction(cmd *cobra.Command, _ []string) error {
	st, cfg, _, err := loadEnv()
	if err != nil {
		return err
	}
	path := cfg.ManifestPath()
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tty, err := cmd.Flags().GetBool("tty")
	if err != nil {
		return err
	}
	var b []byte
	if tty {
		b, err = editutil.OpenEditor(content, "tools-*.json")
	} else {
		b, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		logrus.Info("Aborting, as requested by saving the file with empty content")
		return nil
	}
	if bytes.Equal(b, content) {
		logrus.Info("Aborting, no changes made to tools.json")
		return nil
	}
	if err := checkManifest(b, path); err != nil {
		rejected := filepath.Join(cfg.ToolsDir, rejectedManifest)
		if writeErr := os.WriteFile(rejected, b, 0o644); writeErr != nil {
			return fmt.Errorf("tools.json is invalid, attempted to save the buffer as %q but failed: %w: %w", rejected, writeErr, err)
		}
		return fmt.Errorf("tools.json is invalid, saved the buffer as %q: %w", rejected, err)
	}
	if err := st.ReplaceManifest(cfg, b); err != nil {
		return err
	}
	logrus.Infof("%q edited. Run `sidearm sync` to install the tools.", path)
	return nil
}

// checkManifest returns an error if b is not a manifest with valid entries only.
func checkManifest(b []byte, path string) error {
	tools, err := store.ParseManifest(b, path)
	if err != nil {
		return err
	}
	var errs []error
	for i, t := range tools {
		if err := sidearmtype.Validate(t); err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%q): %w", i, t.Name, err))
		}
	}
	return errors.Join(errs...)
}
