// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidearm-dev/sidearm/pkg/osutil"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
	"github.com/sidearm-dev/sidearm/pkg/textutil"
)

func newListCommand() *cobra.Command {
	listCommand := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the tools of tools.json",
		Long: fmt.Sprintf(`List the tools of tools.json.

The output can be presented in one of several formats, using the --format <format> flag.

  --format table - output in a table, one line per tool. This is the default.
  --format json  - output in json format, one object per line
  --format yaml  - output in yaml format
  --format '{{.Name}}' - output using a go template

The following functions are available in go templates:
  %s
`, strings.Join(textutil.FuncHelp, "\n  ")),
		Args:              WrapArgsError(cobra.NoArgs),
		RunE:              listAction,
		ValidArgsFunction: cobra.NoFileCompletions,
		GroupID:           basicCommand,
	}

	listCommand.Flags().StringP("format", "f", "table", "Output format, one of: json, yaml, table, or a go template")
	listCommand.Flags().BoolP("quiet", "q", false, "Only show names")
	return listCommand
}

func listAction(cmd *cobra.Command, _ []string) error {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if quiet && cmd.Flags().Changed("format") {
		return errors.New("option --quiet conflicts with --format")
	}

	st, cfg, _, err := loadEnv()
	if err != nil {
		return err
	}
	tools, err := st.LoadManifest(cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if quiet {
		for _, t := range tools {
			fmt.Fprintln(w, t.Name)
		}
		return nil
	}

	switch format {
	case "json":
		for _, t := range tools {
			b, err := json.Marshal(t)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(b))
		}
		return nil
	case "yaml":
		for _, t := range tools {
			b, err := yaml.Marshal(t)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "---\n%s", b)
		}
		return nil
	case "table":
		if len(tools) == 0 {
			logrus.Warn("No tool found. Run `sidearm add` to add a tool.")
		}
		tw := tabwriter.NewWriter(w, 4, 8, 4, ' ', 0)
		fmt.Fprintln(tw, "NAME\tTYPE\tREPO\tEXEC\tSTATUS")
		for _, t := range tools {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				t.Name,
				t.Type,
				t.Repo,
				textutil.MissingString("-", t.ExecPath()),
				status(cfg, t),
			)
		}
		return tw.Flush()
	default:
		for _, t := range tools {
			out, err := textutil.ExecuteTemplate(format, t)
			if err != nil {
				return fmt.Errorf("invalid go template: %w", err)
			}
			fmt.Fprintln(w, string(out))
		}
		return nil
	}
}

// status describes the local state of a tool.
// The location of binaries installed by `go install` is owned by the Go toolchain,
// so go tools are always reported as "managed by go".
func status(cfg *sidearmtype.Config, t sidearmtype.Tool) string {
	if err := sidearmtype.Validate(t); err != nil {
		return "Invalid"
	}
	if t.Type == sidearmtype.GO {
		return "Managed by go"
	}
	if !osutil.FileExists(cfg.ToolDir(t.Name)) {
		return "Not installed"
	}
	if t.ExecPath() != "" && !osutil.LexistsNoFollow(cfg.SymlinkPath(t.Name)) {
		return "Not linked"
	}
	return "Installed"
}
