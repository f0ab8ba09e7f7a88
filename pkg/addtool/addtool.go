// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

// Package addtool implements `sidearm add`.
package addtool

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sidearm-dev/sidearm/pkg/identifiers"
	"github.com/sidearm-dev/sidearm/pkg/installer"
	"github.com/sidearm-dev/sidearm/pkg/ptr"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
	"github.com/sidearm-dev/sidearm/pkg/store"
	"github.com/sidearm-dev/sidearm/pkg/uiutil"
)

type Options struct {
	Store     *store.Store
	Config    *sidearmtype.Config
	Prompter  uiutil.Prompter
	Installer *installer.Installer
}

// Add asks for a new tool, appends it to the manifest and installs it.
func Add(ctx context.Context, o Options) (*sidearmtype.Tool, *installer.Result, error) {
	existing, err := o.Store.LoadManifest(o.Config)
	if err != nil {
		return nil, nil, err
	}

	toolType, err := askType(o.Prompter)
	if err != nil {
		return nil, nil, err
	}
	repo, err := askRepo(o.Prompter, toolType)
	if err != nil {
		return nil, nil, err
	}
	name, err := askName(o.Prompter, existing)
	if err != nil {
		return nil, nil, err
	}
	// go tools carry an empty exec, like git tools without an executable.
	exec := ""
	if toolType == sidearmtype.GIT {
		exec, err = o.Prompter.Input("Enter the relative path of the executable file from the repo (ex: a.py, empty for none)", "")
		if err != nil {
			return nil, nil, err
		}
		exec = strings.TrimSpace(exec)
	}

	tool := sidearmtype.Tool{
		Name: name,
		Type: toolType,
		Repo: repo,
		Exec: ptr.Of(exec),
	}
	if err := o.Store.AppendTool(o.Config, tool); err != nil {
		return nil, nil, err
	}
	logrus.Infof("Added %q to %s", name, o.Config.ManifestPath())

	res, err := o.Installer.InstallOrUpdate(ctx, name)
	if err != nil {
		return &tool, nil, err
	}
	return &tool, res, nil
}

func askType(p uiutil.Prompter) (sidearmtype.ToolType, error) {
	for {
		ans, err := p.Input(fmt.Sprintf("Enter the repo type (%s)", strings.Join(sidearmtype.ToolTypes, "/")), "")
		if err != nil {
			return "", err
		}
		ans = strings.TrimSpace(ans)
		if slices.Contains(sidearmtype.ToolTypes, ans) {
			return ans, nil
		}
	}
}

func askRepo(p uiutil.Prompter, toolType sidearmtype.ToolType) (string, error) {
	message := "Enter repo (clone URL)"
	if toolType == sidearmtype.GO {
		message = "Enter repo (module path, optionally with @version)"
	}
	for {
		ans, err := p.Input(message, "")
		if err != nil {
			return "", err
		}
		if repo := sidearmtype.NormalizeRepo(ans); repo != "" {
			return repo, nil
		}
	}
}

func askName(p uiutil.Prompter, existing []sidearmtype.Tool) (string, error) {
	for {
		ans, err := p.Input("Enter the name of the tool", "")
		if err != nil {
			return "", err
		}
		name := strings.TrimSpace(ans)
		if err := validateName(name, existing); err != nil {
			logrus.Warn(err)
			continue
		}
		return name, nil
	}
}

var errDuplicateName = errors.New("a tool with this name already exists")

func validateName(name string, existing []sidearmtype.Tool) error {
	if err := identifiers.Validate(name); err != nil {
		return err
	}
	for _, t := range existing {
		if t.Name == name {
			return fmt.Errorf("%w: %q", errDuplicateName, name)
		}
	}
	return nil
}
