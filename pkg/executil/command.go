// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package executil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/sirupsen/logrus"
)

type options struct {
	stdout io.Writer
	stderr io.Writer
}

type Opt func(*options) error

// WithStdio sets the stdout and stderr of the command.
// By default the child inherits the stdout and stderr of sidearm.
func WithStdio(stdout, stderr io.Writer) Opt {
	return func(o *options) error {
		o.stdout = stdout
		o.stderr = stderr
		return nil
	}
}

// CommandFromEnv returns the argv prefix of an external command.
// When the environment variable envKey is set, it is split with shell rules,
// so "SIDEARM_GIT='git -c http.proxy=socks5://localhost:9050'" works.
// Otherwise fallback is used.
func CommandFromEnv(envKey, fallback string) ([]string, error) {
	v := strings.TrimSpace(os.Getenv(envKey))
	if v == "" {
		return []string{fallback}, nil
	}
	argv, err := shellwords.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("failed to parse $%s (%q): %w", envKey, v, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("$%s must not be empty", envKey)
	}
	return argv, nil
}

// Run runs args and waits for it to finish.
func Run(ctx context.Context, args []string, opts ...Opt) error {
	if len(args) == 0 {
		return errors.New("no command specified")
	}
	o := options{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, f := range opts {
		if err := f(&o); err != nil {
			return err
		}
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = o.stdout
	cmd.Stderr = o.stderr
	logrus.Debugf("Running %v", cmd.Args)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %v: %w", cmd.Args, err)
	}
	return nil
}
