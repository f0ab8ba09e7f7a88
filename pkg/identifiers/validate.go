// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

// Derived from https://github.com/containerd/containerd/blob/v2.1.1/pkg/identifiers/validate.go
// (Apache License 2.0, Copyright The containerd Authors)

// Package identifiers validates tool names.
//
// A tool name becomes a directory under tools_dir and a symlink under bin_dir,
// so it must be safe to use as a single filesystem path component: alphanumerics
// separated by single underscores, dashes or dots.
package identifiers

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	maxLength  = 76
	alphanum   = `[A-Za-z0-9]+`
	separators = `[._-]`
)

var identifierRe = regexp.MustCompile(reAnchor(alphanum + reGroup(separators+reGroup(alphanum)) + "*"))

// Validate returns nil if s is a valid tool name.
func Validate(s string) error {
	if s == "" {
		return errors.New("identifier must not be empty")
	}

	if len(s) > maxLength {
		return fmt.Errorf("identifier %q greater than maximum length (%d characters)", s, maxLength)
	}

	if !identifierRe.MatchString(s) {
		return fmt.Errorf("identifier %q must match %v", s, identifierRe)
	}
	return nil
}

func reGroup(s string) string {
	return `(?:` + s + `)`
}

func reAnchor(s string) string {
	return `^` + s + `$`
}
