// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package sidearmtype

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate checks a manifest entry and returns the first problem found.
func Validate(t Tool) error {
	required := []struct {
		field string
		value string
	}{
		{"name", t.Name},
		{"type", t.Type},
		{"repo", t.Repo},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("Missing or invalid '%s' field", f.field) //nolint:staticcheck // user-facing message
		}
	}

	if !slices.Contains(ToolTypes, t.Type) {
		return fmt.Errorf("Invalid type '%s', must be '%s' or '%s'", t.Type, GIT, GO) //nolint:staticcheck // user-facing message
	}

	if t.Type == GIT && strings.TrimSpace(t.ExecPath()) == "" {
		return errors.New("Git tool must specify non-empty 'exec' field") //nolint:staticcheck // user-facing message
	}
	return nil
}
