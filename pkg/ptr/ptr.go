// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

// Package ptr takes pointers to values, e.g. for optional manifest fields.
package ptr

// Of returns a pointer to a copy of value.
func Of[T any](value T) *T {
	return &value
}
