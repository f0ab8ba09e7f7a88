// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package jsonschemautil

import (
	"testing"

	"gotest.tools/v3/assert"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New("testdata/schema.json")
	assert.NilError(t, err)
	return v
}

func TestValidateValidInstance(t *testing.T) {
	assert.NilError(t, newValidator(t).ValidateFile("testdata/valid.json"))
}

func TestValidateInvalidInstance(t *testing.T) {
	err := newValidator(t).ValidateFile("testdata/invalid.json")
	assert.ErrorContains(t, err, "jsonschema validation failed")
}

func TestValidateMissingInstance(t *testing.T) {
	assert.Assert(t, newValidator(t).ValidateFile("testdata/missing.json") != nil)
}

func TestNewMissingSchema(t *testing.T) {
	_, err := New("testdata/missing-schema.json")
	assert.Assert(t, err != nil)
}
