// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package jsonschemautil

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator validates documents against a compiled JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the schema file at schemafile.
func New(schemafile string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(schemafile)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: schema}, nil
}

// ValidateFile validates the JSON (or YAML) document at instancefile.
func (v *Validator) ValidateFile(instancefile string) error {
	instance, err := os.ReadFile(instancefile)
	if err != nil {
		return err
	}
	// JSON is a subset of YAML, and the YAML decoder yields plain maps and slices.
	var y any
	if err := yaml.Unmarshal(instance, &y); err != nil {
		return err
	}
	return v.schema.Validate(y)
}
