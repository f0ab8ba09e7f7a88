// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/sidearm-dev/sidearm/pkg/jsonschemautil"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
)

func newGenSchemaCommand() *cobra.Command {
	genschemaCommand := &cobra.Command{
		Use:    "generate-jsonschema [FILE.json, ...]",
		Short:  "Generate json-schema document for tools.json",
		Args:   WrapArgsError(cobra.ArbitraryArgs),
		RunE:   genschemaAction,
		Hidden: true,
	}
	genschemaCommand.Flags().String("schemafile", "", "Output file")
	return genschemaCommand
}

func toAny(args []string) []any {
	result := make([]any, 0, len(args))
	for _, arg := range args {
		result = append(result, arg)
	}
	return result
}

func getProp(props *orderedmap.OrderedMap[string, *jsonschema.Schema], key string) *jsonschema.Schema {
	value, ok := props.Get(key)
	if !ok {
		return nil
	}
	return value
}

// manifestSchema returns the schema of tools.json, an array of tool records.
func manifestSchema() *jsonschema.Schema {
	// Unknown fields are preserved by `sidearm add`, so they are allowed here too.
	r := &jsonschema.Reflector{AllowAdditionalProperties: true}
	schema := r.Reflect(&sidearmtype.Tool{})
	properties := schema.Definitions["Tool"].Properties
	getProp(properties, "type").Enum = toAny(sidearmtype.ToolTypes)
	schema.Type = "array"
	schema.Items = &jsonschema.Schema{Ref: schema.Ref}
	schema.Ref = ""
	return schema
}

func genschemaAction(cmd *cobra.Command, args []string) error {
	file, err := cmd.Flags().GetString("schemafile")
	if err != nil {
		return err
	}

	j, err := json.MarshalIndent(manifestSchema(), "", "    ")
	if err != nil {
		return err
	}
	if len(args) == 0 {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(j))
		return err
	}

	if file == "" {
		return errors.New("need --schemafile to validate")
	}
	if err := os.WriteFile(file, j, 0o644); err != nil {
		return err
	}
	validator, err := jsonschemautil.New(file)
	if err != nil {
		return err
	}
	for _, f := range args {
		if err := validator.ValidateFile(f); err != nil {
			return fmt.Errorf("%q: %w", f, err)
		}
		logrus.Infof("%q: OK", f)
	}
	return nil
}
