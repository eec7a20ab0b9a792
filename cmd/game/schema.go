package main

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

func newSchemaCmd() *cobra.Command {
	var physics bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the stage format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var v any = &config.StageConfig{}
			if physics {
				v = &config.PhysicsConfig{}
			}
			data, err := reflectSchema(v)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().BoolVar(&physics, "physics", false, "Print the physics.json schema instead")
	return cmd
}

// reflectSchema builds an indented JSON Schema for v
func reflectSchema(v any) ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	data, err := json.MarshalIndent(r.Reflect(v), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	return data, nil
}
