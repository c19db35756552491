package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of live feed messages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(events.Schema())
	},
}
