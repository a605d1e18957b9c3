package cmd

import (
	"errors"

	"github.com/sofmeright/twconf/src/config"
	"github.com/sofmeright/twconf/src/output"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		warnings, err := config.Validate(resolved.Config)
		output.ValidationSection(cmd.OutOrStdout(), warnings, err, output.UseColor())
		if err != nil {
			return errors.New("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
