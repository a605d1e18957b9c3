package cmd

import (
	"github.com/sofmeright/twconf/src/output"
	"github.com/sofmeright/twconf/src/render"
	"github.com/spf13/cobra"
)

var (
	resolveFormat  string
	resolveSummary bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the resolved build configuration",
	Long: `Print the build configuration for the current mode.

The default format is the CommonJS module the CSS build tool imports.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", "js", "output format: js, esm, json, yaml, toml")
	resolveCmd.Flags().BoolVar(&resolveSummary, "summary", false, "print a summary of mode, sources and content instead")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	if resolveSummary {
		output.ResolvedSection(w, resolved, output.UseColor())
		return nil
	}

	f, err := render.ParseFormat(resolveFormat)
	if err != nil {
		return err
	}
	return render.Render(w, resolved.Config, f)
}
