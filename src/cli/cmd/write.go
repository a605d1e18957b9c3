package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sofmeright/twconf/src/config"
	twlog "github.com/sofmeright/twconf/src/log"
	"github.com/sofmeright/twconf/src/render"
	"github.com/spf13/cobra"
)

const defaultOutFile = "tailwind.config.js"

var (
	writeOut    string
	writeFormat string
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the build configuration file",
	Long: `Validate the resolved configuration and write it atomically.

The format is inferred from the output extension unless --format is given.
An output file that already holds identical content is left untouched.`,
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVarP(&writeOut, "out", "o", defaultOutFile, "output file, relative to --root")
	writeCmd.Flags().StringVarP(&writeFormat, "format", "f", "", "output format (default: from --out extension)")

	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	path, f, err := outputTarget(writeOut, writeFormat)
	if err != nil {
		return err
	}

	changed, err := validateAndWrite(cmd, resolved, path, f)
	if err != nil {
		return err
	}
	if verbose {
		state := "unchanged"
		if changed {
			state = "written"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, state)
	}
	return nil
}

// outputTarget resolves --out against --root and picks the format.
func outputTarget(out, format string) (string, render.Format, error) {
	path := out
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, path)
	}

	var (
		f   render.Format
		err error
	)
	if format != "" {
		f, err = render.ParseFormat(format)
	} else {
		f, err = render.FormatForPath(path)
	}
	if err != nil {
		return "", "", err
	}
	return path, f, nil
}

func validateAndWrite(cmd *cobra.Command, res *config.Resolved, path string, f render.Format) (bool, error) {
	logger := twlog.WithComponent("write")

	warnings, err := config.Validate(res.Config)
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}
	if err != nil {
		return false, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := twlog.IntoContext(cmd.Context(), logger)
	return render.WriteFile(ctx, path, res.Config, f)
}
