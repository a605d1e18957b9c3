package cmd

import (
	"fmt"
	"time"

	"github.com/sofmeright/twconf/src/config"
	"github.com/sofmeright/twconf/src/output"
	"github.com/sofmeright/twconf/src/scan"
	"github.com/spf13/cobra"
)

var (
	scanStrict      bool
	scanNoGitignore bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Show which files the content patterns match",
	Long: `Expand every content pattern against the project root and report the
matches, the way the CSS build tool's content scanner would see them.

Files ignored by .gitignore are skipped unless --no-gitignore is set.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanStrict, "strict", false, "fail when a pattern matches no files")
	scanCmd.Flags().BoolVar(&scanNoGitignore, "no-gitignore", false, "include files ignored by .gitignore")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if _, err := config.Validate(resolved.Config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s := &scan.Scanner{
		Root:             rootDir,
		RespectGitignore: !scanNoGitignore,
	}

	start := time.Now()
	res, err := s.Scan(cmd.Context(), resolved.Config.Content)
	if err != nil {
		return err
	}

	output.ScanSection(cmd.OutOrStdout(), res, time.Since(start), verbose, output.UseColor())

	if unmatched := res.Unmatched(); scanStrict && len(unmatched) > 0 {
		return fmt.Errorf("scan failed: %d patterns matched no files: %v", len(unmatched), unmatched)
	}
	return nil
}
