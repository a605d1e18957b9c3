package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sofmeright/twconf/src/config"
	twlog "github.com/sofmeright/twconf/src/log"
	"github.com/sofmeright/twconf/src/watch"
	"github.com/spf13/cobra"
)

var (
	watchOut      string
	watchFormat   string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rewrite the build configuration whenever its inputs change",
	Long: `Write the build configuration, then watch the source file and the env
file and rewrite the output each time either changes.

A reload that fails to load or validate is logged and the previous output
is kept.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", defaultOutFile, "output file, relative to --root")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "output format (default: from --out extension)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before reloading")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := twlog.WithComponent("watch")

	path, f, err := outputTarget(watchOut, watchFormat)
	if err != nil {
		return err
	}
	if _, err := validateAndWrite(cmd, resolved, path, f); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reload := func(ctx context.Context) error {
		res, err := config.Load(loadOpts)
		if err != nil {
			return err
		}
		changed, err := validateAndWrite(cmd, res, path, f)
		if err != nil {
			return err
		}
		resolved = res
		logger.Info().
			Str("mode", res.Mode.String()).
			Bool("changed", changed).
			Msg("configuration reloaded")
		return nil
	}

	w, err := watch.New(watchedInputs(), watchDebounce, reload)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// watchedInputs lists the files a reload reads, present or not.
func watchedInputs() []string {
	src := loadOpts.SourcePath
	if src == "" {
		src = config.DefaultSourceFile
	}
	paths := []string{joinRoot(src)}

	env := loadOpts.EnvFile
	if env == "" {
		env = config.DefaultEnvFile
	}
	if env != "-" {
		paths = append(paths, joinRoot(env))
	}
	return paths
}

func joinRoot(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(rootDir, p)
}
