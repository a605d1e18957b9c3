package cmd

import (
	"fmt"
	"os"

	"github.com/sofmeright/twconf/src/config"
	twlog "github.com/sofmeright/twconf/src/log"
	"github.com/sofmeright/twconf/src/output"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	envFile  string
	modeFlag string
	rootDir  string
	logLevel string
	verbose  bool

	loadOpts config.Options
	resolved *config.Resolved
)

var rootCmd = &cobra.Command{
	Use:   "twconf",
	Short: "Build configuration for the utility-CSS pipeline",
	Long: `twconf resolves the configuration the CSS build tool reads: which files
its content scanner inspects, theme extensions and plugins.

Content paths follow NODE_ENV: "production" selects the compiled bundle,
anything else selects the source tree and the compiled runtime.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logLevel
		if level == "" && verbose {
			level = "debug"
		}
		twlog.Configure(twlog.Config{
			Level:   level,
			Output:  cmd.ErrOrStderr(),
			Console: output.StderrIsTerminal(),
		})

		if !needsConfig(cmd) {
			return nil
		}

		opts := config.Options{
			Root:       rootDir,
			SourcePath: cfgFile,
			EnvFile:    envFile,
		}
		if modeFlag != "" {
			m, err := config.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			opts.Mode = m
		}

		res, err := config.Load(opts)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		loadOpts = opts
		resolved = res

		logger := twlog.WithComponent("config")
		logger.Debug().
			Str("mode", res.Mode.String()).
			Str("source", res.SourcePath).
			Str("env_file", res.EnvPath).
			Strs("content", res.Config.Content).
			Msg("configuration resolved")
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "source file (default: .twconf.yml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", `env file (default: .env, "-" to disable)`)
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "force production or development instead of reading NODE_ENV")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default: TWCONF_LOG_LEVEL, then info)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// needsConfig reports whether cmd reads the resolved configuration. Help,
// completion and version must keep working when the source file is broken.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion",
			cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
