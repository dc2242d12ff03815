package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/inovacc/pplaces/internal/application"
	"github.com/inovacc/pplaces/internal/git"
	"github.com/inovacc/pplaces/internal/model"
)

var (
	flagConfigDir string
	flagDays      int
	flagLogLevel  string
	flagLogJSON   bool

	// resolved in PersistentPreRunE
	cfg    model.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Find your local git repositories and skip duplicate clones",
	Long: `pplaces keeps a cache of the git repositories under the directories you scan:
their paths, remotes and the time of their last commit.

Use it to list the repositories you worked on recently, and put it in front of
git clone so a remote you already have somewhere on disk is not cloned again.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger = setupLogger(flagLogLevel, flagLogJSON)

		dir := flagConfigDir
		if dir == "" {
			var err error

			dir, err = application.GetApplicationDirectory()
			if err != nil {
				return err
			}
		}

		dir, err := expandPath(dir)
		if err != nil {
			return err
		}

		loaded, err := model.LoadConfig(dir)
		if err != nil {
			return err
		}

		if cmd.Root().PersistentFlags().Changed("days") {
			loaded.Show.Days = flagDays
		}

		if err := loaded.Validate(); err != nil {
			return err
		}

		cfg = loaded
		logger.Debug("configuration loaded", "dir", cfg.ConfigDir, "cache", cfg.CacheFile())

		return nil
	},
}

// Execute runs the root command and exits with git's status when a git
// command failed, 1 for any other error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		if code := git.GetExitCode(err); code > 0 {
			os.Exit(code)
		}

		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Directory holding the cache and config.ini (default: user config dir, or $"+application.EnvConfigDir+")")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "d", 7, "Only list repositories with a commit in the last N days (0 = no limit)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Write logs as JSON")
}
