package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/pplaces/internal/encoding"
	"github.com/inovacc/pplaces/internal/model"
)

var (
	configInit  bool
	configForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the pplaces configuration",
	Long: `Print the configuration in effect (config.ini merged over the defaults,
with command-line overrides applied), along with the file locations.

With --init, write a config.ini holding the defaults into the configuration
directory. An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write a default config.ini")
	configCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config.ini with --init")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if configInit {
		def := model.DefaultConfig(cfg.ConfigDir)

		if encoding.FileExists(def.ConfigFile()) && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", def.ConfigFile())
		}

		if err := def.Save(); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "wrote %s\n", def.ConfigFile())

		return nil
	}

	_, _ = fmt.Fprintf(out, "; config file: %s\n; cache file:  %s\n\n", cfg.ConfigFile(), cfg.CacheFile())

	return cfg.Encode(out)
}
