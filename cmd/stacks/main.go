package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/stacks/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "stacks",
	Short:   "Static file and directory listing server",
	Long: `Stacks serves files and ls -l style directory listings from
local directories, with ETag and If-Modified-Since revalidation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg.Log)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file paths, merged left to right (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: STACKS_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
