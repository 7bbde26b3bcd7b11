package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/memohai/wabridge/internal/config"
	"github.com/memohai/wabridge/internal/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		envPath    string
	)
	root := &cobra.Command{
		Use:           "wabridge",
		Short:         "WhatsApp Cloud API webhook bridge",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.LoadDotenv(envPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or config.toml)")
	root.PersistentFlags().StringVar(&envPath, "env-file", config.DefaultEnvPath, "dotenv file loaded before the config")

	loadConfig := func() (config.Config, error) {
		path := configPath
		if path == "" {
			path = os.Getenv("CONFIG_PATH")
		}
		cfg, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}

	root.AddCommand(
		newServeCommand(loadConfig),
		newSamplesCommand(loadConfig),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetInfo())
		},
	}
}
