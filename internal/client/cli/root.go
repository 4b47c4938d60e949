package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siap-parepare/siap-cli/internal/client/config"
	"github.com/siap-parepare/siap-cli/internal/logging"
)

var (
	flagServer string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:          "siap",
	Short:        "Terminal client for SIAP, the Parepare archive information system",
	Long:         "siap is an interactive terminal client for the SIAP archive service:\nlogin, browse and manage archive records, and administer accounts.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if flagServer != "" {
			cfg.ServerAddress = flagServer
		}
		if flagDebug {
			cfg.Env = "dev"
		}

		log := logging.New(os.Stderr, cfg.Env)
		app, err := NewApp(cfg, log)
		if err != nil {
			return err
		}
		app.Run(cmd.Context())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "SIAP API base URL (overrides config and environment)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
