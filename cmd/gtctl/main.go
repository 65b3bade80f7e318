// Command gtctl runs maintenance operations against the gestaotemplate
// database and storage.
package main

import (
	"fmt"
	"os"

	"gestaotemplate/internal/config"
	"gestaotemplate/internal/utils/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gtctl",
	Short: "Maintenance commands for the template configuration API",
	Long: `gtctl runs one-off maintenance against the same database and storage the
API server uses. Configuration is read from the environment (and .env).

Examples:
  gtctl migrate
  gtctl sweep --loja 3f6c...      # remove orphaned uploads of one store
  gtctl token --email ana@loja.com
  gtctl config --out /tmp/effective.json`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(); err != nil {
				return fmt.Errorf("failed to load .env: %w", err)
			}
		}
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

func main() {
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSweepCommand())
	rootCmd.AddCommand(newTokenCommand())
	rootCmd.AddCommand(newConfigCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
