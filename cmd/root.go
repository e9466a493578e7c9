package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wyng-health/billaudit/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "billaudit",
	Short: "Billing-compliance detection engine",
	Long:  "Scans priced medical bill/EOB summaries for duplicate charges, unbundling, modifier misuse, surprise-billing exposure, math errors, and other compliance findings.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
