package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clearlend/docmatch/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "docmatch",
	Short: "Entity resolution for scanned mortgage documents",
	Long:  "Normalizes addresses, scores fuzzy string similarity, identifies borrowers against note positions, and labels duplicate documents in extraction feeds.",
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
