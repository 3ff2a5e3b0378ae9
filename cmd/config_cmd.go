// Package cmd implements the sitebudget CLI commands.
package cmd

import (
	"fmt"

	"sitebudget/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:      %s\n", cfg.General.Currency)
	fmt.Printf("    Forecast days: %d\n", cfg.General.ForecastDays)
	if cfg.General.Role != "" {
		fmt.Printf("    Role:          %s\n", cfg.General.Role)
	}
	fmt.Printf("    Data dir:      %s\n", config.DataDir(cfg))
	fmt.Printf("    Database:      %s\n", config.DBPath(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:  %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval: %ds\n", cfg.Daemon.IntervalSec)
	fmt.Println()

	fmt.Println("  Run `sitebudget setup` to reconfigure.")
	return nil
}
