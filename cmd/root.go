package cmd

import (
	"fmt"
	"os"

	"sitebudget/internal/auth"
	"sitebudget/internal/cli"
	"sitebudget/internal/config"
	"sitebudget/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagRole    string
	flagDBPath  string
)

var rootCmd = &cobra.Command{
	Use:   "sitebudget",
	Short: "Construction Budget Manager CLI",
	Long:  "Track construction projects, expenses, and inventory: budgets, risks, forecasts, and reports.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagRole, "role", "", "Acting role: admin, manager, contractor, field_employee")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database file path (overrides data dir)")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagRole != "" {
		cfg.General.Role = flagRole
	}
	return cfg, nil
}

// loadStore is the shared open path used by all commands. The caller
// must Close the returned store.
func loadStore() (*store.Store, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = config.DBPath(cfg)
	}

	db, err := store.OpenSQLite(dbPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}

	st, err := store.Open(db, actingUser(cfg))
	if err != nil {
		_ = db.Close()
		return nil, cfg, fmt.Errorf("load data: %w", err)
	}

	return st, cfg, nil
}

// actingUser resolves the identity attached to created records.
func actingUser(cfg config.Config) auth.User {
	if cfg.General.Role != "" {
		if u, ok := auth.ByRole(cfg.General.Role); ok {
			return u
		}
		fmt.Fprintf(os.Stderr, "  Unknown role %q, acting as %s\n", cfg.General.Role, auth.DefaultUser().Role)
	}
	return auth.DefaultUser()
}

// requirePermission checks the acting user's role against the
// reference permission table before a mutating command runs.
func requirePermission(u auth.User, action string) error {
	if !auth.Can(u.Role, action) {
		return fmt.Errorf("role %s is not allowed to %s", u.Role, action)
	}
	return nil
}

func formatMoney(v float64) string {
	return cli.FormatMoney(v)
}
