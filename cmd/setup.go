package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"sitebudget/internal/auth"
	"sitebudget/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to sitebudget!")
	fmt.Println()

	// 1. Currency
	fmt.Println("  1. Currency")
	fmt.Println("     (1) USD [default]")
	fmt.Println("     (2) EUR")
	fmt.Println("     (3) GBP")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "2":
		cfg.General.Currency = "EUR"
	case "3":
		cfg.General.Currency = "GBP"
	default:
		cfg.General.Currency = "USD"
	}
	fmt.Println()

	// 2. Forecast horizon
	fmt.Println("  2. Default forecast horizon")
	fmt.Println("     (1) 14 days")
	fmt.Println("     (2) 30 days [default]")
	fmt.Println("     (3) 90 days")
	fmt.Print("     > ")
	choice, _ = reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.General.ForecastDays = 14
	case "3":
		cfg.General.ForecastDays = 90
	default:
		cfg.General.ForecastDays = 30
	}
	fmt.Println()

	// 3. Acting role
	fmt.Println("  3. Your role")
	fmt.Println("     (1) Admin [default]")
	fmt.Println("     (2) Manager")
	fmt.Println("     (3) Contractor")
	fmt.Println("     (4) Field employee")
	fmt.Print("     > ")
	choice, _ = reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "2":
		cfg.General.Role = auth.RoleManager
	case "3":
		cfg.General.Role = auth.RoleContractor
	case "4":
		cfg.General.Role = auth.RoleFieldEmployee
	default:
		cfg.General.Role = auth.RoleAdmin
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Blueprint")
	fmt.Println("     (3) Terminal (ANSI 16)")
	fmt.Print("     > ")
	choice, _ = reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "2":
		cfg.Appearance.Theme = "blueprint"
	case "3":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `sitebudget setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
