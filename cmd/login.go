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

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in as a demo user and remember the role",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(_ *cobra.Command, args []string) error {
	fmt.Print("  Password: ")
	reader := bufio.NewReader(os.Stdin)
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)

	u, err := auth.Login(args[0], password)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.General.Role = u.Role
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("  Signed in as %s (%s, %s)\n", u.Name, u.Role, u.Department)
	return nil
}
