package main

import (
	"sitebudget/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local overrides (SITEBUDGET_DATA_DIR etc.).
	_ = godotenv.Load()

	cmd.Execute()
}
