package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "srokctl",
	Short: "Operator tooling for the Srok product catalog",
	Long: `srokctl manages the catalog database outside the API server.

Examples:

  srokctl migrate
  srokctl template sample_import.xlsx
  srokctl import catalog.xlsx
`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(templateCmd)
}
