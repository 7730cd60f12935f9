package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"srok/internal/importer"
	"srok/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import manufacturers, categories and products from an Excel workbook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			color.Red("File not found: %s", path)
			os.Exit(1)
		}

		db, err := openDatabase()
		if err != nil {
			color.Red("Database connection failed: %v", err)
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		imp := importer.New(store.NewStorage(db))
		summary, err := imp.ImportFile(ctx, path)
		if err != nil {
			color.Red("Import failed: %v", err)
			os.Exit(1)
		}

		for _, res := range []importer.SheetResult{summary.Categories, summary.Manufacturers, summary.Products} {
			color.Green("%s: %d inserted, %d skipped", res.Sheet, res.Inserted, len(res.Skipped))
			for _, reason := range res.Skipped {
				color.Yellow("  skipped: %s", reason)
			}
		}
		fmt.Println("Import completed.")
	},
}
