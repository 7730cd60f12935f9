package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"srok/internal/migrate"
)

var businessColumnsOnly bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the catalog schema (tables, indexes, views)",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := openDatabase()
		if err != nil {
			color.Red("Database connection failed: %v", err)
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if businessColumnsOnly {
			if err := migrate.AddBusinessColumns(ctx, db); err != nil {
				color.Red("Schema update failed: %v", err)
				os.Exit(1)
			}
			color.Green("Business columns added. Existing data preserved.")
			return
		}

		if err := migrate.Run(ctx, db); err != nil {
			color.Red("Migration failed: %v", err)
			os.Exit(1)
		}
		color.Green("Catalog schema created successfully.")
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&businessColumnsOnly, "business-columns", false,
		"Only add the manufacturer business columns to an existing schema")
}

func openDatabase() (*sql.DB, error) {
	_ = godotenv.Load()

	addr := os.Getenv("DB_ADDR")
	if addr == "" {
		return nil, fmt.Errorf("DB_ADDR is not set")
	}

	db, err := sql.Open("postgres", addr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
