package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"srok/internal/importer"
)

var templateCmd = &cobra.Command{
	Use:   "template [file.xlsx]",
	Short: "Write a sample Excel import template",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "sample_import_template.xlsx"
		if len(args) == 1 {
			path = args[0]
		}

		if err := importer.WriteTemplate(path); err != nil {
			color.Red("Template creation failed: %v", err)
			os.Exit(1)
		}
		color.Green("Sample Excel template created: %s", path)
	},
}
