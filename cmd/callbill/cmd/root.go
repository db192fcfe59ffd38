// Package cmd provides the CLI commands for callbill.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "callbill",
	Short: "Generate per-account PDF invoices from a call-detail spreadsheet",
	Long: `callbill turns a call-detail usage export (XLSX) into one PDF invoice
per billing account and records the generation run.

Examples:
  callbill generate --input usage.xlsx --from "Telecom Provider Inc." \
    --to "Client Company Ltd." --billing-date 2024-03-15 --gmt +00:00
  callbill generate --input usage.xlsx --from Acme --to Client \
    --billing-date 2024-03-15 --gmt +05:30 --out ./media`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}
