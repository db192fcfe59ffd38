package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridable at build time via -ldflags.
var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the callbill version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("callbill %s\n", version)
	},
}
