// Package main is the entry point for the callbill CLI.
package main

import (
	"os"

	"github.com/smallbiznis/callbill/cmd/callbill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
