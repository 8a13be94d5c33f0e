package main

import (
	"os"

	"github.com/junbon-binary/finance-contract/cmd/contract/commands"
)

// main is the entry point for the contract CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
