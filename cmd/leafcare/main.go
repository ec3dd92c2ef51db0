package main

import (
	"os"

	"leafcare/cmd/leafcare/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
