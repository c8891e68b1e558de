package main

import (
	"os"

	"github.com/satishbabariya/simplesql/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
