package main

import (
	"os"

	"github.com/diogo/glassai/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
