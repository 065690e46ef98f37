package main

import (
	"os"

	"pogo/cmd/pogo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
