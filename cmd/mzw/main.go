package main

import (
	"os"

	"github.com/msto63/mZW/cmd/mzw/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
