package main

import (
	"os"

	"github.com/shopsynth-dev/shopsynth/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
