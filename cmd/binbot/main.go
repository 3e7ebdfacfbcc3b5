package main

import (
	"os"

	"github.com/tozahudud/binbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
