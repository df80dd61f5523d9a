package main

import (
	"os"

	"github.com/venturemap/venturemap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
