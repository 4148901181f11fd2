package main

import (
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		// Cobra already prints the error
		os.Exit(1)
	}
}
