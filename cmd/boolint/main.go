package main

import (
	"os"

	"github.com/fisherbryan/boolint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
