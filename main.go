package main

import (
	"os"

	"github.com/fatih/color"

	"snipbox/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
