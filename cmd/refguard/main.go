// Package main is the entry point for the refguard CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/refguard/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
