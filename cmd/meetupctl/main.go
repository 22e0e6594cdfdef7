package main

import (
	"os"

	"github.com/mmynk/friendsmeet/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout).Execute(); err != nil {
		cli.Error(os.Stderr, err)
		os.Exit(1)
	}
}
