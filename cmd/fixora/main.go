package main

import (
	"fmt"
	"os"

	"github.com/fixora/backend/internal/cli"
)

func main() {
	root := cli.NewRootCommand(cli.Options{})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
