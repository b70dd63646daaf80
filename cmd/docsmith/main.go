package main

import (
	"fmt"
	"os"

	"github.com/mithrel/docsmith/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "docsmith:", err)
		os.Exit(1)
	}
}
