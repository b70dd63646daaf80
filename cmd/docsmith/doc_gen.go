//go:build ignore
// +build ignore

package main

import (
	"log"

	docsmith "github.com/mithrel/docsmith/internal/cli"
	"github.com/spf13/cobra/doc"
)

func main() {
	root := docsmith.NewRootCmd()

	if err := doc.GenMarkdownTree(root, "./docs/markdown"); err != nil {
		log.Fatal(err)
	}

	header := &doc.GenManHeader{
		Title:   "DOCSMITH",
		Section: "1",
	}
	if err := doc.GenManTree(root, header, "./docs/man"); err != nil {
		log.Fatal(err)
	}
}
