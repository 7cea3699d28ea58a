package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/savelink/cmd/savelink"
	"github.com/arthur-debert/savelink/internal/version"
)

func main() {
	rootCmd := savelink.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SAVELINK",
		Section: "1",
		Source:  "savelink " + version.Version,
		Manual:  "savelink manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
