package main

import (
	"os"

	"github.com/arthur-debert/savelink/cmd/savelink"
)

func main() {
	os.Exit(savelink.Execute(os.Args[1:]))
}
