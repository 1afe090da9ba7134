// Command coolc is the CLI front end for the Cool scanner and parser.
package main

import (
	"os"

	"github.com/scarvalhojr/coolc/cmd/coolc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
