// Command filedict is a command-line client for the filedict store.
package main

import (
	"os"

	"github.com/filedict/filedict/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args[1:]))
}
