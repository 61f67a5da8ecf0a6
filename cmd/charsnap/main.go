package main

import (
	"fmt"
	"os"

	"github.com/charsnap/charsnap/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "charsnap:", err)
		os.Exit(1)
	}
}
