package main

import (
	"fmt"
	"os"

	"github.com/631086083/tairclient/internal/cli"
)

func main() {
	if err := cli.App(cli.Connect).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
