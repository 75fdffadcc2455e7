package main

import (
	"os"

	"github.com/detective-ambiental/detective/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
