package main

import (
	"os"

	"github.com/Faisalali0159/besofy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
