package main

import (
	"os"

	"github.com/Additional-Code/fooddelivery/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
