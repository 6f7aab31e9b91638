package main

import (
	"os"

	"github.com/kmitofficial/CodeGenie-G372-PS25/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
