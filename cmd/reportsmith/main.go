package main

import (
	"os"

	"github.com/weikunhan/reportsmith/cmd/reportsmith/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
