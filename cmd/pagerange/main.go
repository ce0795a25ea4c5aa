package main

import (
	"os"

	"go-pagerange/cmd/pagerange/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
