package main

import (
	"os"

	"github.com/abhisek/pylearn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
