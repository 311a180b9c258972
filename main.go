package main

import (
	"os"

	"github.com/kilianp07/berthplan/cmd"
	"github.com/kilianp07/berthplan/core/monitoring"
)

func main() {
	if run() != nil {
		os.Exit(1)
	}
}

func run() error {
	defer monitoring.Recover()
	return cmd.Execute()
}
