package main

import (
	"os"

	"github.com/tillberg/autorestart"

	"github.com/mseguy/aidesk/internal/cli"
)

func main() {
	go autorestart.RestartOnChange()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
