package main

import (
	"os"

	"github.com/tamagokakedon/aws-profile-switch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
