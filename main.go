package main

import (
	"github.com/aleksandri0/mathpower/cmd"
	"github.com/aleksandri0/mathpower/internal/config"
)

func main() {
	if err := cmd.Execute(); err != nil {
		config.Exitf("mathpower: %v", err)
	}
}
