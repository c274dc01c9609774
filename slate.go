package main

import (
	"github.com/caesium-cloud/slate/cmd"
	"github.com/caesium-cloud/slate/pkg/env"
	"github.com/caesium-cloud/slate/pkg/log"
)

func main() {
	if err := env.Process(); err != nil {
		log.Fatal("environment failure", "error", err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal("slate failure", "error", err)
	}
}
