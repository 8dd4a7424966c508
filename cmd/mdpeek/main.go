package main

import (
	"log"

	"github.com/kyaoi/mdpeek/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
