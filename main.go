package main

import (
	"log"

	"github.com/agromatch/agromatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
