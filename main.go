package main

import (
	"log"

	"github.com/nugw/ai-gallery/cmd"
	"github.com/nugw/ai-gallery/config"
)

func main() {
	log.Printf("ai gallery %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
