// cmd/server is the bare server entry point for container images: it boots
// straight into serve mode with no CLI layer. Use cmd/tokri for the full
// CLI (seed, route:list, ...).
package main

import (
	"log"

	"github.com/shashiranjanraj/tokri/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
