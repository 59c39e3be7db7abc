package main

import (
	"log"

	"github.com/abubakar-xyz/ChopWise-Improved/internal/config"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/infrastructure/server"
)

func main() {
	log.Println("Starting ChopWise API...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
