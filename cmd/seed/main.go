package main

import (
	"log"

	"github.com/randevu-app/randevu-server/internal/config"
	"github.com/randevu-app/randevu-server/internal/db"
)

// Standalone seeder for local development.
func main() {
	cfg := config.New()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	if err := db.SeedTestData(database); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("Seeding complete.")
}
