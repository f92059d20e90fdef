package main

import (
	"log"

	"case_cockpit_go/config"
	"case_cockpit_go/db"
	"case_cockpit_go/models"
	"case_cockpit_go/services"
)

// Rebuilds the person registry by replaying every contact of every case.
// Safe to run at any time; the replay never removes existing entries.
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment, cfg.TursoDatabaseURL, cfg.TursoAuthToken); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := services.NewStore(db.DB, cfg.AgentCode)
	before := len(store.People())

	log.Printf("Replaying contacts from %d cases...", len(store.Cases()))
	if err := services.SyncPeopleFromCases(store); err != nil {
		log.Fatalf("Replay failed: %v", err)
	}

	after := len(store.People())
	log.Printf("Registry sync completed: %d people (%d new)", after, after-before)
}
