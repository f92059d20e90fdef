package main

import (
	"flag"
	"log"
	"os"

	"case_cockpit_go/config"
	"case_cockpit_go/db"
	"case_cockpit_go/models"
	"case_cockpit_go/services"
)

func main() {
	out := flag.String("out", services.SnapshotFileName, "output file, - for stdout")
	flag.Parse()

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
	data, _, err := services.ExportSnapshotJSON(store)
	if err != nil {
		log.Fatalf("Failed to export snapshot: %v", err)
	}

	if *out == "-" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Snapshot written to %s (%d cases, %d people)", *out, len(store.Cases()), len(store.People()))
}
