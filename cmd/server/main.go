package main

import (
	"context"
	"log"
	"time"

	"case_cockpit_go/config"
	"case_cockpit_go/db"
	"case_cockpit_go/handlers"
	"case_cockpit_go/middleware"
	"case_cockpit_go/models"
	"case_cockpit_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment, cfg.TursoDatabaseURL, cfg.TursoAuthToken); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.KVEntry{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize blob/snapshot storage
	services.InitializeStorage(cfg)

	store := services.NewStore(db.DB, cfg.AgentCode)

	// Rebuild the person registry from the stored cases. Repairs any gap a
	// crash may have left between case and registry writes.
	if err := services.SyncPeopleFromCases(store); err != nil {
		log.Fatalf("Failed to sync person registry: %v", err)
	}

	// A fresh database gets one case so the cockpit never opens empty
	if len(store.Cases()) == 0 {
		number, err := store.NextCaseNumber()
		if err != nil {
			log.Fatalf("Failed to generate initial case number: %v", err)
		}
		if _, err := services.CreateCase(store, number); err != nil {
			log.Fatalf("Failed to seed initial case: %v", err)
		}
		log.Printf("Seeded initial case %s", number)
	}

	auth, err := services.NewAuthenticator(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize authenticator: %v", err)
	}

	api := handlers.NewAPI(store, auth, cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("50M"))

	// Public routes (no authentication required)
	e.POST("/api/login", api.Login)

	// Protected routes
	protected := e.Group("/api")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/logout", api.Logout)
		protected.GET("/session", api.SessionInfo)
		protected.GET("/dashboard", api.Dashboard)

		// Settings (theme, last route)
		protected.GET("/settings", api.GetSettings)
		protected.PUT("/settings", api.UpdateSettings)

		// Cases
		protected.GET("/cases", api.ListCases)
		protected.POST("/cases", api.CreateCase)
		protected.GET("/cases/:id", api.GetCase)
		protected.PUT("/cases/:id/status", api.UpdateCaseStatus)
		protected.DELETE("/cases/:id", api.DeleteCase)
		protected.GET("/cases/:id/pdf", api.CasePDF)

		// Contacts
		protected.POST("/cases/:id/contacts", api.AddContact)
		protected.PUT("/cases/:id/contacts/:contactId", api.UpdateContact)
		protected.DELETE("/cases/:id/contacts/:contactId", api.DeleteContact)
		protected.POST("/cases/:id/contacts/:contactId/shorts", api.AddContactShort)

		// Reports and short notes
		protected.POST("/cases/:id/reports", api.AddReport)
		protected.PUT("/cases/:id/reports/:reportId", api.UpdateReport)
		protected.DELETE("/cases/:id/reports/:reportId", api.DeleteReport)
		protected.POST("/cases/:id/shorts", api.AddCaseShort)
		protected.DELETE("/cases/:id/shorts/:noteId", api.DeleteCaseShort)

		// Folders and files
		protected.POST("/cases/:id/folders", api.AddFolder)
		protected.POST("/cases/:id/folders/:folderId/files", api.UploadFile)
		protected.GET("/cases/:id/files/:fileId", api.DownloadFile)
		protected.DELETE("/cases/:id/folders/:folderId/files/:fileId", api.DeleteFile)

		// Person registry
		protected.GET("/people", api.ListPeople)
		protected.GET("/people/:id", api.GetPerson)
		protected.DELETE("/people/:id", api.DeletePerson)
		protected.POST("/people/:id/split", api.SplitPerson)
		protected.POST("/people/sync", api.ResyncPeople)

		// Backup and export
		protected.GET("/backup/export", api.ExportBackup)
		protected.POST("/backup/import", api.ImportBackup)
		protected.POST("/backup/sync", api.SyncBackup)
		protected.GET("/export/workbook", api.ExportWorkbook)
	}

	// Start background cleanup jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Scheduled remote snapshot sync
	if cfg.SyncIntervalMinutes > 0 {
		go func() {
			ticker := time.NewTicker(time.Duration(cfg.SyncIntervalMinutes) * time.Minute)
			defer ticker.Stop()

			for range ticker.C {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				err := services.SyncToRemote(ctx, store, services.Storage)
				cancel()
				if err != nil {
					log.Printf("Scheduled sync failed: %v", err)
					if cfg.AlertEmailTo != "" {
						services.SendEmailAsync(cfg, services.BuildSyncFailureAlert(cfg, err))
					}
				}
			}
		}()
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
