package main

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/classifier"
	"radcon-schedule/internal/config"
	database "radcon-schedule/internal/db"
	"radcon-schedule/internal/favorites"
	"radcon-schedule/internal/loader"
	"radcon-schedule/internal/storage"

	// Use an alias to prevent naming collisions with the 'server' variable
	apiserver "radcon-schedule/internal/api/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting RadCon Schedule API...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	db := database.New(cfg)
	db.AutoMigrate()
	store := storage.New(cfg)

	// 3. Catalog: loaded and classified once
	cat := loadCatalog(cfg, db, store)
	stats := classifier.New().Classify(cat)
	log.Printf("🏷️  Classified %d panels (%d preset)", stats.Classified, stats.Explicit)

	// 4. Favorites backend
	var backend favorites.Backend
	switch cfg.Favorites.Backend {
	case "storage":
		backend = store.Favorites()
	default:
		backend = database.NewKVStore(db.DB)
	}
	log.Printf("💾 Favorites stored in %s", cfg.Favorites.Backend)

	// 5. Setup Metrics
	go func() {
		http.Handle("/_metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/_metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 6. Start Server
	srv := apiserver.New(cfg, cat, backend)

	log.Printf("🚀 API Server starting on %s", cfg.Server.Port)
	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

// loadCatalog reads the schedule from object storage, or from the panels
// table when catalog.source is "db".
func loadCatalog(cfg *config.Config, db *database.Client, store *storage.Client) *catalog.Catalog {
	if cfg.Catalog.Source == "db" {
		if err := database.SeedPanels(db.DB); err != nil {
			log.Fatalf("❌ Seeding panels failed: %v", err)
		}
		cat, err := database.LoadPanels(db.DB)
		if err != nil {
			log.Fatalf("❌ Failed to load panels: %v", err)
		}
		return cat
	}

	cat, err := loader.Load(store, cfg.Catalog.Source)
	if err != nil {
		log.Fatalf("❌ Failed to load catalog %s: %v", cfg.Catalog.Source, err)
	}
	return cat
}
