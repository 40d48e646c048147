package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/classifier"
	"radcon-schedule/internal/config"
	database "radcon-schedule/internal/db"
	"radcon-schedule/internal/favorites"
	"radcon-schedule/internal/filter"
	"radcon-schedule/internal/loader"
	"radcon-schedule/internal/schedule"
	"radcon-schedule/internal/storage"
)

func main() {
	// 1. Parse Flags
	// Flags override config.yaml values
	catalogPath := flag.String("catalog", "", "Local schedule file (.html or .yaml); defaults to catalog.source in storage")
	category := flag.String("filter", filter.All, "Category filter (all, favorites, adult, family, a category or a card tag such as featured)")
	room := flag.String("room", "", "Only show panels in this room")
	query := flag.String("q", "", "Search text")
	interactive := flag.Bool("interactive", false, "Read filter/room/search/clear/fav/quit commands from stdin")
	upload := flag.Bool("upload", false, "Upload the -catalog file to the catalog bucket and exit")
	list := flag.Bool("list", false, "List catalog files in storage and exit")
	importDB := flag.Bool("import", false, "Store the classified catalog in the panels table and exit")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// 2. Load Config
	cfg := config.Load()
	store := storage.New(cfg)

	if *list {
		keys, err := store.ListCatalogs()
		if err != nil {
			log.Fatalf("❌ List failed: %v", err)
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return
	}

	if *upload {
		if *catalogPath == "" {
			log.Fatal("❌ -upload needs -catalog")
		}
		uploadCatalog(store, *catalogPath)
		return
	}

	// 3. Load and classify
	cat := loadCatalog(cfg, store, *catalogPath)
	stats := classifier.New().Classify(cat)
	log.Printf("🏷️  Classified %d panels (%d preset, %d toggles)", stats.Classified, stats.Explicit, stats.TogglesCreated)

	db := database.New(cfg)
	db.AutoMigrate()

	if *importDB {
		if err := database.SavePanels(db.DB, cat); err != nil {
			log.Fatalf("❌ Import failed: %v", err)
		}
		log.Printf("✅ Imported %d panels", cat.Len())
		return
	}

	// 4. Favorites
	var backend favorites.Backend = database.NewKVStore(db.DB)
	if cfg.Favorites.Backend == "storage" {
		backend = store.Favorites()
	}
	favs := favorites.Load(backend, cfg.Favorites.Key)

	dates := schedule.NewEventDates(cfg.Schedule.Friday, cfg.Schedule.Saturday, cfg.Schedule.Sunday)
	fmt.Printf("Opening on %s\n", schedule.DefaultDay(schedule.RealClock{}, dates))

	view := schedule.NewTextView(os.Stdout, cat)

	if !*interactive {
		state := filter.State{Category: *category, Room: *room, Query: *query}
		if !filter.Selectable(state.Normalized().Category, cat) {
			log.Fatalf("❌ Unknown filter %q", *category)
		}
		view.Render(filter.Apply(cat.Panels(), state, favs))
		return
	}

	// 5. Interactive session
	ctrl := schedule.NewController(cat, favs, view, cfg.SearchDebounce())
	defer ctrl.Close()

	ctrl.Start()
	if *category != filter.All || *room != "" {
		if _, err := ctrl.SelectFilter(*category, *room); err != nil {
			log.Printf("⚠️ %v", err)
		}
	}
	if *query != "" {
		ctrl.Search(*query)
	}
	run(ctrl, bufio.NewScanner(os.Stdin))
}

func run(ctrl *schedule.Controller, in *bufio.Scanner) {
	for in.Scan() {
		cmd, arg, _ := strings.Cut(strings.TrimSpace(in.Text()), " ")
		switch cmd {
		case "":
		case "filter":
			if _, err := ctrl.SelectFilter(arg, ctrl.State().Room); err != nil {
				fmt.Println(err)
			}
		case "room":
			if _, err := ctrl.SelectFilter(ctrl.State().Category, arg); err != nil {
				fmt.Println(err)
			}
		case "search":
			ctrl.Search(arg)
		case "clear":
			ctrl.ClearSearch()
		case "fav":
			if _, err := ctrl.ToggleFavorite(arg); err != nil {
				fmt.Println(err)
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("commands: filter <name> | room <name> | search <text> | clear | fav <id> | quit")
		}
	}
}

func loadCatalog(cfg *config.Config, store *storage.Client, path string) *catalog.Catalog {
	if path == "" {
		cat, err := loader.Load(store, cfg.Catalog.Source)
		if err != nil {
			log.Fatalf("❌ Failed to load catalog: %v", err)
		}
		return cat
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("❌ Failed to open catalog: %v", err)
	}
	defer f.Close()

	panels, err := loader.Parse(path, f)
	if err != nil {
		log.Fatalf("❌ Failed to parse catalog: %v", err)
	}
	cat, err := catalog.New(panels)
	if err != nil {
		log.Fatalf("❌ Invalid catalog: %v", err)
	}
	log.Printf("📅 Catalog Loaded: %d panels from %s", cat.Len(), path)
	return cat
}

func uploadCatalog(store *storage.Client, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("❌ Failed to open catalog: %v", err)
	}
	defer f.Close()

	contentType := "text/html"
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		contentType = "application/yaml"
	}
	key := filepath.Base(path)
	if err := store.UploadCatalog(key, f, contentType); err != nil {
		log.Fatalf("❌ Upload failed: %v", err)
	}
	log.Printf("✅ Uploaded %s", key)
}
