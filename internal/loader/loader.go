package loader

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/storage"
)

// Parse picks the parser from the file extension of name.
func Parse(name string, r io.Reader) ([]catalog.Panel, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return FromHTML(r)
	case ".yaml", ".yml":
		return FromYAML(r)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", name)
	}
}

// Load downloads the catalog source from storage and builds the catalog.
func Load(store *storage.Client, key string) (*catalog.Catalog, error) {
	obj, err := store.DownloadCatalog(key)
	if err != nil {
		return nil, fmt.Errorf("download catalog %s: %w", key, err)
	}
	defer obj.Body.Close()

	panels, err := Parse(key, obj.Body)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(panels)
	if err != nil {
		return nil, fmt.Errorf("build catalog %s: %w", key, err)
	}

	log.Printf("📅 Catalog Loaded: %d panels from %s", cat.Len(), key)
	return cat, nil
}
