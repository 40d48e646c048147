package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"radcon-schedule/internal/api/middleware"
	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/favorites"
)

// FavoritesHandler reads and toggles the caller's favorites
type FavoritesHandler struct {
	catalog  *catalog.Catalog
	visitors *favorites.Registry
}

func NewFavoritesHandler(cat *catalog.Catalog, visitors *favorites.Registry) *FavoritesHandler {
	return &FavoritesHandler{catalog: cat, visitors: visitors}
}

// GetFavorites lists favorited panel ids in the order they were added
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	ids := h.visitors.For(middleware.VisitorID(c)).IDs()
	c.JSON(http.StatusOK, gin.H{
		"data":  ids,
		"total": len(ids),
	})
}

// ToggleFavorite flips one panel and persists the whole set before answering
func (h *FavoritesHandler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")
	if !h.catalog.Has(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panel not found"})
		return
	}

	store := h.visitors.Retain(middleware.VisitorID(c))
	favorited, err := store.Toggle(id)
	if err != nil {
		slog.Error("toggle favorite", "panel", id, "key", store.Key(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                  id,
		"favorited":           favorited,
		"favorites_available": store.HasAny(),
	})
}
