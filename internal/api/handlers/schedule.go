package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"radcon-schedule/internal/api/middleware"
	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/favorites"
	"radcon-schedule/internal/filter"
	"radcon-schedule/internal/schedule"
)

// ScheduleHandler serves the classified catalog and filter results
type ScheduleHandler struct {
	catalog  *catalog.Catalog
	visitors *favorites.Registry
	clock    schedule.Clock
	dates    schedule.EventDates
}

func NewScheduleHandler(cat *catalog.Catalog, visitors *favorites.Registry, clock schedule.Clock, dates schedule.EventDates) *ScheduleHandler {
	return &ScheduleHandler{catalog: cat, visitors: visitors, clock: clock, dates: dates}
}

type panelView struct {
	catalog.Panel
	Favorited bool `json:"favorited"`
	Visible   bool `json:"visible"`
}

// GetSchedule applies ?filter=&room=&q= against the caller's favorites
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	var state filter.State
	if err := c.ShouldBindQuery(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state = state.Normalized()
	if !filter.Selectable(state.Category, h.catalog) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown filter: " + state.Category})
		return
	}

	favs := h.visitors.For(middleware.VisitorID(c))
	panels := h.catalog.Panels()
	res := filter.Apply(panels, state, favs)

	views := make([]panelView, 0, len(panels))
	for _, p := range panels {
		views = append(views, panelView{
			Panel:     p,
			Favorited: favs.IsFavorited(p.ID),
			Visible:   res.IsVisible(p.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      res,
		"count_label": schedule.CountLabel(res),
		"default_day": schedule.DefaultDay(h.clock, h.dates),
		"panels":      views,
	})
}

// GetPanels returns the classified catalog in discovery order
func (h *ScheduleHandler) GetPanels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data":  h.catalog.Panels(),
		"total": h.catalog.Len(),
	})
}
