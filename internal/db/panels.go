package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/models"
)

// SavePanels upserts the catalog into the panels table, keyed by panel id.
func SavePanels(db *gorm.DB, cat *catalog.Catalog) error {
	rows := make([]models.Panel, 0, cat.Len())
	for i, p := range cat.Panels() {
		rows = append(rows, toRow(i, p))
	}
	if len(rows) == 0 {
		return nil
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "panel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"position", "title", "description", "presenter", "category",
			"adult", "room", "day", "time_block", "time_label", "tags", "updated_at",
		}),
	}).Create(&rows).Error
}

// LoadPanels reads the stored catalog in discovery order.
func LoadPanels(db *gorm.DB) (*catalog.Catalog, error) {
	var rows []models.Panel
	if err := db.Order("position asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load panels: %w", err)
	}

	panels := make([]catalog.Panel, 0, len(rows))
	for _, r := range rows {
		panels = append(panels, fromRow(r))
	}
	return catalog.New(panels)
}

func toRow(position int, p catalog.Panel) models.Panel {
	return models.Panel{
		PanelID:     p.ID,
		Position:    position,
		Title:       p.Title,
		Description: p.Description,
		Presenter:   p.Presenter,
		Category:    string(p.Category),
		Adult:       p.Adult,
		Room:        p.Room,
		Day:         string(p.Day),
		TimeBlock:   p.TimeBlock,
		Time:        p.Time,
		Tags:        strings.Join(p.Tags, ","),
	}
}

func fromRow(r models.Panel) catalog.Panel {
	return catalog.Panel{
		ID:          r.PanelID,
		Title:       r.Title,
		Description: r.Description,
		Presenter:   r.Presenter,
		Category:    catalog.Category(r.Category),
		Adult:       r.Adult,
		Room:        r.Room,
		Day:         catalog.Day(r.Day),
		TimeBlock:   r.TimeBlock,
		Time:        r.Time,
		Tags:        splitTags(r.Tags),
	}
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
