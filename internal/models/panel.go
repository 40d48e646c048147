package models

import (
	"time"

	"gorm.io/gorm"
)

// Panel is the stored form of one schedule entry.
type Panel struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PanelID     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"id"` // e.g., "panel-12"
	Position    int    `gorm:"index" json:"position"`                             // Discovery order
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Presenter   string `json:"presenter"`

	// Empty until classified
	Category string `gorm:"type:varchar(20);index" json:"category"`
	Adult    bool   `json:"adult"`

	Room      string `gorm:"index" json:"room"`
	Day       string `gorm:"type:varchar(20);index" json:"day"` // friday, saturday, sunday
	TimeBlock string `gorm:"type:varchar(100)" json:"time_block"`
	Time      string `gorm:"column:time_label;type:varchar(20)" json:"time"` // e.g., "4:00 PM"
	Tags      string `gorm:"type:varchar(255)" json:"tags"`                   // comma separated, e.g., "featured"
}
