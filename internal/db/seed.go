package database

import (
	"log"

	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/models"

	"gorm.io/gorm"
)

// SeedPanels populates an empty panels table with a small demo schedule.
func SeedPanels(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Panel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	panels := []catalog.Panel{
		// --- FRIDAY ---
		{Title: "Opening Ceremonies", Description: "Don't panic. Bring a towel.", Room: "Main Hall", Day: catalog.Friday, TimeBlock: "fri-4pm", Time: "4:00 PM"},
		{Title: "Intro to Robotics", Description: "Servos, sensors and a lot of solder.", Presenter: "Dr. Ada Quill", Room: "Room B", Day: catalog.Friday, TimeBlock: "fri-4pm", Time: "4:00 PM"},
		{Title: "D&D One-Shot", Category: catalog.Gaming, Room: "Gaming Room", Day: catalog.Friday, TimeBlock: "fri-6pm", Time: "6:00 PM"},
		{Title: "Burlesque After Dark", Category: catalog.Performance, Adult: true, Room: "Main Hall", Day: catalog.Friday, TimeBlock: "fri-9pm", Time: "9:00 PM"},

		// --- SATURDAY ---
		{Title: "Cosplay Painting Workshop", Description: "Acrylics on foam and worbla.", Room: "Art Room", Day: catalog.Saturday, TimeBlock: "sat-10am", Time: "10:00 AM"},
		{Title: "Self-Publishing Your Novel", Presenter: "Marvin Prefect", Room: "Room A", Day: catalog.Saturday, TimeBlock: "sat-10am", Time: "10:00 AM"},
		{Title: "Masquerade", Description: "The costume competition.", Room: "Main Hall", Day: catalog.Saturday, TimeBlock: "sat-7pm", Time: "7:00 PM"},

		// --- SUNDAY ---
		{Title: "Fandom Through the Decades", Room: "Room A", Day: catalog.Sunday, TimeBlock: "sun-11am", Time: "11:00 AM"},
		{Title: "Closing Ceremonies", Description: "So long, and thanks for all the fish.", Room: "Main Hall", Day: catalog.Sunday, TimeBlock: "sun-3pm", Time: "3:00 PM"},
	}

	cat, err := catalog.New(panels)
	if err != nil {
		return err
	}

	log.Printf("🌱 Seeding %d Panels...", cat.Len())
	return SavePanels(db, cat)
}
