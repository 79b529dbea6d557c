package seed

import (
	"log"

	"gorm.io/gorm"

	"github.com/phalkmin/WP-AutoInsight/internal/models"
)

// defaultSettings are written once so a fresh install generates sensible
// drafts before anyone opens the settings surface.
var defaultSettings = map[string]string{
	"selected_model":          "gpt-3.5-turbo",
	"tone":                    "default",
	"char_limit":              "200",
	"generate_images":         "true",
	"preferred_image_service": "auto",
	"email_notifications":     "false",
	"generate_seo":            "false",
	"seo_integration":         "none",
	"auto_create":             "false",
}

// SeedDefaultSettings seeds default settings if none exist
func SeedDefaultSettings(db *gorm.DB) error {
	var count int64
	db.Model(&models.Setting{}).Count(&count)
	if count > 0 {
		log.Println("Settings already seeded, skipping...")
		return nil
	}

	log.Println("Seeding default settings...")
	settings := make([]models.Setting, 0, len(defaultSettings))
	for key, value := range defaultSettings {
		settings = append(settings, models.Setting{Key: key, Value: value})
	}

	return db.Create(&settings).Error
}

// SeedDefaultCategories seeds starter categories if none exist
func SeedDefaultCategories(db *gorm.DB) error {
	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Println("Categories already seeded, skipping...")
		return nil
	}

	log.Println("Seeding default categories...")
	categories := []models.Category{
		{Name: "Uncategorized", Description: "Posts without a specific topic"},
		{Name: "News", Description: "Timely updates and announcements"},
		{Name: "Guides", Description: "How-to articles and tutorials"},
	}

	return db.Create(&categories).Error
}

// SeedAll runs every seeder in order
func SeedAll(db *gorm.DB) error {
	if err := SeedDefaultSettings(db); err != nil {
		return err
	}
	return SeedDefaultCategories(db)
}
