package main

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"inan-survey-server/database"
	"inan-survey-server/models"
)

// seedSettings creates the singleton settings document with the hardcoded
// defaults when no document exists yet. An existing document is never touched;
// defaults for later-added fields are merged at read time instead.
func seedSettings() error {
	db := database.GetDB()

	var existing models.SettingsDocument
	err := db.Where("name = ?", models.SettingsName).First(&existing).Error
	if err == nil {
		log.Println("✅ Settings document already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	doc := models.SettingsDocument{
		Name: models.SettingsName,
		Data: models.DefaultSettings(),
	}
	if err := db.Create(&doc).Error; err != nil {
		return err
	}

	log.Println("✅ Seeded default settings document")
	return nil
}
