package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"inan-survey-server/database"
	"inan-survey-server/models"
	"inan-survey-server/utils"
)

// LoadSettings reads the singleton settings document and fills absent nested
// fields from the hardcoded defaults. The stored document is not mutated.
func LoadSettings() (models.SurveySettings, error) {
	var doc models.SettingsDocument
	err := database.DB.First(&doc, "name = ?", models.SettingsName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.SurveySettings{}, err
	}
	return models.ApplyDefaults(doc.Data), nil
}

// SaveSettings replaces the settings document. Last write wins; there is no
// merge across concurrent editors. Date validation happens at the edit
// boundary so that re-saving an old document (banner replacement) still works.
func SaveSettings(settings models.SurveySettings) error {
	doc := models.SettingsDocument{
		Name: models.SettingsName,
		Data: settings,
	}
	return database.DB.Save(&doc).Error
}

// ValidateSettingsDates enforces the survey window invariants
func ValidateSettingsDates(startDate, endDate time.Time) error {
	if startDate.IsZero() || endDate.IsZero() {
		return utils.ValidationError("Start and end dates are required")
	}
	if !startDate.Before(endDate) {
		return utils.ValidationError("Start date must be before end date")
	}
	// Allow up to one day of slack, matching the dashboard's rule
	if startDate.Before(time.Now().Add(-24 * time.Hour)) {
		return utils.ValidationError("Start date cannot be in the past")
	}
	return nil
}
