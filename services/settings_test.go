package services

import (
	"errors"
	"testing"
	"time"

	"inan-survey-server/database"
	"inan-survey-server/models"
	"inan-survey-server/utils"
)

func TestLoadSettingsWithoutDocument(t *testing.T) {
	setupTestDB(t)

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if settings.Appearance == nil || settings.Appearance.PrimaryColor != "#6366F1" {
		t.Errorf("Expected default appearance, got %+v", settings.Appearance)
	}
	if settings.Notifications == nil || settings.Notifications.AlertThreshold == nil || *settings.Notifications.AlertThreshold != 10 {
		t.Errorf("Expected default alert threshold of 10, got %+v", settings.Notifications)
	}
}

func TestLoadSettingsMergesDefaults(t *testing.T) {
	setupTestDB(t)

	// A sparse document, as an older dashboard version would have written
	stored := models.SurveySettings{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
		Appearance: &models.Appearance{
			PrimaryColor: "#FF0000",
		},
	}
	if err := SaveSettings(stored); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	// Stored values win, absent fields come from defaults
	if loaded.Appearance.PrimaryColor != "#FF0000" {
		t.Errorf("Stored primary color was overwritten: %q", loaded.Appearance.PrimaryColor)
	}
	if loaded.Appearance.SecondaryColor != "#8B5CF6" {
		t.Errorf("Expected default secondary color, got %q", loaded.Appearance.SecondaryColor)
	}
	if loaded.ResponseMgmt == nil || loaded.ResponseMgmt.AutoArchiveAfterDays != 90 {
		t.Errorf("Expected default archive window, got %+v", loaded.ResponseMgmt)
	}
	if loaded.Defaults == nil || loaded.Defaults.FooterText != "© 2023 Inan Awards. All rights reserved." {
		t.Errorf("Expected default footer text, got %+v", loaded.Defaults)
	}

	// The merge happens at read time only; the stored document stays sparse
	var doc models.SettingsDocument
	if err := database.DB.First(&doc, "name = ?", models.SettingsName).Error; err != nil {
		t.Fatalf("Failed to load raw document: %v", err)
	}
	if doc.Data.ResponseMgmt != nil {
		t.Error("Defaults must not be written back to the stored document")
	}
}

func TestValidateSettingsDates(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"valid window", now.Add(time.Hour), now.Add(48 * time.Hour), false},
		{"start today is allowed", now.Add(-time.Hour), now.Add(48 * time.Hour), false},
		{"end before start", now.Add(48 * time.Hour), now.Add(time.Hour), true},
		{"equal dates", now.Add(time.Hour), now.Add(time.Hour), true},
		{"start far in the past", now.Add(-72 * time.Hour), now.Add(48 * time.Hour), true},
		{"zero dates", time.Time{}, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSettingsDates(tt.start, tt.end)
			if tt.wantErr && !errors.Is(err, utils.ErrValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}
