package routes

import (
	"net/http"
	"testing"
	"time"

	"inan-survey-server/database"
	"inan-survey-server/models"
)

func TestGetSettingsReturnsDefaults(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/admin/settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Get settings failed with %d: %s", w.Code, w.Body.String())
	}

	settings := decodeBody(t, w)["settings"].(map[string]interface{})
	appearance := settings["appearance"].(map[string]interface{})
	if appearance["primaryColor"] != "#6366F1" {
		t.Errorf("Expected default primary color, got %v", appearance["primaryColor"])
	}
	notifications := settings["notifications"].(map[string]interface{})
	if notifications["alertThreshold"] != float64(10) {
		t.Errorf("Expected default alert threshold 10, got %v", notifications["alertThreshold"])
	}
}

func TestUpdateSettings(t *testing.T) {
	router := setupTestRouter(t)

	update := models.SurveySettings{
		StartDate: time.Now().Add(time.Hour),
		EndDate:   time.Now().Add(30 * 24 * time.Hour),
		IsActive:  true,
		Appearance: &models.Appearance{
			PrimaryColor: "#FF0000",
		},
	}

	w := doJSON(t, router, "PUT", "/api/v1/admin/settings", update)
	if w.Code != http.StatusOK {
		t.Fatalf("Update failed with %d: %s", w.Code, w.Body.String())
	}

	// Reading back merges the stored values with defaults
	w = doJSON(t, router, "GET", "/api/v1/admin/settings", nil)
	settings := decodeBody(t, w)["settings"].(map[string]interface{})
	appearance := settings["appearance"].(map[string]interface{})
	if appearance["primaryColor"] != "#FF0000" {
		t.Errorf("Stored color lost: %v", appearance["primaryColor"])
	}
	if appearance["secondaryColor"] != "#8B5CF6" {
		t.Errorf("Expected default secondary color, got %v", appearance["secondaryColor"])
	}
}

func TestUpdateSettingsRejectsBadDates(t *testing.T) {
	router := setupTestRouter(t)

	update := models.SurveySettings{
		StartDate: time.Now().Add(48 * time.Hour),
		EndDate:   time.Now().Add(time.Hour),
		IsActive:  true,
	}

	w := doJSON(t, router, "PUT", "/api/v1/admin/settings", update)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for inverted dates, got %d: %s", w.Code, w.Body.String())
	}

	// Nothing was stored
	var count int64
	database.DB.Model(&models.SettingsDocument{}).Count(&count)
	if count != 0 {
		t.Errorf("Rejected update wrote %d documents", count)
	}
}
