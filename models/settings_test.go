package models

import (
	"testing"
	"time"
)

func TestApplyDefaultsEmptyDocument(t *testing.T) {
	full := ApplyDefaults(SurveySettings{})

	if full.StartDate.IsZero() || full.EndDate.IsZero() {
		t.Error("Expected default survey window")
	}
	if full.Appearance == nil || full.Appearance.PrimaryColor != "#6366F1" || full.Appearance.SecondaryColor != "#8B5CF6" {
		t.Errorf("Unexpected default appearance: %+v", full.Appearance)
	}
	if full.ResponseMgmt == nil || full.ResponseMgmt.AutoArchiveAfterDays != 90 || full.ResponseMgmt.DataRetentionDays != 0 {
		t.Errorf("Unexpected default retention: %+v", full.ResponseMgmt)
	}
	if full.Notifications == nil || full.Notifications.AlertThreshold == nil || *full.Notifications.AlertThreshold != 10 {
		t.Errorf("Unexpected default notifications: %+v", full.Notifications)
	}
	if full.Defaults == nil || full.Defaults.DefaultExpiryDays == nil || *full.Defaults.DefaultExpiryDays != 30 {
		t.Errorf("Unexpected default form defaults: %+v", full.Defaults)
	}
	if full.Integrations == nil || full.Integrations.ExportFormat != "csv" {
		t.Errorf("Unexpected default integrations: %+v", full.Integrations)
	}
	if full.Security == nil || full.Security.AllowedIPRanges == nil {
		t.Errorf("Expected empty allowed IP ranges, got %+v", full.Security)
	}
}

func TestApplyDefaultsKeepsStoredValues(t *testing.T) {
	zero := 0
	partial := SurveySettings{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Notifications: &Notifications{
			EmailNotifications: true,
			AlertThreshold:     &zero,
		},
		ResponseMgmt: &ResponseManagement{
			AutoArchiveAfterDays: 0,
		},
	}

	full := ApplyDefaults(partial)

	// An explicit zero threshold is a stored value, not an absence
	if full.Notifications.AlertThreshold == nil || *full.Notifications.AlertThreshold != 0 {
		t.Errorf("Explicit zero threshold was replaced: %+v", full.Notifications.AlertThreshold)
	}
	if !full.Notifications.EmailNotifications {
		t.Error("Stored notification flag was lost")
	}
	// A present retention struct keeps its zeroes (never archive)
	if full.ResponseMgmt.AutoArchiveAfterDays != 0 {
		t.Errorf("Explicit never-archive setting was replaced: %d", full.ResponseMgmt.AutoArchiveAfterDays)
	}
	if !full.StartDate.Equal(partial.StartDate) {
		t.Error("Stored start date was replaced")
	}
}

func TestApplyDefaultsDoesNotMutateInput(t *testing.T) {
	partial := SurveySettings{
		Appearance: &Appearance{PrimaryColor: "#FF0000"},
	}

	full := ApplyDefaults(partial)

	if partial.Appearance.SecondaryColor != "" {
		t.Error("Input document was mutated")
	}
	if partial.Notifications != nil {
		t.Error("Input document gained a notifications section")
	}
	if full.Appearance == partial.Appearance {
		t.Error("Result must not alias the input's sub-structs")
	}
}
