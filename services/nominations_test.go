package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inan-survey-server/database"
	"inan-survey-server/models"
	"inan-survey-server/utils"
)

// setupTestDB installs a fresh in-memory database for one test
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Connect(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
}

func completeNominations() map[string]string {
	nominations := make(map[string]string)
	for _, cat := range models.NominationCategories() {
		nominations[fmt.Sprintf("%d", cat.ID)] = "Cheikh Fall"
	}
	return nominations
}

func TestAggregateNominations(t *testing.T) {
	submissions := []models.NominationSubmission{
		{Email: "a@inan.com", Nominations: models.NominationMap{"1": "Cheikh Fall", "3": "Binta Sow"}},
		{Email: "b@inan.com", Nominations: models.NominationMap{"1": "Cheikh Fall", "3": "Alioune Ba"}},
		{Email: "c@inan.com", Nominations: models.NominationMap{"1": "Binta Sow", "99": "Nobody", "bad-key": "Nobody"}},
	}

	results := AggregateNominations(submissions)

	categories := models.NominationCategories()
	if len(results) != len(categories) {
		t.Fatalf("Expected one result per category, got %d", len(results))
	}

	byID := make(map[int]models.CategoryResult, len(results))
	for _, r := range results {
		byID[r.CategoryID] = r
	}

	first := byID[1]
	if first.Nominations["Cheikh Fall"] != 2 || first.Nominations["Binta Sow"] != 1 {
		t.Errorf("Unexpected category 1 tallies: %v", first.Nominations)
	}
	if first.TotalVotes != 3 {
		t.Errorf("Expected 3 votes in category 1, got %d", first.TotalVotes)
	}

	third := byID[3]
	if third.TotalVotes != 2 {
		t.Errorf("Expected 2 votes in category 3, got %d", third.TotalVotes)
	}

	// Categories nobody voted in still appear, empty
	if byID[10].TotalVotes != 0 || len(byID[10].Nominations) != 0 {
		t.Errorf("Expected empty result for category 10, got %+v", byID[10])
	}

	// Unknown and malformed category keys are ignored entirely
	for _, r := range results {
		if _, ok := r.Nominations["Nobody"]; ok {
			t.Error("Votes for unknown categories must not be counted")
		}
	}
}

func TestSubmitNominations(t *testing.T) {
	roster := []models.Employee{
		{ID: 1, Name: "Cheikh Fall", Status: "Active"},
		{ID: 2, Name: "Binta Sow", Status: "Active"},
	}

	t.Run("rejects incomplete submission", func(t *testing.T) {
		setupTestDB(t)

		nominations := completeNominations()
		delete(nominations, "7")

		_, err := SubmitNominations("voter@inan.com", nominations, roster)
		if !errors.Is(err, utils.ErrValidation) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("rejects unknown nominee when roster is loaded", func(t *testing.T) {
		setupTestDB(t)

		nominations := completeNominations()
		nominations["4"] = "Not An Employee"

		_, err := SubmitNominations("voter@inan.com", nominations, roster)
		if !errors.Is(err, utils.ErrValidation) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("accepts any nominee without a roster", func(t *testing.T) {
		setupTestDB(t)

		nominations := completeNominations()
		nominations["4"] = "Anyone At All"

		if _, err := SubmitNominations("voter@inan.com", nominations, nil); err != nil {
			t.Errorf("Expected success without roster, got %v", err)
		}
	})

	t.Run("second submission from same email is rejected", func(t *testing.T) {
		setupTestDB(t)

		if _, err := SubmitNominations("voter@inan.com", completeNominations(), roster); err != nil {
			t.Fatalf("First submission failed: %v", err)
		}

		changed := completeNominations()
		changed["1"] = "Binta Sow"

		// Same identity regardless of case or whitespace
		_, err := SubmitNominations("  Voter@Inan.COM ", changed, roster)
		if !errors.Is(err, utils.ErrDuplicate) {
			t.Fatalf("Expected duplicate error, got %v", err)
		}

		// The stored record is unchanged
		var stored models.NominationSubmission
		if err := database.DB.First(&stored, "email = ?", "voter@inan.com").Error; err != nil {
			t.Fatalf("Failed to load stored submission: %v", err)
		}
		if stored.Nominations["1"] != "Cheikh Fall" {
			t.Errorf("Stored submission was modified: %v", stored.Nominations["1"])
		}

		var count int64
		database.DB.Model(&models.NominationSubmission{}).Count(&count)
		if count != 1 {
			t.Errorf("Expected exactly one stored submission, got %d", count)
		}
	})

	t.Run("status pre-check reflects stored submission", func(t *testing.T) {
		setupTestDB(t)

		submitted, err := HasSubmitted("voter@inan.com")
		if err != nil {
			t.Fatalf("HasSubmitted failed: %v", err)
		}
		if submitted {
			t.Error("Expected no submission yet")
		}

		if _, err := SubmitNominations("voter@inan.com", completeNominations(), roster); err != nil {
			t.Fatalf("Submission failed: %v", err)
		}

		submitted, err = HasSubmitted("Voter@inan.com")
		if err != nil {
			t.Fatalf("HasSubmitted failed: %v", err)
		}
		if !submitted {
			t.Error("Expected submission to be visible")
		}
	})
}
