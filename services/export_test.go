package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"inan-survey-server/models"
)

func TestFormatResponsesForExport(t *testing.T) {
	schema := &models.FormSchema{
		ID:    "form-1",
		Title: "Cafeteria Feedback",
		Questions: models.QuestionList{
			{ID: "q-intro", Type: models.QuestionLabel, Question: "Tell us about your visit"},
			{ID: "q-rating", Type: models.QuestionRating, Question: "Overall rating"},
			{ID: "q-dishes", Type: models.QuestionMultiChoice, Question: "Favorite dishes", MultipleSelect: true, Options: []string{"Pasta", "Salad", "Soup"}},
			{ID: "q-comment", Type: models.QuestionText, Question: "Comments"},
		},
	}

	submitted := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	responses := []models.FormResponse{
		{
			ID:         "r-1",
			SchemaID:   schema.ID,
			Respondent: "Asha",
			Location:   "Main Office",
			Answers: models.AnswerMap{
				"q-rating":  float64(4),
				"q-dishes":  []interface{}{"Pasta", "Soup"},
				"q-comment": "Great food, friendly staff",
			},
			SubmittedAt: submitted,
		},
		{
			ID:          "r-2",
			SchemaID:    schema.ID,
			Respondent:  "Anonymous",
			Location:    "Main Office",
			Answers:     models.AnswerMap{"q-rating": float64(5)},
			SubmittedAt: submitted,
		},
	}

	rows := FormatResponsesForExport(schema, responses)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	wantHeaders := []string{"Respondent", "Location", "Submitted At", "Overall rating", "Favorite dishes", "Comments"}
	for i, h := range wantHeaders {
		if rows[0].Headers[i] != h {
			t.Errorf("Header %d: expected %q, got %q", i, h, rows[0].Headers[i])
		}
	}
	if len(rows[0].Headers) != len(wantHeaders) {
		t.Fatalf("Expected %d headers (label excluded), got %d", len(wantHeaders), len(rows[0].Headers))
	}

	wantFirst := []string{"Asha", "Main Office", "2026-03-15T10:30:00Z", "4", "Pasta, Soup", "Great food, friendly staff"}
	for i, v := range wantFirst {
		if rows[0].Values[i] != v {
			t.Errorf("Row 0 value %d: expected %q, got %q", i, v, rows[0].Values[i])
		}
	}

	// Unanswered questions render as empty cells
	if rows[1].Values[4] != "" || rows[1].Values[5] != "" {
		t.Errorf("Expected empty cells for unanswered questions, got %q and %q", rows[1].Values[4], rows[1].Values[5])
	}
}

func TestWriteCSVQuoting(t *testing.T) {
	rows := []ExportRow{
		{
			Headers: []string{"Respondent", "Comments"},
			Values:  []string{"Asha", `Great food, friendly staff and a "cozy" room`},
		},
	}

	data, err := WriteCSV(rows)
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	// A standards-compliant reader must recover the exact field
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse produced CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header plus one record, got %d", len(records))
	}
	if records[1][1] != rows[0].Values[1] {
		t.Errorf("Field did not round-trip: got %q", records[1][1])
	}
	if !strings.Contains(string(data), `"Great food, friendly staff and a ""cozy"" room"`) {
		t.Errorf("Expected quoted field with doubled quotes, got %s", data)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	data, err := WriteCSV(nil)
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Expected empty output for no rows, got %q", data)
	}
}

func TestExportFilenames(t *testing.T) {
	if got := ExportFilename("Cafeteria Feedback"); got != "Cafeteria-Feedback-responses.csv" {
		t.Errorf("Unexpected filename %q", got)
	}

	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := DatedExportFilename("inan-awards", now); got != "inan-awards-responses-2026-03-15.csv" {
		t.Errorf("Unexpected dated filename %q", got)
	}
}

func TestNominationExportRows(t *testing.T) {
	results := []models.CategoryResult{
		{
			CategoryID: 3,
			Title:      "Employee of the Year",
			Nominations: map[string]int{
				"Binta Sow":   2,
				"Alioune Ba":  2,
				"Cheikh Fall": 5,
			},
			TotalVotes: 9,
		},
	}

	rows := NominationExportRows(results)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	// Votes descending, ties alphabetical
	wantOrder := []string{"Cheikh Fall", "Alioune Ba", "Binta Sow"}
	for i, nominee := range wantOrder {
		if rows[i].Values[1] != nominee {
			t.Errorf("Row %d: expected nominee %q, got %q", i, nominee, rows[i].Values[1])
		}
		if rows[i].Values[0] != "Employee of the Year" {
			t.Errorf("Row %d: unexpected category %q", i, rows[i].Values[0])
		}
	}
	if rows[0].Values[2] != "5" {
		t.Errorf("Expected top nominee with 5 votes, got %q", rows[0].Values[2])
	}
}
