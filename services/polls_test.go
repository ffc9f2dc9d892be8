package services

import (
	"errors"
	"testing"
	"time"

	"inan-survey-server/database"
	"inan-survey-server/models"
	"inan-survey-server/utils"
)

func TestFindOpenPoll(t *testing.T) {
	setupTestDB(t)

	past := time.Now().Add(-time.Hour)
	polls := []models.Poll{
		{ID: "open", Title: "T", Question: "Q", Options: models.StringList{"A", "B"}, Location: "L", IsActive: true},
		{ID: "expired", Title: "T", Question: "Q", Options: models.StringList{"A", "B"}, Location: "L", EndDate: &past, IsActive: true},
		{ID: "deactivated", Title: "T", Question: "Q", Options: models.StringList{"A", "B"}, Location: "L", IsActive: false},
	}
	for _, p := range polls {
		if err := database.DB.Create(&p).Error; err != nil {
			t.Fatalf("Failed to seed poll %s: %v", p.ID, err)
		}
	}

	poll, err := FindOpenPoll("open")
	if err != nil {
		t.Fatalf("Expected the open poll to be found: %v", err)
	}
	if poll.ID != "open" {
		t.Errorf("Expected poll open, got %q", poll.ID)
	}

	for _, id := range []string{"expired", "deactivated", "missing"} {
		if _, err := FindOpenPoll(id); !errors.Is(err, utils.ErrNotFound) {
			t.Errorf("Poll %q: expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestTallyPoll(t *testing.T) {
	poll := &models.Poll{
		ID:      "poll-1",
		Options: models.StringList{"Pizza", "Sushi", "Tacos"},
	}

	votes := func(options ...string) []models.PollResponse {
		responses := make([]models.PollResponse, len(options))
		for i, o := range options {
			responses[i] = models.PollResponse{PollID: poll.ID, SelectedOption: o}
		}
		return responses
	}

	tests := []struct {
		name         string
		responses    []models.PollResponse
		wantCounts   map[string]int
		wantPercents map[string]int
		wantTotal    int
	}{
		{
			name:         "three to one split",
			responses:    votes("Pizza", "Pizza", "Pizza", "Sushi"),
			wantCounts:   map[string]int{"Pizza": 3, "Sushi": 1, "Tacos": 0},
			wantPercents: map[string]int{"Pizza": 75, "Sushi": 25, "Tacos": 0},
			wantTotal:    4,
		},
		{
			name:         "no votes gives zero percentages",
			responses:    nil,
			wantCounts:   map[string]int{"Pizza": 0, "Sushi": 0, "Tacos": 0},
			wantPercents: map[string]int{"Pizza": 0, "Sushi": 0, "Tacos": 0},
			wantTotal:    0,
		},
		{
			name:         "votes for removed options are not counted",
			responses:    votes("Pizza", "Burger", "Burger"),
			wantCounts:   map[string]int{"Pizza": 1, "Sushi": 0, "Tacos": 0},
			wantPercents: map[string]int{"Pizza": 100, "Sushi": 0, "Tacos": 0},
			wantTotal:    1,
		},
		{
			name:         "rounded percentages",
			responses:    votes("Pizza", "Pizza", "Sushi"),
			wantCounts:   map[string]int{"Pizza": 2, "Sushi": 1, "Tacos": 0},
			wantPercents: map[string]int{"Pizza": 67, "Sushi": 33, "Tacos": 0},
			wantTotal:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := TallyPoll(poll, tt.responses)

			if tally.PollID != poll.ID {
				t.Errorf("Expected poll id %q, got %q", poll.ID, tally.PollID)
			}
			if tally.TotalVotes != tt.wantTotal {
				t.Errorf("Expected %d total votes, got %d", tt.wantTotal, tally.TotalVotes)
			}
			for option, want := range tt.wantCounts {
				if got := tally.OptionCounts[option]; got != want {
					t.Errorf("Option %q: expected count %d, got %d", option, want, got)
				}
			}
			for option, want := range tt.wantPercents {
				if got := tally.Percentages[option]; got != want {
					t.Errorf("Option %q: expected %d%%, got %d%%", option, want, got)
				}
			}
			if len(tally.OptionCounts) != len(poll.Options) {
				t.Errorf("Expected an entry for every declared option, got %d", len(tally.OptionCounts))
			}
		})
	}
}
