package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"inan-survey-server/database"
	"inan-survey-server/models"
	"inan-survey-server/utils"
)

// FindOpenPoll loads a poll that still accepts votes. Missing, deactivated
// and expired polls all come back as ErrNotFound; the public surface does
// not distinguish them.
func FindOpenPoll(id string) (*models.Poll, error) {
	var poll models.Poll
	err := database.DB.First(&poll, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("Poll not found")
	}
	if err != nil {
		return nil, err
	}
	if !poll.IsOpen() {
		return nil, utils.NotFoundError("This poll is closed")
	}
	return &poll, nil
}

// TallyPoll counts responses per declared option. Every declared option gets
// a count entry even with zero votes; responses referencing options no
// longer declared (edited polls) are not counted. Percentages are
// round(count/total*100), all zero when there are no votes.
func TallyPoll(poll *models.Poll, responses []models.PollResponse) models.PollTally {
	tally := models.PollTally{
		PollID:       poll.ID,
		OptionCounts: make(map[string]int, len(poll.Options)),
		Percentages:  make(map[string]int, len(poll.Options)),
	}

	for _, option := range poll.Options {
		tally.OptionCounts[option] = 0
	}

	for _, response := range responses {
		if _, declared := tally.OptionCounts[response.SelectedOption]; declared {
			tally.OptionCounts[response.SelectedOption]++
			tally.TotalVotes++
		}
	}

	for _, option := range poll.Options {
		if tally.TotalVotes == 0 {
			tally.Percentages[option] = 0
			continue
		}
		ratio := float64(tally.OptionCounts[option]) / float64(tally.TotalVotes)
		tally.Percentages[option] = int(math.Round(ratio * 100))
	}

	return tally
}
