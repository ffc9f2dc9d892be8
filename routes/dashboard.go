package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inan-survey-server/database"
	"inan-survey-server/models"
)

// GetDashboardStats computes the dashboard summary in a single linear pass
// over the fetched records: entity counts, active-vs-total, response counts,
// and the average rating across all form responses. Only numeric answers
// within [1,5] count toward the average.
func GetDashboardStats(c *gin.Context) {
	var polls []models.Poll
	if err := database.DB.Find(&polls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch polls"})
		return
	}

	var schemas []models.FormSchema
	if err := database.DB.Find(&schemas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch forms"})
		return
	}

	var responses []models.FormResponse
	if err := database.DB.Find(&responses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
		return
	}

	var pollResponseCount int64
	database.DB.Model(&models.PollResponse{}).Count(&pollResponseCount)

	var nominationCount int64
	database.DB.Model(&models.NominationSubmission{}).Count(&nominationCount)

	activePolls := 0
	for _, p := range polls {
		if p.IsOpen() {
			activePolls++
		}
	}

	activeFeedback, totalFeedback := 0, 0
	activeQuestionnaires, totalQuestionnaires := 0, 0
	for _, s := range schemas {
		if s.Kind == models.KindQuestionnaire {
			totalQuestionnaires++
			if s.IsActive {
				activeQuestionnaires++
			}
		} else {
			totalFeedback++
			if s.IsActive {
				activeFeedback++
			}
		}
	}

	ratingSum := 0
	ratingCount := 0
	for _, r := range responses {
		for _, answer := range r.Answers {
			rating, ok := models.RatingValue(answer)
			if ok && rating >= 1 && rating <= 5 {
				ratingSum += rating
				ratingCount++
			}
		}
	}
	averageRating := 0.0
	if ratingCount > 0 {
		averageRating = float64(ratingSum) / float64(ratingCount)
	}

	c.JSON(http.StatusOK, gin.H{
		"polls": gin.H{
			"total":     len(polls),
			"active":    activePolls,
			"responses": pollResponseCount,
		},
		"feedback_forms": gin.H{
			"total":  totalFeedback,
			"active": activeFeedback,
		},
		"questionnaires": gin.H{
			"total":  totalQuestionnaires,
			"active": activeQuestionnaires,
		},
		"form_responses":  len(responses),
		"nominations":     nominationCount,
		"average_rating":  averageRating,
		"ratings_counted": ratingCount,
	})
}
