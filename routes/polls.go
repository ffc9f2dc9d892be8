package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inan-survey-server/database"
	"inan-survey-server/models"
	"inan-survey-server/services"
	"inan-survey-server/utils"
)

// RegisterPollRoutes registers the public poll routes
func RegisterPollRoutes(router *gin.RouterGroup) {
	pollRoutes := router.Group("/polls")
	{
		pollRoutes.GET("/:pollId", getPoll)
		pollRoutes.POST("/:pollId/responses", submitPollResponse)
		pollRoutes.GET("/:pollId/results", getPollResults)
	}
}

// RegisterAdminPollRoutes registers the administrator poll routes
func RegisterAdminPollRoutes(router *gin.RouterGroup) {
	pollRoutes := router.Group("/polls")
	{
		pollRoutes.GET("", listPolls)
		pollRoutes.POST("", createPoll)
		pollRoutes.PUT("/:pollId", updatePoll)
		pollRoutes.DELETE("/:pollId", deletePoll)
		pollRoutes.GET("/:pollId/export", exportPollResponses)
	}
}

// createPoll creates a new poll from the dashboard
func createPoll(c *gin.Context) {
	var req models.PollCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid poll data", "details": err.Error()})
		return
	}

	options := models.CleanOptions(req.Options)
	if !models.ValidOptionList(options) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A poll needs at least 2 distinct non-empty options"})
		return
	}

	// Polls without an explicit end date get the configured default window
	if req.EndDate == nil {
		if settings, err := services.LoadSettings(); err == nil {
			if days := settings.Defaults.DefaultExpiryDays; days != nil && *days > 0 {
				end := time.Now().AddDate(0, 0, *days)
				req.EndDate = &end
			}
		}
	}

	poll := models.Poll{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Question:    strings.TrimSpace(req.Question),
		Description: req.Description,
		Options:     options,
		Location:    req.Location,
		EndDate:     req.EndDate,
		IsActive:    true,
	}

	if err := database.DB.Create(&poll).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create poll"})
		return
	}

	share, err := services.BuildShareLink("polls", poll.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Poll created but share link generation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Poll created successfully",
		"poll":    poll,
		"share":   share,
	})
}

// updatePoll replaces the editable fields of a poll, keeping its identity
// and creation time
func updatePoll(c *gin.Context) {
	pollID := c.Param("pollId")

	var poll models.Poll
	if err := database.DB.First(&poll, "id = ?", pollID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	var req models.PollUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid poll data", "details": err.Error()})
		return
	}

	if req.Title != nil {
		poll.Title = strings.TrimSpace(*req.Title)
	}
	if req.Question != nil {
		poll.Question = strings.TrimSpace(*req.Question)
	}
	if req.Description != nil {
		poll.Description = *req.Description
	}
	if req.Location != nil {
		poll.Location = *req.Location
	}
	if req.EndDate != nil {
		poll.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		poll.IsActive = *req.IsActive
	}
	if req.Options != nil {
		options := models.CleanOptions(req.Options)
		if !models.ValidOptionList(options) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A poll needs at least 2 distinct non-empty options"})
			return
		}
		poll.Options = options
	}

	if poll.Title == "" || poll.Question == "" || poll.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, question and location are required"})
		return
	}

	if err := database.DB.Save(&poll).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update poll"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poll updated successfully", "poll": poll})
}

// deletePoll permanently removes a poll. Its responses are intentionally
// kept; they remain queryable but unattributable in the dashboard.
func deletePoll(c *gin.Context) {
	pollID := c.Param("pollId")

	result := database.DB.Delete(&models.Poll{}, "id = ?", pollID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete poll"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poll deleted successfully"})
}

// listPolls returns all polls for the dashboard
func listPolls(c *gin.Context) {
	var polls []models.Poll
	if err := database.DB.Order("created_at DESC").Find(&polls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch polls"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"polls": polls, "total": len(polls)})
}

// getPoll returns one poll for the public voting page
func getPoll(c *gin.Context) {
	pollID := c.Param("pollId")

	var poll models.Poll
	if err := database.DB.First(&poll, "id = ?", pollID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	share, err := services.BuildShareLink("polls", poll.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build share link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"poll": poll, "expired": poll.IsExpired(), "share": share})
}

// submitPollResponse records one vote. Expiry is evaluated here, at
// submission time, not enforced by the data layer.
func submitPollResponse(c *gin.Context) {
	pollID := c.Param("pollId")

	var req models.PollResponseCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected option is required"})
		return
	}

	poll, err := services.FindOpenPoll(pollID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch poll"})
		}
		return
	}

	if !poll.HasOption(req.SelectedOption) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected option is not part of this poll"})
		return
	}

	respondent := strings.TrimSpace(req.Respondent)
	if respondent == "" {
		respondent = "Anonymous"
	}

	response := models.PollResponse{
		ID:             uuid.NewString(),
		PollID:         poll.ID,
		Respondent:     respondent,
		SelectedOption: req.SelectedOption,
		Location:       poll.Location,
	}

	if err := database.DB.Create(&response).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit response"})
		return
	}

	broadcastPollTally(poll)

	c.JSON(http.StatusCreated, gin.H{"message": "Vote recorded", "response": response})
}

// getPollResults tallies responses per declared option
func getPollResults(c *gin.Context) {
	pollID := c.Param("pollId")

	var poll models.Poll
	if err := database.DB.First(&poll, "id = ?", pollID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	var responses []models.PollResponse
	if err := database.DB.Where("poll_id = ?", poll.ID).Find(&responses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
		return
	}

	tally := services.TallyPoll(&poll, responses)

	c.JSON(http.StatusOK, gin.H{
		"poll":    poll,
		"results": tally,
	})
}

// exportPollResponses downloads all responses of a poll as CSV
func exportPollResponses(c *gin.Context) {
	pollID := c.Param("pollId")

	var poll models.Poll
	if err := database.DB.First(&poll, "id = ?", pollID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	var responses []models.PollResponse
	if err := database.DB.Where("poll_id = ?", poll.ID).Order("submitted_at").Find(&responses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
		return
	}

	rows := make([]services.ExportRow, 0, len(responses))
	headers := []string{"Respondent", "Location", "Submitted At", "Selected Option"}
	for _, r := range responses {
		rows = append(rows, services.ExportRow{
			Headers: headers,
			Values:  []string{r.Respondent, r.Location, r.SubmittedAt.Format(time.RFC3339), r.SelectedOption},
		})
	}

	data, err := services.WriteCSV(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+services.ExportFilename(poll.Title))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// broadcastPollTally pushes a fresh tally to live dashboard subscribers
func broadcastPollTally(poll *models.Poll) {
	if resultsHub == nil {
		return
	}
	var responses []models.PollResponse
	if err := database.DB.Where("poll_id = ?", poll.ID).Find(&responses).Error; err != nil {
		return
	}
	resultsHub.PublishUpdate("poll:"+poll.ID, services.TallyPoll(poll, responses))
}
