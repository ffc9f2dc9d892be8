package routes

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inan-survey-server/database"
	"inan-survey-server/models"
	"inan-survey-server/services"
	"inan-survey-server/utils"
)

// activeEmployees is the roster snapshot loaded once at startup
var activeEmployees []models.Employee

// InitRoster loads the static employee roster. A missing roster disables
// nominee validation but does not stop the server.
func InitRoster(path string) {
	employees, err := services.LoadRoster(path)
	if err != nil {
		log.Printf("⚠️ Employee roster unavailable: %v", err)
		return
	}
	activeEmployees = employees
	log.Printf("✅ Loaded %d active employees from roster", len(employees))
}

// RegisterNominationRoutes registers the public nomination routes
func RegisterNominationRoutes(router *gin.RouterGroup) {
	nominationRoutes := router.Group("/nominations")
	{
		nominationRoutes.GET("/categories", getCategories)
		nominationRoutes.GET("/employees", getNominees)
		nominationRoutes.GET("/status", getSubmissionStatus)
		nominationRoutes.POST("/verify", requestVerification)
		nominationRoutes.POST("/verify/confirm", confirmVerification)
		nominationRoutes.POST("", submitNominations)
	}
}

// RegisterAdminNominationRoutes registers the dashboard results routes
func RegisterAdminNominationRoutes(router *gin.RouterGroup) {
	nominationRoutes := router.Group("/nominations")
	{
		nominationRoutes.GET("/results", getNominationResults)
		nominationRoutes.GET("/results/export", exportNominationResults)
	}
}

// getCategories returns the fixed award categories for the wizard
func getCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.NominationCategories()})
}

// getNominees returns active employees as nominee candidates
func getNominees(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"employees": activeEmployees, "total": len(activeEmployees)})
}

// getSubmissionStatus is the advisory pre-check the wizard runs after email
// verification. The insert itself is the enforcement point.
func getSubmissionStatus(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	submitted, err := services.HasSubmitted(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check submission status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submitted": submitted})
}

// requestVerification issues a 6-digit code for the respondent's email.
// Codes expire after 15 minutes.
func requestVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	code, err := generateVerificationCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate verification code"})
		return
	}

	verification := models.EmailVerification{
		Email:     email,
		Code:      code,
		Verified:  false,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	if err := database.DB.Save(&verification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store verification"})
		return
	}

	// Mail delivery is handled by the upstream notification integration;
	// log for local development.
	log.Printf("📧 Verification code for %s: %s", email, code)

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// confirmVerification checks the submitted code and marks the email verified
func confirmVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and code are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var verification models.EmailVerification
	if err := database.DB.First(&verification, "email = ?", email).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No verification pending for this email"})
		return
	}

	if verification.IsExpired() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code expired, request a new one"})
		return
	}

	if verification.Code != strings.TrimSpace(req.Code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect verification code"})
		return
	}

	if err := database.DB.Model(&verification).Update("verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm verification"})
		return
	}

	// Tell the wizard up front if this identity already submitted
	submitted, _ := services.HasSubmitted(email)

	c.JSON(http.StatusOK, gin.H{"message": "Email verified", "submitted": submitted})
}

// submitNominations accepts one complete submission per verified email
func submitNominations(c *gin.Context) {
	var req struct {
		Email       string            `json:"email" binding:"required,email"`
		Nominations map[string]string `json:"nominations" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and nominations are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var verification models.EmailVerification
	err := database.DB.First(&verification, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !verification.Verified) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email before submitting"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check verification"})
		return
	}

	submission, err := services.SubmitNominations(email, req.Nominations, activeEmployees)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "You have already submitted your nominations."})
		case errors.Is(err, utils.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit nominations. Please try again."})
		}
		return
	}

	broadcastNominationResults()

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Thank you for your nominations!",
		"submission": gin.H{"email": submission.Email, "submitted_at": submission.SubmittedAt},
	})
}

// getNominationResults aggregates all submissions per category
func getNominationResults(c *gin.Context) {
	var submissions []models.NominationSubmission
	if err := database.DB.Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch nominations"})
		return
	}

	results := services.AggregateNominations(submissions)

	c.JSON(http.StatusOK, gin.H{
		"results":           results,
		"total_submissions": len(submissions),
	})
}

// exportNominationResults downloads aggregated results as CSV
func exportNominationResults(c *gin.Context) {
	var submissions []models.NominationSubmission
	if err := database.DB.Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch nominations"})
		return
	}

	rows := services.NominationExportRows(services.AggregateNominations(submissions))
	data, err := services.WriteCSV(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV"})
		return
	}

	filename := services.DatedExportFilename("inan-awards", time.Now())
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// broadcastNominationResults pushes fresh aggregation to live subscribers
func broadcastNominationResults() {
	if resultsHub == nil {
		return
	}
	var submissions []models.NominationSubmission
	if err := database.DB.Find(&submissions).Error; err != nil {
		return
	}
	resultsHub.PublishUpdate("nominations", services.AggregateNominations(submissions))
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
