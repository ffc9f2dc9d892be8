package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"inan-survey-server/database"
	"inan-survey-server/middleware"
	"inan-survey-server/models"
	"inan-survey-server/services"
	"inan-survey-server/utils"
)

// RegisterFormRoutes registers public schema and response routes for one
// schema kind. Feedback forms and questionnaires share the same shape and
// handlers; only the kind and URL prefix differ.
func RegisterFormRoutes(router *gin.RouterGroup, kind models.FormKind, prefix string) {
	formRoutes := router.Group(prefix)
	{
		formRoutes.GET("/:formId", getSchema(kind))
		formRoutes.POST("/:formId/responses", submitResponse(kind))
	}
}

// RegisterAdminFormRoutes registers dashboard schema routes for one kind
func RegisterAdminFormRoutes(router *gin.RouterGroup, kind models.FormKind, prefix string) {
	formRoutes := router.Group(prefix)
	{
		formRoutes.GET("", listSchemas(kind))
		formRoutes.POST("", publishSchema(kind))
		formRoutes.PUT("/:formId", publishSchema(kind))
		formRoutes.DELETE("/:formId", deleteSchema(kind))
		formRoutes.GET("/:formId/responses", listResponses(kind))
		formRoutes.GET("/:formId/export", exportResponses(kind))
	}
}

// publishSchema validates and saves a builder payload. Editing preserves the
// schema's identity; section metadata is denormalized onto questions here.
func publishSchema(kind models.FormKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload models.SchemaPublish
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data", "details": err.Error()})
			return
		}

		if id := c.Param("formId"); id != "" {
			payload.ID = id
		}

		if payload.ID != "" {
			var existing models.FormSchema
			err := database.DB.First(&existing, "id = ? AND kind = ?", payload.ID, kind).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
				return
			}
		}

		schema, err := services.BuildSchema(kind, payload)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := database.DB.Save(schema).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save form"})
			return
		}

		share, err := services.BuildShareLink(services.SharePathKind(kind), schema.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Form saved but share link generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Form published successfully",
			"form":    schema,
			"share":   share,
		})
	}
}

// listSchemas returns all schemas of a kind for the dashboard
func listSchemas(kind models.FormKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var schemas []models.FormSchema
		if err := database.DB.Where("kind = ?", kind).Order("created_at DESC").Find(&schemas).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch forms"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"forms": schemas, "total": len(schemas)})
	}
}

// deleteSchema permanently removes a schema; responses are kept
func deleteSchema(kind models.FormKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := database.DB.Delete(&models.FormSchema{}, "id = ? AND kind = ?", c.Param("formId"), kind)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete form"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Form deleted successfully"})
	}
}

// getSchema returns an active schema for the public response page
func getSchema(kind models.FormKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		schema, err := services.FindActiveSchema(kind, c.Param("formId"))
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch form"})
			}
			return
		}

		settings, err := services.LoadSettings()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"form":        schema,
			"footer_text": settings.Defaults.FooterText,
			"disclaimer":  settings.Defaults.Disclaimer,
		})
	}
}

// submitResponse validates and stores one response. Exactly one row is
// written per successful submit; there is no resubmission guard here.
func submitResponse(kind models.FormKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ResponseCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid response data", "details": err.Error()})
			return
		}

		schema, err := services.FindActiveSchema(kind, c.Param("formId"))
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch form"})
			}
			return
		}

		settings, err := services.LoadSettings()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
			return
		}

		if !middleware.IPAllowed(c.ClientIP(), settings.Security.AllowedIPRanges) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Submissions are not accepted from your network"})
			return
		}

		if limit := settings.ResponseMgmt.ResponseLimit; limit > 0 {
			var count int64
			database.DB.Model(&models.FormResponse{}).Where("schema_id = ?", schema.ID).Count(&count)
			if count >= int64(limit) {
				c.JSON(http.StatusForbidden, gin.H{"error": "This form is no longer accepting responses"})
				return
			}
		}

		if err := services.ValidateAnswers(schema, req.Answers); err != nil {
			if errors.Is(err, utils.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate response"})
			return
		}

		respondent := strings.TrimSpace(req.Respondent)
		if respondent == "" {
			respondent = "Anonymous"
		}

		response := models.FormResponse{
			ID:         uuid.NewString(),
			SchemaID:   schema.ID,
			Respondent: respondent,
			Location:   schema.Location,
			Answers:    req.Answers,
		}

		if err := database.DB.Create(&response).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit response"})
			return
		}

		broadcastResponseCount(schema)
		services.NotifyWebhook("response.received", gin.H{
			"form_id":    schema.ID,
			"form_title": schema.Title,
			"kind":       schema.Kind,
		})
		notifyThreshold(schema, settings)

		c.JSON(http.StatusCreated, gin.H{"message": "Response submitted successfully", "response": response})
	}
}

// listResponses returns all responses of a schema for the dashboard
func listResponses(kind models.FormKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var schema models.FormSchema
		if err := database.DB.First(&schema, "id = ? AND kind = ?", c.Param("formId"), kind).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
			return
		}

		var responses []models.FormResponse
		if err := database.DB.Where("schema_id = ?", schema.ID).Order("submitted_at DESC").Find(&responses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"form":      schema,
			"responses": responses,
			"total":     len(responses),
		})
	}
}

// exportResponses downloads all responses of a schema as CSV
func exportResponses(kind models.FormKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var schema models.FormSchema
		if err := database.DB.First(&schema, "id = ? AND kind = ?", c.Param("formId"), kind).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
			return
		}

		var responses []models.FormResponse
		if err := database.DB.Where("schema_id = ?", schema.ID).Order("submitted_at").Find(&responses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
			return
		}

		rows := services.FormatResponsesForExport(&schema, responses)
		data, err := services.WriteCSV(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename="+services.ExportFilename(schema.Title))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	}
}

// broadcastResponseCount pushes the updated response count to live
// dashboard subscribers
func broadcastResponseCount(schema *models.FormSchema) {
	if resultsHub == nil {
		return
	}
	var count int64
	if err := database.DB.Model(&models.FormResponse{}).Where("schema_id = ?", schema.ID).Count(&count).Error; err != nil {
		return
	}
	resultsHub.PublishUpdate("form:"+schema.ID, gin.H{"form_id": schema.ID, "responses": count})
}

// notifyThreshold logs when a form crosses the configured alert threshold
func notifyThreshold(schema *models.FormSchema, settings models.SurveySettings) {
	if !settings.Notifications.EmailNotifications || settings.Notifications.AlertThreshold == nil {
		return
	}
	threshold := int64(*settings.Notifications.AlertThreshold)
	if threshold <= 0 {
		return
	}
	var count int64
	if err := database.DB.Model(&models.FormResponse{}).Where("schema_id = ?", schema.ID).Count(&count).Error; err != nil {
		return
	}
	if count == threshold {
		log.Printf("🔔 Form %q reached %d responses (notify %s)", schema.Title, count, settings.Notifications.NotificationEmail)
	}
}
