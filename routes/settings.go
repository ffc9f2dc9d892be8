package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"inan-survey-server/models"
	"inan-survey-server/services"
	"inan-survey-server/utils"
)

// RegisterSettingsRoutes registers the dashboard settings routes
func RegisterSettingsRoutes(router *gin.RouterGroup) {
	settingsRoutes := router.Group("/settings")
	{
		settingsRoutes.GET("", getSettings)
		settingsRoutes.PUT("", updateSettings)
		settingsRoutes.POST("/banner", uploadBanner)
	}
}

// getSettings reads the singleton settings document with defaults applied
func getSettings(c *gin.Context) {
	settings, err := services.LoadSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// updateSettings replaces the settings document. Last write wins across
// concurrent editors, matching every other document here.
func updateSettings(c *gin.Context) {
	var settings models.SurveySettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings data", "details": err.Error()})
		return
	}

	full := models.ApplyDefaults(settings)
	if err := services.ValidateSettingsDates(full.StartDate, full.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.SaveSettings(full); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings saved successfully"})
}

// uploadBanner replaces the survey banner image. The superseded banner is
// best-effort deleted; a cleanup failure never fails the upload.
func uploadBanner(c *gin.Context) {
	header, err := c.FormFile("banner")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No banner file provided"})
		return
	}

	if !services.ValidateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Banner must be a JPEG, PNG, or WebP image up to 5MB"})
		return
	}

	settings, err := services.LoadSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	oldBanner := settings.BannerImageURL

	url, err := services.UploadBanner(c.Request.Context(), header)
	if err != nil {
		if utils.IsTransientError(err) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Upload failed, please check your connection and try again"})
			return
		}
		log.Printf("❌ Banner upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload banner"})
		return
	}

	settings.BannerImageURL = url
	if err := services.SaveSettings(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Banner uploaded but settings save failed"})
		return
	}

	if oldBanner != "" && oldBanner != url {
		services.DeleteBanner(c.Request.Context(), oldBanner)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner updated", "banner_url": url})
}
