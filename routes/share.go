package routes

import (
	"github.com/gin-gonic/gin"

	"inan-survey-server/models"
)

// RegisterShareRoutes mounts the public paths that share links and QR codes
// point at. They live at the server root, outside /api/v1, so a URL built
// from the default base resolves against the server's own origin.
func RegisterShareRoutes(router gin.IRouter) {
	router.GET("/polls/:pollId", getPoll)
	router.GET("/feedback/:formId", getSchema(models.KindFeedback))
	router.GET("/questionnaires/:formId", getSchema(models.KindQuestionnaire))
}
