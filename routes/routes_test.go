package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inan-survey-server/config"
	"inan-survey-server/database"
	"inan-survey-server/models"
)

// setupTestRouter installs a fresh in-memory database and builds a router
// with the public and admin route trees mounted the same way the server does.
// Admin middleware is omitted; handler behavior is what is under test.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

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

	router := gin.New()
	RegisterShareRoutes(router)
	api := router.Group("/api/v1")
	RegisterAuthRoutes(api.Group("/auth"))
	RegisterPollRoutes(api)
	RegisterFormRoutes(api, models.KindFeedback, "/feedback-forms")
	RegisterFormRoutes(api, models.KindQuestionnaire, "/questionnaires")
	RegisterNominationRoutes(api)

	admin := api.Group("/admin")
	RegisterAdminPollRoutes(admin)
	RegisterAdminFormRoutes(admin, models.KindFeedback, "/feedback-forms")
	RegisterAdminFormRoutes(admin, models.KindQuestionnaire, "/questionnaires")
	RegisterAdminNominationRoutes(admin)
	RegisterSettingsRoutes(admin)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if str, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(str))
	} else {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v. Body: %s", err, w.Body.String())
	}
	return body
}
