package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"inan-survey-server/middleware"
	ws "inan-survey-server/websocket"
)

// resultsHub is the shared hub for live result broadcasts. Routes that
// record responses publish tallies through it; a nil hub disables
// broadcasting without affecting request handling.
var resultsHub *ws.Hub

// InitResultsHub wires the running hub into the route handlers.
func InitResultsHub(hub *ws.Hub) {
	resultsHub = hub
}

// RegisterWebSocketRoutes sets up the live-results WebSocket endpoint.
// Admin dashboards connect here and subscribe to subjects such as
// "poll:<id>", "form:<id>" or "nominations" to receive tallies as
// responses arrive.
func RegisterWebSocketRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/results", middleware.WebSocketAuthMiddleware(), handleResultsSocket)
}

func handleResultsSocket(c *gin.Context) {
	if resultsHub == nil {
		c.JSON(503, gin.H{"error": "Live results unavailable"})
		return
	}

	userID := c.GetUint("user_id")
	log.Printf("🔌 Live results connection from user %d", userID)
	ws.ServeWebSocket(resultsHub, c.Writer, c.Request, userID)
}
