package controllers

import (
	"Mixtape/services/game"
	"Mixtape/services/live"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The session cookie already gates this endpoint
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Waiting-room live feed
// @Description Upgrades to a websocket that pushes the registration status whenever a participant registers
// @Tags participants
// @Success 101
// @Failure 401 {object} object{error=string}
// @Router /auth/ws/lobby [get]
// @Security ApiKeyAuth
func LobbyFeed(db *gorm.DB, hub *live.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("live: upgrade failed: %v", err)
			return
		}

		// Snapshot so a fresh client doesn't wait for the next change. Sent
		// before the hub learns about the connection: once registered, the
		// hub may write to it, and a connection allows only one writer.
		if registration, err := game.GetRegistrationStatus(db); err == nil {
			if err := conn.WriteJSON(live.Message{Type: "registration", Data: registration}); err != nil {
				log.Printf("live: snapshot write failed: %v", err)
			}
		}

		hub.AddConnection(conn)

		go func() {
			defer hub.RemoveConnection(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
