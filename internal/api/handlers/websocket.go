package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playpool/shotsolver/internal/middleware"
	"github.com/playpool/shotsolver/internal/ws"
)

// HandleShotWebSocket upgrades to a live aiming session
func HandleShotWebSocket(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.Serve(c.Writer, c.Request, middleware.ClientID(c))
	}
}
