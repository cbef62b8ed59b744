package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playpool/shotsolver/internal/history"
	"github.com/playpool/shotsolver/internal/middleware"
	"github.com/rs/zerolog/log"
)

// ListHistory returns the caller's recent solves
func ListHistory(h *history.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryInt(c, "limit", 20)
		offset := queryInt(c, "offset", 0)

		solves, err := h.List(c.Request.Context(), middleware.ClientID(c), limit, offset)
		if err != nil {
			log.Error().Err(err).Msg("[DB] Failed to list solves")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"solves":  solves,
			"count":   len(solves),
			"enabled": h.Enabled(),
		})
	}
}

// GetHistory returns one stored solve
func GetHistory(h *history.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		solve, err := h.Get(c.Request.Context(), middleware.ClientID(c), c.Param("id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "solve not found"})
				return
			}
			log.Error().Err(err).Msg("[DB] Failed to load solve")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, solve)
	}
}
