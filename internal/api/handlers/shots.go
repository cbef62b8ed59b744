package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playpool/shotsolver/internal/middleware"
	"github.com/playpool/shotsolver/internal/planner"
	"github.com/rs/zerolog/log"
)

// SolveShot ranks every feasible shot for one cue/object/pocket request. An
// empty candidate list is a normal 200.
func SolveShot(p *planner.Planner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body planner.RequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		req, err := body.Request()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := p.Plan(c.Request.Context(), middleware.ClientID(c), req)
		if err != nil {
			if planner.IsInputError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Error().Err(err).Msg("[SOLVER] solve failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if res.SolveID != "" {
			c.Header("X-Solve-ID", res.SolveID)
		}
		c.JSON(http.StatusOK, res)
	}
}
