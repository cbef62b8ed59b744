package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playpool/shotsolver/internal/shot"
)

// GetTable returns the table geometry renderers need to draw shot paths
func GetTable(solver *shot.Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := solver.Table()
		c.JSON(http.StatusOK, gin.H{
			"table":    table,
			"diagonal": table.Diagonal(),
			"rails":    shot.Rails,
			"pockets":  table.Pockets(),
		})
	}
}
