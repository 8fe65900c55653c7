package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TemiKayas/411HW3/pkg/database"
)

type HealthHandler struct {
	db *database.DB
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{
		db: db,
	}
}

// Health godoc
// @Summary Health check
// @Description Check if the API server is running
// @Tags system
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Server is healthy"
// @Router /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "meal-max-backend",
	})
}

// DBCheck godoc
// @Summary Database connection check
// @Description Verify the database connection is alive
// @Tags system
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Database is healthy"
// @Failure 500 {object} map[string]string "Database unreachable"
// @Router /api/db-check [get]
func (h *HealthHandler) DBCheck(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}
