package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TemiKayas/411HW3/internal/models"
	"github.com/TemiKayas/411HW3/internal/service"
)

type LeaderboardHandler struct {
	kitchenService *service.KitchenService
}

func NewLeaderboardHandler(kitchenService *service.KitchenService) *LeaderboardHandler {
	return &LeaderboardHandler{
		kitchenService: kitchenService,
	}
}

// GetLeaderboard godoc
// @Summary Get meal leaderboard
// @Description Get meals with at least one battle, ranked by wins or win percentage
// @Tags leaderboard
// @Accept json
// @Produce json
// @Param sort query string false "Sort key: wins or win_pct" default(wins)
// @Param limit query int false "Number of entries to return" default(20)
// @Success 200 {object} map[string]interface{} "Leaderboard entries"
// @Failure 400 {object} map[string]string "Invalid sort key"
// @Router /api/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	sortKey := c.DefaultQuery("sort", "wins")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.kitchenService.Leaderboard(sortKey, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSortKey) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Sort key must be 'wins' or 'win_pct'",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to get leaderboard",
		})
		return
	}

	if entries == nil {
		entries = []*models.LeaderboardEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"sort":        sortKey,
		"leaderboard": entries,
		"total":       len(entries),
	})
}
