package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TemiKayas/411HW3/internal/models"
	"github.com/TemiKayas/411HW3/internal/service"
)

type BattleHandler struct {
	kitchenService *service.KitchenService
	battleService  *service.BattleService
}

func NewBattleHandler(kitchenService *service.KitchenService, battleService *service.BattleService) *BattleHandler {
	return &BattleHandler{
		kitchenService: kitchenService,
		battleService:  battleService,
	}
}

// PrepCombatant 전투 참가자 등록 (식사 이름으로)
func (h *BattleHandler) PrepCombatant(c *gin.Context) {
	var req models.PrepCombatantRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	meal, err := h.kitchenService.GetByName(req.Meal)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Meal not found",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to get meal",
		})
		return
	}

	if err := h.battleService.PrepCombatant(meal); err != nil {
		if errors.Is(err, service.ErrCombatantsFull) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Combatant list is full, cannot add more combatants",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to prep combatant",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"combatants": h.battleService.Combatants(),
	})
}

// GetCombatants 현재 참가자 목록 조회
func (h *BattleHandler) GetCombatants(c *gin.Context) {
	combatants := h.battleService.Combatants()
	if combatants == nil {
		combatants = []*models.Meal{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"combatants": combatants,
		"total":      len(combatants),
	})
}

// ClearCombatants 참가자 목록 비우기
func (h *BattleHandler) ClearCombatants(c *gin.Context) {
	h.battleService.ClearCombatants()

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// Battle godoc
// @Summary Run a battle
// @Description Resolve a battle between the two prepped combatants
// @Tags battle
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Battle result with winner"
// @Failure 400 {object} map[string]string "Fewer than two combatants prepped"
// @Failure 502 {object} map[string]string "Random source unavailable"
// @Router /api/battle [get]
func (h *BattleHandler) Battle(c *gin.Context) {
	result, err := h.battleService.Battle(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNotEnoughCombatants) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Two combatants must be prepped for a battle",
			})
			return
		}

		if errors.Is(err, service.ErrRandomUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{
				"status":  "error",
				"message": "Random source unavailable",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to run battle",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"winner": result.Winner,
		"result": result,
	})
}

// RecentBattles 최근 전투 기록 조회
func (h *BattleHandler) RecentBattles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	battles, err := h.battleService.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to get battles",
		})
		return
	}

	if battles == nil {
		battles = []*models.Battle{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"battles": battles,
		"total":   len(battles),
	})
}
