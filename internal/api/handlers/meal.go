package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TemiKayas/411HW3/internal/models"
	"github.com/TemiKayas/411HW3/internal/service"
)

type MealHandler struct {
	kitchenService *service.KitchenService
	battleService  *service.BattleService
}

func NewMealHandler(kitchenService *service.KitchenService, battleService *service.BattleService) *MealHandler {
	return &MealHandler{
		kitchenService: kitchenService,
		battleService:  battleService,
	}
}

// CreateMeal godoc
// @Summary Create a new meal
// @Description Register a meal with name, cuisine, price and difficulty
// @Tags meals
// @Accept json
// @Produce json
// @Param meal body models.CreateMealRequest true "Meal to create"
// @Success 201 {object} map[string]interface{} "Created meal"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate meal name"
// @Router /api/create-meal [post]
func (h *MealHandler) CreateMeal(c *gin.Context) {
	var req models.CreateMealRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	meal, err := h.kitchenService.Create(req.Meal, req.Cuisine, req.Price, req.Difficulty)
	if err != nil {
		if errors.Is(err, service.ErrMealAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Meal with this name already exists",
			})
			return
		}

		if errors.Is(err, service.ErrInvalidInput) ||
			errors.Is(err, service.ErrInvalidPrice) ||
			errors.Is(err, service.ErrInvalidDifficulty) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": err.Error(),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create meal",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"meal":   meal,
	})
}

// DeleteMeal 식사 삭제 (soft delete)
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid meal ID",
		})
		return
	}

	if err := h.kitchenService.Delete(id); err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Meal not found",
			})
			return
		}

		if errors.Is(err, service.ErrMealAlreadyDeleted) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Meal is already deleted",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete meal",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"id":     id,
	})
}

// GetMealByID ID로 식사 조회
func (h *MealHandler) GetMealByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid meal ID",
		})
		return
	}

	meal, err := h.kitchenService.GetByID(id)
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

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"meal":   meal,
	})
}

// GetMealByName 이름으로 식사 조회
func (h *MealHandler) GetMealByName(c *gin.Context) {
	name := c.Param("name")

	meal, err := h.kitchenService.GetByName(name)
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

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"meal":   meal,
	})
}

// ClearMeals 모든 식사 삭제 (참가자 목록도 초기화)
func (h *MealHandler) ClearMeals(c *gin.Context) {
	if err := h.kitchenService.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to clear meals",
		})
		return
	}

	// 삭제된 식사가 로스터에 남지 않도록 함께 비움
	h.battleService.ClearCombatants()

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}
