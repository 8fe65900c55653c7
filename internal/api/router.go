package api

import (
	"github.com/gin-gonic/gin"

	"github.com/TemiKayas/411HW3/internal/api/handlers"
	"github.com/TemiKayas/411HW3/internal/api/middleware"
	"github.com/TemiKayas/411HW3/internal/config"
	"github.com/TemiKayas/411HW3/internal/repository"
	"github.com/TemiKayas/411HW3/internal/service"
	"github.com/TemiKayas/411HW3/internal/websocket"
	"github.com/TemiKayas/411HW3/pkg/database"
	"github.com/TemiKayas/411HW3/pkg/metrics"
	"github.com/TemiKayas/411HW3/pkg/random"
	"github.com/TemiKayas/411HW3/pkg/ratelimit"
)

// SetupRouter API 라우터 설정 (redisLimiter가 nil이면 in-memory rate limiting)
func SetupRouter(cfg *config.Config, db *database.DB, redisLimiter *ratelimit.RedisLimiter) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 전역 미들웨어
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Repository 초기화
	mealRepo := repository.NewMealRepository(db)
	battleRepo := repository.NewBattleRepository(db)

	// random.org 클라이언트 초기화
	randomClient := random.NewClient(cfg.RandomOrgURL, cfg.RandomTimeout)

	// WebSocket Hub 초기화 및 시작
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Service 초기화
	kitchenService := service.NewKitchenService(mealRepo)
	battleService := service.NewBattleService(mealRepo, battleRepo, randomClient, wsHub)

	// Handler 초기화
	healthHandler := handlers.NewHealthHandler(db)
	mealHandler := handlers.NewMealHandler(kitchenService, battleService)
	battleHandler := handlers.NewBattleHandler(kitchenService, battleService)
	leaderboardHandler := handlers.NewLeaderboardHandler(kitchenService)
	wsHandler := handlers.NewWebSocketHandler(wsHub)

	// Rate limit 미들웨어 선택 (Redis가 있으면 분산, 없으면 in-memory)
	var generalLimit, battleLimit gin.HandlerFunc
	if redisLimiter != nil {
		generalLimit = middleware.RedisGeneralAPIRateLimit(redisLimiter)
		battleLimit = middleware.RedisBattleRateLimit(redisLimiter)
	} else {
		generalLimit = middleware.GeneralAPIRateLimit()
		battleLimit = middleware.BattleRateLimit()
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API
	api := router.Group("/api")
	api.Use(generalLimit)
	{
		// System
		api.GET("/health", healthHandler.Health)
		api.GET("/db-check", healthHandler.DBCheck)

		// Meals
		api.POST("/create-meal", mealHandler.CreateMeal)
		api.DELETE("/delete-meal/:id", mealHandler.DeleteMeal)
		api.GET("/get-meal-by-id/:id", mealHandler.GetMealByID)
		api.GET("/get-meal-by-name/:name", mealHandler.GetMealByName)
		api.DELETE("/clear-meals", mealHandler.ClearMeals)

		// Combatants
		api.POST("/prep-combatant", battleHandler.PrepCombatant)
		api.GET("/get-combatants", battleHandler.GetCombatants)
		api.POST("/clear-combatants", battleHandler.ClearCombatants)

		// Battle
		api.GET("/battle", battleLimit, battleHandler.Battle)
		api.GET("/battles", battleHandler.RecentBattles)

		// Leaderboard
		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

		// WebSocket (battle result feed)
		api.GET("/ws", wsHandler.HandleWebSocket)
	}

	return router
}
