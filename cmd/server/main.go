package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TemiKayas/411HW3/internal/api"
	"github.com/TemiKayas/411HW3/internal/config"
	"github.com/TemiKayas/411HW3/pkg/database"
	"github.com/TemiKayas/411HW3/pkg/logger"
	"github.com/TemiKayas/411HW3/pkg/ratelimit"
)

func main() {
	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 로거 초기화
	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting Meal-Max Backend",
		"port", cfg.Port,
		"env", cfg.Env,
	)

	// 데이터베이스 연결
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	// 스키마 적용
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	// Redis 연결 (선택, rate limiting용)
	redisLimiter := connectRedis(cfg.RedisURL)

	// 라우터 설정
	router := api.SetupRouter(cfg, db, redisLimiter)

	// 서버 설정
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 서버 시작 (고루틴)
	go func() {
		logger.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown 대기
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// 10초 타임아웃으로 종료
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

// connectRedis REDIS_URL이 설정된 경우에만 Redis rate limiter 생성
func connectRedis(redisURL string) *ratelimit.RedisLimiter {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Fatal("Invalid REDIS_URL", "error", err)
	}

	limiter := ratelimit.NewRedisLimiter(redis.NewClient(opts), "mealmax:ratelimit:")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := limiter.Ping(ctx); err != nil {
		logger.Warn("Redis not reachable, falling back to in-memory rate limiting", "error", err)
		return nil
	}

	logger.Info("Redis connection established")

	return limiter
}
