package service

import (
	"errors"
	"fmt"

	"github.com/TemiKayas/411HW3/internal/models"
	"github.com/TemiKayas/411HW3/internal/repository"
	"github.com/TemiKayas/411HW3/pkg/metrics"
)

type KitchenService struct {
	mealRepo *repository.MealRepository
}

func NewKitchenService(mealRepo *repository.MealRepository) *KitchenService {
	return &KitchenService{
		mealRepo: mealRepo,
	}
}

// Create 새 식사 생성
func (s *KitchenService) Create(name, cuisine string, price float64, difficulty string) (*models.Meal, error) {
	// 입력 검증
	if name == "" || cuisine == "" {
		return nil, ErrInvalidInput
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidPrice, price)
	}

	level := models.Difficulty(difficulty)
	if !level.Valid() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidDifficulty, difficulty)
	}

	meal, err := s.mealRepo.Create(name, cuisine, price, level)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrMealAlreadyExists
		}
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	metrics.MealsCreated.Inc()

	return meal, nil
}

// GetByID ID로 식사 조회
func (s *KitchenService) GetByID(id int64) (*models.Meal, error) {
	meal, err := s.mealRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	if meal == nil {
		return nil, ErrMealNotFound
	}

	return meal, nil
}

// GetByName 이름으로 식사 조회
func (s *KitchenService) GetByName(name string) (*models.Meal, error) {
	meal, err := s.mealRepo.FindByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	if meal == nil {
		return nil, ErrMealNotFound
	}

	return meal, nil
}

// Delete 식사 삭제 (soft delete)
func (s *KitchenService) Delete(id int64) error {
	err := s.mealRepo.SoftDelete(id)
	if err != nil {
		if errors.Is(err, repository.ErrMealNotFound) {
			return ErrMealNotFound
		}
		if errors.Is(err, repository.ErrMealAlreadyDeleted) {
			return ErrMealAlreadyDeleted
		}
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	return nil
}

// Clear 모든 식사 삭제
func (s *KitchenService) Clear() error {
	if err := s.mealRepo.Clear(); err != nil {
		return fmt.Errorf("failed to clear meals: %w", err)
	}

	return nil
}

// Leaderboard 리더보드 조회 (sortKey: wins 또는 win_pct)
func (s *KitchenService) Leaderboard(sortKey string, limit int) ([]*models.LeaderboardEntry, error) {
	if sortKey == "" {
		sortKey = "wins"
	}
	if sortKey != "wins" && sortKey != "win_pct" {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSortKey, sortKey)
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := s.mealRepo.Leaderboard(sortKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return entries, nil
}
