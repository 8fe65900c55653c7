package service

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/TemiKayas/411HW3/internal/models"
	"github.com/TemiKayas/411HW3/pkg/logger"
	"github.com/TemiKayas/411HW3/pkg/metrics"
	"github.com/TemiKayas/411HW3/pkg/random"
)

// maxCombatants 한 전투에 참가할 수 있는 최대 식사 수
const maxCombatants = 2

// difficultyModifier 난이도별 점수 보정 (어려울수록 적게 깎임)
var difficultyModifier = map[models.Difficulty]float64{
	models.DifficultyHigh: 1,
	models.DifficultyMed:  2,
	models.DifficultyLow:  3,
}

// StatsStore updates per-meal battle counters.
type StatsStore interface {
	UpdateStats(id int64, op string) error
}

// BattleRecorder persists resolved battles.
type BattleRecorder interface {
	Record(meal1ID, meal2ID int64, meal1Score, meal2Score float64, winnerID int64) (*models.Battle, error)
	FindRecent(limit int) ([]*models.Battle, error)
}

// Broadcaster pushes battle results to connected clients.
type Broadcaster interface {
	Broadcast(msgType string, payload interface{})
}

type BattleService struct {
	mu         sync.Mutex
	combatants []*models.Meal

	stats    StatsStore
	battles  BattleRecorder
	source   random.Source
	notifier Broadcaster
}

// NewBattleService 전투 서비스 생성 (notifier는 nil 허용)
func NewBattleService(stats StatsStore, battles BattleRecorder, source random.Source, notifier Broadcaster) *BattleService {
	return &BattleService{
		stats:    stats,
		battles:  battles,
		source:   source,
		notifier: notifier,
	}
}

// BattleScore 전투 점수 계산: price × len(cuisine) − 난이도 보정
func BattleScore(meal *models.Meal) float64 {
	return meal.Price*float64(len(meal.Cuisine)) - difficultyModifier[meal.Difficulty]
}

// PrepCombatant 전투 참가자 등록 (최대 2)
func (s *BattleService) PrepCombatant(meal *models.Meal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.combatants) >= maxCombatants {
		return ErrCombatantsFull
	}

	s.combatants = append(s.combatants, meal)

	logger.Info("Combatant prepped",
		"meal", meal.Meal,
		"combatants", len(s.combatants),
	)

	return nil
}

// Combatants 현재 참가자 목록 (등록 순서 유지)
func (s *BattleService) Combatants() []*models.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Meal, len(s.combatants))
	copy(out, s.combatants)
	return out
}

// ClearCombatants 참가자 목록 비우기
func (s *BattleService) ClearCombatants() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.combatants = nil
}

// Battle 전투 실행: 점수 차이를 무작위 분수와 비교해 승자 결정,
// 통계 업데이트 후 승자만 참가자로 남김
func (s *BattleService) Battle(ctx context.Context) (*models.BattleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.combatants) < maxCombatants {
		return nil, ErrNotEnoughCombatants
	}

	meal1 := s.combatants[0]
	meal2 := s.combatants[1]

	score1 := BattleScore(meal1)
	score2 := BattleScore(meal2)

	// 정규화된 점수 차이를 [0,1) 무작위 분수와 비교
	delta := math.Abs(score1-score2) / 100

	fraction, err := s.source.Fraction(ctx)
	if err != nil {
		metrics.RandomFetchErrors.Inc()
		metrics.BattleErrors.Inc()
		return nil, fmt.Errorf("%w: %v", ErrRandomUnavailable, err)
	}

	winner, loser := meal1, meal2
	if delta <= fraction {
		winner, loser = meal2, meal1
	}

	logger.Info("Battle resolved",
		"meal1", meal1.Meal,
		"meal2", meal2.Meal,
		"score1", score1,
		"score2", score2,
		"delta", delta,
		"fraction", fraction,
		"winner", winner.Meal,
	)

	if err := s.stats.UpdateStats(winner.ID, "win"); err != nil {
		metrics.BattleErrors.Inc()
		return nil, fmt.Errorf("failed to update winner stats: %w", err)
	}
	if err := s.stats.UpdateStats(loser.ID, "loss"); err != nil {
		metrics.BattleErrors.Inc()
		return nil, fmt.Errorf("failed to update loser stats: %w", err)
	}

	result := &models.BattleResult{
		Winner:     winner.Meal,
		Loser:      loser.Meal,
		Meal1:      meal1.Meal,
		Meal2:      meal2.Meal,
		Meal1Score: score1,
		Meal2Score: score2,
	}

	// 전투 기록은 보조 데이터 — 실패해도 전투 자체는 성공
	battle, err := s.battles.Record(meal1.ID, meal2.ID, score1, score2, winner.ID)
	if err != nil {
		logger.Error("Failed to record battle", "error", err)
	} else {
		result.BattleID = battle.ID
	}

	// 승자만 남김
	s.combatants = []*models.Meal{winner}

	metrics.BattlesFought.Inc()

	if s.notifier != nil {
		s.notifier.Broadcast("battle_result", result)
	}

	return result, nil
}

// Recent 최근 전투 기록 조회
func (s *BattleService) Recent(limit int) ([]*models.Battle, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	battles, err := s.battles.FindRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get battles: %w", err)
	}

	return battles, nil
}
