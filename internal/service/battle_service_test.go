package service

import (
	"context"
	"errors"
	"testing"

	"github.com/TemiKayas/411HW3/internal/models"
	"github.com/TemiKayas/411HW3/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development", "error")
	m.Run()
}

type stubStats struct {
	ops map[int64][]string
	err error
}

func newStubStats() *stubStats {
	return &stubStats{ops: make(map[int64][]string)}
}

func (s *stubStats) UpdateStats(id int64, op string) error {
	if s.err != nil {
		return s.err
	}
	s.ops[id] = append(s.ops[id], op)
	return nil
}

type stubRecorder struct {
	recorded []*models.Battle
	err      error
}

func (s *stubRecorder) Record(meal1ID, meal2ID int64, meal1Score, meal2Score float64, winnerID int64) (*models.Battle, error) {
	if s.err != nil {
		return nil, s.err
	}
	battle := &models.Battle{
		ID:         "battle-1",
		Meal1ID:    meal1ID,
		Meal2ID:    meal2ID,
		Meal1Score: meal1Score,
		Meal2Score: meal2Score,
		WinnerID:   winnerID,
	}
	s.recorded = append(s.recorded, battle)
	return battle, nil
}

func (s *stubRecorder) FindRecent(limit int) ([]*models.Battle, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > len(s.recorded) {
		limit = len(s.recorded)
	}
	return s.recorded[:limit], nil
}

type stubSource struct {
	value float64
	err   error
}

func (s *stubSource) Fraction(ctx context.Context) (float64, error) {
	return s.value, s.err
}

type stubBroadcaster struct {
	messages []string
}

func (s *stubBroadcaster) Broadcast(msgType string, payload interface{}) {
	s.messages = append(s.messages, msgType)
}

func testMeal1() *models.Meal {
	return &models.Meal{ID: 1, Meal: "Meal 1", Cuisine: "Cuisine 1", Price: 20.00, Difficulty: models.DifficultyLow}
}

func testMeal2() *models.Meal {
	return &models.Meal{ID: 2, Meal: "Meal 2", Cuisine: "Cuisine 2", Price: 25.00, Difficulty: models.DifficultyMed}
}

func TestBattleScore(t *testing.T) {
	tests := []struct {
		name     string
		meal     *models.Meal
		expected float64
	}{
		{
			name:     "low difficulty subtracts 3",
			meal:     testMeal1(), // 20.00 * 9 - 3
			expected: 177.0,
		},
		{
			name:     "med difficulty subtracts 2",
			meal:     testMeal2(), // 25.00 * 9 - 2
			expected: 223.0,
		},
		{
			name:     "high difficulty subtracts 1",
			meal:     &models.Meal{ID: 3, Meal: "Meal 3", Cuisine: "Cuisine 3", Price: 15.00, Difficulty: models.DifficultyHigh},
			expected: 134.0, // 15.00 * 9 - 1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BattleScore(tt.meal); got != tt.expected {
				t.Errorf("BattleScore(%s) = %v, want %v", tt.meal.Meal, got, tt.expected)
			}
		})
	}
}

func TestBattleService_PrepCombatant(t *testing.T) {
	svc := NewBattleService(newStubStats(), &stubRecorder{}, &stubSource{}, nil)

	if err := svc.PrepCombatant(testMeal1()); err != nil {
		t.Fatalf("first prep should succeed: %v", err)
	}
	if err := svc.PrepCombatant(testMeal2()); err != nil {
		t.Fatalf("second prep should succeed: %v", err)
	}

	// A third combatant is rejected
	third := &models.Meal{ID: 3, Meal: "Meal 3", Cuisine: "Cuisine 3", Price: 15.00, Difficulty: models.DifficultyHigh}
	if err := svc.PrepCombatant(third); !errors.Is(err, ErrCombatantsFull) {
		t.Errorf("third prep should fail with ErrCombatantsFull, got %v", err)
	}

	combatants := svc.Combatants()
	if len(combatants) != 2 {
		t.Fatalf("expected 2 combatants, got %d", len(combatants))
	}
	if combatants[0].ID != 1 || combatants[1].ID != 2 {
		t.Errorf("combatants should keep registration order, got %d, %d", combatants[0].ID, combatants[1].ID)
	}
}

func TestBattleService_ClearCombatants(t *testing.T) {
	svc := NewBattleService(newStubStats(), &stubRecorder{}, &stubSource{}, nil)

	svc.PrepCombatant(testMeal1())
	svc.PrepCombatant(testMeal2())
	svc.ClearCombatants()

	if got := len(svc.Combatants()); got != 0 {
		t.Errorf("expected empty combatant list after clear, got %d", got)
	}

	// Clearing an empty roster is a no-op
	svc.ClearCombatants()
	if got := len(svc.Combatants()); got != 0 {
		t.Errorf("expected empty combatant list, got %d", got)
	}
}

func TestBattleService_Battle_RequiresTwoCombatants(t *testing.T) {
	svc := NewBattleService(newStubStats(), &stubRecorder{}, &stubSource{}, nil)
	svc.PrepCombatant(testMeal1())

	if _, err := svc.Battle(context.Background()); !errors.Is(err, ErrNotEnoughCombatants) {
		t.Errorf("battle with one combatant should fail with ErrNotEnoughCombatants, got %v", err)
	}
}

func TestBattleService_Battle_FirstMealWins(t *testing.T) {
	stats := newStubStats()
	recorder := &stubRecorder{}
	notifier := &stubBroadcaster{}
	// |177 - 223| / 100 = 0.46 > 0.02, so the first combatant wins
	svc := NewBattleService(stats, recorder, &stubSource{value: 0.02}, notifier)

	svc.PrepCombatant(testMeal1())
	svc.PrepCombatant(testMeal2())

	result, err := svc.Battle(context.Background())
	if err != nil {
		t.Fatalf("battle failed: %v", err)
	}

	if result.Winner != "Meal 1" {
		t.Errorf("expected winner Meal 1, got %s", result.Winner)
	}
	if result.Loser != "Meal 2" {
		t.Errorf("expected loser Meal 2, got %s", result.Loser)
	}

	// Exactly one win for the winner and one loss for the loser
	if got := stats.ops[1]; len(got) != 1 || got[0] != "win" {
		t.Errorf("expected [win] for meal 1, got %v", got)
	}
	if got := stats.ops[2]; len(got) != 1 || got[0] != "loss" {
		t.Errorf("expected [loss] for meal 2, got %v", got)
	}

	// Winner remains as the sole combatant
	combatants := svc.Combatants()
	if len(combatants) != 1 || combatants[0].ID != 1 {
		t.Errorf("expected winner to remain as sole combatant, got %v", combatants)
	}

	if len(recorder.recorded) != 1 || recorder.recorded[0].WinnerID != 1 {
		t.Errorf("expected one recorded battle won by meal 1, got %v", recorder.recorded)
	}
	if result.BattleID != "battle-1" {
		t.Errorf("expected battle id from recorder, got %q", result.BattleID)
	}

	if len(notifier.messages) != 1 || notifier.messages[0] != "battle_result" {
		t.Errorf("expected one battle_result broadcast, got %v", notifier.messages)
	}
}

func TestBattleService_Battle_SecondMealWins(t *testing.T) {
	stats := newStubStats()
	// 0.46 <= 0.99, so the second combatant wins
	svc := NewBattleService(stats, &stubRecorder{}, &stubSource{value: 0.99}, nil)

	svc.PrepCombatant(testMeal1())
	svc.PrepCombatant(testMeal2())

	result, err := svc.Battle(context.Background())
	if err != nil {
		t.Fatalf("battle failed: %v", err)
	}

	if result.Winner != "Meal 2" {
		t.Errorf("expected winner Meal 2, got %s", result.Winner)
	}

	if got := stats.ops[2]; len(got) != 1 || got[0] != "win" {
		t.Errorf("expected [win] for meal 2, got %v", got)
	}
	if got := stats.ops[1]; len(got) != 1 || got[0] != "loss" {
		t.Errorf("expected [loss] for meal 1, got %v", got)
	}

	combatants := svc.Combatants()
	if len(combatants) != 1 || combatants[0].ID != 2 {
		t.Errorf("expected meal 2 to remain as sole combatant, got %v", combatants)
	}
}

func TestBattleService_Battle_RandomUnavailable(t *testing.T) {
	stats := newStubStats()
	svc := NewBattleService(stats, &stubRecorder{}, &stubSource{err: errors.New("connection refused")}, nil)

	svc.PrepCombatant(testMeal1())
	svc.PrepCombatant(testMeal2())

	_, err := svc.Battle(context.Background())
	if !errors.Is(err, ErrRandomUnavailable) {
		t.Fatalf("expected ErrRandomUnavailable, got %v", err)
	}

	// Roster and stats untouched on failure
	if got := len(svc.Combatants()); got != 2 {
		t.Errorf("roster should be unchanged after a failed battle, got %d combatants", got)
	}
	if len(stats.ops) != 0 {
		t.Errorf("no stats should be written on failure, got %v", stats.ops)
	}
}

func TestBattleService_Battle_RecorderFailureIsNonFatal(t *testing.T) {
	stats := newStubStats()
	svc := NewBattleService(stats, &stubRecorder{err: errors.New("db down")}, &stubSource{value: 0.02}, nil)

	svc.PrepCombatant(testMeal1())
	svc.PrepCombatant(testMeal2())

	result, err := svc.Battle(context.Background())
	if err != nil {
		t.Fatalf("battle should succeed even when history insert fails: %v", err)
	}
	if result.BattleID != "" {
		t.Errorf("expected empty battle id when recording failed, got %q", result.BattleID)
	}
	if got := stats.ops[1]; len(got) != 1 || got[0] != "win" {
		t.Errorf("stats should still be updated, got %v", stats.ops)
	}
}
