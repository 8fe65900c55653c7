package repository

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/TemiKayas/411HW3/internal/models"
	"github.com/TemiKayas/411HW3/pkg/database"
)

type BattleRepository struct {
	db *database.DB
}

func NewBattleRepository(db *database.DB) *BattleRepository {
	return &BattleRepository{db: db}
}

// Record 전투 결과 저장
func (r *BattleRepository) Record(meal1ID, meal2ID int64, meal1Score, meal2Score float64, winnerID int64) (*models.Battle, error) {
	query := `
		INSERT INTO battles (id, meal1_id, meal2_id, meal1_score, meal2_score, winner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, meal1_id, meal2_id, meal1_score, meal2_score, winner_id, created_at
	`

	battle := &models.Battle{}
	err := r.db.QueryRow(query, uuid.New().String(), meal1ID, meal2ID, meal1Score, meal2Score, winnerID).Scan(
		&battle.ID,
		&battle.Meal1ID,
		&battle.Meal2ID,
		&battle.Meal1Score,
		&battle.Meal2Score,
		&battle.WinnerID,
		&battle.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to record battle: %w", err)
	}

	return battle, nil
}

// FindRecent 최근 전투 목록
func (r *BattleRepository) FindRecent(limit int) ([]*models.Battle, error) {
	query := `
		SELECT id, meal1_id, meal2_id, meal1_score, meal2_score, winner_id, created_at
		FROM battles
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query battles: %w", err)
	}
	defer rows.Close()

	var battles []*models.Battle
	for rows.Next() {
		battle := &models.Battle{}
		err := rows.Scan(
			&battle.ID,
			&battle.Meal1ID,
			&battle.Meal2ID,
			&battle.Meal1Score,
			&battle.Meal2Score,
			&battle.WinnerID,
			&battle.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan battle: %w", err)
		}
		battles = append(battles, battle)
	}

	return battles, rows.Err()
}
