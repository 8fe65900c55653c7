package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/TemiKayas/411HW3/internal/models"
	"github.com/TemiKayas/411HW3/pkg/database"
)

// Repository-level sentinels, mapped to API errors by the service layer.
var (
	ErrDuplicateName      = errors.New("meal name already exists")
	ErrMealNotFound       = errors.New("meal not found")
	ErrMealAlreadyDeleted = errors.New("meal already deleted")
)

// Stat operations accepted by UpdateStats.
const (
	StatWin  = "win"
	StatLoss = "loss"
)

type MealRepository struct {
	db *database.DB
}

func NewMealRepository(db *database.DB) *MealRepository {
	return &MealRepository{db: db}
}

// Create 새 식사 생성
func (r *MealRepository) Create(name, cuisine string, price float64, difficulty models.Difficulty) (*models.Meal, error) {
	query := `
		INSERT INTO meals (meal, cuisine, price, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id, meal, cuisine, price, difficulty, battles, wins, created_at, updated_at
	`

	meal := &models.Meal{}
	err := r.db.QueryRow(query, name, cuisine, price, difficulty).Scan(
		&meal.ID,
		&meal.Meal,
		&meal.Cuisine,
		&meal.Price,
		&meal.Difficulty,
		&meal.Battles,
		&meal.Wins,
		&meal.CreatedAt,
		&meal.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	return meal, nil
}

// FindByID ID로 식사 찾기 (soft delete 제외)
func (r *MealRepository) FindByID(id int64) (*models.Meal, error) {
	query := `
		SELECT id, meal, cuisine, price, difficulty, battles, wins, created_at, updated_at
		FROM meals
		WHERE id = $1 AND deleted = FALSE
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// FindByName 이름으로 식사 찾기 (soft delete 제외)
func (r *MealRepository) FindByName(name string) (*models.Meal, error) {
	query := `
		SELECT id, meal, cuisine, price, difficulty, battles, wins, created_at, updated_at
		FROM meals
		WHERE meal = $1 AND deleted = FALSE
	`

	return r.scanOne(r.db.QueryRow(query, name))
}

func (r *MealRepository) scanOne(row *sql.Row) (*models.Meal, error) {
	meal := &models.Meal{}
	err := row.Scan(
		&meal.ID,
		&meal.Meal,
		&meal.Cuisine,
		&meal.Price,
		&meal.Difficulty,
		&meal.Battles,
		&meal.Wins,
		&meal.CreatedAt,
		&meal.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find meal: %w", err)
	}

	return meal, nil
}

// SoftDelete 식사 삭제 표시 (행은 유지)
func (r *MealRepository) SoftDelete(id int64) error {
	var deleted bool
	err := r.db.QueryRow(`SELECT deleted FROM meals WHERE id = $1`, id).Scan(&deleted)

	if err == sql.ErrNoRows {
		return ErrMealNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to check meal: %w", err)
	}

	if deleted {
		return ErrMealAlreadyDeleted
	}

	_, err = r.db.Exec(`UPDATE meals SET deleted = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	return nil
}

// Clear 모든 식사 삭제 (전투 기록 포함, ID 리셋)
func (r *MealRepository) Clear() error {
	_, err := r.db.Exec(`TRUNCATE meals RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to clear meals: %w", err)
	}

	return nil
}

// UpdateStats 전투 후 통계 업데이트 (win: battles+1, wins+1 / loss: battles+1)
func (r *MealRepository) UpdateStats(id int64, op string) error {
	var query string

	switch op {
	case StatWin:
		query = `UPDATE meals SET battles = battles + 1, wins = wins + 1, updated_at = NOW() WHERE id = $1`
	case StatLoss:
		query = `UPDATE meals SET battles = battles + 1, updated_at = NOW() WHERE id = $1`
	default:
		return fmt.Errorf("invalid stat operation: %s", op)
	}

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to update meal stats: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ErrMealNotFound
	}

	return nil
}

// Leaderboard 리더보드 조회 (battles > 0인 식사만, 정렬 키별 내림차순)
func (r *MealRepository) Leaderboard(orderBy string, limit int) ([]*models.LeaderboardEntry, error) {
	var order string

	switch orderBy {
	case "wins":
		order = "wins DESC"
	case "win_pct":
		order = "win_pct DESC"
	default:
		return nil, fmt.Errorf("invalid leaderboard sort key: %s", orderBy)
	}

	query := fmt.Sprintf(`
		SELECT id, meal, cuisine, price, difficulty, battles, wins,
		       battles - wins AS losses,
		       wins::DOUBLE PRECISION / battles AS win_pct
		FROM meals
		WHERE deleted = FALSE AND battles > 0
		ORDER BY %s, wins DESC, id ASC
		LIMIT $1
	`, order)

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		entry := &models.LeaderboardEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.Meal,
			&entry.Cuisine,
			&entry.Price,
			&entry.Difficulty,
			&entry.Battles,
			&entry.Wins,
			&entry.Losses,
			&entry.WinPct,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
