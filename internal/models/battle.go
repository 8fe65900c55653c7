package models

import "time"

type Battle struct {
	ID         string    `json:"id" db:"id"`
	Meal1ID    int64     `json:"meal1Id" db:"meal1_id"`
	Meal2ID    int64     `json:"meal2Id" db:"meal2_id"`
	Meal1Score float64   `json:"meal1Score" db:"meal1_score"`
	Meal2Score float64   `json:"meal2Score" db:"meal2_score"`
	WinnerID   int64     `json:"winnerId" db:"winner_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// BattleResult WebSocket으로 브로드캐스트되는 전투 결과
type BattleResult struct {
	BattleID   string  `json:"battleId"`
	Winner     string  `json:"winner"`
	Loser      string  `json:"loser"`
	Meal1      string  `json:"meal1"`
	Meal2      string  `json:"meal2"`
	Meal1Score float64 `json:"meal1Score"`
	Meal2Score float64 `json:"meal2Score"`
}
