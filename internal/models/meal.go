package models

import "time"

type Difficulty string

const (
	DifficultyLow  Difficulty = "LOW"
	DifficultyMed  Difficulty = "MED"
	DifficultyHigh Difficulty = "HIGH"
)

// Valid 허용된 난이도인지 확인
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyMed, DifficultyHigh:
		return true
	}
	return false
}

type Meal struct {
	ID         int64      `json:"id" db:"id"`
	Meal       string     `json:"meal" db:"meal"`
	Cuisine    string     `json:"cuisine" db:"cuisine"`
	Price      float64    `json:"price" db:"price"`
	Difficulty Difficulty `json:"difficulty" db:"difficulty"`
	Battles    int        `json:"battles" db:"battles"`
	Wins       int        `json:"wins" db:"wins"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// Losses 패배 수 (battles - wins)
func (m *Meal) Losses() int {
	return m.Battles - m.Wins
}

type LeaderboardEntry struct {
	ID         int64      `json:"id" db:"id"`
	Meal       string     `json:"meal" db:"meal"`
	Cuisine    string     `json:"cuisine" db:"cuisine"`
	Price      float64    `json:"price" db:"price"`
	Difficulty Difficulty `json:"difficulty" db:"difficulty"`
	Battles    int        `json:"battles" db:"battles"`
	Wins       int        `json:"wins" db:"wins"`
	Losses     int        `json:"losses" db:"losses"`
	WinPct     float64    `json:"winPct" db:"win_pct"`
}

type CreateMealRequest struct {
	Meal       string  `json:"meal" binding:"required"`
	Cuisine    string  `json:"cuisine" binding:"required"`
	Price      float64 `json:"price" binding:"required"`
	Difficulty string  `json:"difficulty" binding:"required"`
}

type PrepCombatantRequest struct {
	Meal string `json:"meal" binding:"required"`
}
