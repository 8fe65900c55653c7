package service

import (
	"errors"
	"testing"
)

// Validation runs before any repository access, so these paths are
// exercised without a database.

func TestKitchenService_Create_Validation(t *testing.T) {
	svc := NewKitchenService(nil)

	tests := []struct {
		name       string
		meal       string
		cuisine    string
		price      float64
		difficulty string
		wantErr    error
	}{
		{
			name:    "empty name",
			cuisine: "Italian", price: 10.0, difficulty: "LOW",
			wantErr: ErrInvalidInput,
		},
		{
			name: "empty cuisine",
			meal: "Pizza", price: 10.0, difficulty: "LOW",
			wantErr: ErrInvalidInput,
		},
		{
			name: "zero price",
			meal: "Pizza", cuisine: "Italian", price: 0, difficulty: "LOW",
			wantErr: ErrInvalidPrice,
		},
		{
			name: "negative price",
			meal: "Pizza", cuisine: "Italian", price: -2.5, difficulty: "LOW",
			wantErr: ErrInvalidPrice,
		},
		{
			name: "unknown difficulty",
			meal: "Pizza", cuisine: "Italian", price: 10.0, difficulty: "EXTREME",
			wantErr: ErrInvalidDifficulty,
		},
		{
			name: "lowercase difficulty rejected",
			meal: "Pizza", cuisine: "Italian", price: 10.0, difficulty: "low",
			wantErr: ErrInvalidDifficulty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.meal, tt.cuisine, tt.price, tt.difficulty)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestKitchenService_Leaderboard_InvalidSortKey(t *testing.T) {
	svc := NewKitchenService(nil)

	_, err := svc.Leaderboard("price", 20)
	if !errors.Is(err, ErrInvalidSortKey) {
		t.Errorf("expected ErrInvalidSortKey, got %v", err)
	}
}
