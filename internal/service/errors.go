package service

import "errors"

// Common service errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Kitchen service specific errors
var (
	ErrMealNotFound       = errors.New("meal not found")
	ErrMealAlreadyDeleted = errors.New("meal already deleted")
	ErrMealAlreadyExists  = errors.New("meal with this name already exists")
	ErrInvalidPrice       = errors.New("price must be a positive number")
	ErrInvalidDifficulty  = errors.New("difficulty must be 'LOW', 'MED' or 'HIGH'")
	ErrInvalidSortKey     = errors.New("sort key must be 'wins' or 'win_pct'")
)

// Battle service specific errors
var (
	ErrCombatantsFull      = errors.New("combatant list is full, cannot add more combatants")
	ErrNotEnoughCombatants = errors.New("two combatants must be prepped for a battle")
	ErrRandomUnavailable   = errors.New("random source unavailable")
)
