// Package reward converts battle difficulty into experience and gold.
package reward

import (
	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
)

const (
	// XPPerDifficulty is the experience granted per difficulty point.
	XPPerDifficulty = 100
	// GoldPerDifficulty is the currency granted per difficulty point.
	GoldPerDifficulty = 50
)

// Reward is what a victorious player receives.
type Reward struct {
	XP   int
	Gold int
}

// Compute returns the reward for a positive difficulty.
func Compute(difficulty int) (Reward, error) {
	if difficulty <= 0 {
		return Reward{}, apperrors.InvalidInput("difficulty", "must be positive")
	}
	return Reward{
		XP:   XPPerDifficulty * difficulty,
		Gold: GoldPerDifficulty * difficulty,
	}, nil
}

// SplitXP divides experience evenly across team members, dropping the
// remainder. Zero or fewer members yields zero.
func SplitXP(total, members int) int {
	if members <= 0 || total <= 0 {
		return 0
	}
	return total / members
}
