// Package progression applies experience and cascades level-ups.
package progression

import (
	"math"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
)

const (
	monsterBaseXP  = 50
	monsterGrowth  = 1.2
	playerBaseXP   = 100
	playerGrowth   = 1.3
	floorTolerance = 1e-9
)

// Result describes the state after experience was applied.
type Result struct {
	NewLevel     int
	NewXP        int
	LeveledUp    bool
	LevelsGained int
	// NewStats is set only for monsters that leveled up.
	NewStats *creature.StatBlock
}

// MonsterThreshold is floor(50 * 1.2^(level-1)).
func MonsterThreshold(level int) int {
	return threshold(monsterBaseXP, monsterGrowth, level)
}

// PlayerThreshold is floor(100 * 1.3^(level-1)).
func PlayerThreshold(level int) int {
	return threshold(playerBaseXP, playerGrowth, level)
}

func threshold(base, growth float64, level int) int {
	if level < 1 {
		level = 1
	}
	value := math.Floor(base*math.Pow(growth, float64(level-1)) + floorTolerance)
	if value >= math.MaxInt {
		return math.MaxInt
	}
	return int(value)
}

// AddPlayerExperience deposits xp on a player and levels them up while the
// balance covers the current threshold.
func AddPlayerExperience(level, xp, amount int) (Result, error) {
	if amount < 0 {
		return Result{}, apperrors.InvalidInput("experience", "must not be negative")
	}
	newLevel, newXP, gained := cascade(level, deposit(xp, amount), PlayerThreshold)
	return Result{
		NewLevel:     newLevel,
		NewXP:        newXP,
		LeveledUp:    gained > 0,
		LevelsGained: gained,
	}, nil
}

// AddMonsterExperience deposits xp on a monster. Each level gained
// re-derives stats from the species base, and current hp is clamped to the
// new maximum.
func AddMonsterExperience(monster creature.Monster, base creature.StatBlock, amount int) (creature.Monster, Result, error) {
	if amount < 0 {
		return monster, Result{}, apperrors.InvalidInput("experience", "must not be negative")
	}
	newLevel, newXP, gained := cascade(monster.Level, deposit(monster.Experience, amount), MonsterThreshold)
	monster.Level = newLevel
	monster.Experience = newXP
	result := Result{
		NewLevel:     newLevel,
		NewXP:        newXP,
		LeveledUp:    gained > 0,
		LevelsGained: gained,
	}
	if gained > 0 {
		stats := creature.Derive(base, newLevel)
		monster.Stats = stats
		monster.CurrentHP = creature.ClampHP(monster.CurrentHP, stats.HP)
		result.NewStats = &stats
	}
	return monster, result, nil
}

// deposit adds amount to xp, saturating at math.MaxInt.
func deposit(xp, amount int) int {
	if xp > math.MaxInt-amount {
		return math.MaxInt
	}
	return xp + amount
}

// cascade spends xp on level thresholds until the balance falls short.
// Thresholds grow geometrically and saturate at math.MaxInt, which no
// balance exceeds, so the loop always ends with xp < next(level).
func cascade(level, xp int, next func(int) int) (int, int, int) {
	if level < 1 {
		level = 1
	}
	gained := 0
	for {
		need := next(level)
		if xp < need {
			return level, xp, gained
		}
		xp -= need
		level++
		gained++
	}
}
