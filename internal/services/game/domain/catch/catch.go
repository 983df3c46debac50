// Package catch resolves capture attempts against wild monsters.
package catch

import (
	"math"
	"time"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
)

// DefaultBaseRate applies to rarities outside the known set.
const DefaultBaseRate = 0.5

// LevelBonus is added to the base rate per player level.
const LevelBonus = 0.01

// CaughtLevel is the level every freshly caught monster starts at.
const CaughtLevel = 1

var baseRates = map[creature.Rarity]float64{
	creature.RarityCommon:    0.9,
	creature.RarityUncommon:  0.7,
	creature.RarityRare:      0.5,
	creature.RarityLegendary: 0.2,
}

// BaseRate returns the rarity's base catch rate.
func BaseRate(rarity creature.Rarity) float64 {
	if rate, ok := baseRates[rarity]; ok {
		return rate
	}
	return DefaultBaseRate
}

// Chance returns min(1, base + playerLevel*0.01).
func Chance(rarity creature.Rarity, playerLevel int) float64 {
	return math.Min(1, BaseRate(rarity)+float64(playerLevel)*LevelBonus)
}

// AttemptCatch reports whether sample lands within the catch chance. The
// boundary is inclusive.
func AttemptCatch(rarity creature.Rarity, playerLevel int, sample float64) bool {
	return sample <= Chance(rarity, playerLevel)
}

// NewCaughtMonster builds a level one monster at full health. The nickname
// defaults to the species name.
func NewCaughtMonster(id string, species creature.Species, ownerID string, caughtAt time.Time) creature.Monster {
	stats := creature.Derive(species.Base, CaughtLevel)
	return creature.Monster{
		ID:         id,
		OwnerID:    ownerID,
		SpeciesID:  species.ID,
		Nickname:   species.Name,
		Level:      CaughtLevel,
		Experience: 0,
		Stats:      stats,
		CurrentHP:  stats.HP,
		CaughtAt:   caughtAt,
	}
}
