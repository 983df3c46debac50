// Package creature models species templates, owned monsters and the stat
// derivation that ties a monster's current stats to its level.
package creature

import (
	"strings"
	"time"
)

// Rarity determines base catch difficulty.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityLegendary Rarity = "Legendary"
)

// ParseRarity normalizes a rarity label case-insensitively. Unknown labels
// are returned as-is so catch resolution can apply its default rate.
func ParseRarity(value string) Rarity {
	trimmed := strings.TrimSpace(value)
	for _, known := range []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityLegendary} {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	return Rarity(trimmed)
}

// IsLegendary reports whether the rarity is legendary, ignoring case.
func (r Rarity) IsLegendary() bool {
	return strings.EqualFold(strings.TrimSpace(string(r)), string(RarityLegendary))
}

// StatBlock holds the four named stats shared by base and derived values.
type StatBlock struct {
	HP      int `json:"hp" yaml:"hp"`
	Attack  int `json:"attack" yaml:"attack"`
	Defense int `json:"defense" yaml:"defense"`
	Speed   int `json:"speed" yaml:"speed"`
}

// Species is immutable reference data for a creature kind.
type Species struct {
	ID        string
	Name      string
	Type      string
	Rarity    Rarity
	Base      StatBlock
	BaseLevel int
	Abilities []string
}

// Monster is a player-owned instance of a species.
type Monster struct {
	ID         string
	OwnerID    string
	SpeciesID  string
	Nickname   string
	Level      int
	Experience int
	Stats      StatBlock
	CurrentHP  int
	CaughtAt   time.Time
}

// Fainted reports whether the monster has no hit points left.
func (m Monster) Fainted() bool {
	return m.CurrentHP <= 0
}
