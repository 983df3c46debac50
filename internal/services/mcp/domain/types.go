package domain

import (
	"time"

	gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"
)

// PlayerResult is a trainer summary.
type PlayerResult struct {
	ID          string `json:"id" jsonschema:"player identifier"`
	Name        string `json:"name" jsonschema:"player name"`
	Level       int    `json:"level" jsonschema:"player level"`
	Experience  int    `json:"experience" jsonschema:"experience toward the next level"`
	NextLevelXP int    `json:"next_level_xp" jsonschema:"experience required for the next level"`
	Currency    int    `json:"currency" jsonschema:"gold"`
}

// SpeciesResult is a creature template.
type SpeciesResult struct {
	ID        string   `json:"id" jsonschema:"species identifier"`
	Name      string   `json:"name" jsonschema:"species name"`
	Type      string   `json:"type" jsonschema:"elemental type"`
	Rarity    string   `json:"rarity" jsonschema:"Common, Uncommon, Rare or Legendary"`
	BaseLevel int      `json:"base_level" jsonschema:"level wild encounters appear at"`
	Abilities []string `json:"abilities,omitempty" jsonschema:"flavor abilities"`
}

// MonsterResult is an owned monster.
type MonsterResult struct {
	ID        string `json:"id" jsonschema:"monster identifier"`
	Nickname  string `json:"nickname" jsonschema:"monster nickname"`
	Species   string `json:"species" jsonschema:"species name"`
	Type      string `json:"type,omitempty" jsonschema:"elemental type"`
	Level     int    `json:"level" jsonschema:"monster level"`
	XP        int    `json:"xp" jsonschema:"experience toward the next level"`
	HP        int    `json:"hp" jsonschema:"current hit points"`
	MaxHP     int    `json:"max_hp" jsonschema:"maximum hit points"`
	Attack    int    `json:"attack" jsonschema:"attack stat"`
	Defense   int    `json:"defense" jsonschema:"defense stat"`
	Speed     int    `json:"speed" jsonschema:"speed stat"`
	CaughtAt  string `json:"caught_at" jsonschema:"RFC3339 catch time"`
}

// UnlockResult announces a newly granted achievement.
type UnlockResult struct {
	Condition string `json:"condition" jsonschema:"unlock condition code"`
	Name      string `json:"name" jsonschema:"achievement name"`
}

// AchievementResult is an achievement with its unlock time, if any.
type AchievementResult struct {
	Name        string `json:"name" jsonschema:"achievement name"`
	Description string `json:"description,omitempty" jsonschema:"achievement description"`
	Condition   string `json:"condition" jsonschema:"unlock condition code"`
	UnlockedAt  string `json:"unlocked_at,omitempty" jsonschema:"RFC3339 unlock time"`
}

// LevelUpResult reports progression.
type LevelUpResult struct {
	ID       string `json:"id" jsonschema:"player or monster identifier"`
	Name     string `json:"name" jsonschema:"player or monster name"`
	NewLevel int    `json:"new_level" jsonschema:"level after the battle"`
	Gained   int    `json:"gained" jsonschema:"levels gained"`
}

// TurnResult is one attack exchange.
type TurnResult struct {
	Attacker   string  `json:"attacker" jsonschema:"attacking combatant"`
	Defender   string  `json:"defender" jsonschema:"defending combatant"`
	Move       string  `json:"move" jsonschema:"move used"`
	Damage     int     `json:"damage" jsonschema:"damage dealt"`
	Multiplier float64 `json:"multiplier" jsonschema:"type effectiveness"`
	DefenderHP int     `json:"defender_hp" jsonschema:"defender hp after the hit"`
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func playerResult(p gamegrpc.Player) PlayerResult {
	return PlayerResult{
		ID:          p.ID,
		Name:        p.Name,
		Level:       p.Level,
		Experience:  p.Experience,
		NextLevelXP: p.NextLevelXP,
		Currency:    p.Currency,
	}
}

func speciesResult(s gamegrpc.Species) SpeciesResult {
	return SpeciesResult{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type,
		Rarity:    s.Rarity,
		BaseLevel: s.BaseLevel,
		Abilities: s.Abilities,
	}
}

func monsterResult(m gamegrpc.Monster) MonsterResult {
	return MonsterResult{
		ID:       m.ID,
		Nickname: m.Nickname,
		Species:  m.SpeciesName,
		Type:     m.Type,
		Level:    m.Level,
		XP:       m.Experience,
		HP:       m.CurrentHP,
		MaxHP:    m.Stats.HP,
		Attack:   m.Stats.Attack,
		Defense:  m.Stats.Defense,
		Speed:    m.Stats.Speed,
		CaughtAt: formatTime(m.CaughtAt),
	}
}

func unlockResults(unlocks []gamegrpc.AchievementUnlock) []UnlockResult {
	out := make([]UnlockResult, 0, len(unlocks))
	for _, u := range unlocks {
		out = append(out, UnlockResult{Condition: u.ConditionCode, Name: u.AchievementName})
	}
	return out
}

func achievementResults(items []gamegrpc.Achievement) []AchievementResult {
	out := make([]AchievementResult, 0, len(items))
	for _, a := range items {
		item := AchievementResult{Name: a.Name, Description: a.Description, Condition: a.ConditionCode}
		if a.UnlockedAt != nil {
			item.UnlockedAt = formatTime(*a.UnlockedAt)
		}
		out = append(out, item)
	}
	return out
}
