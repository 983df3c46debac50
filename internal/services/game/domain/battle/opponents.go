package battle

import (
	"fmt"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
)

const (
	// GymLevelBonus raises gym leaders above the challenger.
	GymLevelBonus = 5
	aiTeamSize    = 3
	aiType        = "Normal"
)

// WildOpponent builds a synthetic roster from a species at the given level.
func WildOpponent(species creature.Species, level int) Roster {
	if level < 1 {
		level = 1
	}
	return Roster{Combatants: []Combatant{{
		Name:  species.Name,
		Type:  species.Type,
		Level: level,
		Stats: creature.Derive(species.Base, level),
	}}}
}

// GymOpponent builds a gym leader roster for a challenger at playerLevel.
func GymOpponent(species creature.Species, playerLevel int) Roster {
	return WildOpponent(species, playerLevel+GymLevelBonus)
}

// AITeam builds the bot team Bot-1..Bot-3 at the player's level.
func AITeam(playerLevel int) Roster {
	if playerLevel < 1 {
		playerLevel = 1
	}
	team := make([]Combatant, 0, aiTeamSize)
	for i := 1; i <= aiTeamSize; i++ {
		team = append(team, Combatant{
			Name:  fmt.Sprintf("Bot-%d", i),
			Type:  aiType,
			Level: playerLevel,
			Stats: creature.StatBlock{HP: 40 + 5*i, Attack: 12, Defense: 8, Speed: 10},
		})
	}
	return Roster{Combatants: team}
}
