// Package combat resolves a single attack exchange between two fighters.
package combat

import (
	"math"
	"strconv"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/typechart"
)

// ErrInvalidStat indicates a stat that makes damage undefined.
var ErrInvalidStat = apperrors.New(apperrors.CodeInvalidStat, "defense must be positive")

// MinDamage is the floor for any landed hit.
const MinDamage = 1

// Move is a named attack with a power rating.
type Move struct {
	Name  string
	Power int
}

// Standard moves available to every combatant.
var (
	Tackle      = Move{Name: "Tackle", Power: 15}
	Bite        = Move{Name: "Bite", Power: 20}
	QuickAttack = Move{Name: "Quick Attack", Power: 12}
)

// StandardMoves is the pool moves are drawn from during turn resolution.
func StandardMoves() []Move {
	return []Move{Tackle, Bite, QuickAttack}
}

// Fighter is the combat view of a monster.
type Fighter struct {
	Name    string
	Type    string
	Attack  int
	Defense int
	HP      int
}

// TurnResult captures one exchange.
type TurnResult struct {
	Attacker    string
	Defender    string
	Move        string
	Damage      int
	Multiplier  float64
	DefenderHP  int
	DefenderOut bool
}

// ExecuteTurn computes damage from attacker to defender:
//
//	damage = max(1, floor(attack/defense * power * multiplier))
//
// The remaining defender hp is floored at zero. The fighters are not
// mutated; callers apply DefenderHP.
func ExecuteTurn(attacker, defender Fighter, move Move, table typechart.Lookup) (TurnResult, error) {
	if defender.Defense <= 0 {
		return TurnResult{}, apperrors.WithMetadata(apperrors.CodeInvalidStat, ErrInvalidStat.Message, map[string]string{
			"Stat":  "defense",
			"Value": strconv.Itoa(defender.Defense),
		})
	}
	multiplier := typechart.Neutral
	if table != nil {
		multiplier = table.Multiplier(attacker.Type, defender.Type)
	}
	raw := float64(attacker.Attack) / float64(defender.Defense) * float64(move.Power) * multiplier
	damage := int(math.Floor(raw))
	if damage < MinDamage {
		damage = MinDamage
	}
	remaining := defender.HP - damage
	if remaining < 0 {
		remaining = 0
	}
	return TurnResult{
		Attacker:    attacker.Name,
		Defender:    defender.Name,
		Move:        move.Name,
		Damage:      damage,
		Multiplier:  multiplier,
		DefenderHP:  remaining,
		DefenderOut: remaining == 0,
	}, nil
}
