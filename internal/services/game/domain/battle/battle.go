// Package battle drives a full battle between two rosters and reports the
// outcome, rewards included.
package battle

import (
	"strings"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/combat"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
)

// Mode selects opponent kind and combatant selection policy.
type Mode string

const (
	ModeWild   Mode = "wild"
	ModePlayer Mode = "player"
	ModeGym    Mode = "gym"
	ModeAI     Mode = "ai"
)

// ParseMode normalizes a mode label.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeWild:
		return ModeWild, nil
	case ModePlayer:
		return ModePlayer, nil
	case ModeGym:
		return ModeGym, nil
	case ModeAI:
		return ModeAI, nil
	default:
		return "", apperrors.InvalidInput("mode", "must be one of wild, player, gym, ai")
	}
}

// Difficulty is the reward multiplier for winning in this mode.
func (m Mode) Difficulty() int {
	if m == ModeGym {
		return 2
	}
	return 1
}

// Resolution selects how a pairing is decided.
type Resolution string

const (
	// ResolutionTurns alternates attacks until one side faints.
	ResolutionTurns Resolution = "turns"
	// ResolutionPower compares level plus a 0..5 roll.
	ResolutionPower Resolution = "power"
)

// ParseResolution normalizes a resolution label. Empty selects turns.
func ParseResolution(value string) (Resolution, error) {
	switch Resolution(strings.ToLower(strings.TrimSpace(value))) {
	case "", ResolutionTurns:
		return ResolutionTurns, nil
	case ResolutionPower:
		return ResolutionPower, nil
	default:
		return "", apperrors.InvalidInput("resolution", "must be turns or power")
	}
}

// Result labels from the challenger's point of view.
const (
	LabelVictory = "victory"
	LabelDefeat  = "defeat"
)

// Side identifies one half of the battle.
type Side string

const (
	SideChallenger Side = "challenger"
	SideOpponent   Side = "opponent"
)

var (
	// ErrEmptyRoster is returned when a side has nobody to fight.
	ErrEmptyRoster = apperrors.New(apperrors.CodeEmptyRoster, "roster has no combatants")
	// ErrBattleState is returned for transitions the lifecycle forbids.
	ErrBattleState = apperrors.New(apperrors.CodeBattleState, "illegal battle transition")
)

// Combatant is a monster as it enters battle. Synthetic combatants have no
// MonsterID.
type Combatant struct {
	MonsterID string
	Name      string
	Type      string
	Level     int
	Stats     creature.StatBlock
}

// Synthetic reports whether the combatant is not backed by a stored monster.
func (c Combatant) Synthetic() bool {
	return c.MonsterID == ""
}

func (c Combatant) fighter(hp int) combat.Fighter {
	return combat.Fighter{
		Name:    c.Name,
		Type:    c.Type,
		Attack:  c.Stats.Attack,
		Defense: c.Stats.Defense,
		HP:      hp,
	}
}

// FromMonster builds a combatant from an owned monster and its species.
func FromMonster(monster creature.Monster, species creature.Species) Combatant {
	name := monster.Nickname
	if name == "" {
		name = species.Name
	}
	return Combatant{
		MonsterID: monster.ID,
		Name:      name,
		Type:      species.Type,
		Level:     monster.Level,
		Stats:     creature.Derive(species.Base, monster.Level),
	}
}

// Roster is one side of a battle. OwnerID is empty for synthetic sides.
type Roster struct {
	OwnerID    string
	Combatants []Combatant
}

// Participant is the end state of a combatant that fought.
type Participant struct {
	Side      Side
	MonsterID string
	Name      string
	FinalHP   int
	Fainted   bool
}

// PowerRoll records one power comparison.
type PowerRoll struct {
	Challenger int
	Opponent   int
}

// Outcome is the result of a concluded battle.
type Outcome struct {
	Mode          Mode
	Resolution    Resolution
	ChallengerWon bool
	// WinnerID is empty when a synthetic side won.
	WinnerID    string
	ResultLabel string
	RewardXP    int
	RewardGold  int
	// WinningMonsterIDs share RewardXP, XPPerMonster each.
	WinningMonsterIDs []string
	XPPerMonster      int
	Turns             []combat.TurnResult
	Rolls             []PowerRoll
	Participants      []Participant
}
