package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
)

// ErrNotFound indicates a requested persistence record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrPlayerNameTaken indicates a player registration collided with an
// existing name.
var ErrPlayerNameTaken = apperrors.New(apperrors.CodePlayerNameTaken, "player name already taken")

// PlayerRecord is a registered trainer.
type PlayerRecord struct {
	ID         string
	Name       string
	Level      int
	Experience int
	Currency   int
	CreatedAt  time.Time
}

// BattleRecord is a write-once battle history entry. Participant2 and
// WinnerID are empty when that side was synthetic.
type BattleRecord struct {
	ID           string
	Mode         string
	Participant1 string
	Participant2 string
	WinnerID     string
	Outcome      string
	RewardXP     int
	RewardGold   int
	CreatedAt    time.Time
}

// TypeMultiplier is one effectiveness row.
type TypeMultiplier struct {
	AttackType string
	DefendType string
	Multiplier float64
}

// LeaderboardEntry ranks a player by a score.
type LeaderboardEntry struct {
	PlayerID   string
	PlayerName string
	Level      int
	Score      int
}

// AchievementUnlock is an achievement a player holds.
type AchievementUnlock struct {
	Achievement achievement.Definition
	UnlockedAt  time.Time
}

// BattlePage is one page of battle history.
type BattlePage struct {
	Battles []BattleRecord
	// NextPageToken is empty on the last page.
	NextPageToken string
}

// ContentStore reads and seeds reference data.
type ContentStore interface {
	GetSpeciesByID(ctx context.Context, id string) (creature.Species, error)
	ListSpecies(ctx context.Context) ([]creature.Species, error)
	// LookupTypeMultiplier reports the stored multiplier and whether a row
	// exists for the pair.
	LookupTypeMultiplier(ctx context.Context, attackType, defendType string) (float64, bool, error)
	ListAchievements(ctx context.Context) ([]achievement.Definition, error)

	PutType(ctx context.Context, name string) error
	PutTypeMultiplier(ctx context.Context, row TypeMultiplier) error
	PutSpecies(ctx context.Context, species creature.Species) error
	PutAchievement(ctx context.Context, def achievement.Definition) error
}

// PlayerStore persists players.
type PlayerStore interface {
	GetPlayerByID(ctx context.Context, id string) (PlayerRecord, error)
	GetPlayerByName(ctx context.Context, name string) (PlayerRecord, error)
	// SavePlayer inserts or updates a player. A different player holding the
	// same name yields ErrPlayerNameTaken.
	SavePlayer(ctx context.Context, player PlayerRecord) error
}

// MonsterStore persists owned monsters.
type MonsterStore interface {
	GetMonster(ctx context.Context, id string) (creature.Monster, error)
	GetMonstersByPlayer(ctx context.Context, playerID string) ([]creature.Monster, error)
	SaveMonster(ctx context.Context, monster creature.Monster) error
	DeleteMonster(ctx context.Context, id string) error
	// CountCaughtMonsters counts monsters the player currently owns.
	CountCaughtMonsters(ctx context.Context, playerID string) (int, error)
}

// BattleStore persists battle history.
type BattleStore interface {
	SaveBattle(ctx context.Context, battle BattleRecord) error
	CountBattleWins(ctx context.Context, playerID string) (int, error)
	// ListBattles returns battles the player took part in, newest first,
	// restricted by an AIP-160 filter over mode, winner_id, result and ts.
	ListBattles(ctx context.Context, playerID, filter string, pageSize int, pageToken string) (BattlePage, error)
}

// AchievementStore persists unlocks.
type AchievementStore interface {
	GetUnlockedAchievementConditions(ctx context.Context, playerID string) ([]string, error)
	// UnlockAchievement inserts the unlock if absent and reports whether a
	// row was written. Undefined conditions return ErrNotFound.
	UnlockAchievement(ctx context.Context, playerID, conditionCode string, unlockedAt time.Time) (achievement.Definition, bool, error)
	ListPlayerAchievements(ctx context.Context, playerID string) ([]AchievementUnlock, error)
}

// LeaderboardStore ranks players.
type LeaderboardStore interface {
	LeaderboardByMonsters(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	LeaderboardByWins(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// Repository is the full persistence surface used by the game service.
type Repository interface {
	ContentStore
	PlayerStore
	MonsterStore
	BattleStore
	AchievementStore
	LeaderboardStore

	// RunInTx runs fn against a transactional view of the repository. An
	// error from fn discards every write it made.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
	Close() error
}
