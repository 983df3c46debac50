package game

import (
	"time"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
)

// Player is a trainer as returned by the API.
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Level       int       `json:"level"`
	Experience  int       `json:"experience"`
	NextLevelXP int       `json:"next_level_xp"`
	Currency    int       `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}

// Species is a creature template.
type Species struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	Rarity    string             `json:"rarity"`
	BaseStats creature.StatBlock `json:"base_stats"`
	BaseLevel int                `json:"base_level"`
	Abilities []string           `json:"abilities,omitempty"`
}

// Monster is an owned creature.
type Monster struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"owner_id"`
	SpeciesID   string             `json:"species_id"`
	SpeciesName string             `json:"species_name,omitempty"`
	Type        string             `json:"type,omitempty"`
	Nickname    string             `json:"nickname"`
	Level       int                `json:"level"`
	Experience  int                `json:"experience"`
	NextLevelXP int                `json:"next_level_xp"`
	Stats       creature.StatBlock `json:"stats"`
	CurrentHP   int                `json:"current_hp"`
	CaughtAt    time.Time          `json:"caught_at"`
}

// Achievement is a definition, optionally with the caller's unlock time.
type Achievement struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	ConditionCode string     `json:"condition_code"`
	UnlockedAt    *time.Time `json:"unlocked_at,omitempty"`
}

// AchievementUnlock announces a newly granted achievement.
type AchievementUnlock struct {
	ConditionCode   string `json:"condition_code"`
	AchievementName string `json:"achievement_name"`
}

// LevelUp reports progression on a player or monster.
type LevelUp struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NewLevel     int    `json:"new_level"`
	LevelsGained int    `json:"levels_gained"`
}

// Turn is one attack exchange.
type Turn struct {
	Attacker   string  `json:"attacker"`
	Defender   string  `json:"defender"`
	Move       string  `json:"move"`
	Damage     int     `json:"damage"`
	Multiplier float64 `json:"multiplier"`
	DefenderHP int     `json:"defender_hp"`
}

// PowerRoll is one power comparison.
type PowerRoll struct {
	Challenger int `json:"challenger"`
	Opponent   int `json:"opponent"`
}

// BattleParticipant is the end state of a combatant.
type BattleParticipant struct {
	Side      string `json:"side"`
	MonsterID string `json:"monster_id,omitempty"`
	Name      string `json:"name"`
	FinalHP   int    `json:"final_hp"`
	Fainted   bool   `json:"fainted"`
}

// BattleRecord is a battle history entry.
type BattleRecord struct {
	ID           string    `json:"id"`
	Mode         string    `json:"mode"`
	Participant1 string    `json:"participant1"`
	Participant2 string    `json:"participant2,omitempty"`
	WinnerID     string    `json:"winner_id,omitempty"`
	Result       string    `json:"result"`
	RewardXP     int       `json:"reward_xp"`
	RewardGold   int       `json:"reward_gold"`
	CreatedAt    time.Time `json:"created_at"`
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Level      int    `json:"level"`
	Score      int    `json:"score"`
}

type RegisterPlayerRequest struct {
	Name string `json:"name"`
}

type RegisterPlayerResponse struct {
	Player Player `json:"player"`
}

// GetProfileRequest looks a player up by id or, when id is empty, by name.
type GetProfileRequest struct {
	PlayerID   string `json:"player_id,omitempty"`
	PlayerName string `json:"player_name,omitempty"`
}

type GetProfileResponse struct {
	Player       Player        `json:"player"`
	MonsterCount int           `json:"monster_count"`
	Wins         int           `json:"wins"`
	Achievements []Achievement `json:"achievements,omitempty"`
}

type ExploreRequest struct {
	PlayerID string `json:"player_id"`
}

type ExploreResponse struct {
	Species Species `json:"species"`
	Level   int     `json:"level"`
}

type CatchRequest struct {
	PlayerID  string `json:"player_id"`
	SpeciesID string `json:"species_id"`
}

type CatchResponse struct {
	Success  bool                `json:"success"`
	Chance   float64             `json:"chance"`
	Monster  *Monster            `json:"monster,omitempty"`
	Unlocked []AchievementUnlock `json:"unlocked,omitempty"`
}

// BattleRequest is shared by the four battle methods. SpeciesID picks the
// wild opponent (random when empty); OpponentID names the rival player.
type BattleRequest struct {
	PlayerID   string `json:"player_id"`
	OpponentID string `json:"opponent_id,omitempty"`
	SpeciesID  string `json:"species_id,omitempty"`
	Resolution string `json:"resolution,omitempty"`
}

type BattleResponse struct {
	BattleID        string              `json:"battle_id"`
	Mode            string              `json:"mode"`
	Resolution      string              `json:"resolution"`
	Result          string              `json:"result"`
	WinnerID        string              `json:"winner_id,omitempty"`
	RewardXP        int                 `json:"reward_xp"`
	RewardGold      int                 `json:"reward_gold"`
	Turns           []Turn              `json:"turns,omitempty"`
	Rolls           []PowerRoll         `json:"rolls,omitempty"`
	Participants    []BattleParticipant `json:"participants"`
	PlayerLevelUp   *LevelUp            `json:"player_level_up,omitempty"`
	MonsterLevelUps []LevelUp           `json:"monster_level_ups,omitempty"`
	Unlocked        []AchievementUnlock `json:"unlocked,omitempty"`
}

type ListMonstersRequest struct {
	PlayerID string `json:"player_id"`
}

type ListMonstersResponse struct {
	Monsters []Monster `json:"monsters"`
}

type RenameMonsterRequest struct {
	PlayerID  string `json:"player_id"`
	MonsterID string `json:"monster_id"`
	Nickname  string `json:"nickname"`
}

type RenameMonsterResponse struct {
	Monster Monster `json:"monster"`
}

type ReleaseMonsterRequest struct {
	PlayerID  string `json:"player_id"`
	MonsterID string `json:"monster_id"`
}

type ReleaseMonsterResponse struct {
	MonsterID string `json:"monster_id"`
	Nickname  string `json:"nickname"`
}

// ListBattlesRequest pages battle history. Filter is an AIP-160 expression
// over mode, winner_id, result and ts.
type ListBattlesRequest struct {
	PlayerID  string `json:"player_id"`
	Filter    string `json:"filter,omitempty"`
	PageSize  int    `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

type ListBattlesResponse struct {
	Battles       []BattleRecord `json:"battles"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// LeaderboardRequest ranks players by kind "monsters" or "wins".
type LeaderboardRequest struct {
	Kind  string `json:"kind"`
	Limit int    `json:"limit,omitempty"`
}

type LeaderboardResponse struct {
	Kind    string             `json:"kind"`
	Entries []LeaderboardEntry `json:"entries"`
}

// ListAchievementsRequest lists every definition; with a player id the
// player's unlock times are filled in.
type ListAchievementsRequest struct {
	PlayerID string `json:"player_id,omitempty"`
}

type ListAchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
}

// GetPlayerID returns the player id, tolerating a nil request.
func (r *ExploreRequest) GetPlayerID() string {
	if r == nil {
		return ""
	}
	return r.PlayerID
}

// GetPlayerID returns the player id, tolerating a nil request.
func (r *ListMonstersRequest) GetPlayerID() string {
	if r == nil {
		return ""
	}
	return r.PlayerID
}
