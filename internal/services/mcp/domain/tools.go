package domain

import "github.com/modelcontextprotocol/go-sdk/mcp"

// PlayerRegisterInput represents the MCP tool input for registering a trainer.
type PlayerRegisterInput struct {
	Name string `json:"name" jsonschema:"unique trainer name"`
}

// PlayerProfileInput looks a trainer up by id or name.
type PlayerProfileInput struct {
	PlayerID   string `json:"player_id,omitempty" jsonschema:"player identifier"`
	PlayerName string `json:"player_name,omitempty" jsonschema:"player name, used when player_id is empty"`
}

// PlayerProfileResult is the trainer profile.
type PlayerProfileResult struct {
	Player       PlayerResult        `json:"player" jsonschema:"trainer summary"`
	MonsterCount int                 `json:"monster_count" jsonschema:"owned monsters"`
	Wins         int                 `json:"wins" jsonschema:"battles won"`
	Achievements []AchievementResult `json:"achievements" jsonschema:"unlocked achievements"`
}

// ExploreInput represents the MCP tool input for a wild encounter.
type ExploreInput struct {
	PlayerID string `json:"player_id" jsonschema:"player identifier"`
}

// ExploreResult is the species found in the wild.
type ExploreResult struct {
	Species SpeciesResult `json:"species" jsonschema:"encountered species"`
	Level   int           `json:"level" jsonschema:"encounter level"`
}

// CatchInput represents the MCP tool input for a catch attempt.
type CatchInput struct {
	PlayerID  string `json:"player_id" jsonschema:"player identifier"`
	SpeciesID string `json:"species_id" jsonschema:"species to catch"`
}

// CatchResult is the outcome of a catch attempt.
type CatchResult struct {
	Success  bool           `json:"success" jsonschema:"whether the monster was caught"`
	Chance   float64        `json:"chance" jsonschema:"catch probability used"`
	Monster  *MonsterResult `json:"monster,omitempty" jsonschema:"new monster on success"`
	Unlocked []UnlockResult `json:"unlocked" jsonschema:"achievements granted by this catch"`
}

// BattleWildInput represents the MCP tool input for a wild battle.
type BattleWildInput struct {
	PlayerID   string `json:"player_id" jsonschema:"player identifier"`
	SpeciesID  string `json:"species_id,omitempty" jsonschema:"wild species; random when empty"`
	Resolution string `json:"resolution,omitempty" jsonschema:"turns or power; server default when empty"`
}

// BattleInput represents the MCP tool input for gym and AI battles.
type BattleInput struct {
	PlayerID   string `json:"player_id" jsonschema:"player identifier"`
	Resolution string `json:"resolution,omitempty" jsonschema:"turns or power; server default when empty"`
}

// BattlePlayerInput represents the MCP tool input for a battle between trainers.
type BattlePlayerInput struct {
	PlayerID   string `json:"player_id" jsonschema:"challenging player identifier"`
	OpponentID string `json:"opponent_id" jsonschema:"opposing player identifier"`
	Resolution string `json:"resolution,omitempty" jsonschema:"turns or power; server default when empty"`
}

// BattleResult is the outcome of a battle.
type BattleResult struct {
	BattleID        string          `json:"battle_id" jsonschema:"battle identifier"`
	Mode            string          `json:"mode" jsonschema:"wild, gym, ai or pvp"`
	Resolution      string          `json:"resolution" jsonschema:"turns or power"`
	Result          string          `json:"result" jsonschema:"victory or defeat for the challenger"`
	WinnerID        string          `json:"winner_id,omitempty" jsonschema:"winning player, if any"`
	RewardXP        int             `json:"reward_xp" jsonschema:"experience awarded"`
	RewardGold      int             `json:"reward_gold" jsonschema:"gold awarded"`
	Turns           []TurnResult    `json:"turns,omitempty" jsonschema:"turn log"`
	PlayerLevelUp   *LevelUpResult  `json:"player_level_up,omitempty" jsonschema:"player progression"`
	MonsterLevelUps []LevelUpResult `json:"monster_level_ups,omitempty" jsonschema:"monster progression"`
	Unlocked        []UnlockResult  `json:"unlocked" jsonschema:"achievements granted by this battle"`
}

// MonsterListInput represents the MCP tool input for listing a roster.
type MonsterListInput struct {
	PlayerID string `json:"player_id" jsonschema:"player identifier"`
}

// MonsterListResult is a trainer's roster.
type MonsterListResult struct {
	Monsters []MonsterResult `json:"monsters" jsonschema:"owned monsters"`
}

// MonsterRenameInput represents the MCP tool input for renaming a monster.
type MonsterRenameInput struct {
	PlayerID  string `json:"player_id" jsonschema:"owner identifier"`
	MonsterID string `json:"monster_id" jsonschema:"monster identifier"`
	Nickname  string `json:"nickname" jsonschema:"new nickname"`
}

// MonsterReleaseInput represents the MCP tool input for releasing a monster.
type MonsterReleaseInput struct {
	PlayerID  string `json:"player_id" jsonschema:"owner identifier"`
	MonsterID string `json:"monster_id" jsonschema:"monster identifier"`
}

// MonsterReleaseResult confirms a release.
type MonsterReleaseResult struct {
	MonsterID string `json:"monster_id" jsonschema:"released monster"`
	Nickname  string `json:"nickname" jsonschema:"released monster nickname"`
}

// BattleHistoryInput represents the MCP tool input for listing battles.
type BattleHistoryInput struct {
	PlayerID  string `json:"player_id" jsonschema:"player identifier"`
	Filter    string `json:"filter,omitempty" jsonschema:"AIP-160 filter over mode, winner_id, result and ts"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum battles to return"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous call"`
}

// BattleRecordResult is one battle history row.
type BattleRecordResult struct {
	ID         string `json:"id" jsonschema:"battle identifier"`
	Mode       string `json:"mode" jsonschema:"battle mode"`
	Opponent   string `json:"opponent,omitempty" jsonschema:"opposing player, if any"`
	Result     string `json:"result" jsonschema:"victory or defeat for the challenger"`
	WinnerID   string `json:"winner_id,omitempty" jsonschema:"winning player, if any"`
	RewardXP   int    `json:"reward_xp" jsonschema:"experience awarded"`
	RewardGold int    `json:"reward_gold" jsonschema:"gold awarded"`
	CreatedAt  string `json:"created_at" jsonschema:"RFC3339 battle time"`
}

// BattleHistoryResult is a page of battles.
type BattleHistoryResult struct {
	Battles       []BattleRecordResult `json:"battles" jsonschema:"battles, newest first"`
	NextPageToken string               `json:"next_page_token,omitempty" jsonschema:"token for the next page"`
}

// LeaderboardInput represents the MCP tool input for rankings.
type LeaderboardInput struct {
	Kind  string `json:"kind" jsonschema:"monsters or wins"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum rows"`
}

// LeaderboardEntryResult is one ranked row.
type LeaderboardEntryResult struct {
	Rank       int    `json:"rank" jsonschema:"1-based rank"`
	PlayerID   string `json:"player_id" jsonschema:"player identifier"`
	PlayerName string `json:"player_name" jsonschema:"player name"`
	Level      int    `json:"level" jsonschema:"player level"`
	Score      int    `json:"score" jsonschema:"monsters caught or battles won"`
}

// LeaderboardResult is a ranking.
type LeaderboardResult struct {
	Kind    string                   `json:"kind" jsonschema:"ranking kind"`
	Entries []LeaderboardEntryResult `json:"entries" jsonschema:"ranked players"`
}

// PlayerRegisterTool defines the MCP tool schema for registering a trainer.
func PlayerRegisterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "player_register",
		Description: "Registers a new trainer with a unique name",
	}
}

// PlayerProfileTool defines the MCP tool schema for reading a profile.
func PlayerProfileTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "player_profile",
		Description: "Returns a trainer's level, gold, roster size, wins and achievements",
	}
}

// ExploreTool defines the MCP tool schema for finding a wild monster.
func ExploreTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "explore",
		Description: "Encounters a random wild species weighted by rarity",
	}
}

// CatchTool defines the MCP tool schema for catching a monster.
func CatchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "catch",
		Description: "Attempts to catch a species; rarer species are harder to catch",
	}
}

// BattleWildTool defines the MCP tool schema for a wild battle.
func BattleWildTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "battle_wild",
		Description: "Battles the player's lead monster against a wild monster",
	}
}

// BattleGymTool defines the MCP tool schema for a gym battle.
func BattleGymTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "battle_gym",
		Description: "Battles the player's roster against a stronger gym team for double rewards",
	}
}

// BattleAITool defines the MCP tool schema for a battle against the bot team.
func BattleAITool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "battle_ai",
		Description: "Battles the player's roster against the bot team",
	}
}

// BattlePlayerTool defines the MCP tool schema for a battle between trainers.
func BattlePlayerTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "battle_player",
		Description: "Battles two trainers' rosters against each other",
	}
}

// MonsterListTool defines the MCP tool schema for listing a roster.
func MonsterListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "monster_list",
		Description: "Lists a trainer's monsters",
	}
}

// MonsterRenameTool defines the MCP tool schema for renaming a monster.
func MonsterRenameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "monster_rename",
		Description: "Sets a new nickname on an owned monster",
	}
}

// MonsterReleaseTool defines the MCP tool schema for releasing a monster.
func MonsterReleaseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "monster_release",
		Description: "Releases an owned monster back into the wild",
	}
}

// BattleHistoryTool defines the MCP tool schema for listing battles.
func BattleHistoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "battle_history",
		Description: "Lists a trainer's battles, newest first, with optional filtering and paging",
	}
}

// LeaderboardTool defines the MCP tool schema for rankings.
func LeaderboardTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "leaderboard",
		Description: "Ranks trainers by monsters caught or battles won",
	}
}
