package domain

import (
	"context"
	"fmt"

	gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

// PlayerRegisterHandler executes a player registration request.
func PlayerRegisterHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[PlayerRegisterInput, PlayerResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlayerRegisterInput) (*mcp.CallToolResult, PlayerResult, error) {
		inv, err := newInvocation(ctx)
		if err != nil {
			return nil, PlayerResult{}, err
		}
		defer inv.cancel()

		response, err := client.RegisterPlayer(inv.ctx, &gamegrpc.RegisterPlayerRequest{Name: input.Name}, inv.callOption())
		if err != nil {
			return nil, PlayerResult{}, fmt.Errorf("player register failed: %w", err)
		}
		return inv.result(), playerResult(response.Player), nil
	}
}

// PlayerProfileHandler executes a profile lookup.
func PlayerProfileHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[PlayerProfileInput, PlayerProfileResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlayerProfileInput) (*mcp.CallToolResult, PlayerProfileResult, error) {
		inv, err := newInvocation(ctx)
		if err != nil {
			return nil, PlayerProfileResult{}, err
		}
		defer inv.cancel()

		response, err := client.GetProfile(inv.ctx, &gamegrpc.GetProfileRequest{
			PlayerID:   input.PlayerID,
			PlayerName: input.PlayerName,
		}, inv.callOption())
		if err != nil {
			return nil, PlayerProfileResult{}, fmt.Errorf("player profile failed: %w", err)
		}
		return inv.result(), PlayerProfileResult{
			Player:       playerResult(response.Player),
			MonsterCount: response.MonsterCount,
			Wins:         response.Wins,
			Achievements: achievementResults(response.Achievements),
		}, nil
	}
}

// ExploreHandler executes a wild encounter.
func ExploreHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[ExploreInput, ExploreResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExploreInput) (*mcp.CallToolResult, ExploreResult, error) {
		inv, err := newInvocation(ctx)
		if err != nil {
			return nil, ExploreResult{}, err
		}
		defer inv.cancel()

		response, err := client.Explore(inv.ctx, &gamegrpc.ExploreRequest{PlayerID: input.PlayerID}, inv.callOption())
		if err != nil {
			return nil, ExploreResult{}, fmt.Errorf("explore failed: %w", err)
		}
		return inv.result(), ExploreResult{Species: speciesResult(response.Species), Level: response.Level}, nil
	}
}

// CatchHandler executes a catch attempt.
func CatchHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[CatchInput, CatchResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CatchInput) (*mcp.CallToolResult, CatchResult, error) {
		inv, err := newInvocation(ctx)
		if err != nil {
			return nil, CatchResult{}, err
		}
		defer inv.cancel()

		response, err := client.Catch(inv.ctx, &gamegrpc.CatchRequest{
			PlayerID:  input.PlayerID,
			SpeciesID: input.SpeciesID,
		}, inv.callOption())
		if err != nil {
			return nil, CatchResult{}, fmt.Errorf("catch failed: %w", err)
		}
		result := CatchResult{
			Success:  response.Success,
			Chance:   response.Chance,
			Unlocked: unlockResults(response.Unlocked),
		}
		if response.Monster != nil {
			monster := monsterResult(*response.Monster)
			result.Monster = &monster
		}
		return inv.result(), result, nil
	}
}

type battleCall func(context.Context, *gamegrpc.BattleRequest, ...grpc.CallOption) (*gamegrpc.BattleResponse, error)

func runBattle(ctx context.Context, name string, request *gamegrpc.BattleRequest, call battleCall) (*mcp.CallToolResult, BattleResult, error) {
	inv, err := newInvocation(ctx)
	if err != nil {
		return nil, BattleResult{}, err
	}
	defer inv.cancel()

	response, err := call(inv.ctx, request, inv.callOption())
	if err != nil {
		return nil, BattleResult{}, fmt.Errorf("%s failed: %w", name, err)
	}
	return inv.result(), battleResult(response), nil
}

// BattleWildHandler executes a wild battle.
func BattleWildHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[BattleWildInput, BattleResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BattleWildInput) (*mcp.CallToolResult, BattleResult, error) {
		request := &gamegrpc.BattleRequest{
			PlayerID:   input.PlayerID,
			SpeciesID:  input.SpeciesID,
			Resolution: input.Resolution,
		}
		return runBattle(ctx, "battle wild", request, client.BattleWild)
	}
}

// BattleGymHandler executes a gym battle.
func BattleGymHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[BattleInput, BattleResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BattleInput) (*mcp.CallToolResult, BattleResult, error) {
		request := &gamegrpc.BattleRequest{PlayerID: input.PlayerID, Resolution: input.Resolution}
		return runBattle(ctx, "battle gym", request, client.BattleGym)
	}
}

// BattleAIHandler executes a battle against the bot team.
func BattleAIHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[BattleInput, BattleResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BattleInput) (*mcp.CallToolResult, BattleResult, error) {
		request := &gamegrpc.BattleRequest{PlayerID: input.PlayerID, Resolution: input.Resolution}
		return runBattle(ctx, "battle ai", request, client.BattleAI)
	}
}

// BattlePlayerHandler executes a battle between two trainers.
func BattlePlayerHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[BattlePlayerInput, BattleResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BattlePlayerInput) (*mcp.CallToolResult, BattleResult, error) {
		request := &gamegrpc.BattleRequest{
			PlayerID:   input.PlayerID,
			OpponentID: input.OpponentID,
			Resolution: input.Resolution,
		}
		return runBattle(ctx, "battle player", request, client.BattlePlayer)
	}
}

// MonsterListHandler lists a trainer's roster.
func MonsterListHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[MonsterListInput, MonsterListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MonsterListInput) (*mcp.CallToolResult, MonsterListResult, error) {
		inv, err := newInvocation(ctx)
		if err != nil {
			return nil, MonsterListResult{}, err
		}
		defer inv.cancel()

		response, err := client.ListMonsters(inv.ctx, &gamegrpc.ListMonstersRequest{PlayerID: input.PlayerID}, inv.callOption())
		if err != nil {
			return nil, MonsterListResult{}, fmt.Errorf("monster list failed: %w", err)
		}
		monsters := make([]MonsterResult, 0, len(response.Monsters))
		for _, monster := range response.Monsters {
			monsters = append(monsters, monsterResult(monster))
		}
		return inv.result(), MonsterListResult{Monsters: monsters}, nil
	}
}

// MonsterRenameHandler renames an owned monster.
func MonsterRenameHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[MonsterRenameInput, MonsterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MonsterRenameInput) (*mcp.CallToolResult, MonsterResult, error) {
		inv, err := newInvocation(ctx)
		if err != nil {
			return nil, MonsterResult{}, err
		}
		defer inv.cancel()

		response, err := client.RenameMonster(inv.ctx, &gamegrpc.RenameMonsterRequest{
			PlayerID:  input.PlayerID,
			MonsterID: input.MonsterID,
			Nickname:  input.Nickname,
		}, inv.callOption())
		if err != nil {
			return nil, MonsterResult{}, fmt.Errorf("monster rename failed: %w", err)
		}
		return inv.result(), monsterResult(response.Monster), nil
	}
}

// MonsterReleaseHandler releases an owned monster.
func MonsterReleaseHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[MonsterReleaseInput, MonsterReleaseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MonsterReleaseInput) (*mcp.CallToolResult, MonsterReleaseResult, error) {
		inv, err := newInvocation(ctx)
		if err != nil {
			return nil, MonsterReleaseResult{}, err
		}
		defer inv.cancel()

		response, err := client.ReleaseMonster(inv.ctx, &gamegrpc.ReleaseMonsterRequest{
			PlayerID:  input.PlayerID,
			MonsterID: input.MonsterID,
		}, inv.callOption())
		if err != nil {
			return nil, MonsterReleaseResult{}, fmt.Errorf("monster release failed: %w", err)
		}
		return inv.result(), MonsterReleaseResult{MonsterID: response.MonsterID, Nickname: response.Nickname}, nil
	}
}

// BattleHistoryHandler pages a trainer's battles.
func BattleHistoryHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[BattleHistoryInput, BattleHistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BattleHistoryInput) (*mcp.CallToolResult, BattleHistoryResult, error) {
		inv, err := newInvocation(ctx)
		if err != nil {
			return nil, BattleHistoryResult{}, err
		}
		defer inv.cancel()

		response, err := client.ListBattles(inv.ctx, &gamegrpc.ListBattlesRequest{
			PlayerID:  input.PlayerID,
			Filter:    input.Filter,
			PageSize:  input.PageSize,
			PageToken: input.PageToken,
		}, inv.callOption())
		if err != nil {
			return nil, BattleHistoryResult{}, fmt.Errorf("battle history failed: %w", err)
		}
		battles := make([]BattleRecordResult, 0, len(response.Battles))
		for _, record := range response.Battles {
			battles = append(battles, battleRecordResult(input.PlayerID, record))
		}
		return inv.result(), BattleHistoryResult{Battles: battles, NextPageToken: response.NextPageToken}, nil
	}
}

// LeaderboardHandler ranks trainers.
func LeaderboardHandler(client gamegrpc.GameServiceClient) mcp.ToolHandlerFor[LeaderboardInput, LeaderboardResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LeaderboardInput) (*mcp.CallToolResult, LeaderboardResult, error) {
		inv, err := newInvocation(ctx)
		if err != nil {
			return nil, LeaderboardResult{}, err
		}
		defer inv.cancel()

		response, err := client.Leaderboard(inv.ctx, &gamegrpc.LeaderboardRequest{Kind: input.Kind, Limit: input.Limit}, inv.callOption())
		if err != nil {
			return nil, LeaderboardResult{}, fmt.Errorf("leaderboard failed: %w", err)
		}
		entries := make([]LeaderboardEntryResult, 0, len(response.Entries))
		for _, entry := range response.Entries {
			entries = append(entries, LeaderboardEntryResult{
				Rank:       entry.Rank,
				PlayerID:   entry.PlayerID,
				PlayerName: entry.PlayerName,
				Level:      entry.Level,
				Score:      entry.Score,
			})
		}
		return inv.result(), LeaderboardResult{Kind: response.Kind, Entries: entries}, nil
	}
}

func battleResult(response *gamegrpc.BattleResponse) BattleResult {
	result := BattleResult{
		BattleID:   response.BattleID,
		Mode:       response.Mode,
		Resolution: response.Resolution,
		Result:     response.Result,
		WinnerID:   response.WinnerID,
		RewardXP:   response.RewardXP,
		RewardGold: response.RewardGold,
		Unlocked:   unlockResults(response.Unlocked),
	}
	for _, turn := range response.Turns {
		result.Turns = append(result.Turns, TurnResult{
			Attacker:   turn.Attacker,
			Defender:   turn.Defender,
			Move:       turn.Move,
			Damage:     turn.Damage,
			Multiplier: turn.Multiplier,
			DefenderHP: turn.DefenderHP,
		})
	}
	if up := response.PlayerLevelUp; up != nil {
		result.PlayerLevelUp = &LevelUpResult{ID: up.ID, Name: up.Name, NewLevel: up.NewLevel, Gained: up.LevelsGained}
	}
	for _, up := range response.MonsterLevelUps {
		result.MonsterLevelUps = append(result.MonsterLevelUps, LevelUpResult{
			ID:       up.ID,
			Name:     up.Name,
			NewLevel: up.NewLevel,
			Gained:   up.LevelsGained,
		})
	}
	return result
}

// battleRecordResult names the other trainer from the caller's point of view.
func battleRecordResult(playerID string, record gamegrpc.BattleRecord) BattleRecordResult {
	opponent := record.Participant2
	if opponent == playerID {
		opponent = record.Participant1
	}
	return BattleRecordResult{
		ID:         record.ID,
		Mode:       record.Mode,
		Opponent:   opponent,
		Result:     record.Result,
		WinnerID:   record.WinnerID,
		RewardXP:   record.RewardXP,
		RewardGold: record.RewardGold,
		CreatedAt:  formatTime(record.CreatedAt),
	}
}
