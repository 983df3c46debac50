package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/monsterdex/internal/platform/id"
	"github.com/louisbranch/monsterdex/internal/random"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/battle"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("monsterdex/game")

// Options tunes a GameService. Zero values use defaults.
type Options struct {
	// Resolution is used when a battle request leaves it empty.
	Resolution  battle.Resolution
	Clock       func() time.Time
	IDGenerator func() (string, error)
}

// GameService implements GameServiceServer on top of a repository and an
// injected RNG.
type GameService struct {
	repo        storage.Repository
	rng         random.RNG
	clock       func() time.Time
	idGenerator func() (string, error)
	resolution  battle.Resolution
	locks       *playerLocks
	evaluator   *achievement.Evaluator
}

var _ GameServiceServer = (*GameService)(nil)

// NewGameService wires the game use cases.
func NewGameService(repo storage.Repository, rng random.RNG, opts Options) (*GameService, error) {
	if repo == nil {
		return nil, fmt.Errorf("game repository is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("game rng is required")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = id.NewID
	}
	if opts.Resolution == "" {
		opts.Resolution = battle.ResolutionTurns
	}
	clock := opts.Clock
	return &GameService{
		repo:        repo,
		rng:         rng,
		clock:       func() time.Time { return clock().UTC() },
		idGenerator: opts.IDGenerator,
		resolution:  opts.Resolution,
		locks:       newPlayerLocks(),
		evaluator:   achievement.NewEvaluator(func() time.Time { return clock().UTC() }),
	}, nil
}

// RegisterPlayer creates a trainer with a unique name.
func (s *GameService) RegisterPlayer(ctx context.Context, in *RegisterPlayerRequest) (*RegisterPlayerResponse, error) {
	ctx, span := startSpan(ctx, "RegisterPlayer")
	defer span.End()

	if in == nil {
		return nil, endSpan(span, requiredField("name"))
	}
	player, err := newPlayerApplication(s).Register(ctx, in.Name)
	if err != nil {
		return nil, endSpan(span, err)
	}
	return &RegisterPlayerResponse{Player: playerToMessage(player)}, nil
}

// GetProfile returns a player with collection and achievement summaries.
func (s *GameService) GetProfile(ctx context.Context, in *GetProfileRequest) (*GetProfileResponse, error) {
	ctx, span := startSpan(ctx, "GetProfile")
	defer span.End()

	if in == nil || (strings.TrimSpace(in.PlayerID) == "" && strings.TrimSpace(in.PlayerName) == "") {
		return nil, endSpan(span, requiredField("player_id"))
	}
	profile, err := newPlayerApplication(s).Profile(ctx, strings.TrimSpace(in.PlayerID), strings.TrimSpace(in.PlayerName))
	if err != nil {
		return nil, endSpan(span, err)
	}
	return profileToMessage(profile), nil
}

// Explore draws a random species encounter.
func (s *GameService) Explore(ctx context.Context, in *ExploreRequest) (*ExploreResponse, error) {
	ctx, span := startSpan(ctx, "Explore")
	defer span.End()

	playerID, err := requirePlayerID(in.GetPlayerID())
	if err != nil {
		return nil, endSpan(span, err)
	}
	species, err := newCatchApplication(s).Explore(ctx, playerID)
	if err != nil {
		return nil, endSpan(span, err)
	}
	return &ExploreResponse{Species: speciesToMessage(species), Level: species.BaseLevel}, nil
}

// Catch attempts to catch a species for the player.
func (s *GameService) Catch(ctx context.Context, in *CatchRequest) (*CatchResponse, error) {
	ctx, span := startSpan(ctx, "Catch")
	defer span.End()

	if in == nil {
		return nil, endSpan(span, requiredField("player_id"))
	}
	playerID, err := requirePlayerID(in.PlayerID)
	if err != nil {
		return nil, endSpan(span, err)
	}
	speciesID := strings.TrimSpace(in.SpeciesID)
	if speciesID == "" {
		return nil, endSpan(span, requiredField("species_id"))
	}
	span.SetAttributes(attribute.String("monsterdex.species_id", speciesID))

	result, err := newCatchApplication(s).Catch(ctx, playerID, speciesID)
	if err != nil {
		return nil, endSpan(span, err)
	}
	span.SetAttributes(attribute.Bool("monsterdex.catch.success", result.Success))
	return catchToMessage(result), nil
}

// BattleWild fights a wild species at its base level.
func (s *GameService) BattleWild(ctx context.Context, in *BattleRequest) (*BattleResponse, error) {
	return s.battle(ctx, battle.ModeWild, in)
}

// BattlePlayer fights another player's roster.
func (s *GameService) BattlePlayer(ctx context.Context, in *BattleRequest) (*BattleResponse, error) {
	return s.battle(ctx, battle.ModePlayer, in)
}

// BattleGym fights the gym leader.
func (s *GameService) BattleGym(ctx context.Context, in *BattleRequest) (*BattleResponse, error) {
	return s.battle(ctx, battle.ModeGym, in)
}

// BattleAI fights the bot team with the full roster.
func (s *GameService) BattleAI(ctx context.Context, in *BattleRequest) (*BattleResponse, error) {
	return s.battle(ctx, battle.ModeAI, in)
}

func (s *GameService) battle(ctx context.Context, mode battle.Mode, in *BattleRequest) (*BattleResponse, error) {
	ctx, span := startSpan(ctx, "Battle")
	defer span.End()
	span.SetAttributes(attribute.String("monsterdex.battle.mode", string(mode)))

	if in == nil {
		return nil, endSpan(span, requiredField("player_id"))
	}
	playerID, err := requirePlayerID(in.PlayerID)
	if err != nil {
		return nil, endSpan(span, err)
	}
	resolution := s.resolution
	if strings.TrimSpace(in.Resolution) != "" {
		resolution, err = battle.ParseResolution(in.Resolution)
		if err != nil {
			return nil, endSpan(span, err)
		}
	}
	opponentID := strings.TrimSpace(in.OpponentID)
	if mode == battle.ModePlayer && opponentID == "" {
		return nil, endSpan(span, requiredField("opponent_id"))
	}

	result, err := newBattleApplication(s).Fight(ctx, battleInput{
		Mode:       mode,
		Resolution: resolution,
		PlayerID:   playerID,
		OpponentID: opponentID,
		SpeciesID:  strings.TrimSpace(in.SpeciesID),
	})
	if err != nil {
		return nil, endSpan(span, err)
	}
	span.SetAttributes(attribute.String("monsterdex.battle.result", result.Outcome.ResultLabel))
	return battleToMessage(result), nil
}

// ListMonsters returns the player's collection.
func (s *GameService) ListMonsters(ctx context.Context, in *ListMonstersRequest) (*ListMonstersResponse, error) {
	ctx, span := startSpan(ctx, "ListMonsters")
	defer span.End()

	playerID, err := requirePlayerID(in.GetPlayerID())
	if err != nil {
		return nil, endSpan(span, err)
	}
	monsters, err := newMonsterApplication(s).List(ctx, playerID)
	if err != nil {
		return nil, endSpan(span, err)
	}
	out := &ListMonstersResponse{Monsters: make([]Monster, 0, len(monsters))}
	for _, m := range monsters {
		out.Monsters = append(out.Monsters, monsterToMessage(m.monster, m.species))
	}
	return out, nil
}

// RenameMonster changes a monster's nickname.
func (s *GameService) RenameMonster(ctx context.Context, in *RenameMonsterRequest) (*RenameMonsterResponse, error) {
	ctx, span := startSpan(ctx, "RenameMonster")
	defer span.End()

	if in == nil {
		return nil, endSpan(span, requiredField("player_id"))
	}
	playerID, err := requirePlayerID(in.PlayerID)
	if err != nil {
		return nil, endSpan(span, err)
	}
	monsterID := strings.TrimSpace(in.MonsterID)
	if monsterID == "" {
		return nil, endSpan(span, requiredField("monster_id"))
	}
	renamed, err := newMonsterApplication(s).Rename(ctx, playerID, monsterID, in.Nickname)
	if err != nil {
		return nil, endSpan(span, err)
	}
	return &RenameMonsterResponse{Monster: monsterToMessage(renamed.monster, renamed.species)}, nil
}

// ReleaseMonster removes a monster from the player's collection.
func (s *GameService) ReleaseMonster(ctx context.Context, in *ReleaseMonsterRequest) (*ReleaseMonsterResponse, error) {
	ctx, span := startSpan(ctx, "ReleaseMonster")
	defer span.End()

	if in == nil {
		return nil, endSpan(span, requiredField("player_id"))
	}
	playerID, err := requirePlayerID(in.PlayerID)
	if err != nil {
		return nil, endSpan(span, err)
	}
	monsterID := strings.TrimSpace(in.MonsterID)
	if monsterID == "" {
		return nil, endSpan(span, requiredField("monster_id"))
	}
	released, err := newMonsterApplication(s).Release(ctx, playerID, monsterID)
	if err != nil {
		return nil, endSpan(span, err)
	}
	return &ReleaseMonsterResponse{MonsterID: released.ID, Nickname: released.Nickname}, nil
}

// ListBattles pages the player's battle history.
func (s *GameService) ListBattles(ctx context.Context, in *ListBattlesRequest) (*ListBattlesResponse, error) {
	ctx, span := startSpan(ctx, "ListBattles")
	defer span.End()

	if in == nil {
		return nil, endSpan(span, requiredField("player_id"))
	}
	playerID, err := requirePlayerID(in.PlayerID)
	if err != nil {
		return nil, endSpan(span, err)
	}
	page, err := newHistoryApplication(s).Battles(ctx, playerID, in.Filter, in.PageSize, in.PageToken)
	if err != nil {
		return nil, endSpan(span, err)
	}
	out := &ListBattlesResponse{Battles: make([]BattleRecord, 0, len(page.Battles)), NextPageToken: page.NextPageToken}
	for _, record := range page.Battles {
		out.Battles = append(out.Battles, battleRecordToMessage(record))
	}
	return out, nil
}

// Leaderboard ranks players by monsters owned or battles won.
func (s *GameService) Leaderboard(ctx context.Context, in *LeaderboardRequest) (*LeaderboardResponse, error) {
	ctx, span := startSpan(ctx, "Leaderboard")
	defer span.End()

	if in == nil {
		in = &LeaderboardRequest{}
	}
	kind, entries, err := newHistoryApplication(s).Leaderboard(ctx, in.Kind, in.Limit)
	if err != nil {
		return nil, endSpan(span, err)
	}
	out := &LeaderboardResponse{Kind: kind, Entries: make([]LeaderboardEntry, 0, len(entries))}
	for i, entry := range entries {
		out.Entries = append(out.Entries, LeaderboardEntry{
			Rank:       i + 1,
			PlayerID:   entry.PlayerID,
			PlayerName: entry.PlayerName,
			Level:      entry.Level,
			Score:      entry.Score,
		})
	}
	return out, nil
}

// ListAchievements lists definitions with the player's unlocks.
func (s *GameService) ListAchievements(ctx context.Context, in *ListAchievementsRequest) (*ListAchievementsResponse, error) {
	ctx, span := startSpan(ctx, "ListAchievements")
	defer span.End()

	playerID := ""
	if in != nil {
		playerID = strings.TrimSpace(in.PlayerID)
	}
	achievements, err := newHistoryApplication(s).Achievements(ctx, playerID)
	if err != nil {
		return nil, endSpan(span, err)
	}
	return &ListAchievementsResponse{Achievements: achievements}, nil
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "game."+name)
}

func endSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
