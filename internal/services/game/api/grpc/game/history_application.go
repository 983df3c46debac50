package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

// Leaderboard kinds.
const (
	LeaderboardMonsters = "monsters"
	LeaderboardWins     = "wins"
)

type historyApplication struct {
	repo storage.Repository
}

func newHistoryApplication(service *GameService) historyApplication {
	return historyApplication{repo: service.repo}
}

func (a historyApplication) Battles(ctx context.Context, playerID, filter string, pageSize int, pageToken string) (storage.BattlePage, error) {
	if _, err := a.repo.GetPlayerByID(ctx, playerID); err != nil {
		return storage.BattlePage{}, lookupErr(err, "player", playerID)
	}
	page, err := a.repo.ListBattles(ctx, playerID, filter, pageSize, pageToken)
	if err != nil {
		if apperrors.GetCode(err) != apperrors.CodeUnknown {
			return storage.BattlePage{}, err
		}
		return storage.BattlePage{}, fmt.Errorf("list battles: %w", err)
	}
	return page, nil
}

func (a historyApplication) Leaderboard(ctx context.Context, kind string, limit int) (string, []storage.LeaderboardEntry, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = LeaderboardMonsters
	}
	var (
		entries []storage.LeaderboardEntry
		err     error
	)
	switch kind {
	case LeaderboardMonsters:
		entries, err = a.repo.LeaderboardByMonsters(ctx, limit)
	case LeaderboardWins:
		entries, err = a.repo.LeaderboardByWins(ctx, limit)
	default:
		return "", nil, apperrors.InvalidInput("kind", "must be monsters or wins")
	}
	if err != nil {
		return "", nil, fmt.Errorf("leaderboard %s: %w", kind, err)
	}
	return kind, entries, nil
}

func (a historyApplication) Achievements(ctx context.Context, playerID string) ([]Achievement, error) {
	defs, err := a.repo.ListAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	unlockedAt := map[string]time.Time{}
	if playerID != "" {
		if _, err := a.repo.GetPlayerByID(ctx, playerID); err != nil {
			return nil, lookupErr(err, "player", playerID)
		}
		unlocks, err := a.repo.ListPlayerAchievements(ctx, playerID)
		if err != nil {
			return nil, fmt.Errorf("list player achievements: %w", err)
		}
		for _, unlock := range unlocks {
			unlockedAt[unlock.Achievement.ID] = unlock.UnlockedAt
		}
	}

	out := make([]Achievement, 0, len(defs))
	for _, def := range defs {
		item := achievementToMessage(def)
		if at, ok := unlockedAt[def.ID]; ok {
			at := at
			item.UnlockedAt = &at
		}
		out = append(out, item)
	}
	return out, nil
}
