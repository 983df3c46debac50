package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

// maxPlayerNameLength caps player names in runes.
const maxPlayerNameLength = 32

type playerApplication struct {
	repo        storage.Repository
	clock       func() time.Time
	idGenerator func() (string, error)
}

func newPlayerApplication(service *GameService) playerApplication {
	return playerApplication{
		repo:        service.repo,
		clock:       service.clock,
		idGenerator: service.idGenerator,
	}
}

type playerProfile struct {
	player       storage.PlayerRecord
	monsterCount int
	wins         int
	achievements []storage.AchievementUnlock
}

func normalizePlayerName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperrors.InvalidInput("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > maxPlayerNameLength {
		return "", apperrors.InvalidInput("name", "must be at most 32 characters")
	}
	return name, nil
}

func (a playerApplication) Register(ctx context.Context, rawName string) (storage.PlayerRecord, error) {
	name, err := normalizePlayerName(rawName)
	if err != nil {
		return storage.PlayerRecord{}, err
	}
	playerID, err := a.idGenerator()
	if err != nil {
		return storage.PlayerRecord{}, fmt.Errorf("generate player id: %w", err)
	}
	player := storage.PlayerRecord{
		ID:        playerID,
		Name:      name,
		Level:     1,
		CreatedAt: a.clock(),
	}
	if err := a.repo.SavePlayer(ctx, player); err != nil {
		if errors.Is(err, storage.ErrPlayerNameTaken) {
			return storage.PlayerRecord{}, apperrors.WithMetadata(apperrors.CodePlayerNameTaken, "player name already taken", map[string]string{
				"Name": name,
			})
		}
		return storage.PlayerRecord{}, fmt.Errorf("save player: %w", err)
	}
	return player, nil
}

func (a playerApplication) Profile(ctx context.Context, playerID, playerName string) (playerProfile, error) {
	var (
		player storage.PlayerRecord
		err    error
	)
	if playerID != "" {
		player, err = a.repo.GetPlayerByID(ctx, playerID)
		if err != nil {
			return playerProfile{}, lookupErr(err, "player", playerID)
		}
	} else {
		player, err = a.repo.GetPlayerByName(ctx, playerName)
		if err != nil {
			return playerProfile{}, lookupErr(err, "player", playerName)
		}
	}

	count, err := a.repo.CountCaughtMonsters(ctx, player.ID)
	if err != nil {
		return playerProfile{}, fmt.Errorf("count monsters: %w", err)
	}
	wins, err := a.repo.CountBattleWins(ctx, player.ID)
	if err != nil {
		return playerProfile{}, fmt.Errorf("count wins: %w", err)
	}
	unlocks, err := a.repo.ListPlayerAchievements(ctx, player.ID)
	if err != nil {
		return playerProfile{}, fmt.Errorf("list achievements: %w", err)
	}
	return playerProfile{player: player, monsterCount: count, wins: wins, achievements: unlocks}, nil
}
