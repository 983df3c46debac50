package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

const playerColumns = `id, name, level, experience, currency, created_at`

func scanPlayer(row interface{ Scan(...any) error }) (storage.PlayerRecord, error) {
	var (
		player    storage.PlayerRecord
		createdAt int64
	)
	if err := row.Scan(&player.ID, &player.Name, &player.Level, &player.Experience, &player.Currency, &createdAt); err != nil {
		return storage.PlayerRecord{}, err
	}
	player.CreatedAt = fromMillis(createdAt)
	return player, nil
}

// GetPlayerByID fetches a player.
func (s *Store) GetPlayerByID(ctx context.Context, id string) (storage.PlayerRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.PlayerRecord{}, err
	}
	if err := requireID("player", id); err != nil {
		return storage.PlayerRecord{}, err
	}
	player, err := scanPlayer(s.q.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id))
	if err != nil {
		return storage.PlayerRecord{}, notFoundOr(err, "get player")
	}
	return player, nil
}

// GetPlayerByName fetches a player by exact name.
func (s *Store) GetPlayerByName(ctx context.Context, name string) (storage.PlayerRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.PlayerRecord{}, err
	}
	if strings.TrimSpace(name) == "" {
		return storage.PlayerRecord{}, fmt.Errorf("player name is required")
	}
	player, err := scanPlayer(s.q.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE name = ?`, name))
	if err != nil {
		return storage.PlayerRecord{}, notFoundOr(err, "get player by name")
	}
	return player, nil
}

// SavePlayer upserts a player.
func (s *Store) SavePlayer(ctx context.Context, player storage.PlayerRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := requireID("player", player.ID); err != nil {
		return err
	}
	_, err := s.q.ExecContext(ctx, `
INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    level = excluded.level,
    experience = excluded.experience,
    currency = excluded.currency`,
		player.ID, player.Name, player.Level, player.Experience, player.Currency, toMillis(player.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "players.name") {
			return storage.ErrPlayerNameTaken
		}
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}
