package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

// GetUnlockedAchievementConditions lists the condition codes a player holds.
func (s *Store) GetUnlockedAchievementConditions(ctx context.Context, playerID string) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(ctx, `
SELECT a.condition_code
FROM player_achievements pa
JOIN achievements a ON a.id = pa.achievement_id
WHERE pa.player_id = ?
ORDER BY pa.unlocked_at, a.condition_code`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list unlocked conditions: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan unlocked condition: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// UnlockAchievement grants the achievement bound to conditionCode. The
// composite key makes repeated unlocks a no-op.
func (s *Store) UnlockAchievement(ctx context.Context, playerID, conditionCode string, unlockedAt time.Time) (achievement.Definition, bool, error) {
	if err := s.ready(ctx); err != nil {
		return achievement.Definition{}, false, err
	}
	if err := requireID("player", playerID); err != nil {
		return achievement.Definition{}, false, err
	}

	var def achievement.Definition
	err := s.q.QueryRowContext(ctx,
		`SELECT id, name, description, condition_code FROM achievements WHERE condition_code = ?`, conditionCode,
	).Scan(&def.ID, &def.Name, &def.Description, &def.ConditionCode)
	if err != nil {
		return achievement.Definition{}, false, notFoundOr(err, "get achievement")
	}

	result, err := s.q.ExecContext(ctx, `
INSERT INTO player_achievements (player_id, achievement_id, unlocked_at) VALUES (?, ?, ?)
ON CONFLICT(player_id, achievement_id) DO NOTHING`,
		playerID, def.ID, toMillis(unlockedAt),
	)
	if err != nil {
		return achievement.Definition{}, false, fmt.Errorf("unlock achievement: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return achievement.Definition{}, false, fmt.Errorf("unlock achievement rows affected: %w", err)
	}
	return def, affected > 0, nil
}

// ListPlayerAchievements returns the player's unlocks in unlock order.
func (s *Store) ListPlayerAchievements(ctx context.Context, playerID string) ([]storage.AchievementUnlock, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(ctx, `
SELECT a.id, a.name, a.description, a.condition_code, pa.unlocked_at
FROM player_achievements pa
JOIN achievements a ON a.id = pa.achievement_id
WHERE pa.player_id = ?
ORDER BY pa.unlocked_at, a.id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list player achievements: %w", err)
	}
	defer rows.Close()

	var out []storage.AchievementUnlock
	for rows.Next() {
		var (
			unlock storage.AchievementUnlock
			at     int64
		)
		if err := rows.Scan(&unlock.Achievement.ID, &unlock.Achievement.Name, &unlock.Achievement.Description, &unlock.Achievement.ConditionCode, &at); err != nil {
			return nil, fmt.Errorf("scan player achievement: %w", err)
		}
		unlock.UnlockedAt = fromMillis(at)
		out = append(out, unlock)
	}
	return out, rows.Err()
}
