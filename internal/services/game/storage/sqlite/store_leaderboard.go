package sqlite

import (
	"context"
	"fmt"

	"github.com/louisbranch/monsterdex/internal/platform/grpc/pagination"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

// LeaderboardByMonsters ranks players by monsters currently owned.
func (s *Store) LeaderboardByMonsters(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error) {
	return s.leaderboard(ctx, `
SELECT p.id, p.name, p.level, COUNT(m.id) AS score
FROM players p
JOIN monsters m ON m.player_id = p.id
GROUP BY p.id
ORDER BY score DESC, p.level DESC, p.name
LIMIT ?`, limit)
}

// LeaderboardByWins ranks players by battles won.
func (s *Store) LeaderboardByWins(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error) {
	return s.leaderboard(ctx, `
SELECT p.id, p.name, p.level, COUNT(b.id) AS score
FROM players p
JOIN battles b ON b.winner_id = p.id
GROUP BY p.id
ORDER BY score DESC, p.level DESC, p.name
LIMIT ?`, limit)
}

func (s *Store) leaderboard(ctx context.Context, query string, limit int) ([]storage.LeaderboardEntry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(ctx, query, pagination.ClampPageSize(limit, pagination.Leaderboard))
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var out []storage.LeaderboardEntry
	for rows.Next() {
		var entry storage.LeaderboardEntry
		if err := rows.Scan(&entry.PlayerID, &entry.PlayerName, &entry.Level, &entry.Score); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
