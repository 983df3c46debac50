package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/monsterdex/internal/platform/grpc/pagination"
	"github.com/louisbranch/monsterdex/internal/services/game/core/filter"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

const battleColumns = `id, mode, participant1_id, participant2_id, winner_id, outcome, reward_xp, reward_gold, created_at`

func scanBattle(row interface{ Scan(...any) error }) (storage.BattleRecord, error) {
	var (
		b         storage.BattleRecord
		p2        sql.NullString
		winner    sql.NullString
		createdAt int64
	)
	if err := row.Scan(&b.ID, &b.Mode, &b.Participant1, &p2, &winner, &b.Outcome, &b.RewardXP, &b.RewardGold, &createdAt); err != nil {
		return storage.BattleRecord{}, err
	}
	b.Participant2 = fromNullString(p2)
	b.WinnerID = fromNullString(winner)
	b.CreatedAt = fromMillis(createdAt)
	return b, nil
}

// SaveBattle appends a battle record. Records are write-once.
func (s *Store) SaveBattle(ctx context.Context, b storage.BattleRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := requireID("battle", b.ID); err != nil {
		return err
	}
	if err := requireID("participant", b.Participant1); err != nil {
		return err
	}
	_, err := s.q.ExecContext(ctx, `INSERT INTO battles (`+battleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Mode, b.Participant1, toNullString(b.Participant2), toNullString(b.WinnerID),
		b.Outcome, b.RewardXP, b.RewardGold, toMillis(b.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save battle: %w", err)
	}
	return nil
}

// CountBattleWins counts battles the player won.
func (s *Store) CountBattleWins(ctx context.Context, playerID string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM battles WHERE winner_id = ?`, playerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count battle wins: %w", err)
	}
	return count, nil
}

// ListBattles pages through the player's battles, newest first.
func (s *Store) ListBattles(ctx context.Context, playerID, filterStr string, pageSize int, pageToken string) (storage.BattlePage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.BattlePage{}, err
	}
	if err := requireID("player", playerID); err != nil {
		return storage.BattlePage{}, err
	}
	parsed, err := filter.ParseBattleFilter(filterStr)
	if err != nil {
		return storage.BattlePage{}, err
	}
	offset, err := storage.DecodePageToken(pageToken)
	if err != nil {
		return storage.BattlePage{}, err
	}
	size := pagination.ClampPageSize(pageSize, pagination.Battles)

	var b strings.Builder
	b.WriteString(`SELECT ` + battleColumns + ` FROM battles WHERE (participant1_id = ? OR participant2_id = ?)`)
	params := []any{playerID, playerID}
	if !parsed.Empty() {
		b.WriteString(" AND ")
		b.WriteString(parsed.SQL.Clause)
		params = append(params, parsed.SQL.Params...)
	}
	b.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	params = append(params, size+1, offset)

	rows, err := s.q.QueryContext(ctx, b.String(), params...)
	if err != nil {
		return storage.BattlePage{}, fmt.Errorf("list battles: %w", err)
	}
	defer rows.Close()

	var out []storage.BattleRecord
	for rows.Next() {
		record, err := scanBattle(rows)
		if err != nil {
			return storage.BattlePage{}, fmt.Errorf("scan battle: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return storage.BattlePage{}, fmt.Errorf("read battles: %w", err)
	}

	page := storage.BattlePage{Battles: out}
	if len(out) > size {
		page.Battles = out[:size]
		page.NextPageToken = storage.EncodePageToken(offset + size)
	}
	return page, nil
}
