package sqlite

import (
	"context"
	"fmt"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

const monsterColumns = `id, player_id, species_id, nickname, level, experience, hp, attack, defense, speed, current_hp, caught_at`

func scanMonster(row interface{ Scan(...any) error }) (creature.Monster, error) {
	var (
		m        creature.Monster
		caughtAt int64
	)
	if err := row.Scan(
		&m.ID, &m.OwnerID, &m.SpeciesID, &m.Nickname, &m.Level, &m.Experience,
		&m.Stats.HP, &m.Stats.Attack, &m.Stats.Defense, &m.Stats.Speed,
		&m.CurrentHP, &caughtAt,
	); err != nil {
		return creature.Monster{}, err
	}
	m.CaughtAt = fromMillis(caughtAt)
	return m, nil
}

// GetMonster fetches one monster.
func (s *Store) GetMonster(ctx context.Context, id string) (creature.Monster, error) {
	if err := s.ready(ctx); err != nil {
		return creature.Monster{}, err
	}
	if err := requireID("monster", id); err != nil {
		return creature.Monster{}, err
	}
	m, err := scanMonster(s.q.QueryRowContext(ctx, `SELECT `+monsterColumns+` FROM monsters WHERE id = ?`, id))
	if err != nil {
		return creature.Monster{}, notFoundOr(err, "get monster")
	}
	return m, nil
}

// GetMonstersByPlayer lists a player's monsters in catch order.
func (s *Store) GetMonstersByPlayer(ctx context.Context, playerID string) ([]creature.Monster, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if err := requireID("player", playerID); err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(ctx, `SELECT `+monsterColumns+` FROM monsters WHERE player_id = ? ORDER BY caught_at, id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list monsters: %w", err)
	}
	defer rows.Close()

	var out []creature.Monster
	for rows.Next() {
		m, err := scanMonster(rows)
		if err != nil {
			return nil, fmt.Errorf("scan monster: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveMonster upserts a monster.
func (s *Store) SaveMonster(ctx context.Context, m creature.Monster) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := requireID("monster", m.ID); err != nil {
		return err
	}
	_, err := s.q.ExecContext(ctx, `
INSERT INTO monsters (`+monsterColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    nickname = excluded.nickname,
    level = excluded.level,
    experience = excluded.experience,
    hp = excluded.hp,
    attack = excluded.attack,
    defense = excluded.defense,
    speed = excluded.speed,
    current_hp = excluded.current_hp`,
		m.ID, m.OwnerID, m.SpeciesID, m.Nickname, m.Level, m.Experience,
		m.Stats.HP, m.Stats.Attack, m.Stats.Defense, m.Stats.Speed,
		m.CurrentHP, toMillis(m.CaughtAt),
	)
	if err != nil {
		return fmt.Errorf("save monster: %w", err)
	}
	return nil
}

// DeleteMonster removes a monster.
func (s *Store) DeleteMonster(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := requireID("monster", id); err != nil {
		return err
	}
	result, err := s.q.ExecContext(ctx, `DELETE FROM monsters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete monster: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete monster rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CountCaughtMonsters counts monsters the player currently owns.
func (s *Store) CountCaughtMonsters(ctx context.Context, playerID string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM monsters WHERE player_id = ?`, playerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count monsters: %w", err)
	}
	return count, nil
}
