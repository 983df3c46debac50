package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

const speciesColumns = `id, name, type, rarity, base_hp, base_attack, base_defense, base_speed, base_level, abilities_json`

func scanSpecies(row interface{ Scan(...any) error }) (creature.Species, error) {
	var (
		species   creature.Species
		rarity    string
		abilities string
	)
	if err := row.Scan(
		&species.ID, &species.Name, &species.Type, &rarity,
		&species.Base.HP, &species.Base.Attack, &species.Base.Defense, &species.Base.Speed,
		&species.BaseLevel, &abilities,
	); err != nil {
		return creature.Species{}, err
	}
	species.Rarity = creature.ParseRarity(rarity)
	if abilities != "" {
		if err := json.Unmarshal([]byte(abilities), &species.Abilities); err != nil {
			return creature.Species{}, fmt.Errorf("decode abilities for %s: %w", species.ID, err)
		}
	}
	return species, nil
}

// GetSpeciesByID fetches a species template.
func (s *Store) GetSpeciesByID(ctx context.Context, id string) (creature.Species, error) {
	if err := s.ready(ctx); err != nil {
		return creature.Species{}, err
	}
	if err := requireID("species", id); err != nil {
		return creature.Species{}, err
	}
	row := s.q.QueryRowContext(ctx, `SELECT `+speciesColumns+` FROM species WHERE id = ?`, id)
	species, err := scanSpecies(row)
	if err != nil {
		return creature.Species{}, notFoundOr(err, "get species")
	}
	return species, nil
}

// ListSpecies returns every species ordered by name.
func (s *Store) ListSpecies(ctx context.Context) ([]creature.Species, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(ctx, `SELECT `+speciesColumns+` FROM species ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	defer rows.Close()

	var out []creature.Species
	for rows.Next() {
		species, err := scanSpecies(rows)
		if err != nil {
			return nil, fmt.Errorf("scan species: %w", err)
		}
		out = append(out, species)
	}
	return out, rows.Err()
}

// PutSpecies upserts a species template.
func (s *Store) PutSpecies(ctx context.Context, species creature.Species) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := requireID("species", species.ID); err != nil {
		return err
	}
	abilities := species.Abilities
	if abilities == nil {
		abilities = []string{}
	}
	encoded, err := json.Marshal(abilities)
	if err != nil {
		return fmt.Errorf("encode abilities: %w", err)
	}
	baseLevel := species.BaseLevel
	if baseLevel < 1 {
		baseLevel = 1
	}
	_, err = s.q.ExecContext(ctx, `
INSERT INTO species (`+speciesColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    type = excluded.type,
    rarity = excluded.rarity,
    base_hp = excluded.base_hp,
    base_attack = excluded.base_attack,
    base_defense = excluded.base_defense,
    base_speed = excluded.base_speed,
    base_level = excluded.base_level,
    abilities_json = excluded.abilities_json`,
		species.ID, species.Name, species.Type, string(species.Rarity),
		species.Base.HP, species.Base.Attack, species.Base.Defense, species.Base.Speed,
		baseLevel, string(encoded),
	)
	if err != nil {
		return fmt.Errorf("put species: %w", err)
	}
	return nil
}

// PutType registers an elemental type name.
func (s *Store) PutType(ctx context.Context, name string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("type name is required")
	}
	if _, err := s.q.ExecContext(ctx, `INSERT INTO types (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
		return fmt.Errorf("put type: %w", err)
	}
	return nil
}

// PutTypeMultiplier upserts one effectiveness row.
func (s *Store) PutTypeMultiplier(ctx context.Context, row storage.TypeMultiplier) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(row.AttackType) == "" || strings.TrimSpace(row.DefendType) == "" {
		return fmt.Errorf("attack and defend types are required")
	}
	_, err := s.q.ExecContext(ctx, `
INSERT INTO type_multipliers (attack_type, defend_type, multiplier) VALUES (?, ?, ?)
ON CONFLICT(attack_type, defend_type) DO UPDATE SET multiplier = excluded.multiplier`,
		row.AttackType, row.DefendType, row.Multiplier,
	)
	if err != nil {
		return fmt.Errorf("put type multiplier: %w", err)
	}
	return nil
}

// LookupTypeMultiplier returns the stored multiplier for a pair, if any.
func (s *Store) LookupTypeMultiplier(ctx context.Context, attackType, defendType string) (float64, bool, error) {
	if err := s.ready(ctx); err != nil {
		return 0, false, err
	}
	var multiplier float64
	err := s.q.QueryRowContext(ctx,
		`SELECT multiplier FROM type_multipliers WHERE attack_type = ? COLLATE NOCASE AND defend_type = ? COLLATE NOCASE`,
		attackType, defendType,
	).Scan(&multiplier)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup type multiplier: %w", err)
	}
	return multiplier, true, nil
}

// PutAchievement upserts an achievement definition keyed by condition code.
func (s *Store) PutAchievement(ctx context.Context, def achievement.Definition) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := requireID("achievement", def.ID); err != nil {
		return err
	}
	if strings.TrimSpace(def.ConditionCode) == "" {
		return fmt.Errorf("achievement condition code is required")
	}
	_, err := s.q.ExecContext(ctx, `
INSERT INTO achievements (id, name, description, condition_code) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    description = excluded.description,
    condition_code = excluded.condition_code`,
		def.ID, def.Name, def.Description, def.ConditionCode,
	)
	if err != nil {
		return fmt.Errorf("put achievement: %w", err)
	}
	return nil
}

// ListAchievements returns every defined achievement.
func (s *Store) ListAchievements(ctx context.Context) ([]achievement.Definition, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(ctx, `SELECT id, name, description, condition_code FROM achievements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var out []achievement.Definition
	for rows.Next() {
		var def achievement.Definition
		if err := rows.Scan(&def.ID, &def.Name, &def.Description, &def.ConditionCode); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		out = append(out, def)
	}
	return out, rows.Err()
}
