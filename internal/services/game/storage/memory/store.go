// Package memory implements the game repository in process memory. It backs
// tests and throwaway scenario runs; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/monsterdex/internal/platform/grpc/pagination"
	"github.com/louisbranch/monsterdex/internal/services/game/core/filter"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

type typePair struct {
	attack string
	defend string
}

type state struct {
	types        map[string]struct{}
	multipliers  map[typePair]float64
	species      map[string]creature.Species
	players      map[string]storage.PlayerRecord
	monsters     map[string]creature.Monster
	battles      []storage.BattleRecord
	achievements map[string]achievement.Definition
	unlocks      map[string]map[string]time.Time
}

func newState() *state {
	return &state{
		types:        map[string]struct{}{},
		multipliers:  map[typePair]float64{},
		species:      map[string]creature.Species{},
		players:      map[string]storage.PlayerRecord{},
		monsters:     map[string]creature.Monster{},
		achievements: map[string]achievement.Definition{},
		unlocks:      map[string]map[string]time.Time{},
	}
}

func (s *state) clone() *state {
	out := &state{
		types:        maps.Clone(s.types),
		multipliers:  maps.Clone(s.multipliers),
		species:      make(map[string]creature.Species, len(s.species)),
		players:      maps.Clone(s.players),
		monsters:     maps.Clone(s.monsters),
		battles:      slices.Clone(s.battles),
		achievements: maps.Clone(s.achievements),
		unlocks:      make(map[string]map[string]time.Time, len(s.unlocks)),
	}
	for id, sp := range s.species {
		sp.Abilities = slices.Clone(sp.Abilities)
		out.species[id] = sp
	}
	for player, held := range s.unlocks {
		out.unlocks[player] = maps.Clone(held)
	}
	return out
}

// Store is an in-memory game repository safe for concurrent use.
type Store struct {
	mu   *sync.Mutex
	st   *state
	inTx bool
}

var _ storage.Repository = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{mu: &sync.Mutex{}, st: newState()}
}

// lock acquires the store mutex unless the caller already holds it inside
// a transaction.
func (s *Store) lock(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.mu == nil || s.st == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if s.inTx {
		return func() {}, nil
	}
	s.mu.Lock()
	return s.mu.Unlock, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// RunInTx runs fn against a private copy of the state and publishes it only
// when fn succeeds.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx storage.Repository) error) error {
	if fn == nil {
		return fmt.Errorf("transaction body is required")
	}
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	if s.inTx {
		return fn(ctx, s)
	}

	tx := &Store{mu: s.mu, st: s.st.clone(), inTx: true}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

// GetSpeciesByID fetches a species template.
func (s *Store) GetSpeciesByID(ctx context.Context, id string) (creature.Species, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return creature.Species{}, err
	}
	defer unlock()
	sp, ok := s.st.species[id]
	if !ok {
		return creature.Species{}, storage.ErrNotFound
	}
	sp.Abilities = slices.Clone(sp.Abilities)
	return sp, nil
}

// ListSpecies returns every species ordered by name.
func (s *Store) ListSpecies(ctx context.Context) ([]creature.Species, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	out := make([]creature.Species, 0, len(s.st.species))
	for _, sp := range s.st.species {
		sp.Abilities = slices.Clone(sp.Abilities)
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// PutSpecies upserts a species template.
func (s *Store) PutSpecies(ctx context.Context, sp creature.Species) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	if strings.TrimSpace(sp.ID) == "" {
		return fmt.Errorf("species id is required")
	}
	if sp.BaseLevel < 1 {
		sp.BaseLevel = 1
	}
	sp.Rarity = creature.ParseRarity(string(sp.Rarity))
	sp.Abilities = slices.Clone(sp.Abilities)
	s.st.species[sp.ID] = sp
	return nil
}

// PutType registers an elemental type.
func (s *Store) PutType(ctx context.Context, name string) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("type name is required")
	}
	s.st.types[name] = struct{}{}
	return nil
}

// PutTypeMultiplier upserts an effectiveness row.
func (s *Store) PutTypeMultiplier(ctx context.Context, row storage.TypeMultiplier) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	if strings.TrimSpace(row.AttackType) == "" || strings.TrimSpace(row.DefendType) == "" {
		return fmt.Errorf("attack and defend types are required")
	}
	s.st.multipliers[pairKey(row.AttackType, row.DefendType)] = row.Multiplier
	return nil
}

// LookupTypeMultiplier returns the stored multiplier for a pair, if any.
func (s *Store) LookupTypeMultiplier(ctx context.Context, attackType, defendType string) (float64, bool, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return 0, false, err
	}
	defer unlock()
	mult, ok := s.st.multipliers[pairKey(attackType, defendType)]
	return mult, ok, nil
}

func pairKey(attack, defend string) typePair {
	return typePair{attack: strings.ToLower(attack), defend: strings.ToLower(defend)}
}

// PutAchievement upserts an achievement definition.
func (s *Store) PutAchievement(ctx context.Context, def achievement.Definition) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	if strings.TrimSpace(def.ID) == "" || strings.TrimSpace(def.ConditionCode) == "" {
		return fmt.Errorf("achievement id and condition code are required")
	}
	for id, existing := range s.st.achievements {
		if id != def.ID && existing.ConditionCode == def.ConditionCode {
			return fmt.Errorf("condition %s already bound to %s", def.ConditionCode, id)
		}
	}
	s.st.achievements[def.ID] = def
	return nil
}

// ListAchievements returns every definition ordered by id.
func (s *Store) ListAchievements(ctx context.Context) ([]achievement.Definition, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	out := slices.Collect(maps.Values(s.st.achievements))
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetPlayerByID fetches a player.
func (s *Store) GetPlayerByID(ctx context.Context, id string) (storage.PlayerRecord, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return storage.PlayerRecord{}, err
	}
	defer unlock()
	player, ok := s.st.players[id]
	if !ok {
		return storage.PlayerRecord{}, storage.ErrNotFound
	}
	return player, nil
}

// GetPlayerByName fetches a player by exact name.
func (s *Store) GetPlayerByName(ctx context.Context, name string) (storage.PlayerRecord, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return storage.PlayerRecord{}, err
	}
	defer unlock()
	for _, player := range s.st.players {
		if player.Name == name {
			return player, nil
		}
	}
	return storage.PlayerRecord{}, storage.ErrNotFound
}

// SavePlayer upserts a player, enforcing unique names.
func (s *Store) SavePlayer(ctx context.Context, player storage.PlayerRecord) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	if strings.TrimSpace(player.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	for id, existing := range s.st.players {
		if id != player.ID && existing.Name == player.Name {
			return storage.ErrPlayerNameTaken
		}
	}
	if existing, ok := s.st.players[player.ID]; ok {
		player.CreatedAt = existing.CreatedAt
	}
	s.st.players[player.ID] = player
	return nil
}

// GetMonster fetches one monster.
func (s *Store) GetMonster(ctx context.Context, id string) (creature.Monster, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return creature.Monster{}, err
	}
	defer unlock()
	m, ok := s.st.monsters[id]
	if !ok {
		return creature.Monster{}, storage.ErrNotFound
	}
	return m, nil
}

// GetMonstersByPlayer lists a player's monsters in catch order.
func (s *Store) GetMonstersByPlayer(ctx context.Context, playerID string) ([]creature.Monster, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	var out []creature.Monster
	for _, m := range s.st.monsters {
		if m.OwnerID == playerID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CaughtAt.Equal(out[j].CaughtAt) {
			return out[i].CaughtAt.Before(out[j].CaughtAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveMonster upserts a monster.
func (s *Store) SaveMonster(ctx context.Context, m creature.Monster) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("monster id is required")
	}
	if _, ok := s.st.players[m.OwnerID]; !ok {
		return fmt.Errorf("save monster: owner %s does not exist", m.OwnerID)
	}
	if existing, ok := s.st.monsters[m.ID]; ok {
		m.OwnerID = existing.OwnerID
		m.SpeciesID = existing.SpeciesID
		m.CaughtAt = existing.CaughtAt
	}
	s.st.monsters[m.ID] = m
	return nil
}

// DeleteMonster removes a monster.
func (s *Store) DeleteMonster(ctx context.Context, id string) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := s.st.monsters[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.st.monsters, id)
	return nil
}

// CountCaughtMonsters counts monsters the player currently owns.
func (s *Store) CountCaughtMonsters(ctx context.Context, playerID string) (int, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()
	return s.countMonsters(playerID), nil
}

func (s *Store) countMonsters(playerID string) int {
	count := 0
	for _, m := range s.st.monsters {
		if m.OwnerID == playerID {
			count++
		}
	}
	return count
}

// SaveBattle appends a battle record.
func (s *Store) SaveBattle(ctx context.Context, b storage.BattleRecord) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	if strings.TrimSpace(b.ID) == "" || strings.TrimSpace(b.Participant1) == "" {
		return fmt.Errorf("battle id and participant are required")
	}
	for _, existing := range s.st.battles {
		if existing.ID == b.ID {
			return fmt.Errorf("save battle: %s already recorded", b.ID)
		}
	}
	b.CreatedAt = b.CreatedAt.UTC().Truncate(time.Millisecond)
	s.st.battles = append(s.st.battles, b)
	return nil
}

// CountBattleWins counts battles the player won.
func (s *Store) CountBattleWins(ctx context.Context, playerID string) (int, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()
	return s.countWins(playerID), nil
}

func (s *Store) countWins(playerID string) int {
	count := 0
	for _, b := range s.st.battles {
		if b.WinnerID == playerID {
			count++
		}
	}
	return count
}

// ListBattles pages through the player's battles, newest first.
func (s *Store) ListBattles(ctx context.Context, playerID, filterStr string, pageSize int, pageToken string) (storage.BattlePage, error) {
	parsed, err := filter.ParseBattleFilter(filterStr)
	if err != nil {
		return storage.BattlePage{}, err
	}
	offset, err := storage.DecodePageToken(pageToken)
	if err != nil {
		return storage.BattlePage{}, err
	}
	size := pagination.ClampPageSize(pageSize, pagination.Battles)

	unlock, err := s.lock(ctx)
	if err != nil {
		return storage.BattlePage{}, err
	}
	defer unlock()

	var matched []storage.BattleRecord
	for _, b := range s.st.battles {
		if b.Participant1 != playerID && b.Participant2 != playerID {
			continue
		}
		if !parsed.Match(filter.BattleFields{Mode: b.Mode, WinnerID: b.WinnerID, Result: b.Outcome, Timestamp: b.CreatedAt}) {
			continue
		}
		matched = append(matched, b)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return storage.BattlePage{}, nil
	}
	end := min(offset+size, len(matched))
	page := storage.BattlePage{Battles: slices.Clone(matched[offset:end])}
	if end < len(matched) {
		page.NextPageToken = storage.EncodePageToken(end)
	}
	return page, nil
}

// GetUnlockedAchievementConditions lists the condition codes a player holds.
func (s *Store) GetUnlockedAchievementConditions(ctx context.Context, playerID string) ([]string, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	var codes []string
	for achievementID := range s.st.unlocks[playerID] {
		if def, ok := s.st.achievements[achievementID]; ok {
			codes = append(codes, def.ConditionCode)
		}
	}
	sort.Strings(codes)
	return codes, nil
}

// UnlockAchievement grants the achievement bound to conditionCode at most
// once per player.
func (s *Store) UnlockAchievement(ctx context.Context, playerID, conditionCode string, unlockedAt time.Time) (achievement.Definition, bool, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return achievement.Definition{}, false, err
	}
	defer unlock()

	var (
		def   achievement.Definition
		found bool
	)
	for _, candidate := range s.st.achievements {
		if candidate.ConditionCode == conditionCode {
			def, found = candidate, true
			break
		}
	}
	if !found {
		return achievement.Definition{}, false, storage.ErrNotFound
	}
	held := s.st.unlocks[playerID]
	if held == nil {
		held = map[string]time.Time{}
		s.st.unlocks[playerID] = held
	}
	if _, ok := held[def.ID]; ok {
		return def, false, nil
	}
	held[def.ID] = unlockedAt.UTC()
	return def, true, nil
}

// ListPlayerAchievements returns the player's unlocks in unlock order.
func (s *Store) ListPlayerAchievements(ctx context.Context, playerID string) ([]storage.AchievementUnlock, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	var out []storage.AchievementUnlock
	for achievementID, at := range s.st.unlocks[playerID] {
		out = append(out, storage.AchievementUnlock{Achievement: s.st.achievements[achievementID], UnlockedAt: at})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UnlockedAt.Equal(out[j].UnlockedAt) {
			return out[i].UnlockedAt.Before(out[j].UnlockedAt)
		}
		return out[i].Achievement.ID < out[j].Achievement.ID
	})
	return out, nil
}

// LeaderboardByMonsters ranks players by monsters currently owned.
func (s *Store) LeaderboardByMonsters(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.rank(limit, s.countMonsters), nil
}

// LeaderboardByWins ranks players by battles won.
func (s *Store) LeaderboardByWins(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.rank(limit, s.countWins), nil
}

func (s *Store) rank(limit int, score func(string) int) []storage.LeaderboardEntry {
	var out []storage.LeaderboardEntry
	for _, player := range s.st.players {
		if value := score(player.ID); value > 0 {
			out = append(out, storage.LeaderboardEntry{PlayerID: player.ID, PlayerName: player.Name, Level: player.Level, Score: value})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Level != out[j].Level {
			return out[i].Level > out[j].Level
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	size := pagination.ClampPageSize(limit, pagination.Leaderboard)
	if len(out) > size {
		out = out[:size]
	}
	return out
}
