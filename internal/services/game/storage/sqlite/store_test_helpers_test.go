package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

var testEpoch = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func testSpecies(id, name, rarity string) creature.Species {
	return creature.Species{
		ID:        id,
		Name:      name,
		Type:      "Fire",
		Rarity:    creature.Rarity(rarity),
		Base:      creature.StatBlock{HP: 39, Attack: 52, Defense: 43, Speed: 65},
		BaseLevel: 3,
		Abilities: []string{"Blaze"},
	}
}

func seedPlayer(t *testing.T, store *Store, id, name string) storage.PlayerRecord {
	t.Helper()
	player := storage.PlayerRecord{ID: id, Name: name, Level: 1, CreatedAt: testEpoch}
	if err := store.SavePlayer(context.Background(), player); err != nil {
		t.Fatalf("save player %s: %v", id, err)
	}
	return player
}

func seedSpecies(t *testing.T, store *Store, species creature.Species) {
	t.Helper()
	if err := store.PutSpecies(context.Background(), species); err != nil {
		t.Fatalf("put species %s: %v", species.ID, err)
	}
}

func seedMonster(t *testing.T, store *Store, id, owner, speciesID string, caughtAt time.Time) creature.Monster {
	t.Helper()
	m := creature.Monster{
		ID:        id,
		OwnerID:   owner,
		SpeciesID: speciesID,
		Nickname:  "mon-" + id,
		Level:     1,
		Stats:     creature.StatBlock{HP: 12, Attack: 6, Defense: 6, Speed: 6},
		CurrentHP: 12,
		CaughtAt:  caughtAt,
	}
	if err := store.SaveMonster(context.Background(), m); err != nil {
		t.Fatalf("save monster %s: %v", id, err)
	}
	return m
}

func seedAchievements(t *testing.T, store *Store) {
	t.Helper()
	defs := []achievement.Definition{
		{ID: "ach-first-catch", Name: "First Catch", Description: "Catch a monster", ConditionCode: achievement.ConditionCatch1},
		{ID: "ach-novice", Name: "Battle Novice", Description: "Win a battle", ConditionCode: achievement.ConditionWin1},
	}
	for _, def := range defs {
		if err := store.PutAchievement(context.Background(), def); err != nil {
			t.Fatalf("put achievement: %v", err)
		}
	}
}
