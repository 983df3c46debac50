package sqlite

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

func TestMillisHelpers(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	value := time.Date(2026, 2, 1, 9, 0, 0, 0, loc)
	if toMillis(value) != value.UTC().UnixMilli() {
		t.Fatal("expected millis to match UTC unix millis")
	}
	if round := fromMillis(toMillis(value)); !round.Equal(value.UTC()) {
		t.Fatalf("expected round trip UTC time, got %v", round)
	}
}

func TestNullStringHelpers(t *testing.T) {
	if toNullString("  ").Valid {
		t.Fatal("blank string should map to NULL")
	}
	if got := fromNullString(toNullString("p1")); got != "p1" {
		t.Fatalf("round trip = %q", got)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	var store *Store
	_, err := store.GetPlayerByID(context.Background(), "p1")
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("err = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.ListSpecies(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want canceled", err)
	}
}

func TestSpeciesRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := testSpecies("sp-1", "Emberkit", "Common")
	seedSpecies(t, store, want)
	seedSpecies(t, store, testSpecies("sp-2", "Ashwing", "Rare"))

	got, err := store.GetSpeciesByID(ctx, "sp-1")
	if err != nil {
		t.Fatalf("get species: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("species = %+v, want %+v", got, want)
	}

	all, err := store.ListSpecies(ctx)
	if err != nil {
		t.Fatalf("list species: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Ashwing" {
		t.Fatalf("list = %+v", all)
	}

	if _, err := store.GetSpeciesByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}

func TestTypeMultiplierLookup(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Fire", "Grass"} {
		if err := store.PutType(ctx, name); err != nil {
			t.Fatalf("put type: %v", err)
		}
	}
	if err := store.PutTypeMultiplier(ctx, storage.TypeMultiplier{AttackType: "Fire", DefendType: "Grass", Multiplier: 2}); err != nil {
		t.Fatalf("put multiplier: %v", err)
	}

	mult, found, err := store.LookupTypeMultiplier(ctx, "fire", "GRASS")
	if err != nil || !found || mult != 2 {
		t.Fatalf("lookup = %v, %v, %v", mult, found, err)
	}
	_, found, err = store.LookupTypeMultiplier(ctx, "Grass", "Fire")
	if err != nil || found {
		t.Fatalf("reverse lookup found = %v err = %v", found, err)
	}
}

func TestPlayerSaveAndNameTaken(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	player := seedPlayer(t, store, "p1", "ash")
	player.Level = 3
	player.Currency = 150
	if err := store.SavePlayer(ctx, player); err != nil {
		t.Fatalf("update player: %v", err)
	}

	got, err := store.GetPlayerByName(ctx, "ash")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got.ID != "p1" || got.Level != 3 || got.Currency != 150 || !got.CreatedAt.Equal(testEpoch) {
		t.Fatalf("player = %+v", got)
	}

	err = store.SavePlayer(ctx, storage.PlayerRecord{ID: "p2", Name: "ash", Level: 1, CreatedAt: testEpoch})
	if !errors.Is(err, storage.ErrPlayerNameTaken) {
		t.Fatalf("duplicate name err = %v", err)
	}
	if !apperrors.IsCode(err, apperrors.CodePlayerNameTaken) {
		t.Fatalf("code = %v", apperrors.GetCode(err))
	}
	if _, err := store.GetPlayerByID(ctx, "p2"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("p2 err = %v", err)
	}
}

func TestMonsterLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedPlayer(t, store, "p1", "ash")
	seedSpecies(t, store, testSpecies("sp-1", "Emberkit", "Common"))

	seedMonster(t, store, "m2", "p1", "sp-1", testEpoch.Add(time.Minute))
	first := seedMonster(t, store, "m1", "p1", "sp-1", testEpoch)

	first.Nickname = "Sparky"
	first.Level = 4
	first.CurrentHP = 3
	if err := store.SaveMonster(ctx, first); err != nil {
		t.Fatalf("update monster: %v", err)
	}

	got, err := store.GetMonster(ctx, "m1")
	if err != nil {
		t.Fatalf("get monster: %v", err)
	}
	if !got.CaughtAt.Equal(first.CaughtAt) {
		t.Fatalf("caught at = %v, want %v", got.CaughtAt, first.CaughtAt)
	}
	got.CaughtAt = first.CaughtAt
	if !reflect.DeepEqual(got, first) {
		t.Fatalf("monster = %+v, want %+v", got, first)
	}

	list, err := store.GetMonstersByPlayer(ctx, "p1")
	if err != nil {
		t.Fatalf("list monsters: %v", err)
	}
	if len(list) != 2 || list[0].ID != "m1" || list[1].ID != "m2" {
		t.Fatalf("list order = %+v", list)
	}

	count, err := store.CountCaughtMonsters(ctx, "p1")
	if err != nil || count != 2 {
		t.Fatalf("count = %d, %v", count, err)
	}

	if err := store.DeleteMonster(ctx, "m2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DeleteMonster(ctx, "m2"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	if count, _ := store.CountCaughtMonsters(ctx, "p1"); count != 1 {
		t.Fatalf("count after release = %d", count)
	}
}
