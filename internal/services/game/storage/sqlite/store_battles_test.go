package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

func TestBattleHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedPlayer(t, store, "p1", "ash")
	seedPlayer(t, store, "p2", "misty")

	battles := []storage.BattleRecord{
		{ID: "b1", Mode: "wild", Participant1: "p1", WinnerID: "p1", Outcome: "victory", RewardXP: 100, RewardGold: 50, CreatedAt: testEpoch},
		{ID: "b2", Mode: "gym", Participant1: "p1", Outcome: "defeat", CreatedAt: testEpoch.Add(time.Hour)},
		{ID: "b3", Mode: "player", Participant1: "p2", Participant2: "p1", WinnerID: "p1", Outcome: "defeat", RewardXP: 100, RewardGold: 50, CreatedAt: testEpoch.Add(2 * time.Hour)},
		{ID: "b4", Mode: "wild", Participant1: "p2", WinnerID: "p2", Outcome: "victory", CreatedAt: testEpoch.Add(3 * time.Hour)},
	}
	for _, b := range battles {
		if err := store.SaveBattle(ctx, b); err != nil {
			t.Fatalf("save battle %s: %v", b.ID, err)
		}
	}

	wins, err := store.CountBattleWins(ctx, "p1")
	if err != nil || wins != 2 {
		t.Fatalf("wins = %d, %v", wins, err)
	}

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{name: "all for player", filter: "", want: []string{"b3", "b2", "b1"}},
		{name: "by mode", filter: `mode = "wild"`, want: []string{"b1"}},
		{name: "by winner", filter: `winner_id = "p1"`, want: []string{"b3", "b1"}},
		{name: "by result", filter: `result = "defeat"`, want: []string{"b3", "b2"}},
		{name: "by time", filter: `ts >= timestamp("2026-02-01T10:00:00Z")`, want: []string{"b3", "b2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := store.ListBattles(ctx, "p1", tt.filter, 0, "")
			if err != nil {
				t.Fatalf("list battles: %v", err)
			}
			var ids []string
			for _, b := range page.Battles {
				ids = append(ids, b.ID)
			}
			if fmt.Sprint(ids) != fmt.Sprint(tt.want) {
				t.Fatalf("ids = %v, want %v", ids, tt.want)
			}
		})
	}

	first, err := store.ListBattles(ctx, "p1", "", 2, "")
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(first.Battles) != 2 || first.NextPageToken == "" {
		t.Fatalf("page 1 = %+v", first)
	}
	second, err := store.ListBattles(ctx, "p1", "", 2, first.NextPageToken)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(second.Battles) != 1 || second.Battles[0].ID != "b1" || second.NextPageToken != "" {
		t.Fatalf("page 2 = %+v", second)
	}
	if second.Battles[0].Participant2 != "" || second.Battles[0].RewardXP != 100 {
		t.Fatalf("battle fields = %+v", second.Battles[0])
	}

	if _, err := store.ListBattles(ctx, "p1", `species = "x"`, 0, ""); !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("bad filter err = %v", err)
	}
}

func TestBattleRecordsAreWriteOnce(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedPlayer(t, store, "p1", "ash")

	record := storage.BattleRecord{ID: "b1", Mode: "wild", Participant1: "p1", Outcome: "defeat", CreatedAt: testEpoch}
	if err := store.SaveBattle(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveBattle(ctx, record); err == nil {
		t.Fatal("expected duplicate battle insert to fail")
	}
}

func TestAchievementUnlocksAreIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedPlayer(t, store, "p1", "ash")
	seedAchievements(t, store)

	def, inserted, err := store.UnlockAchievement(ctx, "p1", "catch_1", testEpoch)
	if err != nil || !inserted || def.Name != "First Catch" {
		t.Fatalf("first unlock = %+v, %v, %v", def, inserted, err)
	}
	_, inserted, err = store.UnlockAchievement(ctx, "p1", "catch_1", testEpoch.Add(time.Minute))
	if err != nil || inserted {
		t.Fatalf("second unlock inserted = %v err = %v", inserted, err)
	}

	if _, _, err := store.UnlockAchievement(ctx, "p1", "catch_legendary", testEpoch); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("undefined condition err = %v", err)
	}

	codes, err := store.GetUnlockedAchievementConditions(ctx, "p1")
	if err != nil || len(codes) != 1 || codes[0] != "catch_1" {
		t.Fatalf("codes = %v, %v", codes, err)
	}
	unlocks, err := store.ListPlayerAchievements(ctx, "p1")
	if err != nil || len(unlocks) != 1 || !unlocks[0].UnlockedAt.Equal(testEpoch) {
		t.Fatalf("unlocks = %+v, %v", unlocks, err)
	}

	defs, err := store.ListAchievements(ctx)
	if err != nil || len(defs) != 2 {
		t.Fatalf("defs = %+v, %v", defs, err)
	}
}

func TestLeaderboards(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedPlayer(t, store, "p1", "ash")
	seedPlayer(t, store, "p2", "misty")
	seedPlayer(t, store, "p3", "brock")
	seedSpecies(t, store, testSpecies("sp-1", "Emberkit", "Common"))

	seedMonster(t, store, "m1", "p1", "sp-1", testEpoch)
	seedMonster(t, store, "m2", "p2", "sp-1", testEpoch)
	seedMonster(t, store, "m3", "p2", "sp-1", testEpoch)
	for i, winner := range []string{"p1", "p1", "p2"} {
		record := storage.BattleRecord{ID: fmt.Sprintf("b%d", i), Mode: "wild", Participant1: winner, WinnerID: winner, Outcome: "victory", CreatedAt: testEpoch}
		if err := store.SaveBattle(ctx, record); err != nil {
			t.Fatalf("save battle: %v", err)
		}
	}

	byMonsters, err := store.LeaderboardByMonsters(ctx, 10)
	if err != nil {
		t.Fatalf("by monsters: %v", err)
	}
	if len(byMonsters) != 2 || byMonsters[0].PlayerName != "misty" || byMonsters[0].Score != 2 {
		t.Fatalf("by monsters = %+v", byMonsters)
	}

	byWins, err := store.LeaderboardByWins(ctx, 1)
	if err != nil {
		t.Fatalf("by wins: %v", err)
	}
	if len(byWins) != 1 || byWins[0].PlayerID != "p1" || byWins[0].Score != 2 {
		t.Fatalf("by wins = %+v", byWins)
	}
}
