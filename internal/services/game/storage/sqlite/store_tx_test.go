package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

func TestRunInTxCommits(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedPlayer(t, store, "p1", "ash")

	err := store.RunInTx(ctx, func(ctx context.Context, tx storage.Repository) error {
		player, err := tx.GetPlayerByID(ctx, "p1")
		if err != nil {
			return err
		}
		player.Currency = 50
		if err := tx.SavePlayer(ctx, player); err != nil {
			return err
		}
		return tx.SaveBattle(ctx, storage.BattleRecord{ID: "b1", Mode: "wild", Participant1: "p1", WinnerID: "p1", Outcome: "victory", CreatedAt: testEpoch})
	})
	if err != nil {
		t.Fatalf("run in tx: %v", err)
	}

	player, err := store.GetPlayerByID(ctx, "p1")
	if err != nil || player.Currency != 50 {
		t.Fatalf("player = %+v, %v", player, err)
	}
	if wins, _ := store.CountBattleWins(ctx, "p1"); wins != 1 {
		t.Fatalf("wins = %d", wins)
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedPlayer(t, store, "p1", "ash")
	boom := errors.New("boom")

	err := store.RunInTx(ctx, func(ctx context.Context, tx storage.Repository) error {
		player, err := tx.GetPlayerByID(ctx, "p1")
		if err != nil {
			return err
		}
		player.Currency = 999
		if err := tx.SavePlayer(ctx, player); err != nil {
			return err
		}
		if err := tx.SaveBattle(ctx, storage.BattleRecord{ID: "b1", Mode: "wild", Participant1: "p1", Outcome: "defeat", CreatedAt: testEpoch}); err != nil {
			return err
		}
		return tx.RunInTx(ctx, func(context.Context, storage.Repository) error { return boom })
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	player, err := store.GetPlayerByID(ctx, "p1")
	if err != nil || player.Currency != 0 {
		t.Fatalf("player after rollback = %+v, %v", player, err)
	}
	page, err := store.ListBattles(ctx, "p1", "", 0, "")
	if err != nil || len(page.Battles) != 0 {
		t.Fatalf("battles after rollback = %+v, %v", page, err)
	}
}
