// Package achievement evaluates unlock conditions after game events.
package achievement

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
)

// Condition codes recognized by the evaluator.
const (
	ConditionCatch1         = "catch_1"
	ConditionCatch10        = "catch_10"
	ConditionCatchLegendary = "catch_legendary"
	ConditionWin1           = "win_1"
	ConditionWin50          = "win_50"
)

// Definition is a seeded achievement.
type Definition struct {
	ID            string
	Name          string
	Description   string
	ConditionCode string
}

// Unlock reports a newly granted achievement.
type Unlock struct {
	ConditionCode   string
	AchievementName string
}

// Event is a game occurrence that may unlock achievements.
type Event interface {
	isEvent()
}

// CatchEvent follows a successful catch.
type CatchEvent struct {
	Species creature.Species
}

// BattleWinEvent follows a battle the player won.
type BattleWinEvent struct {
	OpponentKind string
}

func (CatchEvent) isEvent()     {}
func (BattleWinEvent) isEvent() {}

// Store is the persistence the evaluator reads and writes.
type Store interface {
	GetUnlockedAchievementConditions(ctx context.Context, playerID string) ([]string, error)
	CountCaughtMonsters(ctx context.Context, playerID string) (int, error)
	CountBattleWins(ctx context.Context, playerID string) (int, error)
	// UnlockAchievement records the unlock and reports whether a new row was
	// written. Unknown condition codes return a NOT_FOUND error.
	UnlockAchievement(ctx context.Context, playerID, conditionCode string, unlockedAt time.Time) (Definition, bool, error)
}

type counter func(ctx context.Context, store Store, playerID string) (int, error)

type rule struct {
	code  string
	check func(ctx context.Context, store Store, playerID string, event Event, counts *counts) (bool, error)
}

type counts struct {
	caught, wins *int
}

func (c *counts) get(ctx context.Context, store Store, playerID string, slot **int, fetch counter) (int, error) {
	if *slot != nil {
		return **slot, nil
	}
	value, err := fetch(ctx, store, playerID)
	if err != nil {
		return 0, err
	}
	*slot = &value
	return value, nil
}

func caughtAtLeast(threshold int) func(context.Context, Store, string, Event, *counts) (bool, error) {
	return func(ctx context.Context, store Store, playerID string, event Event, c *counts) (bool, error) {
		if _, ok := event.(CatchEvent); !ok {
			return false, nil
		}
		n, err := c.get(ctx, store, playerID, &c.caught, func(ctx context.Context, store Store, playerID string) (int, error) {
			return store.CountCaughtMonsters(ctx, playerID)
		})
		return n >= threshold, err
	}
}

func winsAtLeast(threshold int) func(context.Context, Store, string, Event, *counts) (bool, error) {
	return func(ctx context.Context, store Store, playerID string, event Event, c *counts) (bool, error) {
		if _, ok := event.(BattleWinEvent); !ok {
			return false, nil
		}
		n, err := c.get(ctx, store, playerID, &c.wins, func(ctx context.Context, store Store, playerID string) (int, error) {
			return store.CountBattleWins(ctx, playerID)
		})
		return n >= threshold, err
	}
}

func caughtLegendary(_ context.Context, _ Store, _ string, event Event, _ *counts) (bool, error) {
	caught, ok := event.(CatchEvent)
	return ok && caught.Species.Rarity.IsLegendary(), nil
}

var rules = []rule{
	{code: ConditionCatch1, check: caughtAtLeast(1)},
	{code: ConditionCatch10, check: caughtAtLeast(10)},
	{code: ConditionCatchLegendary, check: caughtLegendary},
	{code: ConditionWin1, check: winsAtLeast(1)},
	{code: ConditionWin50, check: winsAtLeast(50)},
}

// Conditions lists every condition code the evaluator knows, in evaluation
// order.
func Conditions() []string {
	codes := make([]string, 0, len(rules))
	for _, r := range rules {
		codes = append(codes, r.code)
	}
	return codes
}

// Evaluator grants achievements exactly once per player.
type Evaluator struct {
	now func() time.Time
}

// NewEvaluator creates an evaluator. A nil clock uses time.Now.
func NewEvaluator(now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{now: now}
}

// Evaluate checks every condition not yet unlocked against the event and
// returns the achievements it granted.
func (e *Evaluator) Evaluate(ctx context.Context, store Store, playerID string, event Event) ([]Unlock, error) {
	if store == nil {
		return nil, fmt.Errorf("achievement store is required")
	}
	if event == nil {
		return nil, nil
	}
	unlocked, err := store.GetUnlockedAchievementConditions(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("load unlocked achievements: %w", err)
	}
	seen := make(map[string]struct{}, len(unlocked))
	for _, code := range unlocked {
		seen[code] = struct{}{}
	}

	var granted []Unlock
	c := &counts{}
	for _, r := range rules {
		if _, done := seen[r.code]; done {
			continue
		}
		met, err := r.check(ctx, store, playerID, event, c)
		if err != nil {
			return granted, fmt.Errorf("check %s: %w", r.code, err)
		}
		if !met {
			continue
		}
		def, inserted, err := store.UnlockAchievement(ctx, playerID, r.code, e.now().UTC())
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeNotFound) {
				continue
			}
			return granted, fmt.Errorf("unlock %s: %w", r.code, err)
		}
		if !inserted {
			continue
		}
		granted = append(granted, Unlock{ConditionCode: r.code, AchievementName: def.Name})
	}
	return granted, nil
}
