package seed

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

// Summary counts the rows written by Apply.
type Summary struct {
	Types        int
	TypeChart    int
	Species      int
	Achievements int
}

// Apply upserts content into repo in one transaction. Re-running it with the
// same content leaves the store unchanged.
func Apply(ctx context.Context, repo storage.Repository, content Content, logger *log.Logger) (Summary, error) {
	if repo == nil {
		return Summary{}, fmt.Errorf("repository is required")
	}
	if err := content.Validate(); err != nil {
		return Summary{}, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	var summary Summary
	err := repo.RunInTx(ctx, func(ctx context.Context, tx storage.Repository) error {
		summary = Summary{}
		for _, name := range content.Types {
			if err := tx.PutType(ctx, name); err != nil {
				return fmt.Errorf("put type %s: %w", name, err)
			}
			summary.Types++
		}
		for _, row := range content.TypeChart {
			if err := tx.PutTypeMultiplier(ctx, storage.TypeMultiplier{
				AttackType: row.Attack,
				DefendType: row.Defend,
				Multiplier: row.Multiplier,
			}); err != nil {
				return fmt.Errorf("put type multiplier %s/%s: %w", row.Attack, row.Defend, err)
			}
			summary.TypeChart++
		}
		for _, item := range content.Species {
			if err := tx.PutSpecies(ctx, item.toSpecies()); err != nil {
				return fmt.Errorf("put species %s: %w", item.ID, err)
			}
			logger.Printf("species %s (%s, %s)", item.Name, item.Type, item.Rarity)
			summary.Species++
		}
		for _, item := range content.Achievements {
			if err := tx.PutAchievement(ctx, item.toDefinition()); err != nil {
				return fmt.Errorf("put achievement %s: %w", item.ID, err)
			}
			summary.Achievements++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}
