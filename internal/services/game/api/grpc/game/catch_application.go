package game

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/random"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/catch"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

type catchApplication struct {
	repo        storage.Repository
	rng         random.RNG
	clock       func() time.Time
	idGenerator func() (string, error)
	locks       *playerLocks
	evaluator   *achievement.Evaluator
}

func newCatchApplication(service *GameService) catchApplication {
	return catchApplication{
		repo:        service.repo,
		rng:         service.rng,
		clock:       service.clock,
		idGenerator: service.idGenerator,
		locks:       service.locks,
		evaluator:   service.evaluator,
	}
}

type catchResult struct {
	Success  bool
	Chance   float64
	Monster  *creature.Monster
	Species  creature.Species
	Unlocked []achievement.Unlock
}

// Explore returns a random species the player encounters at its base level.
func (a catchApplication) Explore(ctx context.Context, playerID string) (creature.Species, error) {
	if _, err := a.repo.GetPlayerByID(ctx, playerID); err != nil {
		return creature.Species{}, lookupErr(err, "player", playerID)
	}
	all, err := a.repo.ListSpecies(ctx)
	if err != nil {
		return creature.Species{}, fmt.Errorf("list species: %w", err)
	}
	if len(all) == 0 {
		return creature.Species{}, apperrors.NotFound("species", "*")
	}
	return all[a.rng.NextIntInclusive(0, len(all)-1)], nil
}

// Catch rolls one attempt and stores the monster on success.
func (a catchApplication) Catch(ctx context.Context, playerID, speciesID string) (catchResult, error) {
	unlock := a.locks.lock(playerID)
	defer unlock()

	player, err := a.repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return catchResult{}, lookupErr(err, "player", playerID)
	}
	species, err := a.repo.GetSpeciesByID(ctx, speciesID)
	if err != nil {
		return catchResult{}, lookupErr(err, "species", speciesID)
	}

	result := catchResult{
		Chance:  catch.Chance(species.Rarity, player.Level),
		Species: species,
	}
	if !catch.AttemptCatch(species.Rarity, player.Level, a.rng.NextUniform()) {
		return result, nil
	}

	monsterID, err := a.idGenerator()
	if err != nil {
		return catchResult{}, fmt.Errorf("generate monster id: %w", err)
	}
	monster := catch.NewCaughtMonster(monsterID, species, player.ID, a.clock())
	err = a.repo.RunInTx(ctx, func(ctx context.Context, tx storage.Repository) error {
		if err := tx.SaveMonster(ctx, monster); err != nil {
			return fmt.Errorf("save monster: %w", err)
		}
		unlocked, err := a.evaluator.Evaluate(ctx, tx, player.ID, achievement.CatchEvent{Species: species})
		if err != nil {
			return fmt.Errorf("evaluate catch achievements: %w", err)
		}
		result.Unlocked = unlocked
		return nil
	})
	if err != nil {
		return catchResult{}, err
	}
	result.Success = true
	result.Monster = &monster
	return result, nil
}
