package game

import (
	"context"
	"fmt"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

type monsterApplication struct {
	repo  storage.Repository
	locks *playerLocks
}

func newMonsterApplication(service *GameService) monsterApplication {
	return monsterApplication{repo: service.repo, locks: service.locks}
}

type ownedMonster struct {
	monster creature.Monster
	species creature.Species
}

func (a monsterApplication) List(ctx context.Context, playerID string) ([]ownedMonster, error) {
	if _, err := a.repo.GetPlayerByID(ctx, playerID); err != nil {
		return nil, lookupErr(err, "player", playerID)
	}
	monsters, err := a.repo.GetMonstersByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list monsters: %w", err)
	}
	cache := newSpeciesCache()
	out := make([]ownedMonster, 0, len(monsters))
	for _, m := range monsters {
		species, err := cache.get(ctx, a.repo, m.SpeciesID)
		if err != nil {
			return nil, err
		}
		out = append(out, ownedMonster{monster: m, species: species})
	}
	return out, nil
}

func (a monsterApplication) Rename(ctx context.Context, playerID, monsterID, rawName string) (ownedMonster, error) {
	nickname, err := creature.NormalizeNickname(rawName)
	if err != nil {
		return ownedMonster{}, err
	}
	unlock := a.locks.lock(playerID)
	defer unlock()

	monster, err := a.owned(ctx, playerID, monsterID)
	if err != nil {
		return ownedMonster{}, err
	}
	monster.Nickname = nickname
	if err := a.repo.SaveMonster(ctx, monster); err != nil {
		return ownedMonster{}, fmt.Errorf("save monster: %w", err)
	}
	species, err := a.repo.GetSpeciesByID(ctx, monster.SpeciesID)
	if err != nil {
		return ownedMonster{}, lookupErr(err, "species", monster.SpeciesID)
	}
	return ownedMonster{monster: monster, species: species}, nil
}

func (a monsterApplication) Release(ctx context.Context, playerID, monsterID string) (creature.Monster, error) {
	unlock := a.locks.lock(playerID)
	defer unlock()

	monster, err := a.owned(ctx, playerID, monsterID)
	if err != nil {
		return creature.Monster{}, err
	}
	if err := a.repo.DeleteMonster(ctx, monster.ID); err != nil {
		return creature.Monster{}, lookupErr(err, "monster", monster.ID)
	}
	return monster, nil
}

// owned loads a monster and hides monsters that belong to someone else.
func (a monsterApplication) owned(ctx context.Context, playerID, monsterID string) (creature.Monster, error) {
	monster, err := a.repo.GetMonster(ctx, monsterID)
	if err != nil {
		return creature.Monster{}, lookupErr(err, "monster", monsterID)
	}
	if monster.OwnerID != playerID {
		return creature.Monster{}, apperrors.NotFound("monster", monsterID)
	}
	return monster, nil
}
