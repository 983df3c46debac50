package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/random"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/battle"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/progression"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/typechart"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

type battleApplication struct {
	repo        storage.Repository
	rng         random.RNG
	clock       func() time.Time
	idGenerator func() (string, error)
	locks       *playerLocks
	evaluator   *achievement.Evaluator
}

func newBattleApplication(service *GameService) battleApplication {
	return battleApplication{
		repo:        service.repo,
		rng:         service.rng,
		clock:       service.clock,
		idGenerator: service.idGenerator,
		locks:       service.locks,
		evaluator:   service.evaluator,
	}
}

type battleInput struct {
	Mode       battle.Mode
	Resolution battle.Resolution
	PlayerID   string
	OpponentID string
	SpeciesID  string
}

type levelUp struct {
	ID           string
	Name         string
	NewLevel     int
	LevelsGained int
}

type battleResult struct {
	BattleID        string
	Outcome         battle.Outcome
	PlayerLevelUp   *levelUp
	MonsterLevelUps []levelUp
	Unlocked        []achievement.Unlock
}

// speciesCache memoizes species lookups for one use case.
type speciesCache struct {
	byID map[string]creature.Species
}

func newSpeciesCache() *speciesCache {
	return &speciesCache{byID: map[string]creature.Species{}}
}

func (c *speciesCache) get(ctx context.Context, store storage.ContentStore, speciesID string) (creature.Species, error) {
	if species, ok := c.byID[speciesID]; ok {
		return species, nil
	}
	species, err := store.GetSpeciesByID(ctx, speciesID)
	if err != nil {
		return creature.Species{}, lookupErr(err, "species", speciesID)
	}
	c.byID[speciesID] = species
	return species, nil
}

// Fight runs a battle in memory and commits its outcome atomically.
func (a battleApplication) Fight(ctx context.Context, in battleInput) (battleResult, error) {
	if in.Mode == battle.ModePlayer && in.OpponentID == in.PlayerID {
		return battleResult{}, apperrors.InvalidInput("opponent_id", "must differ from player_id")
	}
	unlock := a.locks.lock(in.PlayerID, in.OpponentID)
	defer unlock()

	player, err := a.repo.GetPlayerByID(ctx, in.PlayerID)
	if err != nil {
		return battleResult{}, lookupErr(err, "player", in.PlayerID)
	}
	cache := newSpeciesCache()
	challenger, err := a.roster(ctx, cache, player.ID)
	if err != nil {
		return battleResult{}, err
	}
	opponent, err := a.opponent(ctx, cache, in, player)
	if err != nil {
		return battleResult{}, err
	}
	table, err := loadTypeTable(ctx, a.repo, challenger, opponent)
	if err != nil {
		return battleResult{}, err
	}

	outcome, err := battle.Run(ctx, battle.Request{
		Mode:       in.Mode,
		Resolution: in.Resolution,
		Challenger: challenger,
		Opponent:   opponent,
	}, a.rng, table)
	if err != nil {
		return battleResult{}, err
	}

	battleID, err := a.idGenerator()
	if err != nil {
		return battleResult{}, fmt.Errorf("generate battle id: %w", err)
	}
	result := battleResult{BattleID: battleID, Outcome: outcome}
	record := storage.BattleRecord{
		ID:           battleID,
		Mode:         string(in.Mode),
		Participant1: player.ID,
		Participant2: opponent.OwnerID,
		WinnerID:     outcome.WinnerID,
		Outcome:      outcome.ResultLabel,
		RewardXP:     outcome.RewardXP,
		RewardGold:   outcome.RewardGold,
		CreatedAt:    a.clock(),
	}

	err = a.repo.RunInTx(ctx, func(ctx context.Context, tx storage.Repository) error {
		monsterLevelUps, err := applyMonsterOutcome(ctx, tx, cache, outcome)
		if err != nil {
			return err
		}
		playerLevelUp, err := applyPlayerReward(ctx, tx, outcome)
		if err != nil {
			return err
		}
		if err := tx.SaveBattle(ctx, record); err != nil {
			return fmt.Errorf("save battle: %w", err)
		}
		var unlocked []achievement.Unlock
		if outcome.WinnerID != "" {
			unlocked, err = a.evaluator.Evaluate(ctx, tx, outcome.WinnerID, achievement.BattleWinEvent{OpponentKind: string(in.Mode)})
			if err != nil {
				return fmt.Errorf("evaluate battle achievements: %w", err)
			}
		}
		result.MonsterLevelUps = monsterLevelUps
		result.PlayerLevelUp = playerLevelUp
		result.Unlocked = unlocked
		return nil
	})
	if err != nil {
		return battleResult{}, err
	}
	return result, nil
}

func (a battleApplication) roster(ctx context.Context, cache *speciesCache, playerID string) (battle.Roster, error) {
	monsters, err := a.repo.GetMonstersByPlayer(ctx, playerID)
	if err != nil {
		return battle.Roster{}, fmt.Errorf("list monsters: %w", err)
	}
	roster := battle.Roster{OwnerID: playerID, Combatants: make([]battle.Combatant, 0, len(monsters))}
	for _, m := range monsters {
		species, err := cache.get(ctx, a.repo, m.SpeciesID)
		if err != nil {
			return battle.Roster{}, err
		}
		roster.Combatants = append(roster.Combatants, battle.FromMonster(m, species))
	}
	return roster, nil
}

func (a battleApplication) opponent(ctx context.Context, cache *speciesCache, in battleInput, player storage.PlayerRecord) (battle.Roster, error) {
	switch in.Mode {
	case battle.ModePlayer:
		rival, err := a.repo.GetPlayerByID(ctx, in.OpponentID)
		if err != nil {
			return battle.Roster{}, lookupErr(err, "player", in.OpponentID)
		}
		return a.roster(ctx, cache, rival.ID)
	case battle.ModeAI:
		return battle.AITeam(player.Level), nil
	case battle.ModeGym:
		species, err := a.randomSpecies(ctx)
		if err != nil {
			return battle.Roster{}, err
		}
		return battle.GymOpponent(species, player.Level), nil
	default:
		var (
			species creature.Species
			err     error
		)
		if in.SpeciesID != "" {
			species, err = cache.get(ctx, a.repo, in.SpeciesID)
		} else {
			species, err = a.randomSpecies(ctx)
		}
		if err != nil {
			return battle.Roster{}, err
		}
		return battle.WildOpponent(species, species.BaseLevel), nil
	}
}

func (a battleApplication) randomSpecies(ctx context.Context) (creature.Species, error) {
	all, err := a.repo.ListSpecies(ctx)
	if err != nil {
		return creature.Species{}, fmt.Errorf("list species: %w", err)
	}
	if len(all) == 0 {
		return creature.Species{}, apperrors.NotFound("species", "*")
	}
	return all[a.rng.NextIntInclusive(0, len(all)-1)], nil
}

// applyMonsterOutcome persists final hp for every stored monster that
// fought and splits experience across the winning team. Winning members that
// sat out a full-team battle keep their hp and still share the experience.
func applyMonsterOutcome(ctx context.Context, tx storage.Repository, cache *speciesCache, outcome battle.Outcome) ([]levelUp, error) {
	winners := make(map[string]bool, len(outcome.WinningMonsterIDs))
	for _, monsterID := range outcome.WinningMonsterIDs {
		winners[monsterID] = true
	}

	finalHP := map[string]int{}
	var order []string
	for _, participant := range outcome.Participants {
		if participant.MonsterID == "" {
			continue
		}
		if _, seen := finalHP[participant.MonsterID]; seen {
			continue
		}
		finalHP[participant.MonsterID] = participant.FinalHP
		order = append(order, participant.MonsterID)
	}
	for _, monsterID := range outcome.WinningMonsterIDs {
		if _, seen := finalHP[monsterID]; !seen {
			order = append(order, monsterID)
		}
	}

	var levelUps []levelUp
	for _, monsterID := range order {
		monster, err := tx.GetMonster(ctx, monsterID)
		if err != nil {
			return nil, lookupErr(err, "monster", monsterID)
		}
		if hp, fought := finalHP[monsterID]; fought {
			monster.CurrentHP = creature.ClampHP(hp, monster.Stats.HP)
		}

		if winners[monster.ID] && outcome.XPPerMonster > 0 {
			species, err := cache.get(ctx, tx, monster.SpeciesID)
			if err != nil {
				return nil, err
			}
			var progress progression.Result
			monster, progress, err = progression.AddMonsterExperience(monster, species.Base, outcome.XPPerMonster)
			if err != nil {
				return nil, err
			}
			if progress.LeveledUp {
				levelUps = append(levelUps, levelUp{
					ID:           monster.ID,
					Name:         monster.Nickname,
					NewLevel:     progress.NewLevel,
					LevelsGained: progress.LevelsGained,
				})
			}
		}
		if err := tx.SaveMonster(ctx, monster); err != nil {
			return nil, fmt.Errorf("save monster %s: %w", monster.ID, err)
		}
	}
	return levelUps, nil
}

func applyPlayerReward(ctx context.Context, tx storage.Repository, outcome battle.Outcome) (*levelUp, error) {
	if outcome.WinnerID == "" {
		return nil, nil
	}
	winner, err := tx.GetPlayerByID(ctx, outcome.WinnerID)
	if err != nil {
		return nil, lookupErr(err, "player", outcome.WinnerID)
	}
	progress, err := progression.AddPlayerExperience(winner.Level, winner.Experience, outcome.RewardXP)
	if err != nil {
		return nil, err
	}
	winner.Level = progress.NewLevel
	winner.Experience = progress.NewXP
	winner.Currency += outcome.RewardGold
	if err := tx.SavePlayer(ctx, winner); err != nil {
		return nil, fmt.Errorf("save player %s: %w", winner.ID, err)
	}
	if !progress.LeveledUp {
		return nil, nil
	}
	return &levelUp{ID: winner.ID, Name: winner.Name, NewLevel: progress.NewLevel, LevelsGained: progress.LevelsGained}, nil
}

// loadTypeTable prefetches the multipliers for every type pairing present in
// the battle.
func loadTypeTable(ctx context.Context, repo storage.ContentStore, rosters ...battle.Roster) (typechart.Table, error) {
	var types []string
	seen := map[string]bool{}
	for _, roster := range rosters {
		for _, c := range roster.Combatants {
			key := strings.ToLower(strings.TrimSpace(c.Type))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			types = append(types, c.Type)
		}
	}

	var entries []typechart.Entry
	for _, attack := range types {
		for _, defend := range types {
			multiplier, ok, err := repo.LookupTypeMultiplier(ctx, attack, defend)
			if err != nil {
				return typechart.Table{}, fmt.Errorf("lookup type multiplier %s/%s: %w", attack, defend, err)
			}
			if ok {
				entries = append(entries, typechart.Entry{AttackType: attack, DefendType: defend, Multiplier: multiplier})
			}
		}
	}
	return typechart.New(entries), nil
}
