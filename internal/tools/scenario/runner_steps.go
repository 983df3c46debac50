package scenario

import (
	"context"
	"fmt"
	"slices"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"
)

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	switch step.Kind {
	case "player":
		return r.runPlayerStep(ctx, state, step)
	case "catch":
		return r.runCatchStep(ctx, state, step)
	case "battle":
		return r.runBattleStep(ctx, state, step)
	case "rename":
		return r.runRenameStep(ctx, state, step)
	case "release":
		return r.runReleaseStep(ctx, state, step)
	case "expect_profile":
		return r.runExpectProfileStep(ctx, state, step)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runPlayerStep(ctx context.Context, state *scenarioState, step Step) error {
	name := requiredString(step.Args, "name")
	if name == "" {
		return r.failf("player name is required")
	}
	response, err := r.env.client.RegisterPlayer(ctx, &gamegrpc.RegisterPlayerRequest{Name: name})
	if done, checkErr := r.checkExpectedError(step, err); done {
		return checkErr
	}
	state.players[name] = response.Player.ID
	r.logf("player %s registered as %s", name, response.Player.ID)
	return nil
}

func (r *Runner) runCatchStep(ctx context.Context, state *scenarioState, step Step) error {
	player := requiredString(step.Args, "player")
	playerID, err := r.playerID(state, player)
	if err != nil {
		return err
	}

	speciesID := optionalString(step.Args, "species", "")
	if speciesID == "" {
		found, err := r.env.client.Explore(ctx, &gamegrpc.ExploreRequest{PlayerID: playerID})
		if err != nil {
			return r.failf("explore: %v", err)
		}
		speciesID = found.Species.ID
		r.logf("%s found %s", player, found.Species.Name)
	}

	attempts := optionalInt(step.Args, "attempts", 1)
	if attempts < 1 {
		attempts = 1
	}
	var response *gamegrpc.CatchResponse
	for attempt := 1; attempt <= attempts; attempt++ {
		response, err = r.env.client.Catch(ctx, &gamegrpc.CatchRequest{PlayerID: playerID, SpeciesID: speciesID})
		if done, checkErr := r.checkExpectedError(step, err); done {
			return checkErr
		}
		r.logf("%s catch attempt %d/%d: success=%t chance=%.2f", player, attempt, attempts, response.Success, response.Chance)
		if response.Success {
			break
		}
	}

	if response.Success && response.Monster != nil {
		alias := optionalString(step.Args, "as", response.Monster.Nickname)
		state.monsters[monsterKey(player, alias)] = response.Monster.ID
	}

	switch expect := optionalString(step.Args, "expect", ""); expect {
	case "":
	case "success":
		if !response.Success {
			return r.assertf("catch %s: expected success after %d attempts", speciesID, attempts)
		}
	case "failure":
		if response.Success {
			return r.assertf("catch %s: expected failure", speciesID)
		}
	default:
		return r.failf("catch expect must be success or failure, got %q", expect)
	}
	return nil
}

func (r *Runner) runBattleStep(ctx context.Context, state *scenarioState, step Step) error {
	player := requiredString(step.Args, "player")
	playerID, err := r.playerID(state, player)
	if err != nil {
		return err
	}
	request := &gamegrpc.BattleRequest{
		PlayerID:   playerID,
		SpeciesID:  optionalString(step.Args, "species", ""),
		Resolution: optionalString(step.Args, "resolution", ""),
	}

	mode := optionalString(step.Args, "mode", "wild")
	var response *gamegrpc.BattleResponse
	switch mode {
	case "wild":
		response, err = r.env.client.BattleWild(ctx, request)
	case "gym":
		response, err = r.env.client.BattleGym(ctx, request)
	case "ai":
		response, err = r.env.client.BattleAI(ctx, request)
	case "pvp":
		opponentID, lookupErr := r.playerID(state, requiredString(step.Args, "opponent"))
		if lookupErr != nil {
			return lookupErr
		}
		request.OpponentID = opponentID
		response, err = r.env.client.BattlePlayer(ctx, request)
	default:
		return r.failf("unknown battle mode %q", mode)
	}
	if done, checkErr := r.checkExpectedError(step, err); done {
		return checkErr
	}
	r.logf("%s %s battle: %s (+%d xp, +%d gold)", player, mode, response.Result, response.RewardXP, response.RewardGold)

	if expect := optionalString(step.Args, "expect", ""); expect != "" && response.Result != expect {
		return r.assertf("%s battle: result = %s, want %s", mode, response.Result, expect)
	}
	return nil
}

func (r *Runner) runRenameStep(ctx context.Context, state *scenarioState, step Step) error {
	player := requiredString(step.Args, "player")
	playerID, err := r.playerID(state, player)
	if err != nil {
		return err
	}
	alias := requiredString(step.Args, "monster")
	nickname := optionalString(step.Args, "name", "")
	response, err := r.env.client.RenameMonster(ctx, &gamegrpc.RenameMonsterRequest{
		PlayerID:  playerID,
		MonsterID: state.monsterID(player, alias),
		Nickname:  nickname,
	})
	if done, checkErr := r.checkExpectedError(step, err); done {
		return checkErr
	}
	state.monsters[monsterKey(player, response.Monster.Nickname)] = response.Monster.ID
	return nil
}

func (r *Runner) runReleaseStep(ctx context.Context, state *scenarioState, step Step) error {
	player := requiredString(step.Args, "player")
	playerID, err := r.playerID(state, player)
	if err != nil {
		return err
	}
	alias := requiredString(step.Args, "monster")
	monsterID := state.monsterID(player, alias)
	_, err = r.env.client.ReleaseMonster(ctx, &gamegrpc.ReleaseMonsterRequest{PlayerID: playerID, MonsterID: monsterID})
	if done, checkErr := r.checkExpectedError(step, err); done {
		return checkErr
	}
	for key, id := range state.monsters {
		if id == monsterID {
			delete(state.monsters, key)
		}
	}
	return nil
}

func (r *Runner) runExpectProfileStep(ctx context.Context, state *scenarioState, step Step) error {
	player := requiredString(step.Args, "player")
	playerID, err := r.playerID(state, player)
	if err != nil {
		return err
	}
	profile, err := r.env.client.GetProfile(ctx, &gamegrpc.GetProfileRequest{PlayerID: playerID})
	if err != nil {
		return r.failf("get profile %s: %v", player, err)
	}

	if level, ok := readInt(step.Args, "level"); ok && profile.Player.Level != level {
		if err := r.assertf("%s level = %d, want %d", player, profile.Player.Level, level); err != nil {
			return err
		}
	}
	if minimum, ok := readInt(step.Args, "currency_min"); ok && profile.Player.Currency < minimum {
		if err := r.assertf("%s currency = %d, want at least %d", player, profile.Player.Currency, minimum); err != nil {
			return err
		}
	}
	if monsters, ok := readInt(step.Args, "monsters"); ok && profile.MonsterCount != monsters {
		if err := r.assertf("%s monsters = %d, want %d", player, profile.MonsterCount, monsters); err != nil {
			return err
		}
	}
	if wins, ok := readInt(step.Args, "wins"); ok && profile.Wins != wins {
		if err := r.assertf("%s wins = %d, want %d", player, profile.Wins, wins); err != nil {
			return err
		}
	}

	unlocked := make([]string, 0, len(profile.Achievements))
	for _, achievement := range profile.Achievements {
		unlocked = append(unlocked, achievement.ConditionCode)
	}
	for _, want := range stringList(step.Args, "achievements") {
		if !slices.Contains(unlocked, want) {
			if err := r.assertf("%s missing achievement %s (have %v)", player, want, unlocked); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkExpectedError reports whether the step outcome is settled by err.
// With expect_error set, a matching error code ends the step successfully.
func (r *Runner) checkExpectedError(step Step, err error) (bool, error) {
	want := optionalString(step.Args, "expect_error", "")
	if want == "" {
		if err != nil {
			return true, r.failf("%s: %v", step.Kind, err)
		}
		return false, nil
	}
	if err == nil {
		return true, r.assertf("%s: expected error %s", step.Kind, want)
	}
	appErr, _ := apperrors.FromGRPCStatus(err)
	if string(appErr.Code) != want {
		return true, r.assertf("%s: error code = %s, want %s", step.Kind, appErr.Code, want)
	}
	return true, nil
}

func (r *Runner) playerID(state *scenarioState, name string) (string, error) {
	if name == "" {
		return "", r.failf("player is required")
	}
	id, ok := state.players[name]
	if !ok {
		return "", r.failf("unknown player %q", name)
	}
	return id, nil
}

// monsterID resolves a script alias, falling back to treating it as an id.
func (s *scenarioState) monsterID(player, alias string) string {
	if id, ok := s.monsters[monsterKey(player, alias)]; ok {
		return id
	}
	return alias
}

func monsterKey(player, alias string) string {
	return fmt.Sprintf("%s/%s", player, alias)
}
