package monsters

import (
	"context"
	"flag"
	"strings"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"
	"google.golang.org/grpc"
)

func (c *client) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

// positional returns the n-th positional argument or an INVALID_INPUT error.
func positional(args []string, index int, field string) (string, error) {
	if index >= len(args) || strings.TrimSpace(args[index]) == "" {
		return "", apperrors.InvalidInput(field, "is required")
	}
	return args[index], nil
}

// resolvePlayer looks the configured player up by name, then by id.
func (c *client) resolvePlayer(ctx context.Context) (gamegrpc.Player, error) {
	ref := strings.TrimSpace(c.player)
	if ref == "" {
		return gamegrpc.Player{}, apperrors.InvalidInput("player", "is required")
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	profile, err := c.game.GetProfile(callCtx, &gamegrpc.GetProfileRequest{PlayerName: ref})
	if err == nil {
		return profile.Player, nil
	}
	if remote, _ := apperrors.FromGRPCStatus(err); remote.Code != apperrors.CodeNotFound {
		return gamegrpc.Player{}, err
	}
	profile, err = c.game.GetProfile(callCtx, &gamegrpc.GetProfileRequest{PlayerID: ref})
	if err != nil {
		return gamegrpc.Player{}, err
	}
	return profile.Player, nil
}

func (c *client) register(ctx context.Context, args []string) error {
	name, err := positional(args, 0, "name")
	if err != nil {
		return err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	response, err := c.game.RegisterPlayer(callCtx, &gamegrpc.RegisterPlayerRequest{Name: name})
	if err != nil {
		return err
	}
	c.println("cli.register.done", response.Player.Name, response.Player.ID)
	return nil
}

func (c *client) profile(ctx context.Context, _ []string) error {
	player, err := c.resolvePlayer(ctx)
	if err != nil {
		return err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	profile, err := c.game.GetProfile(callCtx, &gamegrpc.GetProfileRequest{PlayerID: player.ID})
	if err != nil {
		return err
	}
	p := profile.Player
	c.println("cli.profile.header", p.Name, p.Level, p.Experience, p.NextLevelXP, p.Currency)
	c.println("cli.profile.counts", profile.MonsterCount, profile.Wins)
	for _, achievement := range profile.Achievements {
		c.println("cli.profile.achievement", achievement.Name)
	}
	return nil
}

func (c *client) explore(ctx context.Context, _ []string) error {
	player, err := c.resolvePlayer(ctx)
	if err != nil {
		return err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	found, err := c.game.Explore(callCtx, &gamegrpc.ExploreRequest{PlayerID: player.ID})
	if err != nil {
		return err
	}
	sp := found.Species
	c.println("cli.explore.encounter", sp.Name, sp.Type, sp.Rarity, found.Level, sp.ID)
	return nil
}

func (c *client) catch(ctx context.Context, args []string) error {
	speciesID, err := positional(args, 0, "species")
	if err != nil {
		return err
	}
	player, err := c.resolvePlayer(ctx)
	if err != nil {
		return err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	response, err := c.game.Catch(callCtx, &gamegrpc.CatchRequest{PlayerID: player.ID, SpeciesID: speciesID})
	if err != nil {
		return err
	}
	if response.Success && response.Monster != nil {
		c.println("cli.catch.success", response.Monster.Nickname, response.Chance*100)
	} else {
		c.println("cli.catch.failure", speciesID, response.Chance*100)
	}
	c.printUnlocks(response.Unlocked)
	return nil
}

func (c *client) battle(ctx context.Context, args []string) error {
	fs := c.flagSet("battle")
	mode := fs.String("mode", "wild", "battle mode: wild, gym, ai or pvp")
	opponent := fs.String("opponent", "", "opposing player name or id (pvp)")
	species := fs.String("species", "", "wild species id (random when empty)")
	resolution := fs.String("resolution", "", "turns or power (server default when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	player, err := c.resolvePlayer(ctx)
	if err != nil {
		return err
	}
	request := &gamegrpc.BattleRequest{PlayerID: player.ID, SpeciesID: *species, Resolution: *resolution}

	var call func(context.Context, *gamegrpc.BattleRequest, ...grpc.CallOption) (*gamegrpc.BattleResponse, error)
	switch *mode {
	case "wild":
		call = c.game.BattleWild
	case "gym":
		call = c.game.BattleGym
	case "ai":
		call = c.game.BattleAI
	case "pvp":
		rival := &client{game: c.game, locale: c.locale, player: *opponent}
		opponentPlayer, err := rival.resolvePlayer(ctx)
		if err != nil {
			return err
		}
		request.OpponentID = opponentPlayer.ID
		call = c.game.BattlePlayer
	default:
		return apperrors.InvalidInput("mode", *mode)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	response, err := call(callCtx, request)
	if err != nil {
		return err
	}
	for _, turn := range response.Turns {
		c.println("cli.battle.turn", turn.Attacker, turn.Move, turn.Defender, turn.Damage, turn.DefenderHP)
	}
	if response.Result == "victory" {
		c.println("cli.battle.victory", response.RewardXP, response.RewardGold)
	} else {
		c.println("cli.battle.defeat")
	}
	if up := response.PlayerLevelUp; up != nil {
		c.println("cli.level_up", up.Name, up.NewLevel)
	}
	for _, up := range response.MonsterLevelUps {
		c.println("cli.level_up", up.Name, up.NewLevel)
	}
	c.printUnlocks(response.Unlocked)
	return nil
}

func (c *client) monsters(ctx context.Context, _ []string) error {
	player, err := c.resolvePlayer(ctx)
	if err != nil {
		return err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	response, err := c.game.ListMonsters(callCtx, &gamegrpc.ListMonstersRequest{PlayerID: player.ID})
	if err != nil {
		return err
	}
	if len(response.Monsters) == 0 {
		c.println("cli.monster.empty")
		return nil
	}
	for _, m := range response.Monsters {
		c.println("cli.monster.line", m.ID, m.Nickname, m.SpeciesName, m.Level, m.CurrentHP, m.Stats.HP, m.Experience)
	}
	return nil
}

func (c *client) rename(ctx context.Context, args []string) error {
	monsterID, err := positional(args, 0, "monster")
	if err != nil {
		return err
	}
	if _, err := positional(args, 1, "nickname"); err != nil {
		return err
	}
	nickname := strings.Join(args[1:], " ")
	player, err := c.resolvePlayer(ctx)
	if err != nil {
		return err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	response, err := c.game.RenameMonster(callCtx, &gamegrpc.RenameMonsterRequest{
		PlayerID:  player.ID,
		MonsterID: monsterID,
		Nickname:  nickname,
	})
	if err != nil {
		return err
	}
	c.println("cli.monster.renamed", response.Monster.Nickname)
	return nil
}

func (c *client) release(ctx context.Context, args []string) error {
	monsterID, err := positional(args, 0, "monster")
	if err != nil {
		return err
	}
	player, err := c.resolvePlayer(ctx)
	if err != nil {
		return err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	response, err := c.game.ReleaseMonster(callCtx, &gamegrpc.ReleaseMonsterRequest{PlayerID: player.ID, MonsterID: monsterID})
	if err != nil {
		return err
	}
	c.println("cli.monster.released", response.Nickname)
	return nil
}

func (c *client) history(ctx context.Context, args []string) error {
	fs := c.flagSet("history")
	filter := fs.String("filter", "", `AIP-160 filter, e.g. mode = "gym"`)
	pageSize := fs.Int("page-size", 0, "battles per page")
	pageToken := fs.String("page-token", "", "token from a previous page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	player, err := c.resolvePlayer(ctx)
	if err != nil {
		return err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	response, err := c.game.ListBattles(callCtx, &gamegrpc.ListBattlesRequest{
		PlayerID:  player.ID,
		Filter:    *filter,
		PageSize:  *pageSize,
		PageToken: *pageToken,
	})
	if err != nil {
		return err
	}
	if len(response.Battles) == 0 {
		c.println("cli.history.empty")
		return nil
	}
	for _, record := range response.Battles {
		c.println("cli.history.line", record.CreatedAt.Format("2006-01-02 15:04"), record.Mode, record.Result, record.ID)
	}
	if response.NextPageToken != "" {
		c.printer.Fprintln(c.out, response.NextPageToken)
	}
	return nil
}

func (c *client) leaderboard(ctx context.Context, args []string) error {
	fs := c.flagSet("leaderboard")
	kind := fs.String("kind", "monsters", "monsters or wins")
	limit := fs.Int("limit", 10, "rows to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	response, err := c.game.Leaderboard(callCtx, &gamegrpc.LeaderboardRequest{Kind: *kind, Limit: *limit})
	if err != nil {
		return err
	}
	for _, entry := range response.Entries {
		c.println("cli.leaderboard.line", entry.Rank, entry.PlayerName, entry.Score)
	}
	return nil
}

func (c *client) printUnlocks(unlocks []gamegrpc.AchievementUnlock) {
	for _, unlock := range unlocks {
		c.println("cli.achievement.unlocked", unlock.AchievementName)
	}
}
