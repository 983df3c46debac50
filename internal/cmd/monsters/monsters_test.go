package monsters

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/platform/i18n/catalog"
	gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"google.golang.org/grpc"
)

type fakeGame struct {
	gamegrpc.GameServiceClient

	players     map[string]gamegrpc.Player
	registerErr error
	battle      *gamegrpc.BattleRequest
	battleMode  string
	history     *gamegrpc.ListBattlesRequest
	renamed     *gamegrpc.RenameMonsterRequest
}

func newFakeGame() *fakeGame {
	return &fakeGame{players: map[string]gamegrpc.Player{
		"p-ash":   {ID: "p-ash", Name: "Ash", Level: 2, Experience: 10, NextLevelXP: 60, Currency: 150},
		"p-misty": {ID: "p-misty", Name: "Misty", Level: 1, NextLevelXP: 50},
	}}
}

func (f *fakeGame) RegisterPlayer(_ context.Context, in *gamegrpc.RegisterPlayerRequest, _ ...grpc.CallOption) (*gamegrpc.RegisterPlayerResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &gamegrpc.RegisterPlayerResponse{Player: gamegrpc.Player{ID: "p-new", Name: in.Name, Level: 1}}, nil
}

func (f *fakeGame) GetProfile(_ context.Context, in *gamegrpc.GetProfileRequest, _ ...grpc.CallOption) (*gamegrpc.GetProfileResponse, error) {
	for _, p := range f.players {
		if (in.PlayerID != "" && p.ID == in.PlayerID) || (in.PlayerID == "" && p.Name == in.PlayerName) {
			return &gamegrpc.GetProfileResponse{
				Player:       p,
				MonsterCount: 3,
				Wins:         4,
				Achievements: []gamegrpc.Achievement{{Name: "First Catch", ConditionCode: "catch_1"}},
			}, nil
		}
	}
	return nil, apperrors.HandleError(apperrors.NotFound("player", in.PlayerName+in.PlayerID), "")
}

func (f *fakeGame) Catch(_ context.Context, in *gamegrpc.CatchRequest, _ ...grpc.CallOption) (*gamegrpc.CatchResponse, error) {
	return &gamegrpc.CatchResponse{
		Success:  true,
		Chance:   0.9,
		Monster:  &gamegrpc.Monster{ID: "m-1", Nickname: "Flametail", SpeciesID: in.SpeciesID},
		Unlocked: []gamegrpc.AchievementUnlock{{ConditionCode: "catch_1", AchievementName: "First Catch"}},
	}, nil
}

func (f *fakeGame) fight(mode string, in *gamegrpc.BattleRequest) (*gamegrpc.BattleResponse, error) {
	f.battle = in
	f.battleMode = mode
	return &gamegrpc.BattleResponse{
		Mode:          mode,
		Result:        "victory",
		RewardXP:      100,
		RewardGold:    50,
		Turns:         []gamegrpc.Turn{{Attacker: "Flametail", Move: "Tackle", Defender: "Aqualing", Damage: 30, DefenderHP: 0}},
		PlayerLevelUp: &gamegrpc.LevelUp{Name: "Ash", NewLevel: 3, LevelsGained: 1},
	}, nil
}

func (f *fakeGame) BattleWild(_ context.Context, in *gamegrpc.BattleRequest, _ ...grpc.CallOption) (*gamegrpc.BattleResponse, error) {
	return f.fight("wild", in)
}

func (f *fakeGame) BattlePlayer(_ context.Context, in *gamegrpc.BattleRequest, _ ...grpc.CallOption) (*gamegrpc.BattleResponse, error) {
	return f.fight("pvp", in)
}

func (f *fakeGame) ListMonsters(_ context.Context, _ *gamegrpc.ListMonstersRequest, _ ...grpc.CallOption) (*gamegrpc.ListMonstersResponse, error) {
	return &gamegrpc.ListMonstersResponse{Monsters: []gamegrpc.Monster{{
		ID: "m-1", Nickname: "Cinder", SpeciesName: "Flametail", Level: 2,
		Experience: 5, CurrentHP: 9, Stats: creature.StatBlock{HP: 16},
	}}}, nil
}

func (f *fakeGame) RenameMonster(_ context.Context, in *gamegrpc.RenameMonsterRequest, _ ...grpc.CallOption) (*gamegrpc.RenameMonsterResponse, error) {
	f.renamed = in
	return &gamegrpc.RenameMonsterResponse{Monster: gamegrpc.Monster{ID: in.MonsterID, Nickname: in.Nickname}}, nil
}

func (f *fakeGame) ListBattles(_ context.Context, in *gamegrpc.ListBattlesRequest, _ ...grpc.CallOption) (*gamegrpc.ListBattlesResponse, error) {
	f.history = in
	return &gamegrpc.ListBattlesResponse{Battles: []gamegrpc.BattleRecord{{
		ID: "b-1", Mode: "gym", Result: "victory", CreatedAt: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
	}}}, nil
}

func (f *fakeGame) Leaderboard(_ context.Context, in *gamegrpc.LeaderboardRequest, _ ...grpc.CallOption) (*gamegrpc.LeaderboardResponse, error) {
	return &gamegrpc.LeaderboardResponse{Kind: in.Kind, Entries: []gamegrpc.LeaderboardEntry{
		{Rank: 1, PlayerName: "Ash", Score: 7},
		{Rank: 2, PlayerName: "Misty", Score: 3},
	}}, nil
}

func newTestClient(game gamegrpc.GameServiceClient, locale, player string) (*client, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &client{
		game:    game,
		printer: catalog.Default().Printer(locale),
		locale:  catalog.Default().Match(locale),
		player:  player,
		out:     &out,
		errOut:  &errOut,
	}, &out, &errOut
}

func TestParseConfigSplitsCommand(t *testing.T) {
	t.Setenv("MONSTERDEX_CLI_PLAYER", "Ash")
	fs := flag.NewFlagSet("monsters", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-locale", "es-ES", "battle", "-mode", "gym"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "localhost:8080" || cfg.Locale != "es-ES" || cfg.Player != "Ash" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Command != "battle" || strings.Join(cfg.Args, " ") != "-mode gym" {
		t.Fatalf("command = %q args = %v", cfg.Command, cfg.Args)
	}
}

func TestRunWithoutCommandPrintsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	err := Run(context.Background(), Config{}, &out, &errOut)
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("err = %v, want ErrCommandFailed", err)
	}
	if !strings.HasPrefix(errOut.String(), "usage: monsters") {
		t.Fatalf("usage = %q", errOut.String())
	}
}

func TestCommandsPrintLocalizedOutput(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		args   []string
		want   []string
	}{
		{
			name: "register",
			args: []string{"register", "Brock"},
			want: []string{"Registered Brock (id p-new)."},
		},
		{
			name: "profile",
			args: []string{"profile"},
			want: []string{"Ash - level 2 (10/60 xp), 150 coins", "Monsters: 3  Wins: 4", "  * First Catch"},
		},
		{
			name:   "profile spanish",
			locale: "es-ES",
			args:   []string{"profile"},
			want:   []string{"Ash - nivel 2 (10/60 xp), 150 monedas", "Monstruos: 3  Victorias: 4"},
		},
		{
			name: "catch",
			args: []string{"catch", "sp-flametail"},
			want: []string{"Caught Flametail! (chance 90%)", "Achievement unlocked: First Catch"},
		},
		{
			name: "battle",
			args: []string{"battle"},
			want: []string{"Flametail used Tackle on Aqualing for 30 damage (0 hp left)", "Victory! +100 xp, +50 gold", "Ash reached level 3!"},
		},
		{
			name: "monsters",
			args: []string{"monsters"},
			want: []string{"m-1  Cinder (Flametail) lv 2  hp 9/16  xp 5"},
		},
		{
			name: "history",
			args: []string{"history", "-filter", `mode = "gym"`},
			want: []string{"2026-05-01 09:30  gym     victory  b-1"},
		},
		{
			name: "leaderboard",
			args: []string{"leaderboard", "-kind", "wins"},
			want: []string{"1. Ash  7", "2. Misty  3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out, errOut := newTestClient(newFakeGame(), tt.locale, "Ash")
			if err := cli.run(context.Background(), tt.args[0], tt.args[1:]); err != nil {
				t.Fatalf("run: %v (stderr %q)", err, errOut.String())
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Fatalf("output %q missing %q", out.String(), want)
				}
			}
		})
	}
}

func TestBattlePlayerResolvesOpponent(t *testing.T) {
	game := newFakeGame()
	cli, _, errOut := newTestClient(game, "", "Ash")
	if err := cli.run(context.Background(), "battle", []string{"-mode", "pvp", "-opponent", "Misty", "-resolution", "power"}); err != nil {
		t.Fatalf("run: %v (stderr %q)", err, errOut.String())
	}
	if game.battleMode != "pvp" || game.battle.PlayerID != "p-ash" || game.battle.OpponentID != "p-misty" {
		t.Fatalf("battle = %s %+v", game.battleMode, game.battle)
	}
	if game.battle.Resolution != "power" {
		t.Fatalf("resolution = %q", game.battle.Resolution)
	}
}

func TestRenameJoinsNickname(t *testing.T) {
	game := newFakeGame()
	cli, out, _ := newTestClient(game, "", "p-ash")
	if err := cli.run(context.Background(), "rename", []string{"m-1", "Big", "Cinder"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if game.renamed.Nickname != "Big Cinder" || game.renamed.PlayerID != "p-ash" {
		t.Fatalf("rename = %+v", game.renamed)
	}
	if !strings.Contains(out.String(), "Renamed to Big Cinder.") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestCommandErrorsAreLocalized(t *testing.T) {
	taken := apperrors.WithMetadata(apperrors.CodePlayerNameTaken, "player name taken", map[string]string{"Name": "Ash"})
	tests := []struct {
		name   string
		locale string
		player string
		args   []string
		setup  func(*fakeGame)
		want   string
	}{
		{
			name:   "server error in spanish",
			locale: "es-ES",
			args:   []string{"register", "Ash"},
			setup:  func(f *fakeGame) { f.registerErr = apperrors.HandleError(taken, "es-ES") },
			want:   "error: El nombre Ash ya está en uso.",
		},
		{
			name: "missing player",
			args: []string{"profile"},
			want: "error: Invalid player: is required.",
		},
		{
			name:   "unknown player",
			player: "Gary",
			args:   []string{"explore"},
			want:   "error: The player was not found.",
		},
		{
			name:   "bad mode",
			player: "Ash",
			args:   []string{"battle", "-mode", "raid"},
			want:   "error: Invalid mode: raid.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := newFakeGame()
			if tt.setup != nil {
				tt.setup(game)
			}
			cli, _, errOut := newTestClient(game, tt.locale, tt.player)
			err := cli.run(context.Background(), tt.args[0], tt.args[1:])
			if !errors.Is(err, ErrCommandFailed) {
				t.Fatalf("err = %v, want ErrCommandFailed", err)
			}
			if got := strings.TrimSpace(errOut.String()); got != tt.want {
				t.Fatalf("stderr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnknownCommandPrintsUsage(t *testing.T) {
	cli, out, _ := newTestClient(newFakeGame(), "", "Ash")
	if err := cli.run(context.Background(), "trade", nil); !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("err = %v, want ErrCommandFailed", err)
	}
	if !strings.Contains(out.String(), "usage: monsters") {
		t.Fatalf("output = %q", out.String())
	}
}
