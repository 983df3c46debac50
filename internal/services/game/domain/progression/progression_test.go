package progression

import (
	"math"
	"testing"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
)

func TestThresholds(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(int) int
		level int
		want  int
	}{
		{name: "monster 1", fn: MonsterThreshold, level: 1, want: 50},
		{name: "monster 2", fn: MonsterThreshold, level: 2, want: 60},
		{name: "monster 3", fn: MonsterThreshold, level: 3, want: 72},
		{name: "monster 5", fn: MonsterThreshold, level: 5, want: 103},
		{name: "player 1", fn: PlayerThreshold, level: 1, want: 100},
		{name: "player 2", fn: PlayerThreshold, level: 2, want: 130},
		{name: "player 3", fn: PlayerThreshold, level: 3, want: 169},
		{name: "level zero treated as one", fn: MonsterThreshold, level: 0, want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.level); got != tt.want {
				t.Fatalf("threshold(%d) = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

func TestThresholdsFollowCurveAtHighLevels(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(int) int
		level int
		want  int
	}{
		{name: "monster 100", fn: MonsterThreshold, level: 100, want: 3450748938},
		{name: "monster 110", fn: MonsterThreshold, level: 110, want: 21366127886},
		{name: "monster 130", fn: MonsterThreshold, level: 130, want: 819126062849},
		{name: "player 100", fn: PlayerThreshold, level: 100, want: 19071808545892},
		{name: "beyond int range saturates", fn: MonsterThreshold, level: 500, want: math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.level); got != tt.want {
				t.Fatalf("threshold(%d) = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

func TestLargeDepositEndsBelowThreshold(t *testing.T) {
	tests := []struct {
		name   string
		amount int
	}{
		{name: "2^50", amount: 1 << 50},
		{name: "max int", amount: math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AddPlayerExperience(1, 10, tt.amount)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.NewXP >= PlayerThreshold(result.NewLevel) {
				t.Fatalf("xp %d not below threshold %d at level %d", result.NewXP, PlayerThreshold(result.NewLevel), result.NewLevel)
			}
			if !result.LeveledUp || result.NewLevel != 1+result.LevelsGained {
				t.Fatalf("result = %+v", result)
			}

			base := creature.StatBlock{HP: 50, Attack: 50, Defense: 50, Speed: 50}
			monster := creature.Monster{Level: 1, Experience: 10, Stats: creature.Derive(base, 1), CurrentHP: 1}
			updated, monsterResult, err := AddMonsterExperience(monster, base, tt.amount)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.Experience >= MonsterThreshold(updated.Level) {
				t.Fatalf("monster xp %d not below threshold %d at level %d", updated.Experience, MonsterThreshold(updated.Level), updated.Level)
			}
			if monsterResult.NewLevel != updated.Level || updated.Level < 100 {
				t.Fatalf("monster result = %+v, level %d", monsterResult, updated.Level)
			}
		})
	}
}

func TestAddMonsterExperienceCascades(t *testing.T) {
	base := creature.StatBlock{HP: 50, Attack: 50, Defense: 50, Speed: 50}
	monster := creature.Monster{Level: 1, Stats: creature.Derive(base, 1), CurrentHP: 5}

	updated, result, err := AddMonsterExperience(monster, base, 160)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NewLevel != 3 || result.NewXP != 50 {
		t.Fatalf("level/xp = %d/%d, want 3/50", result.NewLevel, result.NewXP)
	}
	if !result.LeveledUp || result.LevelsGained != 2 {
		t.Fatalf("leveled up = %v gained = %d", result.LeveledUp, result.LevelsGained)
	}
	if result.NewStats == nil || *result.NewStats != creature.Derive(base, 3) {
		t.Fatalf("new stats = %+v", result.NewStats)
	}
	if updated.Level != 3 || updated.Experience != 50 || updated.Stats != creature.Derive(base, 3) {
		t.Fatalf("monster = %+v", updated)
	}
	if updated.CurrentHP != 5 {
		t.Fatalf("current hp = %d, want 5", updated.CurrentHP)
	}
	if updated.Experience >= MonsterThreshold(updated.Level) {
		t.Fatal("xp should be below threshold after progression")
	}
}

func TestAddMonsterExperienceClampsHP(t *testing.T) {
	base := creature.StatBlock{HP: 50, Attack: 50, Defense: 50, Speed: 50}
	monster := creature.Monster{Level: 1, Stats: creature.Derive(base, 1), CurrentHP: 999}

	updated, _, err := AddMonsterExperience(monster, base, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CurrentHP != updated.Stats.HP {
		t.Fatalf("hp = %d, want clamp to %d", updated.CurrentHP, updated.Stats.HP)
	}
}

func TestAddMonsterExperienceNoLevel(t *testing.T) {
	base := creature.StatBlock{HP: 50}
	monster := creature.Monster{Level: 2, Experience: 10, Stats: creature.Derive(base, 2), CurrentHP: 3}

	updated, result, err := AddMonsterExperience(monster, base, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.LeveledUp || result.NewStats != nil {
		t.Fatalf("unexpected level up: %+v", result)
	}
	if updated.Level != 2 || updated.Experience != 30 {
		t.Fatalf("monster = %+v", updated)
	}
}

func TestAddPlayerExperience(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		xp        int
		amount    int
		wantLevel int
		wantXP    int
		wantUps   int
	}{
		{name: "below threshold", level: 1, xp: 0, amount: 50, wantLevel: 1, wantXP: 50},
		{name: "exact threshold", level: 1, xp: 0, amount: 100, wantLevel: 2, wantXP: 0, wantUps: 1},
		{name: "cascade", level: 1, xp: 50, amount: 200, wantLevel: 3, wantXP: 20, wantUps: 2},
		{name: "zero amount", level: 4, xp: 10, amount: 0, wantLevel: 4, wantXP: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddPlayerExperience(tt.level, tt.xp, tt.amount)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.NewLevel != tt.wantLevel || got.NewXP != tt.wantXP || got.LevelsGained != tt.wantUps {
				t.Fatalf("result = %+v", got)
			}
			if got.LeveledUp != (tt.wantUps > 0) {
				t.Fatalf("leveled up = %v", got.LeveledUp)
			}
		})
	}
}

func TestNegativeExperience(t *testing.T) {
	if _, err := AddPlayerExperience(1, 0, -1); !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("player err = %v", err)
	}
	if _, _, err := AddMonsterExperience(creature.Monster{Level: 1}, creature.StatBlock{}, -5); !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("monster err = %v", err)
	}
}
