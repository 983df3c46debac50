package catch

import (
	"math"
	"testing"
	"time"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
)

func TestChance(t *testing.T) {
	tests := []struct {
		name   string
		rarity creature.Rarity
		level  int
		want   float64
	}{
		{name: "common level 0", rarity: creature.RarityCommon, level: 0, want: 0.9},
		{name: "uncommon level 5", rarity: creature.RarityUncommon, level: 5, want: 0.75},
		{name: "rare level 10", rarity: creature.RarityRare, level: 10, want: 0.6},
		{name: "legendary level 1", rarity: creature.RarityLegendary, level: 1, want: 0.21},
		{name: "unknown rarity", rarity: creature.Rarity("Mythic"), level: 0, want: DefaultBaseRate},
		{name: "capped at one", rarity: creature.RarityCommon, level: 50, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chance(tt.rarity, tt.level)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Chance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttemptCatchBoundary(t *testing.T) {
	if !AttemptCatch(creature.RarityCommon, 0, 0.9) {
		t.Fatal("sample equal to chance should succeed")
	}
	if AttemptCatch(creature.RarityCommon, 0, 0.9000001) {
		t.Fatal("sample above chance should fail")
	}
	if !AttemptCatch(creature.RarityLegendary, 0, 0) {
		t.Fatal("zero sample should always succeed")
	}
}

func TestNewCaughtMonster(t *testing.T) {
	species := creature.Species{
		ID:     "sp-1",
		Name:   "Emberkit",
		Type:   "Fire",
		Rarity: creature.RarityCommon,
		Base:   creature.StatBlock{HP: 50, Attack: 50, Defense: 50, Speed: 50},
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	monster := NewCaughtMonster("m-1", species, "p-1", now)

	if monster.Level != 1 || monster.Experience != 0 {
		t.Fatalf("level/xp = %d/%d, want 1/0", monster.Level, monster.Experience)
	}
	if monster.Stats != creature.Derive(species.Base, 1) {
		t.Fatalf("stats = %+v", monster.Stats)
	}
	if monster.CurrentHP != 12 {
		t.Fatalf("current hp = %d, want 12", monster.CurrentHP)
	}
	if monster.Nickname != "Emberkit" || monster.OwnerID != "p-1" || monster.SpeciesID != "sp-1" {
		t.Fatalf("unexpected identity: %+v", monster)
	}
	if !monster.CaughtAt.Equal(now) {
		t.Fatalf("caught at = %v", monster.CaughtAt)
	}
}
