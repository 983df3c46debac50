package typechart

import "testing"

func TestTableMultiplier(t *testing.T) {
	table := New([]Entry{
		{AttackType: "Fire", DefendType: "Grass", Multiplier: 2},
		{AttackType: "Water", DefendType: "Fire", Multiplier: 2},
		{AttackType: "Fire", DefendType: "Water", Multiplier: 0.5},
		{AttackType: "Water", DefendType: "Fire", Multiplier: 1.5},
	})

	tests := []struct {
		attack string
		defend string
		want   float64
	}{
		{"Fire", "Grass", 2},
		{"fire", "GRASS", 2},
		{"Fire", "Water", 0.5},
		{"Water", "Fire", 1.5},
		{"Grass", "Fire", Neutral},
		{"", "", Neutral},
	}
	for _, tt := range tests {
		if got := table.Multiplier(tt.attack, tt.defend); got != tt.want {
			t.Fatalf("Multiplier(%q, %q) = %v, want %v", tt.attack, tt.defend, got, tt.want)
		}
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
}

func TestZeroTableIsNeutral(t *testing.T) {
	var table Table
	if got := table.Multiplier("Fire", "Grass"); got != Neutral {
		t.Fatalf("zero table multiplier = %v", got)
	}
}
