package combat

import (
	"errors"
	"testing"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/typechart"
)

func TestExecuteTurn(t *testing.T) {
	chart := typechart.New([]typechart.Entry{
		{AttackType: "Fire", DefendType: "Grass", Multiplier: 2},
		{AttackType: "Fire", DefendType: "Water", Multiplier: 0.5},
	})

	tests := []struct {
		name       string
		attacker   Fighter
		defender   Fighter
		move       Move
		wantDamage int
		wantHP     int
		wantMult   float64
		wantErr    error
	}{
		{
			name:       "neutral hit",
			attacker:   Fighter{Name: "A", Type: "Normal", Attack: 10},
			defender:   Fighter{Name: "B", Type: "Normal", Defense: 5, HP: 50},
			move:       Tackle,
			wantDamage: 30,
			wantHP:     20,
			wantMult:   1,
		},
		{
			name:       "super effective",
			attacker:   Fighter{Name: "A", Type: "Fire", Attack: 10},
			defender:   Fighter{Name: "B", Type: "Grass", Defense: 5, HP: 50},
			move:       Tackle,
			wantDamage: 60,
			wantHP:     0,
			wantMult:   2,
		},
		{
			name:       "resisted floors fraction",
			attacker:   Fighter{Name: "A", Type: "Fire", Attack: 7},
			defender:   Fighter{Name: "B", Type: "Water", Defense: 4, HP: 40},
			move:       Bite,
			wantDamage: 17,
			wantHP:     23,
			wantMult:   0.5,
		},
		{
			name:       "minimum damage",
			attacker:   Fighter{Name: "A", Attack: 1},
			defender:   Fighter{Name: "B", Defense: 100, HP: 10},
			move:       QuickAttack,
			wantDamage: 1,
			wantHP:     9,
			wantMult:   1,
		},
		{
			name:     "zero defense",
			attacker: Fighter{Name: "A", Attack: 10},
			defender: Fighter{Name: "B", Defense: 0, HP: 10},
			move:     Tackle,
			wantErr:  ErrInvalidStat,
		},
		{
			name:     "negative defense",
			attacker: Fighter{Name: "A", Attack: 10},
			defender: Fighter{Name: "B", Defense: -2, HP: 10},
			move:     Tackle,
			wantErr:  ErrInvalidStat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExecuteTurn(tt.attacker, tt.defender, tt.move, chart)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Damage != tt.wantDamage {
				t.Fatalf("damage = %d, want %d", got.Damage, tt.wantDamage)
			}
			if got.DefenderHP != tt.wantHP {
				t.Fatalf("defender hp = %d, want %d", got.DefenderHP, tt.wantHP)
			}
			if got.Multiplier != tt.wantMult {
				t.Fatalf("multiplier = %v, want %v", got.Multiplier, tt.wantMult)
			}
			if got.DefenderOut != (tt.wantHP == 0) {
				t.Fatalf("defender out = %v", got.DefenderOut)
			}
			if got.Move != tt.move.Name || got.Attacker != "A" || got.Defender != "B" {
				t.Fatalf("unexpected labels: %+v", got)
			}
		})
	}
}

func TestExecuteTurnNilTable(t *testing.T) {
	got, err := ExecuteTurn(Fighter{Attack: 10, Type: "Fire"}, Fighter{Defense: 5, HP: 100, Type: "Grass"}, Tackle, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Damage != 30 {
		t.Fatalf("damage = %d, want 30", got.Damage)
	}
}

func TestStandardMoves(t *testing.T) {
	moves := StandardMoves()
	if len(moves) != 3 {
		t.Fatalf("moves = %d", len(moves))
	}
	want := map[string]int{"Tackle": 15, "Bite": 20, "Quick Attack": 12}
	for _, move := range moves {
		if want[move.Name] != move.Power {
			t.Fatalf("move %s power = %d", move.Name, move.Power)
		}
	}
}
