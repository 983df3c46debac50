// Package typechart resolves elemental effectiveness multipliers.
package typechart

import "strings"

// Neutral is the multiplier for any pair without an entry.
const Neutral = 1.0

// Entry is one effectiveness row.
type Entry struct {
	AttackType string
	DefendType string
	Multiplier float64
}

type pair struct {
	attack string
	defend string
}

// Table is an immutable in-memory effectiveness chart.
type Table struct {
	multipliers map[pair]float64
}

// Lookup is the read side of a type chart.
type Lookup interface {
	Multiplier(attackType, defendType string) float64
}

// New builds a table from rows. Later rows override earlier ones for the
// same pair. Type names are matched case-insensitively.
func New(entries []Entry) Table {
	multipliers := make(map[pair]float64, len(entries))
	for _, entry := range entries {
		multipliers[key(entry.AttackType, entry.DefendType)] = entry.Multiplier
	}
	return Table{multipliers: multipliers}
}

// Multiplier returns the stored multiplier for the pair, or Neutral.
func (t Table) Multiplier(attackType, defendType string) float64 {
	if value, ok := t.multipliers[key(attackType, defendType)]; ok {
		return value
	}
	return Neutral
}

// Len returns the number of stored pairs.
func (t Table) Len() int {
	return len(t.multipliers)
}

func key(attackType, defendType string) pair {
	return pair{
		attack: strings.ToLower(strings.TrimSpace(attackType)),
		defend: strings.ToLower(strings.TrimSpace(defendType)),
	}
}
