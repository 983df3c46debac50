package creature

// Derive computes current stats from base stats at a level:
//
//	hp    = floor(base*2*level/100) + level + 10
//	other = floor(base*2*level/100) + 5
//
// Levels below 1 are treated as 1.
func Derive(base StatBlock, level int) StatBlock {
	if level < 1 {
		level = 1
	}
	return StatBlock{
		HP:      scaled(base.HP, level) + level + 10,
		Attack:  scaled(base.Attack, level) + 5,
		Defense: scaled(base.Defense, level) + 5,
		Speed:   scaled(base.Speed, level) + 5,
	}
}

// scaled is floor(base*2*level/100); base stats are never negative in
// content, and negative values clamp to zero.
func scaled(base, level int) int {
	if base < 0 {
		base = 0
	}
	return base * 2 * level / 100
}

// ClampHP bounds hp to [0, max].
func ClampHP(hp, max int) int {
	if hp < 0 {
		return 0
	}
	if hp > max {
		return max
	}
	return hp
}
