package game

import (
	"slices"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/progression"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

func playerToMessage(p storage.PlayerRecord) Player {
	return Player{
		ID:          p.ID,
		Name:        p.Name,
		Level:       p.Level,
		Experience:  p.Experience,
		NextLevelXP: progression.PlayerThreshold(p.Level),
		Currency:    p.Currency,
		CreatedAt:   p.CreatedAt,
	}
}

func speciesToMessage(s creature.Species) Species {
	return Species{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type,
		Rarity:    string(s.Rarity),
		BaseStats: s.Base,
		BaseLevel: s.BaseLevel,
		Abilities: slices.Clone(s.Abilities),
	}
}

func monsterToMessage(m creature.Monster, s creature.Species) Monster {
	return Monster{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		SpeciesID:   m.SpeciesID,
		SpeciesName: s.Name,
		Type:        s.Type,
		Nickname:    m.Nickname,
		Level:       m.Level,
		Experience:  m.Experience,
		NextLevelXP: progression.MonsterThreshold(m.Level),
		Stats:       m.Stats,
		CurrentHP:   m.CurrentHP,
		CaughtAt:    m.CaughtAt,
	}
}

func achievementToMessage(def achievement.Definition) Achievement {
	return Achievement{
		ID:            def.ID,
		Name:          def.Name,
		Description:   def.Description,
		ConditionCode: def.ConditionCode,
	}
}

func unlocksToMessage(unlocks []achievement.Unlock) []AchievementUnlock {
	if len(unlocks) == 0 {
		return nil
	}
	out := make([]AchievementUnlock, 0, len(unlocks))
	for _, u := range unlocks {
		out = append(out, AchievementUnlock{ConditionCode: u.ConditionCode, AchievementName: u.AchievementName})
	}
	return out
}

func profileToMessage(p playerProfile) *GetProfileResponse {
	out := &GetProfileResponse{
		Player:       playerToMessage(p.player),
		MonsterCount: p.monsterCount,
		Wins:         p.wins,
	}
	for _, unlock := range p.achievements {
		item := achievementToMessage(unlock.Achievement)
		at := unlock.UnlockedAt
		item.UnlockedAt = &at
		out.Achievements = append(out.Achievements, item)
	}
	return out
}

func catchToMessage(r catchResult) *CatchResponse {
	out := &CatchResponse{
		Success:  r.Success,
		Chance:   r.Chance,
		Unlocked: unlocksToMessage(r.Unlocked),
	}
	if r.Monster != nil {
		m := monsterToMessage(*r.Monster, r.Species)
		out.Monster = &m
	}
	return out
}

func battleToMessage(r battleResult) *BattleResponse {
	o := r.Outcome
	out := &BattleResponse{
		BattleID:     r.BattleID,
		Mode:         string(o.Mode),
		Resolution:   string(o.Resolution),
		Result:       o.ResultLabel,
		WinnerID:     o.WinnerID,
		RewardXP:     o.RewardXP,
		RewardGold:   o.RewardGold,
		Participants: make([]BattleParticipant, 0, len(o.Participants)),
		Unlocked:     unlocksToMessage(r.Unlocked),
	}
	for _, t := range o.Turns {
		out.Turns = append(out.Turns, Turn{
			Attacker:   t.Attacker,
			Defender:   t.Defender,
			Move:       t.Move,
			Damage:     t.Damage,
			Multiplier: t.Multiplier,
			DefenderHP: t.DefenderHP,
		})
	}
	for _, roll := range o.Rolls {
		out.Rolls = append(out.Rolls, PowerRoll{Challenger: roll.Challenger, Opponent: roll.Opponent})
	}
	for _, p := range o.Participants {
		out.Participants = append(out.Participants, BattleParticipant{
			Side:      string(p.Side),
			MonsterID: p.MonsterID,
			Name:      p.Name,
			FinalHP:   p.FinalHP,
			Fainted:   p.Fainted,
		})
	}
	if r.PlayerLevelUp != nil {
		lu := LevelUp(*r.PlayerLevelUp)
		out.PlayerLevelUp = &lu
	}
	for _, lu := range r.MonsterLevelUps {
		out.MonsterLevelUps = append(out.MonsterLevelUps, LevelUp(lu))
	}
	return out
}

func battleRecordToMessage(b storage.BattleRecord) BattleRecord {
	return BattleRecord{
		ID:           b.ID,
		Mode:         b.Mode,
		Participant1: b.Participant1,
		Participant2: b.Participant2,
		WinnerID:     b.WinnerID,
		Result:       b.Outcome,
		RewardXP:     b.RewardXP,
		RewardGold:   b.RewardGold,
		CreatedAt:    b.CreatedAt,
	}
}
