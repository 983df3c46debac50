package battle

import (
	"context"
	"fmt"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/random"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/combat"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/reward"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/typechart"
)

// maxPowerRoll bounds the random bonus added to level in power resolution.
const maxPowerRoll = 5

// Request describes a battle to run.
type Request struct {
	Mode       Mode
	Resolution Resolution
	Challenger Roster
	Opponent   Roster
}

// Battle is a single battle moving through NotStarted, InProgress and
// Concluded.
type Battle struct {
	req       Request
	lifecycle *lifecycle
	outcome   *Outcome
}

// New creates a battle in the NotStarted state.
func New(req Request) *Battle {
	if req.Resolution == "" {
		req.Resolution = ResolutionTurns
	}
	return &Battle{req: req, lifecycle: newLifecycle()}
}

// State returns the current lifecycle stage.
func (b *Battle) State() State {
	return b.lifecycle.current()
}

// Outcome returns the result once concluded.
func (b *Battle) Outcome() (Outcome, bool) {
	if b.outcome == nil {
		return Outcome{}, false
	}
	return *b.outcome, true
}

// Start validates both rosters and moves the battle into progress.
func (b *Battle) Start(ctx context.Context) error {
	if b.State() == StateNotStarted {
		if err := validateRoster(SideChallenger, b.req.Challenger); err != nil {
			return err
		}
		if err := validateRoster(SideOpponent, b.req.Opponent); err != nil {
			return err
		}
	}
	return b.lifecycle.fire(ctx, eventStart)
}

// Resolve fights the battle and concludes it.
func (b *Battle) Resolve(ctx context.Context, rng random.RNG, table typechart.Lookup) (Outcome, error) {
	if b.State() != StateInProgress {
		return Outcome{}, apperrors.WithMetadata(apperrors.CodeBattleState, ErrBattleState.Message, map[string]string{
			"Event": eventConclude,
			"State": string(b.State()),
		})
	}
	if rng == nil {
		return Outcome{}, fmt.Errorf("battle rng is required")
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{Mode: b.req.Mode, Resolution: b.req.Resolution}
	var (
		challengerSide []int
		opponentSide   []int
	)
	if b.req.Mode == ModeAI {
		n := min(len(b.req.Challenger.Combatants), len(b.req.Opponent.Combatants))
		for i := 0; i < n; i++ {
			challengerSide = append(challengerSide, i)
			opponentSide = append(opponentSide, i)
		}
	} else {
		challengerSide = []int{pickActive(rng, len(b.req.Challenger.Combatants))}
		opponentSide = []int{pickActive(rng, len(b.req.Opponent.Combatants))}
	}

	challengerKOs, opponentKOs := 0, 0
	for i := range challengerSide {
		left := b.req.Challenger.Combatants[challengerSide[i]]
		right := b.req.Opponent.Combatants[opponentSide[i]]
		var (
			result pairResult
			err    error
		)
		switch b.req.Resolution {
		case ResolutionPower:
			result = powerDuel(left, right, rng)
			outcome.Rolls = append(outcome.Rolls, result.roll)
		default:
			result, err = turnDuel(left, right, rng, table)
			if err != nil {
				return Outcome{}, err
			}
			outcome.Turns = append(outcome.Turns, result.turns...)
		}
		if result.challengerWon {
			challengerKOs++
		} else {
			opponentKOs++
		}
		outcome.Participants = append(outcome.Participants,
			Participant{Side: SideChallenger, MonsterID: left.MonsterID, Name: left.Name, FinalHP: result.challengerHP, Fainted: !result.challengerWon},
			Participant{Side: SideOpponent, MonsterID: right.MonsterID, Name: right.Name, FinalHP: result.opponentHP, Fainted: result.challengerWon},
		)
	}

	outcome.ChallengerWon = challengerKOs > opponentKOs
	if outcome.ChallengerWon {
		outcome.ResultLabel = LabelVictory
		outcome.WinnerID = b.req.Challenger.OwnerID
	} else {
		outcome.ResultLabel = LabelDefeat
		outcome.WinnerID = b.req.Opponent.OwnerID
	}
	if outcome.WinnerID != "" {
		if err := b.applyRewards(&outcome, challengerSide, opponentSide); err != nil {
			return Outcome{}, err
		}
	}

	if err := b.lifecycle.fire(ctx, eventConclude); err != nil {
		return Outcome{}, err
	}
	b.outcome = &outcome
	return outcome, nil
}

func (b *Battle) applyRewards(outcome *Outcome, challengerSide, opponentSide []int) error {
	earned, err := reward.Compute(b.req.Mode.Difficulty())
	if err != nil {
		return err
	}
	outcome.RewardXP = earned.XP
	outcome.RewardGold = earned.Gold

	roster, picked := b.req.Opponent, opponentSide
	if outcome.ChallengerWon {
		roster, picked = b.req.Challenger, challengerSide
	}
	// Full-team battles reward the whole winning team, including members
	// left without a pairing.
	if b.req.Mode == ModeAI {
		picked = picked[:0:0]
		for idx := range roster.Combatants {
			picked = append(picked, idx)
		}
	}
	for _, idx := range picked {
		if id := roster.Combatants[idx].MonsterID; id != "" {
			outcome.WinningMonsterIDs = append(outcome.WinningMonsterIDs, id)
		}
	}
	outcome.XPPerMonster = reward.SplitXP(earned.XP, len(outcome.WinningMonsterIDs))
	return nil
}

// Run starts and resolves a battle in one call.
func Run(ctx context.Context, req Request, rng random.RNG, table typechart.Lookup) (Outcome, error) {
	b := New(req)
	if err := b.Start(ctx); err != nil {
		return Outcome{}, err
	}
	return b.Resolve(ctx, rng, table)
}

func validateRoster(side Side, roster Roster) error {
	if len(roster.Combatants) == 0 {
		return apperrors.WithMetadata(apperrors.CodeEmptyRoster, ErrEmptyRoster.Message, map[string]string{
			"Side": string(side),
		})
	}
	return nil
}

func pickActive(rng random.RNG, n int) int {
	if n <= 1 {
		return 0
	}
	idx := rng.NextIntInclusive(0, n-1)
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}

type pairResult struct {
	challengerWon bool
	challengerHP  int
	opponentHP    int
	turns         []combat.TurnResult
	roll          PowerRoll
}

// turnDuel alternates attacks, challenger first, until one side faints.
// Both sides start at full derived hp. Every hit deals at least one damage,
// so the loop ends.
func turnDuel(challenger, opponent Combatant, rng random.RNG, table typechart.Lookup) (pairResult, error) {
	moves := combat.StandardMoves()
	hp := [2]int{challenger.Stats.HP, opponent.Stats.HP}
	sides := [2]Combatant{challenger, opponent}
	result := pairResult{}

	attacker := 0
	for hp[0] > 0 && hp[1] > 0 {
		defender := 1 - attacker
		move := moves[pickActive(rng, len(moves))]
		turn, err := combat.ExecuteTurn(sides[attacker].fighter(hp[attacker]), sides[defender].fighter(hp[defender]), move, table)
		if err != nil {
			return pairResult{}, err
		}
		hp[defender] = turn.DefenderHP
		result.turns = append(result.turns, turn)
		attacker = defender
	}
	result.challengerHP = hp[0]
	result.opponentHP = hp[1]
	result.challengerWon = hp[1] == 0
	return result, nil
}

// powerDuel compares level plus a 0..5 roll; ties favor the challenger.
func powerDuel(challenger, opponent Combatant, rng random.RNG) pairResult {
	roll := PowerRoll{
		Challenger: challenger.Level + rng.NextIntInclusive(0, maxPowerRoll),
		Opponent:   opponent.Level + rng.NextIntInclusive(0, maxPowerRoll),
	}
	won := roll.Challenger >= roll.Opponent
	result := pairResult{
		challengerWon: won,
		challengerHP:  challenger.Stats.HP,
		opponentHP:    opponent.Stats.HP,
		roll:          roll,
	}
	if won {
		result.opponentHP = 0
	} else {
		result.challengerHP = 0
	}
	return result
}
