package battle

import (
	"context"
	"errors"

	"github.com/looplab/fsm"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
)

// State is a lifecycle stage.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateConcluded  State = "concluded"
)

const (
	eventStart    = "start"
	eventConclude = "conclude"
)

type lifecycle struct {
	machine *fsm.FSM
}

func newLifecycle() *lifecycle {
	return &lifecycle{
		machine: fsm.NewFSM(
			string(StateNotStarted),
			fsm.Events{
				{Name: eventStart, Src: []string{string(StateNotStarted)}, Dst: string(StateInProgress)},
				{Name: eventConclude, Src: []string{string(StateInProgress)}, Dst: string(StateConcluded)},
			},
			fsm.Callbacks{},
		),
	}
}

func (l *lifecycle) current() State {
	return State(l.machine.Current())
}

func (l *lifecycle) fire(ctx context.Context, event string) error {
	err := l.machine.Event(ctx, event)
	if err == nil {
		return nil
	}
	var invalid fsm.InvalidEventError
	var unknown fsm.UnknownEventError
	if errors.As(err, &invalid) || errors.As(err, &unknown) {
		return apperrors.WithMetadata(apperrors.CodeBattleState, ErrBattleState.Message, map[string]string{
			"Event": event,
			"State": l.machine.Current(),
		})
	}
	return err
}
