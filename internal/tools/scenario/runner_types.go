package scenario

import gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"

type scenarioEnv struct {
	client gamegrpc.GameServiceClient
}

// scenarioState maps script names to server ids.
type scenarioState struct {
	players  map[string]string
	monsters map[string]string
}

func newScenarioState() *scenarioState {
	return &scenarioState{
		players:  map[string]string{},
		monsters: map[string]string{},
	}
}
