package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
)

func requiredField(field string) error {
	return apperrors.InvalidInput(field, "is required")
}

func requirePlayerID(raw string) (string, error) {
	playerID := strings.TrimSpace(raw)
	if playerID == "" {
		return "", requiredField("player_id")
	}
	return playerID, nil
}

// lookupErr names the missing resource or wraps a store failure.
func lookupErr(err error, resource, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.NotFound(resource, id)
	}
	return fmt.Errorf("get %s %s: %w", resource, id, err)
}

// playerLocks serializes mutating use cases per player.
type playerLocks struct {
	mu    sync.Mutex
	locks map[string]*playerLock
}

type playerLock struct {
	mu   sync.Mutex
	refs int
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{locks: map[string]*playerLock{}}
}

// lock acquires every player's lock in a stable order and returns the
// release function.
func (p *playerLocks) lock(playerIDs ...string) func() {
	ids := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, playerID := range playerIDs {
		if playerID == "" {
			continue
		}
		if _, ok := seen[playerID]; ok {
			continue
		}
		seen[playerID] = struct{}{}
		ids = append(ids, playerID)
	}
	sort.Strings(ids)

	held := make([]*playerLock, 0, len(ids))
	for _, playerID := range ids {
		p.mu.Lock()
		entry := p.locks[playerID]
		if entry == nil {
			entry = &playerLock{}
			p.locks[playerID] = entry
		}
		entry.refs++
		p.mu.Unlock()

		entry.mu.Lock()
		held = append(held, entry)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			p.mu.Lock()
			held[i].refs--
			if held[i].refs == 0 {
				delete(p.locks, ids[i])
			}
			p.mu.Unlock()
		}
	}
}
