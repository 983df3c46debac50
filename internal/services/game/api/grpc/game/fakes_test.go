package game

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	"github.com/louisbranch/monsterdex/internal/random"
	"github.com/louisbranch/monsterdex/internal/services/game/api/grpc/interceptors"
	grpcmeta "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/metadata"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"github.com/louisbranch/monsterdex/internal/services/game/storage"
	"github.com/louisbranch/monsterdex/internal/services/game/storage/memory"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var testNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

// sequentialIDs returns id-1, id-2, ...
func sequentialIDs() func() (string, error) {
	var (
		mu   sync.Mutex
		next int
	)
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("id-%d", next), nil
	}
}

// Titan dominates Pebble: at level 1 a Titan deals 27 damage per Tackle and
// Pebble has 11 hp.
var (
	speciesTitan = creature.Species{
		ID: "sp-titan", Name: "Titan", Type: "Rock", Rarity: creature.RarityCommon,
		Base: creature.StatBlock{HP: 100, Attack: 200, Defense: 200, Speed: 50}, BaseLevel: 10,
	}
	speciesPebble = creature.Species{
		ID: "sp-pebble", Name: "Pebble", Type: "Rock", Rarity: creature.RarityCommon,
		Base: creature.StatBlock{HP: 10, Attack: 10, Defense: 10, Speed: 10}, BaseLevel: 1,
	}
	speciesWyrm = creature.Species{
		ID: "sp-wyrm", Name: "Wyrm", Type: "Dragon", Rarity: creature.RarityLegendary,
		Base: creature.StatBlock{HP: 90, Attack: 90, Defense: 90, Speed: 90}, BaseLevel: 40,
	}
)

func seededRepo(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()
	for _, sp := range []creature.Species{speciesTitan, speciesPebble, speciesWyrm} {
		if err := repo.PutType(ctx, sp.Type); err != nil {
			t.Fatalf("put type: %v", err)
		}
		if err := repo.PutSpecies(ctx, sp); err != nil {
			t.Fatalf("put species: %v", err)
		}
	}
	defs := []achievement.Definition{
		{ID: "ach-1", Name: "First Catch", ConditionCode: achievement.ConditionCatch1},
		{ID: "ach-2", Name: "Collector", ConditionCode: achievement.ConditionCatch10},
		{ID: "ach-3", Name: "Legendary Hunter", ConditionCode: achievement.ConditionCatchLegendary},
		{ID: "ach-4", Name: "Battle Novice", ConditionCode: achievement.ConditionWin1},
		{ID: "ach-5", Name: "Champion", ConditionCode: achievement.ConditionWin50},
	}
	for _, def := range defs {
		if err := repo.PutAchievement(ctx, def); err != nil {
			t.Fatalf("put achievement: %v", err)
		}
	}
	return repo
}

func newTestService(t *testing.T, repo storage.Repository, rng random.RNG) *GameService {
	t.Helper()
	svc, err := NewGameService(repo, rng, Options{Clock: fixedClock, IDGenerator: sequentialIDs()})
	if err != nil {
		t.Fatalf("new game service: %v", err)
	}
	return svc
}

// startServer serves svc over a loopback listener and returns a JSON client.
func startServer(t *testing.T, svc GameServiceServer) GameServiceClient {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpcmeta.UnaryServerInterceptor(nil),
		interceptors.ErrorInterceptor(),
	))
	RegisterGameServiceServer(server, svc)
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return NewGameServiceClient(conn)
}

func registerPlayer(t *testing.T, svc *GameService, name string) storage.PlayerRecord {
	t.Helper()
	resp, err := svc.RegisterPlayer(context.Background(), &RegisterPlayerRequest{Name: name})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return storage.PlayerRecord{ID: resp.Player.ID, Name: resp.Player.Name, Level: resp.Player.Level}
}

func catchSpecies(t *testing.T, svc *GameService, playerID, speciesID string) Monster {
	t.Helper()
	resp, err := svc.Catch(context.Background(), &CatchRequest{PlayerID: playerID, SpeciesID: speciesID})
	if err != nil {
		t.Fatalf("catch %s: %v", speciesID, err)
	}
	if !resp.Success || resp.Monster == nil {
		t.Fatalf("expected catch of %s to succeed, got %+v", speciesID, resp)
	}
	return *resp.Monster
}

func assertCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := apperrors.GetCode(err); got != code {
		if remote, _ := apperrors.FromGRPCStatus(err); remote == nil || remote.Code != code {
			t.Fatalf("expected %s, got %v", code, err)
		}
	}
}

// failingBattleRepo fails SaveBattle inside transactions.
type failingBattleRepo struct {
	storage.Repository
}

var errDiskFull = errors.New("disk full")

func (f failingBattleRepo) SaveBattle(context.Context, storage.BattleRecord) error {
	return errDiskFull
}

func (f failingBattleRepo) RunInTx(ctx context.Context, fn func(ctx context.Context, tx storage.Repository) error) error {
	return f.Repository.RunInTx(ctx, func(ctx context.Context, tx storage.Repository) error {
		return fn(ctx, failingBattleRepo{Repository: tx})
	})
}

// failingUnlockRepo fails every achievement unlock.
type failingUnlockRepo struct {
	storage.Repository
}

func (f failingUnlockRepo) UnlockAchievement(context.Context, string, string, time.Time) (achievement.Definition, bool, error) {
	return achievement.Definition{}, false, errDiskFull
}

func (f failingUnlockRepo) RunInTx(ctx context.Context, fn func(ctx context.Context, tx storage.Repository) error) error {
	return f.Repository.RunInTx(ctx, func(ctx context.Context, tx storage.Repository) error {
		return fn(ctx, failingUnlockRepo{Repository: tx})
	})
}
