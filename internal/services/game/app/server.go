package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	platformgrpc "github.com/louisbranch/monsterdex/internal/platform/grpc"
	"github.com/louisbranch/monsterdex/internal/platform/id"
	"github.com/louisbranch/monsterdex/internal/platform/timeouts"
	"github.com/louisbranch/monsterdex/internal/random"
	gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"
	"github.com/louisbranch/monsterdex/internal/services/game/api/grpc/interceptors"
	grpcmeta "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/metadata"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/battle"
	storagesqlite "github.com/louisbranch/monsterdex/internal/services/game/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// DefaultDBPath is used when Config.DBPath is empty.
var DefaultDBPath = filepath.Join("data", "monsterdex.db")

// Config describes a game server instance.
type Config struct {
	// Addr is the listen address, for example ":8080".
	Addr string
	// DBPath is the SQLite database file.
	DBPath string
	// Seed fixes the RNG seed; zero draws one from crypto/rand.
	Seed int64
	// Resolution is the default battle resolution, turns or power.
	Resolution string
}

// Server hosts the monsterdex game server.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *storagesqlite.Store
}

// New creates a configured game server listening on cfg.Addr.
func New(cfg Config) (*Server, error) {
	resolution, err := battle.ParseResolution(cfg.Resolution)
	if err != nil {
		return nil, fmt.Errorf("parse resolution: %w", err)
	}
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	store, err := openStore(cfg.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	rng, err := newRNG(cfg.Seed)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, err
	}
	log.Printf("rng seed = %d, resolution = %s", rng.Seed(), resolution)

	gameService, err := gamegrpc.NewGameService(store, rng, gamegrpc.Options{
		Resolution:  resolution,
		IDGenerator: id.NewID,
	})
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("create game service: %w", err)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpcmeta.UnaryServerInterceptor(id.NewID),
			interceptors.AuditInterceptor(log.Default()),
			interceptors.ErrorInterceptor(),
		),
	)
	gamegrpc.RegisterGameServiceServer(grpcServer, gameService)
	healthServer := platformgrpc.RegisterHealth(grpcServer, gamegrpc.ServiceName)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the game server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a game server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	grpcServer, err := New(cfg)
	if err != nil {
		return err
	}
	return grpcServer.Serve(ctx)
}

// Serve starts the game server and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	log.Printf("game server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		stopped := make(chan struct{})
		go func() {
			s.grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(timeouts.Shutdown):
			log.Printf("game server shutdown exceeded %v, forcing stop", timeouts.Shutdown)
			s.grpcServer.Stop()
		}
		err := <-serveErr
		return handleErr(err)
	case err := <-serveErr:
		return handleErr(err)
	}
}

func newRNG(seed int64) (*random.Seeded, error) {
	if seed != 0 {
		return random.NewSeeded(seed), nil
	}
	rng, err := random.NewFromEntropy()
	if err != nil {
		return nil, fmt.Errorf("seed rng: %w", err)
	}
	return rng, nil
}

func openStore(path string) (*storagesqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultDBPath
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	store, err := storagesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	return nil
}

func (s *Server) closeStore() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close game store: %v", err)
	}
}
