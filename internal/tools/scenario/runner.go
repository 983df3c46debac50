package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	platformgrpc "github.com/louisbranch/monsterdex/internal/platform/grpc"
	"github.com/louisbranch/monsterdex/internal/platform/timeouts"
	gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"
	"google.golang.org/grpc"
)

// Config controls scenario execution.
type Config struct {
	GRPCAddr   string
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:   "localhost:8080",
		Timeout:    timeouts.ScenarioStep,
		Assertions: AssertionStrict,
	}
}

// Runner executes Lua scenarios against the game gRPC API.
type Runner struct {
	conn       *grpc.ClientConn
	env        scenarioEnv
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	timeout    time.Duration
}

// NewRunner connects to gRPC and prepares a scenario runner.
func NewRunner(ctx context.Context, cfg Config) (*Runner, error) {
	if cfg.GRPCAddr == "" {
		return nil, errors.New("grpc address is required")
	}

	opts := append(platformgrpc.DefaultClientDialOptions(), grpc.WithDefaultCallOptions(grpc.WaitForReady(true)))
	conn, err := grpc.NewClient(cfg.GRPCAddr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial gRPC: %w", err)
	}

	r := newRunnerWithEnv(cfg, scenarioEnv{client: gamegrpc.NewGameServiceClient(conn)})
	r.conn = conn
	return r, nil
}

// newRunnerWithEnv builds a Runner around an existing client.
func newRunnerWithEnv(cfg Config, env scenarioEnv) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = timeouts.ScenarioStep
	}
	return &Runner{
		env:        env,
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		timeout:    timeout,
	}
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) error {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	runner, err := NewRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()
	return runner.RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps against gRPC.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return errors.New("scenario is required")
	}
	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))
	state := newScenarioState()

	for index, step := range scenario.Steps {
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
