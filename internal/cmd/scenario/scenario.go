// Package scenario parses scenario command flags and replays a Lua script
// against the game server.
package scenario

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"time"

	entrypoint "github.com/louisbranch/monsterdex/internal/platform/cmd"
	"github.com/louisbranch/monsterdex/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	GRPCAddr   string        `env:"MONSTERDEX_SCENARIO_GAME_ADDR" envDefault:"localhost:8080"`
	Scenario   string        `env:"MONSTERDEX_SCENARIO_FILE"`
	Assertions bool          `env:"MONSTERDEX_SCENARIO_ASSERT"    envDefault:"true"`
	Verbose    bool          `env:"MONSTERDEX_SCENARIO_VERBOSE"`
	Timeout    time.Duration `env:"MONSTERDEX_SCENARIO_TIMEOUT"   envDefault:"10s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "game server address")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, errOut io.Writer) error {
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScenario, func(ctx context.Context) error {
		return scenario.RunFile(ctx, scenario.Config{
			GRPCAddr:   cfg.GRPCAddr,
			Timeout:    cfg.Timeout,
			Assertions: mode,
			Verbose:    cfg.Verbose,
			Logger:     log.New(errOut, "", 0),
		}, cfg.Scenario)
	})
}
