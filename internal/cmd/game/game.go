// Package game parses game command flags and starts the game server.
package game

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/monsterdex/internal/platform/cmd"
	server "github.com/louisbranch/monsterdex/internal/services/game/app"
)

// Config holds game command configuration.
type Config struct {
	Port       int    `env:"MONSTERDEX_GAME_PORT" envDefault:"8080"`
	Addr       string `env:"MONSTERDEX_GAME_ADDR"`
	DBPath     string `env:"MONSTERDEX_GAME_DB_PATH" envDefault:"data/monsterdex.db"`
	Seed       int64  `env:"MONSTERDEX_GAME_SEED"`
	Resolution string `env:"MONSTERDEX_GAME_RESOLUTION" envDefault:"turns"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The game server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The game server listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "The SQLite database path")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Fixed RNG seed (0 draws one at startup)")
	fs.StringVar(&cfg.Resolution, "resolution", cfg.Resolution, "Default battle resolution: turns or power")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServerConfig resolves the listen address.
func (c Config) ServerConfig() server.Config {
	addr := c.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", c.Port)
	}
	return server.Config{
		Addr:       addr,
		DBPath:     c.DBPath,
		Seed:       c.Seed,
		Resolution: c.Resolution,
	}
}

// Run starts the game API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(ctx context.Context) error {
		return server.Run(ctx, cfg.ServerConfig())
	})
}
