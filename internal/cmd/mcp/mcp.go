// Package mcp parses MCP command flags and starts the stdio adapter.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/monsterdex/internal/platform/cmd"
	mcpservice "github.com/louisbranch/monsterdex/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Addr      string `env:"MONSTERDEX_MCP_GAME_ADDR" envDefault:"localhost:8080"`
	Transport string `env:"MONSTERDEX_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "game server address")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			GRPCAddr:  cfg.Addr,
			Transport: mcpservice.TransportKind(cfg.Transport),
		})
	})
}
