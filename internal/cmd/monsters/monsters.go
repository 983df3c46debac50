// Package monsters implements the monsters command-line client for the game
// server. Output is localized through the embedded message catalog.
package monsters

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	entrypoint "github.com/louisbranch/monsterdex/internal/platform/cmd"
	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	platformgrpc "github.com/louisbranch/monsterdex/internal/platform/grpc"
	"github.com/louisbranch/monsterdex/internal/platform/i18n/catalog"
	"github.com/louisbranch/monsterdex/internal/platform/timeouts"
	gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"
	grpcmeta "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/metadata"
	"golang.org/x/text/message"
	"google.golang.org/grpc/status"
)

// ErrCommandFailed is returned after a localized error has been printed.
var ErrCommandFailed = errors.New("command failed")

// Config holds CLI configuration.
type Config struct {
	Addr   string `env:"MONSTERDEX_CLI_GAME_ADDR" envDefault:"localhost:8080"`
	Locale string `env:"MONSTERDEX_CLI_LOCALE"`
	Player string `env:"MONSTERDEX_CLI_PLAYER"`

	Command string
	Args    []string
}

// ParseConfig parses environment and global flags. The first positional
// argument names the subcommand; the rest belong to it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "game server address")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "output locale (en-US, es-ES)")
	fs.StringVar(&cfg.Player, "player", cfg.Player, "player name or id")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	rest := fs.Args()
	if len(rest) > 0 {
		cfg.Command = rest[0]
		cfg.Args = rest[1:]
	}
	return cfg, nil
}

// Run dials the game server and executes the configured subcommand.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	printer := catalog.Default().Printer(cfg.Locale)
	if cfg.Command == "" {
		printer.Fprintln(errOut, printer.Sprintf("cli.usage"))
		return ErrCommandFailed
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCLI, func(ctx context.Context) error {
		conn, err := platformgrpc.Connect(ctx, platformgrpc.ClientConfig{Addr: cfg.Addr, HealthTimeout: timeouts.GRPCDial})
		if err != nil {
			return fmt.Errorf("dial game server: %w", err)
		}
		defer conn.Close()

		cli := &client{
			game:    gamegrpc.NewGameServiceClient(conn),
			printer: printer,
			locale:  catalog.Default().Match(cfg.Locale),
			player:  cfg.Player,
			out:     out,
			errOut:  errOut,
		}
		return cli.run(ctx, cfg.Command, cfg.Args)
	})
}

// client runs one subcommand against the game API.
type client struct {
	game    gamegrpc.GameServiceClient
	printer *message.Printer
	locale  string
	player  string
	out     io.Writer
	errOut  io.Writer
}

func (c *client) run(ctx context.Context, command string, args []string) error {
	handler, ok := c.commands()[command]
	if !ok {
		c.println("cli.usage")
		return ErrCommandFailed
	}
	if err := handler(ctx, args); err != nil {
		c.reportError(err)
		return ErrCommandFailed
	}
	return nil
}

func (c *client) commands() map[string]func(context.Context, []string) error {
	return map[string]func(context.Context, []string) error{
		"register":    c.register,
		"profile":     c.profile,
		"explore":     c.explore,
		"catch":       c.catch,
		"battle":      c.battle,
		"monsters":    c.monsters,
		"rename":      c.rename,
		"release":     c.release,
		"history":     c.history,
		"leaderboard": c.leaderboard,
	}
}

// callContext bounds one RPC and carries the output locale to the server.
func (c *client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	return grpcmeta.OutgoingContext(callCtx, c.locale, ""), cancel
}

func (c *client) println(key string, args ...any) {
	c.printer.Fprintln(c.out, c.printer.Sprintf(key, args...))
}

// reportError prints the localized message for domain and gRPC errors.
func (c *client) reportError(err error) {
	text := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		err = apperrors.HandleError(appErr, c.locale)
	}
	if _, ok := status.FromError(err); ok {
		remote, localized := apperrors.FromGRPCStatus(err)
		switch {
		case localized != "":
			text = localized
		case remote != nil && remote.Message != "":
			text = remote.Message
		}
	}
	c.printer.Fprintln(c.errOut, c.printer.Sprintf("cli.error", strings.TrimSpace(text)))
}
