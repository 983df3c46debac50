package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	platformgrpc "github.com/louisbranch/monsterdex/internal/platform/grpc"
	"github.com/louisbranch/monsterdex/internal/platform/timeouts"
	gamegrpc "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/game"
	"github.com/louisbranch/monsterdex/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

const (
	serverName    = "Monsterdex MCP"
	serverVersion = "0.1.0"

	defaultGRPCAddr = "localhost:8080"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

// TransportStdio uses standard input/output for MCP.
const TransportStdio TransportKind = "stdio"

// Config configures the MCP server.
type Config struct {
	GRPCAddr  string
	Transport TransportKind
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// New creates an MCP server connected to the game gRPC server at grpcAddr.
func New(ctx context.Context, grpcAddr string) (*Server, error) {
	conn, err := dialGameGRPC(ctx, grpcAddress(grpcAddr))
	if err != nil {
		return nil, err
	}
	return newServer(conn), nil
}

func newServer(conn *grpc.ClientConn) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	domain.RegisterTools(mcpServer, gamegrpc.NewGameServiceClient(conn))
	return &Server{mcpServer: mcpServer, conn: conn}
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, cfg.GRPCAddr, &mcp.StdioTransport{})
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs the MCP session and closes the gRPC connection on exit.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func runWithTransport(ctx context.Context, grpcAddr string, transport mcp.Transport) error {
	server, err := New(ctx, grpcAddr)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

func grpcAddress(addr string) string {
	if addr = strings.TrimSpace(addr); addr != "" {
		return addr
	}
	return defaultGRPCAddr
}

func dialGameGRPC(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	conn, err := platformgrpc.Connect(ctx, platformgrpc.ClientConfig{
		Addr:          addr,
		HealthTimeout: timeouts.GRPCDial,
		Logf: func(format string, args ...any) {
			log.Printf("game %s", fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("dial game server: %w", err)
	}
	return conn, nil
}
