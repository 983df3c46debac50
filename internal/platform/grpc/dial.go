// Package grpc holds client and server helpers shared by monsterdex gRPC peers.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ErrNotServing reports that a server accepted the connection but its health
// service never reached SERVING.
var ErrNotServing = errors.New("server is not serving")

// ClientConfig describes a client connection to a monsterdex server.
type ClientConfig struct {
	Addr string
	// HealthTimeout bounds the wait for SERVING. Zero waits for ctx.
	HealthTimeout time.Duration
	Logf          func(string, ...any)
	// Options replace DefaultClientDialOptions when set.
	Options []gogrpc.DialOption
}

// DefaultClientDialOptions returns standard dial options for local clients,
// with OTel stats handlers so outbound calls carry trace context.
func DefaultClientDialOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// Connect creates a client for cfg.Addr and waits until the server's health
// service reports SERVING. The connection is closed when the wait fails.
func Connect(ctx context.Context, cfg ClientConfig) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("gRPC address is required")
	}
	opts := cfg.Options
	if len(opts) == 0 {
		opts = DefaultClientDialOptions()
	}

	conn, err := gogrpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	waitCtx := ctx
	if cfg.HealthTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, cfg.HealthTimeout)
		defer cancel()
	}
	if err := WaitForHealth(waitCtx, conn, "", cfg.Logf); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w at %s: %w", ErrNotServing, addr, err)
	}
	return conn, nil
}
