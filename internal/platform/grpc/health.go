package grpc

import (
	"context"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthFirstDelay = 200 * time.Millisecond
	healthMaxDelay   = time.Second
	healthCallLimit  = time.Second
)

// RegisterHealth exposes grpc.health.v1 on the game server. The empty name
// and every listed service start out SERVING; shutdown flips them.
func RegisterHealth(server *gogrpc.Server, services ...string) *health.Server {
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	for _, name := range append([]string{""}, services...) {
		healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
	}
	return healthServer
}

// WaitForHealth polls the health endpoint until service is SERVING. Clients
// such as the scenario runner call it before their first game RPC.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	client := grpc_health_v1.NewHealthClient(conn)
	delay := healthFirstDelay
	for {
		status, err := checkHealth(ctx, client, service)
		switch {
		case err != nil:
			logf("game server not reachable yet: %v", err)
		case status == grpc_health_v1.HealthCheckResponse_SERVING:
			logf("game server is SERVING")
			return nil
		default:
			logf("game server reports %s", status)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay = nextHealthDelay(delay)
	}
}

func checkHealth(ctx context.Context, client grpc_health_v1.HealthClient, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	callCtx, cancel := context.WithTimeout(ctx, healthCallLimit)
	defer cancel()
	resp, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

// nextHealthDelay doubles the poll delay up to healthMaxDelay.
func nextHealthDelay(delay time.Duration) time.Duration {
	delay *= 2
	if delay > healthMaxDelay {
		return healthMaxDelay
	}
	return delay
}
