package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/monsterdex/internal/platform/id"
	"github.com/louisbranch/monsterdex/internal/platform/timeouts"
	grpcmeta "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/metadata"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// grpcCallTimeout caps the time for a single gRPC call from a tool handler.
var grpcCallTimeout = timeouts.GRPCRequest

// invocation carries the per-call context for one tool handler run.
type invocation struct {
	ctx          context.Context
	cancel       context.CancelFunc
	invocationID string
	header       metadata.MD
}

func newInvocation(ctx context.Context) (*invocation, error) {
	invocationID, err := id.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate invocation id: %w", err)
	}
	runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
	return &invocation{
		ctx:          grpcmeta.OutgoingContext(runCtx, "", invocationID),
		cancel:       cancel,
		invocationID: invocationID,
	}, nil
}

// callOption captures the response header so the request id can be echoed.
func (i *invocation) callOption() grpc.CallOption {
	return grpc.Header(&i.header)
}

// result builds the tool result metadata for a finished call.
func (i *invocation) result() *mcp.CallToolResult {
	meta := mcp.Meta{"invocation_id": i.invocationID}
	if values := i.header.Get(grpcmeta.RequestIDHeader); len(values) > 0 {
		meta["request_id"] = values[0]
	}
	return &mcp.CallToolResult{Meta: meta}
}
