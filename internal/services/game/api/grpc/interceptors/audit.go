package interceptors

import (
	"context"
	"log"
	"path"
	"strings"
	"time"

	grpcmeta "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/metadata"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var readMethodPrefixes = []string{"Get", "List", "Explore", "Leaderboard"}

// AuditInterceptor writes one log line per unary call with its outcome and
// correlation identifiers. A nil logger uses the standard logger.
func AuditInterceptor(logger *log.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = log.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		started := time.Now()
		resp, err := handler(ctx, req)

		line := []string{
			"method=" + info.FullMethod,
			"kind=" + classifyMethodKind(info.FullMethod),
			"code=" + status.Code(err).String(),
			"took=" + time.Since(started).Round(time.Microsecond).String(),
		}
		if requestID := grpcmeta.RequestIDFromContext(ctx); requestID != "" {
			line = append(line, "request_id="+requestID)
		}
		if invocationID := grpcmeta.InvocationIDFromContext(ctx); invocationID != "" {
			line = append(line, "invocation_id="+invocationID)
		}
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			line = append(line, "trace_id="+sc.TraceID().String())
		}
		logger.Print(strings.Join(line, " "))
		return resp, err
	}
}

func classifyMethodKind(fullMethod string) string {
	name := path.Base(fullMethod)
	for _, prefix := range readMethodPrefixes {
		if strings.HasPrefix(name, prefix) {
			return "read"
		}
	}
	return "write"
}
