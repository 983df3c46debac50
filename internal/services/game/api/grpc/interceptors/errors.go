// Package interceptors holds the unary interceptors wrapped around the game
// API.
package interceptors

import (
	"context"
	"log"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
	grpcmeta "github.com/louisbranch/monsterdex/internal/services/game/api/grpc/metadata"
	"google.golang.org/grpc"
)

// ErrorInterceptor converts domain errors returned by handlers into gRPC
// statuses localized for the caller.
func ErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if apperrors.GetCode(err) == apperrors.CodeUnknown {
			log.Printf("%s failed: %v", info.FullMethod, err)
		}
		return nil, apperrors.HandleError(err, grpcmeta.LocaleFromContext(ctx))
	}
}
