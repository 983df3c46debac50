package metadata

import (
	"context"
	"strings"

	"github.com/louisbranch/monsterdex/internal/platform/i18n/catalog"
	"github.com/louisbranch/monsterdex/internal/platform/id"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader is the gRPC metadata key for request correlation IDs.
const RequestIDHeader = "x-monsterdex-request-id"

// InvocationIDHeader is the gRPC metadata key for MCP tool invocation IDs.
const InvocationIDHeader = "x-monsterdex-invocation-id"

// AcceptLanguageHeader carries the caller's preferred locales.
const AcceptLanguageHeader = "accept-language"

type contextKey string

const (
	requestIDContextKey    contextKey = "monsterdex-request-id"
	invocationIDContextKey contextKey = "monsterdex-invocation-id"
	localeContextKey       contextKey = "monsterdex-locale"
)

// RequestIDFromContext returns the request ID stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey).(string)
	return value
}

// InvocationIDFromContext returns the invocation ID stored in context.
func InvocationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(invocationIDContextKey).(string)
	return value
}

// LocaleFromContext returns the resolved locale, falling back to the
// accept-language metadata and then the base locale.
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return catalog.BaseLocale
	}
	if value, ok := ctx.Value(localeContextKey).(string); ok && value != "" {
		return value
	}
	return catalog.Default().Match(metadataValueFromIncomingContext(ctx, AcceptLanguageHeader))
}

// WithRequestID stores the request ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// WithInvocationID stores the invocation ID in context.
func WithInvocationID(ctx context.Context, invocationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, invocationIDContextKey, invocationID)
}

// WithLocale stores the resolved locale in context.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeContextKey, locale)
}

// OutgoingContext attaches the request headers a client sends on every call.
func OutgoingContext(ctx context.Context, locale, invocationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	pairs := []string{}
	if locale = strings.TrimSpace(locale); locale != "" {
		pairs = append(pairs, AcceptLanguageHeader, locale)
	}
	if invocationID = strings.TrimSpace(invocationID); invocationID != "" {
		pairs = append(pairs, InvocationIDHeader, invocationID)
	}
	if len(pairs) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

// IsPrintableASCII reports whether a string contains only printable ASCII characters.
func IsPrintableASCII(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return false
		}
	}
	return true
}

// FirstMetadataValue returns the first printable ASCII metadata value for a key.
func FirstMetadataValue(md metadata.MD, key string) string {
	if len(md) == 0 {
		return ""
	}
	for mdKey, values := range md {
		if !strings.EqualFold(mdKey, key) {
			continue
		}
		for _, value := range values {
			if IsPrintableASCII(value) {
				return value
			}
		}
	}
	return ""
}

// UnaryServerInterceptor guarantees every inbound call carries a request ID
// and a resolved locale.
func UnaryServerInterceptor(idGenerator func() (string, error)) grpc.UnaryServerInterceptor {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		updatedCtx, requestID, invocationID, err := ensureRequestMetadata(ctx, idGenerator)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "ensure request metadata: %v", err)
		}
		if headerErr := grpc.SetHeader(updatedCtx, responseHeaders(requestID, invocationID)); headerErr != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", headerErr)
		}
		return handler(updatedCtx, req)
	}
}

func ensureRequestMetadata(ctx context.Context, idGenerator func() (string, error)) (context.Context, string, string, error) {
	requestID := metadataValueFromIncomingContext(ctx, RequestIDHeader)
	invocationID := metadataValueFromIncomingContext(ctx, InvocationIDHeader)
	if requestID == "" {
		generatedID, err := idGenerator()
		if err != nil {
			return nil, "", "", err
		}
		requestID = generatedID
	}

	updatedCtx := WithRequestID(ctx, requestID)
	if invocationID != "" {
		updatedCtx = WithInvocationID(updatedCtx, invocationID)
	}
	locale := catalog.Default().Match(metadataValueFromIncomingContext(ctx, AcceptLanguageHeader))
	updatedCtx = WithLocale(updatedCtx, locale)
	return updatedCtx, requestID, invocationID, nil
}

func metadataValueFromIncomingContext(ctx context.Context, header string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return FirstMetadataValue(md, header)
}

func responseHeaders(requestID, invocationID string) metadata.MD {
	headers := metadata.Pairs(RequestIDHeader, requestID)
	if invocationID != "" {
		headers.Append(InvocationIDHeader, invocationID)
	}
	return headers
}
