package errors

import (
	"context"
	"errors"

	"github.com/louisbranch/monsterdex/internal/platform/errors/i18n"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// HandleError converts domain errors to a gRPC status for client responses.
// The user-facing message is rendered from the i18n catalog for locale.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	if _, ok := status.FromError(err); ok && GetCode(err) == CodeUnknown {
		return err
	}

	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		catalog := i18n.GetCatalog(locale)
		userMsg := catalog.Format(string(appErr.Code), appErr.Metadata)
		return appErr.ToGRPCStatus(catalog.Locale(), userMsg)
	}

	return status.Error(codes.Internal, "an unexpected error occurred")
}

// FromGRPCStatus rebuilds a domain error from a status produced by
// HandleError. The second value is the localized message, if any.
func FromGRPCStatus(err error) (*Error, string) {
	if err == nil {
		return nil, ""
	}
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return Wrap(CodeUnknown, err.Error(), err), ""
	}
	out := &Error{Code: CodeUnknown, Message: st.Message(), Cause: err}
	localized := ""
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			out.Code = Code(d.GetReason())
			out.Metadata = d.GetMetadata()
		case *errdetails.LocalizedMessage:
			localized = d.GetMessage()
		}
	}
	return out, localized
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}
