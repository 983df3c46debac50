package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("catch: %w", NotFound("species", "sp-1"))
	if !stderrors.Is(err, New(CodeNotFound, "other message")) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(err, New(CodeInvalidInput, "")) {
		t.Fatal("expected different code to not match")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "save battle", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "save battle" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeNotFound, codes.NotFound},
		{CodeInvalidStat, codes.InvalidArgument},
		{CodeInvalidInput, codes.InvalidArgument},
		{CodeEmptyRoster, codes.FailedPrecondition},
		{CodeBattleState, codes.FailedPrecondition},
		{CodePlayerNameTaken, codes.AlreadyExists},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range tests {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("%s.GRPCCode() = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestHandleErrorAttachesDetails(t *testing.T) {
	err := HandleError(InvalidInput("nickname", "must not be empty"), "es-ES")
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected status error, got %v", err)
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("code = %v", st.Code())
	}
	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.GetReason() != string(CodeInvalidInput) || info.GetDomain() != Domain {
		t.Fatalf("unexpected error info: %v", info)
	}
	if localized == nil || localized.GetLocale() != "es-ES" {
		t.Fatalf("unexpected localized message: %v", localized)
	}
	if localized.GetMessage() != "Valor inválido para nickname: must not be empty." {
		t.Fatalf("localized message = %q", localized.GetMessage())
	}
}

func TestHandleErrorNonDomain(t *testing.T) {
	if HandleError(nil, "") != nil {
		t.Fatal("expected nil for nil error")
	}
	st, _ := status.FromError(HandleError(stderrors.New("boom"), ""))
	if st.Code() != codes.Internal {
		t.Fatalf("code = %v, want Internal", st.Code())
	}
	st, _ = status.FromError(HandleError(context.DeadlineExceeded, ""))
	if st.Code() != codes.DeadlineExceeded {
		t.Fatalf("code = %v, want DeadlineExceeded", st.Code())
	}
	passthrough := status.Error(codes.Unavailable, "down")
	if HandleError(passthrough, "") != passthrough {
		t.Fatal("expected status errors to pass through")
	}
}

func TestFromGRPCStatusRoundTrip(t *testing.T) {
	sent := WithMetadata(CodePlayerNameTaken, "player name taken", map[string]string{"Name": "Ash"})
	got, localized := FromGRPCStatus(HandleError(sent, "en-US"))
	if got.Code != CodePlayerNameTaken {
		t.Fatalf("code = %s", got.Code)
	}
	if got.Metadata["Name"] != "Ash" {
		t.Fatalf("metadata = %v", got.Metadata)
	}
	if localized != "The name Ash is already taken." {
		t.Fatalf("localized = %q", localized)
	}
	if !IsCode(got, CodePlayerNameTaken) {
		t.Fatal("expected IsCode match")
	}
}

func TestGetMetadata(t *testing.T) {
	if GetMetadata(stderrors.New("plain")) != nil {
		t.Fatal("expected nil metadata")
	}
	meta := GetMetadata(fmt.Errorf("wrapped: %w", NotFound("player", "p1")))
	if meta["Resource"] != "player" || meta["ID"] != "p1" {
		t.Fatalf("metadata = %v", meta)
	}
}
