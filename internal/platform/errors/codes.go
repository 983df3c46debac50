// Package errors provides structured, code-typed errors with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Rules errors
	CodeInvalidStat  Code = "INVALID_STAT"
	CodeEmptyRoster  Code = "EMPTY_ROSTER"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeBattleState  Code = "BATTLE_STATE"

	// Player errors
	CodePlayerNameTaken Code = "PLAYER_NAME_TAKEN"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeInvalidStat,
		CodeInvalidInput:
		return codes.InvalidArgument

	case CodeEmptyRoster,
		CodeBattleState:
		return codes.FailedPrecondition

	case CodeNotFound:
		return codes.NotFound

	case CodePlayerNameTaken:
		return codes.AlreadyExists

	default:
		return codes.Internal
	}
}
