package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown         = "UNKNOWN"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidStat     = "INVALID_STAT"
	CodeEmptyRoster     = "EMPTY_ROSTER"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeBattleState     = "BATTLE_STATE"
	CodePlayerNameTaken = "PLAYER_NAME_TAKEN"
)

// KnownCodes lists every code a locale catalog is expected to translate.
var KnownCodes = []Code{
	CodeUnknown,
	CodeNotFound,
	CodeInvalidStat,
	CodeEmptyRoster,
	CodeInvalidInput,
	CodeBattleState,
	CodePlayerNameTaken,
}
