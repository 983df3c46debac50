package creature

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
)

// MaxNicknameLength caps nicknames in runes.
const MaxNicknameLength = 32

// NormalizeNickname trims a nickname and rejects empty or oversized values.
func NormalizeNickname(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperrors.InvalidInput("nickname", "must not be empty")
	}
	if utf8.RuneCountInString(name) > MaxNicknameLength {
		return "", apperrors.InvalidInput("nickname", "must be at most 32 characters")
	}
	return name, nil
}
