package storage

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
)

const pageTokenPrefix = "offset:"

// EncodePageToken produces an opaque token for the given row offset.
func EncodePageToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(pageTokenPrefix + strconv.Itoa(offset)))
}

// DecodePageToken reverses EncodePageToken. Empty tokens start at zero.
func DecodePageToken(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, apperrors.InvalidInput("page_token", "malformed token")
	}
	value, ok := strings.CutPrefix(string(raw), pageTokenPrefix)
	if !ok {
		return 0, apperrors.InvalidInput("page_token", "malformed token")
	}
	offset, err := strconv.Atoi(value)
	if err != nil || offset < 0 {
		return 0, apperrors.InvalidInput("page_token", fmt.Sprintf("bad offset %q", value))
	}
	return offset, nil
}
