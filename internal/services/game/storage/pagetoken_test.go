package storage

import (
	"testing"

	apperrors "github.com/louisbranch/monsterdex/internal/platform/errors"
)

func TestPageToken(t *testing.T) {
	if EncodePageToken(0) != "" {
		t.Fatal("offset zero should encode to empty token")
	}
	token := EncodePageToken(40)
	offset, err := DecodePageToken(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if offset != 40 {
		t.Fatalf("offset = %d, want 40", offset)
	}
	if offset, err := DecodePageToken(""); err != nil || offset != 0 {
		t.Fatalf("empty token = %d, %v", offset, err)
	}
}

func TestDecodePageTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"!!!", "b2Zmc2V0Oi0x", "Zm9vOjE"} {
		if _, err := DecodePageToken(token); !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
			t.Fatalf("DecodePageToken(%q) err = %v", token, err)
		}
	}
}
