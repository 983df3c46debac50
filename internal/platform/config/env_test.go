package config

import (
	"bytes"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port   int    `env:"MONSTERDEX_TEST_PORT" envDefault:"123"`
	DBPath string `env:"MONSTERDEX_TEST_DB_PATH" envDefault:"data/game.db"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.DBPath != "data/game.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("MONSTERDEX_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvFromIgnoresProcessEnv(t *testing.T) {
	t.Setenv("MONSTERDEX_TEST_PORT", "999")

	var cfg envTestConfig
	if err := ParseEnvFrom(&cfg, map[string]string{"MONSTERDEX_TEST_DB_PATH": "/tmp/x.db"}); err != nil {
		t.Fatalf("parse env from map: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.DBPath != "/tmp/x.db" {
		t.Fatalf("expected db path override, got %q", cfg.DBPath)
	}
}

func TestParseEnvFromNilMap(t *testing.T) {
	var cfg envTestConfig
	if err := ParseEnvFrom(&cfg, nil); err != nil {
		t.Fatalf("parse env from nil map: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestFprintExitAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	fprintExit(&buf, "fatal: %s", "db locked")
	if got := buf.String(); got != "fatal: db locked\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestFprintExitCollapsesTrailingNewlines(t *testing.T) {
	var buf bytes.Buffer
	fprintExit(&buf, "Error: %v", "open monsterdex.db: locked\n\n")
	if got := buf.String(); got != "Error: open monsterdex.db: locked\n" {
		t.Fatalf("output = %q", got)
	}
}
