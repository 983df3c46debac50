package game

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8080 || cfg.Addr != "" || cfg.Seed != 0 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.DBPath != "data/monsterdex.db" || cfg.Resolution != "turns" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if got := cfg.ServerConfig().Addr; got != ":8080" {
		t.Fatalf("addr = %q", got)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("MONSTERDEX_GAME_SEED", "99")
	t.Setenv("MONSTERDEX_GAME_RESOLUTION", "power")

	cfg, err := ParseConfig(flag.NewFlagSet("game", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Seed != 99 || cfg.Resolution != "power" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("MONSTERDEX_GAME_PORT", "7000")
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9001", "-addr", "127.0.0.1:9999", "-db", "/tmp/x.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9001 || cfg.DBPath != "/tmp/x.db" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if got := cfg.ServerConfig().Addr; got != "127.0.0.1:9999" {
		t.Fatalf("expected addr override, got %q", got)
	}
}

func TestParseConfigRejectsBadSeed(t *testing.T) {
	t.Setenv("MONSTERDEX_GAME_SEED", "abc")
	if _, err := ParseConfig(flag.NewFlagSet("game", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected error for malformed seed")
	}
}
