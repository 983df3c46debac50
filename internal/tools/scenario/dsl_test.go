package scenario

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScenarioFixture(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "first_steps.lua")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadScenarioRecordsSteps(t *testing.T) {
	scenario, err := LoadScenario(`
local scene = Scenario.new("steps")
scene:player({name = "ash"})
scene:catch({player = "ash", species = "sp-flametail", expect = "success", attempts = 3})
scene:battle({player = "ash", species = "sp-aqualing"})
scene:expect_profile({player = "ash", level = 2, achievements = {"catch_1", "win_1"}})
return scene
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "steps" {
		t.Fatalf("name = %q, want steps", scenario.Name)
	}
	kinds := []string{"player", "catch", "battle", "expect_profile"}
	if len(scenario.Steps) != len(kinds) {
		t.Fatalf("steps = %d, want %d", len(scenario.Steps), len(kinds))
	}
	for i, kind := range kinds {
		if scenario.Steps[i].Kind != kind {
			t.Fatalf("step %d kind = %q, want %q", i, scenario.Steps[i].Kind, kind)
		}
	}
	if scenario.Steps[1].Args["attempts"] != 3 {
		t.Fatalf("attempts = %v, want 3", scenario.Steps[1].Args["attempts"])
	}
	if scenario.Steps[2].Args["mode"] != "wild" {
		t.Fatalf("battle mode = %v, want wild default", scenario.Steps[2].Args["mode"])
	}
	got := stringList(scenario.Steps[3].Args, "achievements")
	if len(got) != 2 || got[0] != "catch_1" || got[1] != "win_1" {
		t.Fatalf("achievements = %v", got)
	}
}

func TestLoadScenarioSupportsChaining(t *testing.T) {
	scenario, err := LoadScenario(`
return Scenario.new("chain")
  :player({name = "ash"})
  :player({name = "misty"})
  :battle({player = "ash", mode = "pvp", opponent = "misty", expect = "victory"})
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if len(scenario.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(scenario.Steps))
	}
	if scenario.Steps[2].Args["opponent"] != "misty" {
		t.Fatalf("opponent = %v", scenario.Steps[2].Args["opponent"])
	}
}

func TestLoadScenarioRejectsInvalidSteps(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "player without name",
			source: `local s = Scenario.new("x"); s:player({}); return s`,
			want:   "player name is required",
		},
		{
			name:   "rename without name",
			source: `local s = Scenario.new("x"); s:rename({player = "ash", monster = "m"}); return s`,
			want:   "rename name is required",
		},
		{
			name:   "pvp without opponent",
			source: `local s = Scenario.new("x"); s:battle({player = "ash", mode = "pvp"}); return s`,
			want:   "pvp battle opponent is required",
		},
		{
			name:   "unknown mode",
			source: `local s = Scenario.new("x"); s:battle({player = "ash", mode = "raid"}); return s`,
			want:   "unknown battle mode",
		},
		{
			name:   "no scenario returned",
			source: `local s = Scenario.new("x"); return 1`,
			want:   "must return Scenario",
		},
		{
			name:   "syntax error",
			source: `local s = Scenario.new(`,
			want:   "load lua",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadScenarioFromFileDefaultsName(t *testing.T) {
	path := writeScenarioFixture(t, `
local scene = Scenario.new()
scene:player({name = "ash"})
return scene
`)
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "first_steps" {
		t.Fatalf("name = %q, want first_steps", scenario.Name)
	}
}

func TestLoadStarterScenario(t *testing.T) {
	scenario, err := LoadScenarioFromFile(filepath.Join("testdata", "starter.lua"))
	if err != nil {
		t.Fatalf("load starter: %v", err)
	}
	if scenario.Name != "starter" || len(scenario.Steps) != 10 {
		t.Fatalf("scenario = %s with %d steps", scenario.Name, len(scenario.Steps))
	}
}

func TestRunStarterScenarioAgainstGame(t *testing.T) {
	scenario, err := LoadScenarioFromFile(filepath.Join("testdata", "starter.lua"))
	if err != nil {
		t.Fatalf("load starter: %v", err)
	}
	var out bytes.Buffer
	if err := newTestRunner(startGame(t), AssertionStrict, &out).RunScenario(context.Background(), scenario); err != nil {
		t.Fatalf("run starter: %v\n%s", err, out.String())
	}
}
