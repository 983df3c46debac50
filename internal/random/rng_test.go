package random

import (
	"bytes"
	"testing"
)

func TestSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 20; i++ {
		if a.NextUniform() != b.NextUniform() {
			t.Fatalf("uniform sample %d diverged", i)
		}
		if a.NextIntInclusive(0, 5) != b.NextIntInclusive(0, 5) {
			t.Fatalf("int sample %d diverged", i)
		}
	}
	if a.Seed() != 42 {
		t.Fatalf("seed = %d", a.Seed())
	}
}

func TestSeededBounds(t *testing.T) {
	rng := NewSeeded(7)
	for i := 0; i < 500; i++ {
		if v := rng.NextUniform(); v < 0 || v >= 1 {
			t.Fatalf("uniform out of range: %v", v)
		}
		if v := rng.NextIntInclusive(0, 5); v < 0 || v > 5 {
			t.Fatalf("int out of range: %d", v)
		}
		if v := rng.NextIntInclusive(3, 1); v < 1 || v > 3 {
			t.Fatalf("swapped bounds out of range: %d", v)
		}
	}
	if v := rng.NextIntInclusive(4, 4); v != 4 {
		t.Fatalf("degenerate range = %d", v)
	}
}

func TestNewFromEntropy(t *testing.T) {
	rng, err := NewFromEntropy()
	if err != nil {
		t.Fatalf("new from entropy: %v", err)
	}
	if v := rng.NextUniform(); v < 0 || v >= 1 {
		t.Fatalf("uniform out of range: %v", v)
	}
}

func TestScriptedReplaysAndRepeatsLast(t *testing.T) {
	rng := &Scripted{Uniforms: []float64{0.1, 0.9}, Ints: []int{2, 9}}
	if got := rng.NextUniform(); got != 0.1 {
		t.Fatalf("first uniform = %v", got)
	}
	if got := rng.NextUniform(); got != 0.9 {
		t.Fatalf("second uniform = %v", got)
	}
	if got := rng.NextUniform(); got != 0.9 {
		t.Fatalf("repeated uniform = %v", got)
	}
	if got := rng.NextIntInclusive(0, 5); got != 2 {
		t.Fatalf("first int = %d", got)
	}
	if got := rng.NextIntInclusive(0, 5); got != 5 {
		t.Fatalf("clamped int = %d", got)
	}
	empty := &Scripted{}
	if got := empty.NextIntInclusive(3, 8); got != 3 {
		t.Fatalf("empty int = %d", got)
	}
	if got := empty.NextUniform(); got != 0 {
		t.Fatalf("empty uniform = %v", got)
	}
}

func TestEntropySeedSkipsZeroAndSign(t *testing.T) {
	stream := append(make([]byte, 8), 0x80, 0, 0, 0, 0, 0, 0, 0x2a)
	seed, err := entropySeed(bytes.NewReader(stream))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seed != 0x2a {
		t.Fatalf("seed = %#x, want 0x2a", seed)
	}
}

func TestEntropySeedShortRead(t *testing.T) {
	if _, err := entropySeed(bytes.NewReader([]byte{1, 2})); err == nil {
		t.Fatal("expected error on short read")
	}
}
