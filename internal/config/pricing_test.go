package config

import (
	"math"
	"testing"
)

func TestResolve_OpusMillionInputTokens(t *testing.T) {
	r := NewTableResolver()

	rates := r.Resolve("claude-opus-4-5")
	got := rates.Cost(1_000_000, 0, 0, 0)
	if got != 5.00 {
		t.Fatalf("1M input tokens on claude-opus-4-5 = $%v, want exactly $5.00", got)
	}
}

func TestResolve_UnknownModelUsesDefault(t *testing.T) {
	r := NewTableResolver()

	rates := r.Resolve("some-future-model")
	if rates != defaultRates[DefaultModelKey] {
		t.Errorf("unknown model rates = %+v, want default entry %+v", rates, defaultRates[DefaultModelKey])
	}

	cost := rates.Cost(1000, 1000, 0, 0)
	if cost <= 0 {
		t.Errorf("unknown model cost = %v, want > 0 (default rates, never zero)", cost)
	}
}

func TestResolve_StripsDateSuffix(t *testing.T) {
	r := NewTableResolver()

	dated := r.Resolve("claude-opus-4-5-20251101")
	bare := r.Resolve("claude-opus-4-5")
	if dated != bare {
		t.Errorf("dated id resolved %+v, bare id %+v; want identical", dated, bare)
	}
}

func TestNormalizeModelName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"claude-opus-4-5-20251101", "claude-opus-4-5"},
		{"claude-sonnet-4-6", "claude-sonnet-4-6"},
		{"claude-haiku-3-5-20241022", "claude-haiku-3-5"},
		// Short numeric tail is a version, not a date.
		{"claude-opus-4-5", "claude-opus-4-5"},
		{"unknown-model-20250101", "unknown-model-20250101"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeModelName(tt.in); got != tt.want {
			t.Errorf("NormalizeModelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCost_AllTokenBuckets(t *testing.T) {
	rates := ModelRates{InputPerMTok: 3, OutputPerMTok: 15, CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.3}

	got := rates.Cost(1_000_000, 1_000_000, 1_000_000, 1_000_000)
	want := 3.0 + 15.0 + 3.75 + 0.3
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Cost = %v, want %v", got, want)
	}

	if got := rates.Cost(0, 0, 0, 0); got != 0 {
		t.Errorf("Cost of zero usage = %v, want 0", got)
	}
}

func TestResolverWithOverrides(t *testing.T) {
	in := 42.0
	r := NewTableResolverWithOverrides(map[string]ModelRatesOverride{
		"claude-opus-4-5": {InputPerMTok: &in},
	})

	rates := r.Resolve("claude-opus-4-5")
	if rates.InputPerMTok != 42.0 {
		t.Errorf("overridden InputPerMTok = %v, want 42", rates.InputPerMTok)
	}
	// Untouched fields keep built-in values.
	if rates.OutputPerMTok != 25.0 {
		t.Errorf("OutputPerMTok = %v, want 25 (unchanged)", rates.OutputPerMTok)
	}

	// Other models are unaffected.
	if got := r.Resolve("claude-sonnet-4-6"); got != defaultRates["claude-sonnet-4-6"] {
		t.Errorf("sonnet rates changed by unrelated override: %+v", got)
	}
}

func TestResolverWithOverrides_NewModel(t *testing.T) {
	in, out := 1.5, 7.5
	r := NewTableResolverWithOverrides(map[string]ModelRatesOverride{
		"my-local-model": {InputPerMTok: &in, OutputPerMTok: &out},
	})

	rates := r.Resolve("my-local-model")
	if rates.InputPerMTok != 1.5 || rates.OutputPerMTok != 7.5 {
		t.Errorf("new model rates = %+v, want input 1.5 / output 7.5", rates)
	}
}

func TestResolverWithOverrides_NewModelDateSuffix(t *testing.T) {
	// Date-suffix stripping must also recognize override-only model names.
	in := 1.5
	r := NewTableResolverWithOverrides(map[string]ModelRatesOverride{
		"my-local-model": {InputPerMTok: &in},
	})

	rates := r.Resolve("my-local-model-20260115")
	if rates.InputPerMTok != 1.5 {
		t.Errorf("dated override input rate = %v, want 1.5", rates.InputPerMTok)
	}
}
