package config

import "strings"

// ModelRates holds per-million-token prices for a model.
type ModelRates struct {
	InputPerMTok      float64
	OutputPerMTok     float64
	CacheWritePerMTok float64
	CacheReadPerMTok  float64
}

// Cost computes the USD cost of a token-usage record at these rates.
func (r ModelRates) Cost(input, output, cacheWrite, cacheRead int64) float64 {
	cost := float64(input) * r.InputPerMTok / 1_000_000
	cost += float64(output) * r.OutputPerMTok / 1_000_000
	cost += float64(cacheWrite) * r.CacheWritePerMTok / 1_000_000
	cost += float64(cacheRead) * r.CacheReadPerMTok / 1_000_000
	return cost
}

// PriceResolver maps a model identifier to its billing rates. The parse
// pipeline depends on this interface rather than the static table so tests
// and pricing updates do not touch the parser.
type PriceResolver interface {
	Resolve(modelID string) ModelRates
}

// DefaultModelKey is the fallback table entry used for unrecognized models.
const DefaultModelKey = "default"

// defaultRates maps model base names to their pricing. The default entry
// approximates a mid-tier model so unknown ids still produce a usable
// estimate instead of zero.
var defaultRates = map[string]ModelRates{
	"claude-opus-4-6":   {InputPerMTok: 5.00, OutputPerMTok: 25.00, CacheWritePerMTok: 6.25, CacheReadPerMTok: 0.50},
	"claude-opus-4-5":   {InputPerMTok: 5.00, OutputPerMTok: 25.00, CacheWritePerMTok: 6.25, CacheReadPerMTok: 0.50},
	"claude-opus-4-1":   {InputPerMTok: 15.00, OutputPerMTok: 75.00, CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.50},
	"claude-opus-4":     {InputPerMTok: 15.00, OutputPerMTok: 75.00, CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.50},
	"claude-sonnet-4-6": {InputPerMTok: 3.00, OutputPerMTok: 15.00, CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30},
	"claude-sonnet-4-5": {InputPerMTok: 3.00, OutputPerMTok: 15.00, CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30},
	"claude-sonnet-4":   {InputPerMTok: 3.00, OutputPerMTok: 15.00, CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30},
	"claude-haiku-4-5":  {InputPerMTok: 1.00, OutputPerMTok: 5.00, CacheWritePerMTok: 1.25, CacheReadPerMTok: 0.10},
	"claude-haiku-3-5":  {InputPerMTok: 0.80, OutputPerMTok: 4.00, CacheWritePerMTok: 1.00, CacheReadPerMTok: 0.08},
	DefaultModelKey:     {InputPerMTok: 3.00, OutputPerMTok: 15.00, CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30},
}

// TableResolver resolves rates from a static table with a default fallback.
type TableResolver struct {
	table map[string]ModelRates
}

// NewTableResolver returns a resolver over the built-in pricing table.
func NewTableResolver() *TableResolver {
	return &TableResolver{table: defaultRates}
}

// NewTableResolverWithOverrides layers user-configured rate overrides on top
// of the built-in table.
func NewTableResolverWithOverrides(overrides map[string]ModelRatesOverride) *TableResolver {
	if len(overrides) == 0 {
		return NewTableResolver()
	}
	table := make(map[string]ModelRates, len(defaultRates)+len(overrides))
	for k, v := range defaultRates {
		table[k] = v
	}
	for name, ov := range overrides {
		rates := table[name]
		if ov.InputPerMTok != nil {
			rates.InputPerMTok = *ov.InputPerMTok
		}
		if ov.OutputPerMTok != nil {
			rates.OutputPerMTok = *ov.OutputPerMTok
		}
		if ov.CacheWritePerMTok != nil {
			rates.CacheWritePerMTok = *ov.CacheWritePerMTok
		}
		if ov.CacheReadPerMTok != nil {
			rates.CacheReadPerMTok = *ov.CacheReadPerMTok
		}
		table[name] = rates
	}
	return &TableResolver{table: table}
}

// Resolve returns the rates for a model id: exact match after name
// normalization, falling back to the default entry. Unknown models are not
// an error.
func (r *TableResolver) Resolve(modelID string) ModelRates {
	if rates, ok := r.table[normalizeAgainst(modelID, r.table)]; ok {
		return rates
	}
	return r.table[DefaultModelKey]
}

// NormalizeModelName strips date suffixes from model identifiers.
// e.g., "claude-opus-4-5-20251101" -> "claude-opus-4-5"
func NormalizeModelName(raw string) string {
	return normalizeAgainst(raw, defaultRates)
}

// normalizeAgainst strips a trailing date suffix only when the truncated
// name exists in the given table, so overridden model names normalize the
// same way built-in ones do.
func normalizeAgainst(raw string, table map[string]ModelRates) string {
	if _, ok := table[raw]; ok {
		return raw
	}

	parts := strings.Split(raw, "-")
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if isAllDigits(last) && len(last) >= 8 {
			candidate := strings.Join(parts[:len(parts)-1], "-")
			if _, ok := table[candidate]; ok {
				return candidate
			}
		}
	}

	return raw
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
