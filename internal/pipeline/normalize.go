package pipeline

import (
	"strings"

	"stockvalues/internal/provider"
)

// Normalize splits a comma-separated symbol list and trims each piece.
// Order is kept, duplicates are kept and empty pieces become empty symbols.
func Normalize(raw string) []provider.Symbol {
	parts := strings.Split(raw, ",")
	out := make([]provider.Symbol, 0, len(parts))
	for _, p := range parts {
		out = append(out, provider.Symbol(strings.TrimSpace(p)))
	}
	return out
}
