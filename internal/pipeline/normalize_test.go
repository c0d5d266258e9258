package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stockvalues/internal/pipeline"
	"stockvalues/internal/provider"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []provider.Symbol
	}{
		{"trims whitespace", " AAPL , MSFT ", []provider.Symbol{"AAPL", "MSFT"}},
		{"keeps order and duplicates", "MSFT,AAPL,MSFT", []provider.Symbol{"MSFT", "AAPL", "MSFT"}},
		{"keeps empty pieces", "AAPL,,MSFT", []provider.Symbol{"AAPL", "", "MSFT"}},
		{"exchange suffix", "SHOP.TO", []provider.Symbol{"SHOP.TO"}},
		{"tabs and newlines", "\tAAPL\n,\nMSFT", []provider.Symbol{"AAPL", "MSFT"}},
		{"empty input", "", []provider.Symbol{""}},
		{"trailing comma", "AAPL,", []provider.Symbol{"AAPL", ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, pipeline.Normalize(tc.in))
		})
	}
}
