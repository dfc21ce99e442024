package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "plain number", raw: "15.99", want: 15.99},
		{name: "negative sign preserved", raw: "-15.99", want: -15.99},
		{name: "currency formatting stripped", raw: `"$1,234.56"`, want: 1234.56},
		{name: "dollar sign stripped", raw: "$20", want: 20},
		{name: "surrounding whitespace", raw: " 3.50 ", want: 3.50},
		{name: "unparseable defaults to zero", raw: "N/A", want: 0},
		{name: "empty defaults to zero", raw: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeAmount(tt.raw), 0.0001)
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "four digit year", raw: "3/5/2024", want: "2024-03-05"},
		{name: "already padded", raw: "12/31/2024", want: "2024-12-31"},
		{name: "two digit year maps to 20xx", raw: "1/1/50", want: "2050-01-01"},
		{name: "two digit year above 50 maps to 19xx", raw: "1/1/51", want: "1951-01-01"},
		{name: "two digit year well below pivot", raw: "6/15/24", want: "2024-06-15"},
		{name: "other shape passes through", raw: "2024-03-05", want: "2024-03-05"},
		{name: "garbage passes through", raw: "not a date", want: "not a date"},
		{name: "non-numeric parts pass through", raw: "a/b/c", want: "a/b/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}
