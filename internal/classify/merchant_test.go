package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "withdrawal prefix stripped",
			description: "Withdrawal Trader Joes",
			want:        "Trader Joes",
		},
		{
			name:        "recurring withdrawal prefix stripped",
			description: "Recurring Withdrawal Netflix",
			want:        "Netflix",
		},
		{
			name:        "deposit prefix stripped",
			description: "Deposit ACH Acme Corp",
			want:        "Acme Corp",
		},
		{
			name:        "debit card prefix stripped",
			description: "Debit Card Purchase Blue Bottle Coffee",
			want:        "Blue Bottle Coffee",
		},
		{
			name:        "pos prefix stripped",
			description: "POS Purchase Whole Foods",
			want:        "Whole Foods",
		},
		{
			name:        "transfer phrasing stripped",
			description: "Online Transfer to Savings Account",
			want:        "Savings Account",
		},
		{
			name:        "case insensitive",
			description: "WITHDRAWAL DEBIT CARD APPLE.COM/BILL",
			want:        "APPLE.COM/BILL",
		},
		{
			name:        "city suffix trimmed",
			description: "Withdrawal Joes Pizza New York NY",
			want:        "Joes Pizza",
		},
		{
			name:        "unknown format falls back to raw description",
			description: "XJ99 UNKNOWN FORMAT",
			want:        "XJ99 UNKNOWN FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMerchant(tt.description))
		})
	}
}

func TestExtractMerchantTruncates(t *testing.T) {
	long := "Withdrawal " + strings.Repeat("A", 80)
	got := ExtractMerchant(long)
	assert.LessOrEqual(t, len(got), 50)
	assert.True(t, strings.HasPrefix(got, "AAA"))
}
