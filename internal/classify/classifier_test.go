package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold/billfold/internal/model"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultRules())

	tests := []struct {
		name        string
		description string
		amount      float64
		category    string
		want        model.TransactionType
	}{
		{
			name:        "payroll is income",
			description: "Deposit ACH Acme Payroll",
			amount:      2500,
			want:        model.TypeIncome,
		},
		{
			name:        "dividend is income",
			description: "Dividend payment",
			amount:      12.50,
			want:        model.TypeIncome,
		},
		{
			name:     "salary category is income",
			category: "Paychecks/Salary",
			want:     model.TypeIncome,
		},
		{
			name:        "transfer keyword",
			description: "Online Transfer to Savings",
			amount:      -500,
			want:        model.TypeTransfer,
		},
		{
			name:     "transfers category",
			category: "Transfers",
			want:     model.TypeTransfer,
		},
		{
			name:        "known recurring merchant",
			description: "Withdrawal APPLE.COM/BILL",
			amount:      -9.99,
			want:        model.TypeRecurring,
		},
		{
			name:        "recurring category",
			description: "Withdrawal Netflix",
			amount:      -15.99,
			category:    "Online Services",
			want:        model.TypeRecurring,
		},
		{
			name:     "insurance category is recurring",
			category: "Insurance",
			want:     model.TypeRecurring,
		},
		{
			name:        "income beats recurring merchant keyword",
			description: "Payroll reversal godaddy",
			amount:      -100,
			want:        model.TypeIncome,
		},
		{
			name:        "negative payroll is still income",
			description: "ACME PAYROLL REVERSAL",
			amount:      -2500,
			want:        model.TypeIncome,
		},
		{
			name:        "transfer beats recurring category",
			description: "Transfer to brokerage",
			category:    "Online Services",
			want:        model.TypeTransfer,
		},
		{
			name:        "unmatched is misc",
			description: "Withdrawal Corner Bodega",
			amount:      -7.25,
			category:    "Groceries",
			want:        model.TypeMisc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.description, tt.amount, tt.category)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRules(t *testing.T) {
	t.Run("valid rules file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := `
- type: income
  keywords: ["payroll"]
- type: recurring
  categories: ["Utilities"]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		rules, err := LoadRules(path)
		require.NoError(t, err)
		require.Len(t, rules, 2)

		c := NewClassifier(rules)
		assert.Equal(t, model.TypeRecurring, c.Classify("Electric bill", -80, "Utilities"))
		assert.Equal(t, model.TypeMisc, c.Classify("Withdrawal Netflix", -15.99, "Online Services"))
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- type: bogus\n"), 0o600))

		_, err := LoadRules(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
