package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/billfold/billfold/internal/model"
)

// Rule maps description keywords and bank category labels to a
// transaction type. Keywords are case-insensitive substring matches
// against the description; categories are exact matches against the
// bank-assigned category.
type Rule struct {
	Type       model.TransactionType `yaml:"type"`
	Keywords   []string              `yaml:"keywords"`
	Categories []string              `yaml:"categories"`
}

// DefaultRules returns the built-in classification rules, in evaluation
// order. Income is checked before transfers, transfers before recurring
// merchants; anything unmatched is misc.
func DefaultRules() []Rule {
	return []Rule{
		{
			Type:       model.TypeIncome,
			Keywords:   []string{"payroll", "deposit ach", "dividend"},
			Categories: []string{"Paychecks/Salary", "Investment Income"},
		},
		{
			Type:       model.TypeTransfer,
			Keywords:   []string{"transfer"},
			Categories: []string{"Transfers"},
		},
		{
			Type: model.TypeRecurring,
			Keywords: []string{
				"apple.com/bill",
				"godaddy",
				"guardian life",
				"firstmark",
				"mr.cooper",
				"nsm dbamr",
				"ez pass",
			},
			Categories: []string{"Insurance", "Mortgages", "Loans", "Online Services"},
		},
	}
}

// LoadRules reads classification rules from a YAML file. The file holds
// a list of rules in evaluation order, replacing the defaults entirely.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	for i, r := range rules {
		switch r.Type {
		case model.TypeIncome, model.TypeTransfer, model.TypeRecurring, model.TypeMisc:
		default:
			return nil, fmt.Errorf("rule %d: unknown transaction type %q", i, r.Type)
		}
	}

	return rules, nil
}
