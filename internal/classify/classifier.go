package classify

import (
	"strings"

	"github.com/billfold/billfold/internal/model"
)

// Classifier assigns a transaction type by evaluating an ordered rule
// list, first match wins.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the given rules. Pass
// DefaultRules() for the built-in set.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the transaction type for a description, signed
// amount, and bank category. The amount's sign is not used to
// disambiguate: a negative payroll reversal still classifies as income
// because the income rule runs first.
func (c *Classifier) Classify(description string, _ float64, category string) model.TransactionType {
	desc := strings.ToLower(description)

	for _, rule := range c.rules {
		if rule.matches(desc, category) {
			return rule.Type
		}
	}

	return model.TypeMisc
}

func (r Rule) matches(lowerDesc, category string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowerDesc, strings.ToLower(kw)) {
			return true
		}
	}
	for _, cat := range r.Categories {
		if category == cat {
			return true
		}
	}
	return false
}
