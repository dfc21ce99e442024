// Package bills links recurring transactions to bill records, creating
// new bills for unrecognized recurring merchants.
package bills

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/billfold/billfold/internal/model"
)

// Creator is the slice of the store the matcher needs to make bills.
type Creator interface {
	CreateBill(ctx context.Context, bill *model.Bill) error
}

// Matcher resolves a merchant label to a bill within one import batch.
// The created map is the batch accumulator: it guarantees that repeated
// charges from the same merchant in a single statement produce exactly
// one new bill. A Matcher's lifetime is one import.
type Matcher struct {
	store   Creator
	created map[string]string // lower-cased merchant -> bill ID created this batch
	active  []model.Bill
	// CreatedCount is the number of bills created so far this batch.
	CreatedCount int
}

// NewMatcher creates a matcher over the given snapshot of active bills.
func NewMatcher(store Creator, active []model.Bill) *Matcher {
	return &Matcher{
		store:   store,
		created: make(map[string]string),
		active:  active,
	}
}

// Match returns the bill ID for a recurring outflow, creating a bill
// when no existing one fits. Matching order: the in-batch accumulator
// first, then a case-insensitive substring scan of active bills in
// either direction (first hit wins, no scoring), then creation. A store
// failure during creation is logged and yields an empty ID so the
// transaction proceeds unlinked.
func (m *Matcher) Match(ctx context.Context, merchant string, txn model.ParsedTransaction) string {
	key := strings.ToLower(merchant)

	if id, ok := m.created[key]; ok {
		return id
	}

	for _, bill := range m.active {
		name := strings.ToLower(bill.Name)
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return bill.ID
		}
	}

	bill := model.Bill{
		ID:     uuid.NewString(),
		Name:   merchant,
		Active: true,
	}
	if day := txn.DayOfMonth(); day >= 1 && day <= 31 {
		bill.DueDay = &day
	}
	if txn.Amount < 0 {
		expected := -txn.Amount
		bill.AmountExpected = &expected
	}

	if err := m.store.CreateBill(ctx, &bill); err != nil {
		slog.Error("Failed to create bill, transaction will be unlinked",
			"merchant", merchant,
			"error", err)
		return ""
	}

	m.created[key] = bill.ID
	m.active = append(m.active, bill)
	m.CreatedCount++

	slog.Debug("Created bill for recurring merchant",
		"merchant", merchant,
		"bill_id", bill.ID)

	return bill.ID
}
