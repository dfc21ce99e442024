package model

import "fmt"

// Bill is a recurring monthly obligation. Bills are soft-deleted: Active
// is flipped to false rather than removing the record.
type Bill struct {
	ID             string
	Name           string
	DueDay         *int     // 1-31, nil when unknown
	AmountExpected *float64 // nil for variable-amount bills
	IsVariable     bool
	Autopay        bool
	Active         bool
}

// Validate checks the bill's invariants.
func (b *Bill) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("bill name is required")
	}
	if b.DueDay != nil && (*b.DueDay < 1 || *b.DueDay > 31) {
		return fmt.Errorf("due day %d out of range 1-31", *b.DueDay)
	}
	return nil
}

// BillPayment records payment status for one bill in one month. There is
// one logical row per (bill, month); writes are upserts.
type BillPayment struct {
	ID         string
	BillID     string
	Month      string // YYYY-MM
	Paid       bool
	PaidDate   string // ISO YYYY-MM-DD, empty when unpaid
	AmountPaid float64
	Notes      string
}
