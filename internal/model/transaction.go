// Package model defines the core domain types shared across the application.
package model

import (
	"strconv"
	"strings"
	"time"
)

// TransactionType classifies an imported transaction.
type TransactionType string

const (
	// TypeIncome marks payroll, dividends, and other inflows.
	TypeIncome TransactionType = "income"
	// TypeTransfer marks movements between the user's own accounts.
	TypeTransfer TransactionType = "transfer"
	// TypeRecurring marks charges that belong to a monthly bill.
	TypeRecurring TransactionType = "recurring"
	// TypeMisc is the default for everything else.
	TypeMisc TransactionType = "misc"
)

// ParsedTransaction is one bank-statement row after field normalization.
// It is transient: produced by a statement parser and consumed immediately
// by classification, never persisted directly.
type ParsedTransaction struct {
	AccountID   string
	BankTxnID   string
	Date        string // ISO YYYY-MM-DD after normalization
	Description string
	Category    string // bank-assigned category label
	Amount      float64
	Balance     float64
}

// DayOfMonth returns the day component of the transaction date, or 0 if
// the date is not a valid ISO date.
func (p ParsedTransaction) DayOfMonth() int {
	t, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return 0
	}
	return t.Day()
}

// Transaction is a classified transaction as persisted by the store.
type Transaction struct {
	ID          string
	ImportID    string
	BillID      string // non-empty only when IsRecurring
	Date        string // ISO YYYY-MM-DD
	Merchant    string
	Description string
	Category    string
	Type        TransactionType
	Amount      float64
	IsRecurring bool
}

// Month returns the YYYY-MM prefix of the transaction date, or "" when
// the date is too short to carry one.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// RawTransaction is a verbatim copy of a parsed statement row, stored
// before classification for audit.
type RawTransaction struct {
	ID       string
	ImportID string
	ParsedTransaction
}

// ValidMonth reports whether s has the YYYY-MM shape.
func ValidMonth(s string) bool {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return false
	}
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return m >= 1 && m <= 12
}
