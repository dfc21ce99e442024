// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/model"
)

// Store defines the contract for the persistence layer. Two
// implementations exist: the remote REST backend and local SQLite.
type Store interface {
	// Bill operations
	ListBills(ctx context.Context, activeOnly bool) ([]model.Bill, error)
	GetBill(ctx context.Context, id string) (*model.Bill, error)
	CreateBill(ctx context.Context, bill *model.Bill) error
	UpdateBill(ctx context.Context, bill *model.Bill) error
	DeactivateBill(ctx context.Context, id string) error

	// Bill payment operations
	UpsertBillPayment(ctx context.Context, payment *model.BillPayment) error
	ListBillPayments(ctx context.Context, month string) ([]model.BillPayment, error)

	// Import operations
	CreateImport(ctx context.Context, imp *model.Import) error
	UpdateImportStatus(ctx context.Context, id string, status model.ImportStatus, recordCount int) error
	SaveRawTransactions(ctx context.Context, rows []model.RawTransaction) error

	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	PatchTransactionBillLink(ctx context.Context, id, billID string, isRecurring bool) error
	GetTransactionsByMonth(ctx context.Context, month string) ([]model.Transaction, error)

	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// ImportStats shows the results of a completed statement import.
type ImportStats struct {
	Transactions int
	BillsCreated int
	BillsLinked  int
	Duration     time.Duration
}
