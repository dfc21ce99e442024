// Package importer orchestrates one statement upload: parse, store raw
// rows, classify, link bills, and save the processed transactions.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/billfold/billfold/internal/bills"
	"github.com/billfold/billfold/internal/classify"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/ofx"
	"github.com/billfold/billfold/internal/service"
	"github.com/billfold/billfold/internal/statement"
)

// Options configures one import run.
type Options struct {
	Filename    string
	AccountType model.AccountType
	// ShowProgress renders a terminal progress bar during row processing.
	ShowProgress bool
}

// Importer runs the statement import pipeline against a store.
type Importer struct {
	store      service.Store
	classifier *classify.Classifier
}

// New creates an importer.
func New(store service.Store, classifier *classify.Classifier) *Importer {
	return &Importer{store: store, classifier: classifier}
}

// Run executes the pipeline for a single file. The stages run strictly
// in order with no row-level parallelism, which keeps the bill matcher's
// batch accumulator safe without locking. Any stage failure aborts the
// upload and leaves earlier writes in place; there is no rollback and no
// automatic retry.
func (i *Importer) Run(ctx context.Context, opts Options) (*service.ImportStats, error) {
	start := time.Now()

	slog.Info("Reading statement file", "file", opts.Filename)
	parsed, err := i.parseFile(ctx, opts.Filename)
	if err != nil {
		return nil, err
	}

	if len(parsed) == 0 {
		slog.Warn("No transactions found in statement", "file", opts.Filename)
		return &service.ImportStats{Duration: time.Since(start)}, nil
	}

	slog.Info("Creating import record", "rows", len(parsed))
	imp := model.Import{
		ID:          uuid.NewString(),
		Filename:    filepath.Base(opts.Filename),
		AccountType: opts.AccountType,
		Status:      model.ImportPending,
		RecordCount: len(parsed),
	}
	if err := i.store.CreateImport(ctx, &imp); err != nil {
		return nil, fmt.Errorf("failed to create import record: %w", err)
	}

	slog.Info("Storing raw rows", "import_id", imp.ID)
	raw := make([]model.RawTransaction, 0, len(parsed))
	for _, p := range parsed {
		raw = append(raw, model.RawTransaction{
			ID:                uuid.NewString(),
			ImportID:          imp.ID,
			ParsedTransaction: p,
		})
	}
	if err := i.store.SaveRawTransactions(ctx, raw); err != nil {
		return nil, i.fail(ctx, imp.ID, fmt.Errorf("failed to store raw rows: %w", err))
	}

	if err := i.store.UpdateImportStatus(ctx, imp.ID, model.ImportProcessing, len(parsed)); err != nil {
		return nil, i.fail(ctx, imp.ID, fmt.Errorf("failed to update import status: %w", err))
	}

	slog.Info("Processing rows")
	active, err := i.store.ListBills(ctx, true)
	if err != nil {
		return nil, i.fail(ctx, imp.ID, fmt.Errorf("failed to list bills: %w", err))
	}
	matcher := bills.NewMatcher(i.store, active)

	bar := newProgressBar(len(parsed), opts.ShowProgress)
	stats := &service.ImportStats{}

	txns := make([]model.Transaction, 0, len(parsed))
	for _, p := range parsed {
		txns = append(txns, i.processRow(ctx, imp.ID, p, matcher, stats))
		_ = bar.Add(1)
	}

	slog.Info("Saving transactions", "count", len(txns))
	if err := i.store.SaveTransactions(ctx, txns); err != nil {
		return nil, i.fail(ctx, imp.ID, fmt.Errorf("failed to save transactions: %w", err))
	}

	if err := i.store.UpdateImportStatus(ctx, imp.ID, model.ImportCompleted, len(txns)); err != nil {
		return nil, fmt.Errorf("failed to mark import completed: %w", err)
	}

	stats.Transactions = len(txns)
	stats.BillsCreated = matcher.CreatedCount
	stats.Duration = time.Since(start)

	slog.Info("Import complete",
		"transactions", stats.Transactions,
		"bills_created", stats.BillsCreated,
		"bills_linked", stats.BillsLinked,
		"duration", stats.Duration.Round(time.Millisecond))

	return stats, nil
}

// fail marks the import record failed, best-effort, and returns the
// original error. Writes already made are left in place.
func (i *Importer) fail(ctx context.Context, importID string, err error) error {
	if statusErr := i.store.UpdateImportStatus(ctx, importID, model.ImportFailed, 0); statusErr != nil {
		slog.Error("Failed to mark import failed", "import_id", importID, "error", statusErr)
	}
	return err
}

// processRow classifies one parsed row and links it to a bill when it is
// a recurring outflow.
func (i *Importer) processRow(ctx context.Context, importID string, p model.ParsedTransaction, matcher *bills.Matcher, stats *service.ImportStats) model.Transaction {
	merchant := classify.ExtractMerchant(p.Description)
	txnType := i.classifier.Classify(p.Description, p.Amount, p.Category)

	txn := model.Transaction{
		ID:          uuid.NewString(),
		ImportID:    importID,
		Date:        p.Date,
		Merchant:    merchant,
		Description: p.Description,
		Category:    p.Category,
		Type:        txnType,
		Amount:      p.Amount,
		IsRecurring: txnType == model.TypeRecurring,
	}

	if txn.IsRecurring && p.Amount < 0 {
		if billID := matcher.Match(ctx, merchant, p); billID != "" {
			txn.BillID = billID
			stats.BillsLinked++
		}
	}

	return txn
}

// parseFile reads and parses a statement file, dispatching on extension.
func (i *Importer) parseFile(ctx context.Context, path string) ([]model.ParsedTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return ofx.NewParser().ParseFile(ctx, f)
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read statement file: %w", err)
		}
		return statement.Parse(string(data)), nil
	}
}
