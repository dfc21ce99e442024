package storage

import (
	"context"
	"fmt"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
)

// CreateImport inserts the import record that tracks one upload.
func (s *SQLiteStore) CreateImport(ctx context.Context, imp *model.Import) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateImport(imp); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO imports
		(id, filename, account_type, status, record_count)
		VALUES (?, ?, ?, ?, ?)`,
		imp.ID, imp.Filename, imp.AccountType, imp.Status, imp.RecordCount)
	if err != nil {
		return fmt.Errorf("failed to insert import %s: %w", imp.Filename, err)
	}
	return nil
}

// UpdateImportStatus patches an import's status and record count.
func (s *SQLiteStore) UpdateImportStatus(ctx context.Context, id string, status model.ImportStatus, recordCount int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE imports SET status = ?, record_count = ? WHERE id = ?`,
		status, recordCount, id)
	if err != nil {
		return fmt.Errorf("failed to update import %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: import %s", common.ErrNotFound, id)
	}
	return nil
}

// SaveRawTransactions bulk-inserts verbatim statement rows for audit.
func (s *SQLiteStore) SaveRawTransactions(ctx context.Context, rows []model.RawTransaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO raw_transactions
		(id, import_id, account_id, bank_txn_id, date, description, category, amount, balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.ImportID, r.AccountID, r.BankTxnID,
			r.Date, r.Description, r.Category, r.Amount, r.Balance); err != nil {
			return fmt.Errorf("failed to insert raw row %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}
