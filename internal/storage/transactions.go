package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
)

// SaveTransactions bulk-inserts processed transactions in one database
// transaction.
func (s *SQLiteStore) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(transactions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO transactions
		(id, import_id, bill_id, date, merchant, description, category, transaction_type, amount, is_recurring)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range transactions {
		billID := sql.NullString{String: t.BillID, Valid: t.BillID != ""}
		if _, err := stmt.ExecContext(ctx,
			t.ID, t.ImportID, billID, t.Date, t.Merchant,
			t.Description, t.Category, t.Type, t.Amount, t.IsRecurring); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// PatchTransactionBillLink updates a transaction's recurring flag and
// bill link.
func (s *SQLiteStore) PatchTransactionBillLink(ctx context.Context, id, billID string, isRecurring bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	nullBillID := sql.NullString{String: billID, Valid: billID != ""}
	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET bill_id = ?, is_recurring = ? WHERE id = ?`,
		nullBillID, isRecurring, id)
	if err != nil {
		return fmt.Errorf("failed to patch transaction %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	return nil
}

// GetTransactionsByMonth returns all transactions whose date falls in
// the given YYYY-MM month, ordered by date.
func (s *SQLiteStore) GetTransactionsByMonth(ctx context.Context, month string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, import_id, bill_id, date, merchant,
			description, category, transaction_type, amount, is_recurring
		FROM transactions WHERE date LIKE ? ORDER BY date, id`, month+"-%")
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var billID sql.NullString
		if err := rows.Scan(&t.ID, &t.ImportID, &billID, &t.Date, &t.Merchant,
			&t.Description, &t.Category, &t.Type, &t.Amount, &t.IsRecurring); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.BillID = billID.String
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}
