package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
)

// ListBills returns bills, optionally only active ones, in creation order.
func (s *SQLiteStore) ListBills(ctx context.Context, activeOnly bool) ([]model.Bill, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, name, due_day, amount_expected, is_variable, autopay, active
		FROM bills ORDER BY created_at, id`
	if activeOnly {
		query = `SELECT id, name, due_day, amount_expected, is_variable, autopay, active
			FROM bills WHERE active = 1 ORDER BY created_at, id`
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bills []model.Bill
	for rows.Next() {
		bill, scanErr := scanBill(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}

// GetBill returns one bill by ID.
func (s *SQLiteStore) GetBill(ctx context.Context, id string) (*model.Bill, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT id, name, due_day, amount_expected, is_variable, autopay, active
		FROM bills WHERE id = ?`, id)

	bill, err := scanBill(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: bill %s", common.ErrNotFound, id)
		}
		return nil, err
	}
	return &bill, nil
}

// CreateBill inserts a new bill.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *model.Bill) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBill(bill); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO bills
		(id, name, due_day, amount_expected, is_variable, autopay, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Name, bill.DueDay, bill.AmountExpected,
		bill.IsVariable, bill.Autopay, bill.Active)
	if err != nil {
		return fmt.Errorf("failed to insert bill %s: %w", bill.Name, err)
	}
	return nil
}

// UpdateBill updates all mutable fields of a bill.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *model.Bill) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBill(bill); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE bills
		SET name = ?, due_day = ?, amount_expected = ?, is_variable = ?, autopay = ?, active = ?
		WHERE id = ?`,
		bill.Name, bill.DueDay, bill.AmountExpected,
		bill.IsVariable, bill.Autopay, bill.Active, bill.ID)
	if err != nil {
		return fmt.Errorf("failed to update bill %s: %w", bill.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: bill %s", common.ErrNotFound, bill.ID)
	}
	return nil
}

// DeactivateBill soft-deletes a bill by clearing its active flag.
func (s *SQLiteStore) DeactivateBill(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE bills SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate bill %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: bill %s", common.ErrNotFound, id)
	}
	return nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBill(row scanner) (model.Bill, error) {
	var bill model.Bill
	var dueDay sql.NullInt64
	var amountExpected sql.NullFloat64

	if err := row.Scan(&bill.ID, &bill.Name, &dueDay, &amountExpected,
		&bill.IsVariable, &bill.Autopay, &bill.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Bill{}, err
		}
		return model.Bill{}, fmt.Errorf("failed to scan bill: %w", err)
	}

	if dueDay.Valid {
		day := int(dueDay.Int64)
		bill.DueDay = &day
	}
	if amountExpected.Valid {
		amount := amountExpected.Float64
		bill.AmountExpected = &amount
	}

	return bill, nil
}
