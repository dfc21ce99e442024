package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/billfold/billfold/internal/model"
)

// UpsertBillPayment creates or replaces the payment record for one
// (bill, month) pair. The unique index on (bill_id, month) makes the
// conflict target explicit.
func (s *SQLiteStore) UpsertBillPayment(ctx context.Context, payment *model.BillPayment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePayment(payment); err != nil {
		return err
	}

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO bill_payments
		(id, bill_id, month, paid, paid_date, amount_paid, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(bill_id, month) DO UPDATE SET
			paid = excluded.paid,
			paid_date = excluded.paid_date,
			amount_paid = excluded.amount_paid,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP`,
		payment.ID, payment.BillID, payment.Month,
		payment.Paid, payment.PaidDate, payment.AmountPaid, payment.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert payment for bill %s: %w", payment.BillID, err)
	}
	return nil
}

// ListBillPayments returns all payment records for a month.
func (s *SQLiteStore) ListBillPayments(ctx context.Context, month string) ([]model.BillPayment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, bill_id, month, paid, paid_date, amount_paid, notes
		FROM bill_payments WHERE month = ?`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var payments []model.BillPayment
	for rows.Next() {
		var p model.BillPayment
		if err := rows.Scan(&p.ID, &p.BillID, &p.Month, &p.Paid, &p.PaidDate, &p.AmountPaid, &p.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
