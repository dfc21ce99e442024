// Package summary aggregates one month's transactions and bill payment
// status into a single view.
package summary

import (
	"context"
	"fmt"

	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/service"
)

// ForMonth builds the month summary from the store. Transfers move money
// between the user's own accounts and are excluded from the net figure.
func ForMonth(ctx context.Context, store service.Store, month string) (*model.MonthSummary, error) {
	if !model.ValidMonth(month) {
		return nil, fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}

	txns, err := store.GetTransactionsByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	bills, err := store.ListBills(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}

	payments, err := store.ListBillPayments(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	sum := &model.MonthSummary{
		Month:        month,
		Transactions: len(txns),
	}

	for _, t := range txns {
		if t.Type == model.TypeTransfer {
			continue
		}
		sum.Net += t.Amount

		switch {
		case t.Type == model.TypeIncome:
			sum.Income += t.Amount
		case t.Type == model.TypeRecurring && t.Amount < 0:
			sum.Recurring += -t.Amount
		case t.Type == model.TypeMisc && t.Amount < 0:
			sum.Misc += -t.Amount
		}
	}

	paymentsByBill := make(map[string]model.BillPayment, len(payments))
	for _, p := range payments {
		paymentsByBill[p.BillID] = p
	}

	for _, bill := range bills {
		status := model.BillStatus{Bill: bill}
		if p, ok := paymentsByBill[bill.ID]; ok {
			payment := p
			status.Payment = &payment
		}
		sum.Bills = append(sum.Bills, status)
	}

	return sum, nil
}
