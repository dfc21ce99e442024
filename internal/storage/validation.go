package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/billfold/billfold/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidMonth   = errors.New("month must have YYYY-MM shape")
	ErrInvalidBill    = errors.New("invalid bill")
	ErrInvalidPayment = errors.New("invalid bill payment")
	ErrInvalidImport  = errors.New("invalid import")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateMonth ensures a month parameter has the YYYY-MM shape.
func validateMonth(month string) error {
	if !model.ValidMonth(month) {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return nil
}

// validateBill validates a bill before writing it.
func validateBill(bill *model.Bill) error {
	if bill == nil {
		return fmt.Errorf("%w: bill", ErrNilParameter)
	}
	if bill.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidBill)
	}
	if err := bill.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBill, err)
	}
	return nil
}

// validatePayment validates a bill payment before upserting it.
func validatePayment(payment *model.BillPayment) error {
	if payment == nil {
		return fmt.Errorf("%w: payment", ErrNilParameter)
	}
	if payment.BillID == "" {
		return fmt.Errorf("%w: missing bill ID", ErrInvalidPayment)
	}
	if err := validateMonth(payment.Month); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	}
	return nil
}

// validateImport validates an import record before writing it.
func validateImport(imp *model.Import) error {
	if imp == nil {
		return fmt.Errorf("%w: import", ErrNilParameter)
	}
	if imp.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidImport)
	}
	if imp.Filename == "" {
		return fmt.Errorf("%w: missing filename", ErrInvalidImport)
	}
	if !model.ValidAccountType(string(imp.AccountType)) {
		return fmt.Errorf("%w: unknown account type %q", ErrInvalidImport, imp.AccountType)
	}
	return nil
}
