// Package statement parses bank-statement exports into transactions.
//
// The supported CSV layout has a header row and at least 9 comma-separated
// fields per data row, positions (0-indexed): account id, transaction id,
// date, description, [unused], category, [unused], amount, balance.
package statement

import (
	"strings"

	"github.com/billfold/billfold/internal/model"
)

// minFields is the minimum number of columns a data row must have.
// Shorter rows are dropped silently.
const minFields = 9

// Field positions in the bank's CSV export.
const (
	colAccountID = 0
	colTxnID     = 1
	colDate      = 2
	colDesc      = 3
	colCategory  = 5
	colAmount    = 7
	colBalance   = 8
)

// SplitLine splits one CSV line into trimmed fields. Commas inside
// double-quoted spans are literal and the quotes are stripped. Embedded
// quote escaping is not supported: a quote always toggles quote mode, so
// an unbalanced quote consumes the rest of the line as one field.
func SplitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// Parse reads a full CSV blob and returns the parsed transactions. The
// first line is assumed to be a header and skipped. Blank lines and rows
// with fewer than minFields columns are dropped without error; an empty
// or header-only blob yields an empty slice.
func Parse(data string) []model.ParsedTransaction {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	if len(lines) <= 1 {
		return nil
	}

	var txns []model.ParsedTransaction
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := SplitLine(line)
		if len(fields) < minFields {
			continue
		}

		txns = append(txns, model.ParsedTransaction{
			AccountID:   fields[colAccountID],
			BankTxnID:   fields[colTxnID],
			Date:        NormalizeDate(fields[colDate]),
			Description: fields[colDesc],
			Category:    fields[colCategory],
			Amount:      NormalizeAmount(fields[colAmount]),
			Balance:     NormalizeAmount(fields[colBalance]),
		})
	}

	return txns
}
