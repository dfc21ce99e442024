// Package ofx parses OFX/QFX statement exports into the same parsed
// transaction stream the CSV parser produces, so the import pipeline is
// format-agnostic.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/billfold/billfold/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

var severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)

// tagFixRegex matches SGML-style opening tags missing their closing bracket.
var tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)

// preprocess fixes common formatting defects in bank OFX exports:
// leading whitespace before the header, mixed-case SEVERITY values, and
// SGML tags missing their closing angle bracket.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = tagFixRegex.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses an OFX/QFX file and returns parsed transactions.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]model.ParsedTransaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var txns []model.ParsedTransaction

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		accountID := string(stmt.BankAcctFrom.AcctID)
		for _, ofxTx := range stmt.BankTranList.Transactions {
			txns = append(txns, p.convert(ofxTx, accountID))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		accountID := string(stmt.CCAcctFrom.AcctID)
		for _, ofxTx := range stmt.BankTranList.Transactions {
			txns = append(txns, p.convert(ofxTx, accountID))
		}
	}

	slog.Info("Parsed OFX file", "transactions", len(txns))

	return txns, nil
}

// convert maps one OFX transaction to a parsed row. OFX has no running
// balance per transaction and no bank category, so those stay zero-value
// and classification falls back to description keywords alone.
func (p *Parser) convert(ofxTx ofxgo.Transaction, accountID string) model.ParsedTransaction {
	// OFX amounts are already signed: negative for debits.
	amount, _ := ofxTx.TrnAmt.Float64()

	description := string(ofxTx.Name)
	if ofxTx.Memo != "" && description == "" {
		description = string(ofxTx.Memo)
	}

	return model.ParsedTransaction{
		AccountID:   accountID,
		BankTxnID:   string(ofxTx.FiTID),
		Date:        ofxTx.DtPosted.Time.Format("2006-01-02"),
		Description: strings.TrimSpace(description),
		Amount:      amount,
	}
}
