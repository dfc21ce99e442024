// Package api implements the Store interface against the remote REST
// backend. Request and response bodies are JSON; authentication is a
// bearer token carried by an explicit session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/service"
	"github.com/billfold/billfold/internal/session"
)

// Client talks to the remote backend. It implements service.Store.
type Client struct {
	baseURL    string
	sess       *session.Session
	httpClient *http.Client
	retryOpts  service.RetryOptions
}

// NewClient creates a backend client for the given base URL and session.
func NewClient(baseURL string, sess *session.Session) *Client {
	return &Client{
		baseURL: baseURL,
		sess:    sess,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// Login exchanges credentials for a session. It is the only call made
// without one.
func Login(ctx context.Context, baseURL, email, password string) (*session.Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: 30 * time.Second}).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, common.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("login failed: %d - %s", resp.StatusCode, string(data))
	}

	var out struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	return session.New(out.Token, out.UserID), nil
}

// do performs one authenticated JSON request. A nil out discards the
// response body. GETs are idempotent and retried on rate limits and
// transient backend failures; writes are never retried.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if method == http.MethodGet {
		return common.WithRetry(ctx, func() error {
			return c.doOnce(ctx, method, path, in, out)
		}, c.retryOpts)
	}
	return c.doOnce(ctx, method, path, in, out)
}

func (c *Client) doOnce(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.sess != nil {
		req.Header.Set("Authorization", "Bearer "+c.sess.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return common.ErrDuplicateEntry
	case resp.StatusCode == http.StatusTooManyRequests:
		return common.ErrRateLimit
	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend error: %d - %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListBills fetches bills, optionally only active ones.
func (c *Client) ListBills(ctx context.Context, activeOnly bool) ([]model.Bill, error) {
	path := "/api/bills"
	if activeOnly {
		path += "?active=true"
	}

	var out []billPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	bills := make([]model.Bill, 0, len(out))
	for _, p := range out {
		bills = append(bills, p.toModel())
	}
	return bills, nil
}

// GetBill fetches one bill by ID.
func (c *Client) GetBill(ctx context.Context, id string) (*model.Bill, error) {
	var out billPayload
	if err := c.do(ctx, http.MethodGet, "/api/bills/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	bill := out.toModel()
	return &bill, nil
}

// CreateBill creates a bill. The backend assigns the ID when the payload
// carries none.
func (c *Client) CreateBill(ctx context.Context, bill *model.Bill) error {
	if err := bill.Validate(); err != nil {
		return err
	}

	var out billPayload
	if err := c.do(ctx, http.MethodPost, "/api/bills", newBillPayload(bill), &out); err != nil {
		return err
	}
	if out.ID != "" {
		bill.ID = out.ID
	}
	return nil
}

// UpdateBill patches all mutable fields of a bill.
func (c *Client) UpdateBill(ctx context.Context, bill *model.Bill) error {
	if err := bill.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, "/api/bills/"+url.PathEscape(bill.ID), newBillPayload(bill), nil)
}

// DeactivateBill soft-deletes a bill by clearing its active flag.
func (c *Client) DeactivateBill(ctx context.Context, id string) error {
	payload := map[string]bool{"active": false}
	return c.do(ctx, http.MethodPatch, "/api/bills/"+url.PathEscape(id), payload, nil)
}

// UpsertBillPayment creates or updates the payment record for one
// (bill, month) pair.
func (c *Client) UpsertBillPayment(ctx context.Context, payment *model.BillPayment) error {
	payload := map[string]any{
		"bill_id":     payment.BillID,
		"month":       payment.Month,
		"paid":        payment.Paid,
		"paid_date":   payment.PaidDate,
		"amount_paid": payment.AmountPaid,
		"notes":       payment.Notes,
	}
	return c.do(ctx, http.MethodPut, "/api/bill-payments", payload, nil)
}

// ListBillPayments fetches all payment records for a month.
func (c *Client) ListBillPayments(ctx context.Context, month string) ([]model.BillPayment, error) {
	var out []struct {
		ID         string  `json:"id"`
		BillID     string  `json:"bill_id"`
		Month      string  `json:"month"`
		Paid       bool    `json:"paid"`
		PaidDate   string  `json:"paid_date"`
		AmountPaid float64 `json:"amount_paid"`
		Notes      string  `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/bill-payments?month="+url.QueryEscape(month), nil, &out); err != nil {
		return nil, err
	}

	payments := make([]model.BillPayment, 0, len(out))
	for _, p := range out {
		payments = append(payments, model.BillPayment{
			ID:         p.ID,
			BillID:     p.BillID,
			Month:      p.Month,
			Paid:       p.Paid,
			PaidDate:   p.PaidDate,
			AmountPaid: p.AmountPaid,
			Notes:      p.Notes,
		})
	}
	return payments, nil
}

// CreateImport creates the import record that tracks one upload.
func (c *Client) CreateImport(ctx context.Context, imp *model.Import) error {
	payload := map[string]any{
		"filename":     imp.Filename,
		"account_type": imp.AccountType,
		"status":       imp.Status,
		"record_count": imp.RecordCount,
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/imports", payload, &out); err != nil {
		return err
	}
	if out.ID != "" {
		imp.ID = out.ID
	}
	return nil
}

// UpdateImportStatus patches an import's status and record count.
func (c *Client) UpdateImportStatus(ctx context.Context, id string, status model.ImportStatus, recordCount int) error {
	payload := map[string]any{
		"status":       status,
		"record_count": recordCount,
	}
	return c.do(ctx, http.MethodPatch, "/api/imports/"+url.PathEscape(id), payload, nil)
}

// SaveRawTransactions bulk-inserts verbatim statement rows for audit.
func (c *Client) SaveRawTransactions(ctx context.Context, rows []model.RawTransaction) error {
	if len(rows) == 0 {
		return nil
	}

	payload := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		payload = append(payload, map[string]any{
			"id":          r.ID,
			"import_id":   r.ImportID,
			"account_id":  r.AccountID,
			"bank_txn_id": r.BankTxnID,
			"date":        r.Date,
			"description": r.Description,
			"category":    r.Category,
			"amount":      r.Amount,
			"balance":     r.Balance,
		})
	}
	return c.do(ctx, http.MethodPost, "/api/raw-transactions/bulk", payload, nil)
}

// SaveTransactions bulk-inserts processed transactions.
func (c *Client) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	payload := make([]map[string]any, 0, len(transactions))
	for _, t := range transactions {
		payload = append(payload, map[string]any{
			"id":               t.ID,
			"import_id":        t.ImportID,
			"bill_id":          t.BillID,
			"date":             t.Date,
			"merchant":         t.Merchant,
			"description":      t.Description,
			"category":         t.Category,
			"transaction_type": t.Type,
			"amount":           t.Amount,
			"is_recurring":     t.IsRecurring,
		})
	}
	return c.do(ctx, http.MethodPost, "/api/transactions/bulk", payload, nil)
}

// PatchTransactionBillLink updates a transaction's recurring flag and
// bill link.
func (c *Client) PatchTransactionBillLink(ctx context.Context, id, billID string, isRecurring bool) error {
	payload := map[string]any{
		"bill_id":      billID,
		"is_recurring": isRecurring,
	}
	return c.do(ctx, http.MethodPatch, "/api/transactions/"+url.PathEscape(id), payload, nil)
}

// GetTransactionsByMonth fetches all transactions whose date falls in
// the given YYYY-MM month.
func (c *Client) GetTransactionsByMonth(ctx context.Context, month string) ([]model.Transaction, error) {
	var out []struct {
		ID          string  `json:"id"`
		ImportID    string  `json:"import_id"`
		BillID      string  `json:"bill_id"`
		Date        string  `json:"date"`
		Merchant    string  `json:"merchant"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Type        string  `json:"transaction_type"`
		Amount      float64 `json:"amount"`
		IsRecurring bool    `json:"is_recurring"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/transactions?month="+url.QueryEscape(month), nil, &out); err != nil {
		return nil, err
	}

	txns := make([]model.Transaction, 0, len(out))
	for _, t := range out {
		txns = append(txns, model.Transaction{
			ID:          t.ID,
			ImportID:    t.ImportID,
			BillID:      t.BillID,
			Date:        t.Date,
			Merchant:    t.Merchant,
			Description: t.Description,
			Category:    t.Category,
			Type:        model.TransactionType(t.Type),
			Amount:      t.Amount,
			IsRecurring: t.IsRecurring,
		})
	}
	return txns, nil
}

// Close is a no-op; the client holds no persistent connection.
func (c *Client) Close() error {
	return nil
}

// billPayload is the wire shape of a bill.
type billPayload struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	DueDay         *int     `json:"due_day"`
	AmountExpected *float64 `json:"amount_expected"`
	IsVariable     bool     `json:"is_variable"`
	Autopay        bool     `json:"autopay"`
	Active         bool     `json:"active"`
}

func newBillPayload(b *model.Bill) billPayload {
	return billPayload{
		ID:             b.ID,
		Name:           b.Name,
		DueDay:         b.DueDay,
		AmountExpected: b.AmountExpected,
		IsVariable:     b.IsVariable,
		Autopay:        b.Autopay,
		Active:         b.Active,
	}
}

func (p billPayload) toModel() model.Bill {
	return model.Bill{
		ID:             p.ID,
		Name:           p.Name,
		DueDay:         p.DueDay,
		AmountExpected: p.AmountExpected,
		IsVariable:     p.IsVariable,
		Autopay:        p.Autopay,
		Active:         p.Active,
	}
}
