package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/session"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, session.New("test-token", "user-1"))
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok", "user_id": "u1"})
	}))
	t.Cleanup(srv.Close)

	sess, err := Login(context.Background(), srv.URL, "me@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, "u1", sess.UserID)

	_, err = Login(context.Background(), srv.URL, "me@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestListBills(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/bills", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))

		due := 5
		amount := 15.99
		_ = json.NewEncoder(w).Encode([]billPayload{
			{ID: "b1", Name: "Netflix", DueDay: &due, AmountExpected: &amount, Active: true},
		})
	})

	bills, err := client.ListBills(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "Netflix", bills[0].Name)
	require.NotNil(t, bills[0].DueDay)
	assert.Equal(t, 5, *bills[0].DueDay)
}

func TestCreateBillAdoptsServerID(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var payload billPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Netflix", payload.Name)

		payload.ID = "server-assigned"
		_ = json.NewEncoder(w).Encode(payload)
	})

	bill := &model.Bill{Name: "Netflix", Active: true}
	require.NoError(t, client.CreateBill(context.Background(), bill))
	assert.Equal(t, "server-assigned", bill.ID)
}

func TestUpsertBillPayment(t *testing.T) {
	var got map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/bill-payments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := client.UpsertBillPayment(context.Background(), &model.BillPayment{
		BillID: "b1", Month: "2024-03", Paid: true, AmountPaid: 15.99,
	})
	require.NoError(t, err)
	assert.Equal(t, "b1", got["bill_id"])
	assert.Equal(t, "2024-03", got["month"])
	assert.Equal(t, true, got["paid"])
}

func TestSaveTransactionsBulk(t *testing.T) {
	var got []map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/transactions/bulk", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.SaveTransactions(context.Background(), []model.Transaction{
		{ID: "t1", Date: "2024-03-05", Type: model.TypeRecurring, Amount: -15.99, IsRecurring: true, BillID: "b1"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "recurring", got[0]["transaction_type"])
	assert.Equal(t, true, got[0]["is_recurring"])
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: common.ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, wantErr: common.ErrNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: common.ErrRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			// Writes are never retried, so the mapped error comes back
			// after a single request regardless of status.
			err := client.UpsertBillPayment(context.Background(), &model.BillPayment{
				BillID: "b1", Month: "2024-03",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetRetriesRateLimit(t *testing.T) {
	attempts := 0
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode([]billPayload{})
	})
	client.retryOpts.InitialDelay = time.Millisecond
	client.retryOpts.MaxDelay = time.Millisecond

	bills, err := client.ListBills(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, bills)
	assert.Equal(t, 3, attempts)
}

func TestSaveTransactionsEmptyIsNoop(t *testing.T) {
	called := false
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.SaveTransactions(context.Background(), nil))
	require.NoError(t, client.SaveRawTransactions(context.Background(), nil))
	assert.False(t, called)
}
