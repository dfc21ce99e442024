package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold/billfold/internal/classify"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/service"
	"github.com/billfold/billfold/internal/summary"
	"github.com/billfold/billfold/internal/testutil"
)

func writeStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newImporter(t *testing.T) (*Importer, func() []model.Bill, func(string) []model.Transaction) {
	t.Helper()
	store := testutil.SetupTestStore(t)
	imp := New(store, classify.NewClassifier(classify.DefaultRules()))

	listBills := func() []model.Bill {
		bills, err := store.ListBills(context.Background(), true)
		require.NoError(t, err)
		return bills
	}
	listTxns := func(month string) []model.Transaction {
		txns, err := store.GetTransactionsByMonth(context.Background(), month)
		require.NoError(t, err)
		return txns
	}
	return imp, listBills, listTxns
}

const header = "Account,Txn ID,Date,Description,Check,Category,Memo,Amount,Balance\n"

func TestRunEndToEnd(t *testing.T) {
	ctx := context.Background()
	imp, listBills, listTxns := newImporter(t)

	path := writeStatement(t, header+
		"ACCT1,TXN1,3/1/2024,Deposit ACH Acme Payroll,,Paychecks/Salary,,2500.00,3000.00\n"+
		`ACCT1,TXN2,3/5/2024,Recurring Withdrawal Netflix,,Online Services,,-15.99,"2,984.01"`+"\n")

	stats, err := imp.Run(ctx, Options{Filename: path, AccountType: model.AccountChecking})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Transactions)
	assert.Equal(t, 1, stats.BillsCreated)
	assert.Equal(t, 1, stats.BillsLinked)

	bills := listBills()
	require.Len(t, bills, 1)
	assert.Equal(t, "Netflix", bills[0].Name)
	require.NotNil(t, bills[0].AmountExpected)
	assert.InDelta(t, 15.99, *bills[0].AmountExpected, 0.001)
	require.NotNil(t, bills[0].DueDay)
	assert.Equal(t, 5, *bills[0].DueDay)

	txns := listTxns("2024-03")
	require.Len(t, txns, 2)

	income := txns[0]
	assert.Equal(t, model.TypeIncome, income.Type)
	assert.InDelta(t, 2500.0, income.Amount, 0.001)
	assert.False(t, income.IsRecurring)
	assert.Empty(t, income.BillID)

	recurring := txns[1]
	assert.Equal(t, model.TypeRecurring, recurring.Type)
	assert.True(t, recurring.IsRecurring)
	assert.Equal(t, bills[0].ID, recurring.BillID)
	assert.Equal(t, "Netflix", recurring.Merchant)
}

func TestRunSummaryAfterImport(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)
	imp := New(store, classify.NewClassifier(classify.DefaultRules()))

	path := writeStatement(t, header+
		"ACCT1,TXN1,3/1/2024,Deposit ACH Acme Payroll,,Paychecks/Salary,,2500.00,3000.00\n"+
		"ACCT1,TXN2,3/5/2024,Recurring Withdrawal Netflix,,Online Services,,-15.99,2984.01\n")

	_, err := imp.Run(ctx, Options{Filename: path, AccountType: model.AccountChecking})
	require.NoError(t, err)

	sum, err := summary.ForMonth(ctx, store, "2024-03")
	require.NoError(t, err)
	assert.InDelta(t, 2500.0, sum.Income, 0.001)
	assert.InDelta(t, 15.99, sum.Recurring, 0.001)
	assert.Equal(t, 2, sum.Transactions)
	require.Len(t, sum.Bills, 1)
	assert.Equal(t, "Netflix", sum.Bills[0].Bill.Name)
}

func TestRunDeduplicatesBillsWithinBatch(t *testing.T) {
	ctx := context.Background()
	imp, listBills, listTxns := newImporter(t)

	path := writeStatement(t, header+
		"ACCT1,TXN1,3/5/2024,Recurring Withdrawal Netflix,,Online Services,,-15.99,100.00\n"+
		"ACCT1,TXN2,4/5/2024,Recurring Withdrawal Netflix,,Online Services,,-15.99,84.01\n")

	stats, err := imp.Run(ctx, Options{Filename: path, AccountType: model.AccountChecking})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.BillsCreated)
	assert.Equal(t, 2, stats.BillsLinked)

	bills := listBills()
	require.Len(t, bills, 1)

	march := listTxns("2024-03")
	april := listTxns("2024-04")
	require.Len(t, march, 1)
	require.Len(t, april, 1)
	assert.Equal(t, bills[0].ID, march[0].BillID)
	assert.Equal(t, bills[0].ID, april[0].BillID)
}

func TestRunMatchesExistingBill(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestStore(t)
	imp := New(store, classify.NewClassifier(classify.DefaultRules()))

	require.NoError(t, store.CreateBill(ctx, &model.Bill{
		ID: "bill-amazon", Name: "Amazon", Active: true,
	}))

	path := writeStatement(t, header+
		"ACCT1,TXN1,3/7/2024,Recurring Withdrawal AMAZON PRIME,,Online Services,,-14.99,100.00\n")

	stats, err := imp.Run(ctx, Options{Filename: path, AccountType: model.AccountChecking})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.BillsCreated)
	assert.Equal(t, 1, stats.BillsLinked)

	txns, err := store.GetTransactionsByMonth(ctx, "2024-03")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "bill-amazon", txns[0].BillID)
}

func TestRunPositiveRecurringNotLinked(t *testing.T) {
	ctx := context.Background()
	imp, listBills, listTxns := newImporter(t)

	// A refund from a recurring merchant is classified recurring but is
	// not an outflow, so no bill is created or linked.
	path := writeStatement(t, header+
		"ACCT1,TXN1,3/5/2024,Recurring Withdrawal Netflix refund,,Online Services,,15.99,100.00\n")

	stats, err := imp.Run(ctx, Options{Filename: path, AccountType: model.AccountChecking})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.BillsCreated)
	assert.Equal(t, 0, stats.BillsLinked)
	assert.Empty(t, listBills())

	txns := listTxns("2024-03")
	require.Len(t, txns, 1)
	assert.True(t, txns[0].IsRecurring)
	assert.Empty(t, txns[0].BillID)
}

func TestRunEmptyStatement(t *testing.T) {
	ctx := context.Background()
	imp, listBills, _ := newImporter(t)

	path := writeStatement(t, header)

	stats, err := imp.Run(ctx, Options{Filename: path, AccountType: model.AccountChecking})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Transactions)
	assert.Empty(t, listBills())
}

// failingStore fails bulk transaction saves and records status updates.
type failingStore struct {
	service.Store
	statuses []model.ImportStatus
}

func (f *failingStore) SaveTransactions(context.Context, []model.Transaction) error {
	return errors.New("backend down")
}

func (f *failingStore) UpdateImportStatus(ctx context.Context, id string, status model.ImportStatus, recordCount int) error {
	f.statuses = append(f.statuses, status)
	return f.Store.UpdateImportStatus(ctx, id, status, recordCount)
}

func TestRunStageFailureMarksImportFailed(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Store: testutil.SetupTestStore(t)}
	imp := New(store, classify.NewClassifier(classify.DefaultRules()))

	path := writeStatement(t, header+
		"ACCT1,TXN1,3/1/2024,Deposit ACH Acme Payroll,,Paychecks/Salary,,2500.00,3000.00\n")

	_, err := imp.Run(ctx, Options{Filename: path, AccountType: model.AccountChecking})
	require.Error(t, err)
	require.NotEmpty(t, store.statuses)
	assert.Equal(t, model.ImportFailed, store.statuses[len(store.statuses)-1])

	// Raw rows written before the failure stay in place.
	txns, txErr := store.GetTransactionsByMonth(ctx, "2024-03")
	require.NoError(t, txErr)
	assert.Empty(t, txns)
}

func TestRunMissingFile(t *testing.T) {
	imp, _, _ := newImporter(t)

	_, err := imp.Run(context.Background(), Options{
		Filename:    filepath.Join(t.TempDir(), "missing.csv"),
		AccountType: model.AccountChecking,
	})
	assert.Error(t, err)
}
