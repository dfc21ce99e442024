package model

// AccountType identifies which account a statement was exported from.
type AccountType string

const (
	// AccountChecking is the default checking account.
	AccountChecking AccountType = "checking"
	// AccountSavings is a standard savings account.
	AccountSavings AccountType = "savings"
	// AccountHighYield is a high-yield savings account.
	AccountHighYield AccountType = "high_yield"
)

// ValidAccountType reports whether s names a known account type.
func ValidAccountType(s string) bool {
	switch AccountType(s) {
	case AccountChecking, AccountSavings, AccountHighYield:
		return true
	}
	return false
}

// ImportStatus tracks the lifecycle of one statement upload.
type ImportStatus string

const (
	// ImportPending is the initial status of a new import record.
	ImportPending ImportStatus = "pending"
	// ImportProcessing means rows are being classified and saved.
	ImportProcessing ImportStatus = "processing"
	// ImportCompleted means all transactions were written.
	ImportCompleted ImportStatus = "completed"
	// ImportFailed means a stage aborted the upload.
	ImportFailed ImportStatus = "failed"
)

// Import is one user-initiated statement upload tracked by the store.
type Import struct {
	ID          string
	Filename    string
	AccountType AccountType
	Status      ImportStatus
	RecordCount int
}
