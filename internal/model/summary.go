package model

// BillStatus pairs a bill with its payment record for one month.
type BillStatus struct {
	Bill    Bill
	Payment *BillPayment // nil when no payment has been recorded
}

// MonthSummary aggregates one month's transactions and bill status.
type MonthSummary struct {
	Month        string // YYYY-MM
	Income       float64
	Recurring    float64 // sum of recurring outflows, as a positive number
	Misc         float64 // sum of misc outflows, as a positive number
	Net          float64 // income minus outflows, transfers excluded
	Transactions int
	Bills        []BillStatus
}

// BillsPaid counts bills with a paid payment record this month.
func (m MonthSummary) BillsPaid() int {
	n := 0
	for _, bs := range m.Bills {
		if bs.Payment != nil && bs.Payment.Paid {
			n++
		}
	}
	return n
}
