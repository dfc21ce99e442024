package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/model"
)

func payCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay [bill-id]",
		Short: "Record a bill payment for a month",
		Long: `Record that a bill was paid (or not) for a month. There is one
payment record per bill per month; running pay again replaces it.

Examples:
  billfold pay 4f8d... --amount 15.99
  billfold pay 4f8d... --month 2026-08 --amount 120 --notes "late fee waived"
  billfold pay 4f8d... --unpaid`,
		Args: cobra.ExactArgs(1),
		RunE: runPay,
	}

	cmd.Flags().String("month", time.Now().Format("2006-01"), "month (YYYY-MM)")
	cmd.Flags().Float64("amount", 0, "amount paid")
	cmd.Flags().String("date", time.Now().Format("2006-01-02"), "paid date (YYYY-MM-DD)")
	cmd.Flags().String("notes", "", "payment notes")
	cmd.Flags().Bool("unpaid", false, "mark the bill unpaid for the month")

	return cmd
}

func runPay(cmd *cobra.Command, args []string) error {
	month, _ := cmd.Flags().GetString("month")
	amount, _ := cmd.Flags().GetFloat64("amount")
	paidDate, _ := cmd.Flags().GetString("date")
	notes, _ := cmd.Flags().GetString("notes")
	unpaid, _ := cmd.Flags().GetBool("unpaid")

	if !model.ValidMonth(month) {
		return fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bill, err := store.GetBill(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	payment := model.BillPayment{
		BillID:     bill.ID,
		Month:      month,
		Paid:       !unpaid,
		AmountPaid: amount,
		Notes:      notes,
	}
	if payment.Paid {
		payment.PaidDate = paidDate
	}

	if err := store.UpsertBillPayment(cmd.Context(), &payment); err != nil {
		return err
	}

	if unpaid {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Marked %q unpaid for %s", bill.Name, month)))
	} else {
		fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Recorded payment of $%.2f for %q in %s", amount, bill.Name, month)))
	}
	return nil
}
