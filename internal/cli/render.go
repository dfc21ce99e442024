package cli

import (
	"fmt"
	"strings"

	"github.com/billfold/billfold/internal/model"
)

// RenderSummary formats a month summary for the terminal.
func RenderSummary(sum *model.MonthSummary) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Summary for %s", sum.Month)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  Income:     $%.2f\n", sum.Income)
	fmt.Fprintf(&b, "  Recurring:  $%.2f\n", sum.Recurring)
	fmt.Fprintf(&b, "  Misc:       $%.2f\n", sum.Misc)

	net := fmt.Sprintf("$%.2f", sum.Net)
	if sum.Net < 0 {
		net = ErrorStyle.Render(net)
	} else {
		net = SuccessStyle.Render(net)
	}
	fmt.Fprintf(&b, "  Net:        %s\n", net)
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %d transactions, transfers excluded\n", sum.Transactions)))

	if len(sum.Bills) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render(fmt.Sprintf("Bills (%d/%d paid)", sum.BillsPaid(), len(sum.Bills))))
		b.WriteString("\n\n")
		for _, bs := range sum.Bills {
			b.WriteString("  " + renderBillStatus(bs) + "\n")
		}
	}

	return b.String()
}

func renderBillStatus(bs model.BillStatus) string {
	mark := WarningStyle.Render("○ unpaid")
	if bs.Payment != nil && bs.Payment.Paid {
		mark = SuccessStyle.Render("● paid")
		if bs.Payment.AmountPaid != 0 {
			mark += SubtleStyle.Render(fmt.Sprintf(" $%.2f", bs.Payment.AmountPaid))
		}
	}

	due := ""
	if bs.Bill.DueDay != nil {
		due = SubtleStyle.Render(fmt.Sprintf(" (due %d)", *bs.Bill.DueDay))
	}

	return fmt.Sprintf("%-30s%s  %s", bs.Bill.Name, due, mark)
}

// RenderBills formats the bill list for the terminal.
func RenderBills(bills []model.Bill) string {
	if len(bills) == 0 {
		return SubtleStyle.Render("No bills yet. Add one with 'billfold bills add' or import a statement.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Bills"))
	b.WriteString("\n\n")

	for _, bill := range bills {
		amount := "variable"
		if bill.AmountExpected != nil {
			amount = fmt.Sprintf("$%.2f", *bill.AmountExpected)
		}

		due := "-"
		if bill.DueDay != nil {
			due = fmt.Sprintf("%d", *bill.DueDay)
		}

		flags := ""
		if bill.Autopay {
			flags += " autopay"
		}
		if !bill.Active {
			flags += " inactive"
		}

		fmt.Fprintf(&b, "  %-36s  %-30s due %-3s %10s%s\n",
			SubtleStyle.Render(bill.ID), bill.Name, due, amount, SubtleStyle.Render(flags))
	}

	return b.String()
}
