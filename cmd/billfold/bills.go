package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/model"
)

func billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Manage recurring monthly bills",
	}

	cmd.AddCommand(billsListCmd())
	cmd.AddCommand(billsAddCmd())
	cmd.AddCommand(billsEditCmd())
	cmd.AddCommand(billsRemoveCmd())

	return cmd
}

func billsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bills, err := store.ListBills(cmd.Context(), !all)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderBills(bills))
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "include inactive bills")
	return cmd
}

func billsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bill := model.Bill{
				ID:     uuid.NewString(),
				Name:   args[0],
				Active: true,
			}
			if err := applyBillFlags(cmd, &bill); err != nil {
				return err
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateBill(cmd.Context(), &bill); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added bill %q (%s)", bill.Name, bill.ID)))
			return nil
		},
	}

	addBillFlags(cmd)
	return cmd
}

func billsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bill, err := store.GetBill(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				bill.Name, _ = cmd.Flags().GetString("name")
			}
			if err := applyBillFlags(cmd, bill); err != nil {
				return err
			}

			if err := store.UpdateBill(cmd.Context(), bill); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Updated bill %q", bill.Name)))
			return nil
		},
	}

	cmd.Flags().String("name", "", "new bill name")
	addBillFlags(cmd)
	return cmd
}

func billsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Deactivate a bill",
		Long:  "Deactivate a bill. Bills are never deleted; inactive bills keep their history and stop matching imports.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeactivateBill(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Bill deactivated"))
			return nil
		},
	}
}

func addBillFlags(cmd *cobra.Command) {
	cmd.Flags().Int("due", 0, "due day of month (1-31)")
	cmd.Flags().Float64("amount", 0, "expected amount")
	cmd.Flags().Bool("variable", false, "amount varies month to month")
	cmd.Flags().Bool("autopay", false, "bill is on autopay")
}

func applyBillFlags(cmd *cobra.Command, bill *model.Bill) error {
	if cmd.Flags().Changed("due") {
		due, _ := cmd.Flags().GetInt("due")
		if due < 1 || due > 31 {
			return fmt.Errorf("due day %d out of range 1-31", due)
		}
		bill.DueDay = &due
	}
	if cmd.Flags().Changed("amount") {
		amount, _ := cmd.Flags().GetFloat64("amount")
		bill.AmountExpected = &amount
	}
	if cmd.Flags().Changed("variable") {
		bill.IsVariable, _ = cmd.Flags().GetBool("variable")
	}
	if cmd.Flags().Changed("autopay") {
		bill.Autopay, _ = cmd.Flags().GetBool("autopay")
	}
	return nil
}
