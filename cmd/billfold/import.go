package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/importer"
	"github.com/billfold/billfold/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a bank-statement export (CSV, OFX, or QFX)",
		Long: `Import a bank-statement export. Each row is classified as income,
transfer, recurring, or misc; recurring outflows are linked to bills,
creating new bills for unrecognized merchants.

Examples:
  billfold import ~/Downloads/statement.csv
  billfold import --account savings ~/Downloads/savings.csv
  billfold import ~/Downloads/checking.qfx`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("account", "a", "checking", "account type (checking, savings, high_yield)")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	accountType, _ := cmd.Flags().GetString("account")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	if !model.ValidAccountType(accountType) {
		return fmt.Errorf("unknown account type %q (want checking, savings, or high_yield)", accountType)
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	classifier, err := loadClassifier()
	if err != nil {
		return err
	}

	stats, err := importer.New(store, classifier).Run(cmd.Context(), importer.Options{
		Filename:     args[0],
		AccountType:  model.AccountType(accountType),
		ShowProgress: !noProgress,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrImportFailed, err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
		"Imported %d transactions (%d linked to bills, %d bills created)",
		stats.Transactions, stats.BillsLinked, stats.BillsCreated)))

	return nil
}
