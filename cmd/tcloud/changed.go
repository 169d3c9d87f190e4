package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/transactioncloud/transactioncloud-go/model"
)

var changedCmd = &cobra.Command{
	Use:   "changed",
	Short: "List transactions that changed since the last acknowledgement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		changed, err := client.FetchChangedTransactions(cmd.Context())
		if err != nil {
			return err
		}

		for _, tx := range changed {
			fmt.Printf("%s\t%s\t%s\t%s\t%s\n",
				tx.ID(),
				tx.Email(),
				tx.ChangedStatus(),
				tx.TransactionStatus(),
				tx.NextCharge().Format(model.DateFormat),
			)
		}
		return nil
	},
}

var processCmd = &cobra.Command{
	Use:   "process <id>",
	Short: "Acknowledge a changed transaction so it leaves the feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		ok, err := client.MarkTransactionAsProcessed(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("server refused to mark %s as processed", args[0])
		}

		fmt.Printf("marked %s as processed\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changedCmd, processCmd)
}
