package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/transactioncloud/transactioncloud-go/model"
)

func printTransaction(tx *model.Transaction) {
	fmt.Printf("%s\t%s\t%s\t%s %s\t%s\n",
		tx.ID(),
		tx.Email(),
		tx.TransactionStatus(),
		tx.NetPrice().StringFixed(),
		tx.Currency().Code(),
		tx.LastCharge().Format(model.DateFormat),
	)
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions <email>",
	Short: "List the transactions belonging to an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		transactions, err := client.GetTransactionsByEmail(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		for _, tx := range transactions {
			printTransaction(tx)
		}
		return nil
	},
}

var transactionCmd = &cobra.Command{
	Use:   "transaction <id>",
	Short: "Show a single transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		tx, err := client.GetTransactionByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("id:                 %s\n", tx.ID())
		fmt.Printf("product:            %s (%s)\n", tx.ProductName(), tx.ProductID())
		fmt.Printf("email:              %s\n", tx.Email())
		fmt.Printf("assigned email:     %s\n", tx.AssignedEmail())
		fmt.Printf("country:            %s\n", tx.Country())
		fmt.Printf("status:             %s\n", tx.TransactionStatus())
		fmt.Printf("type:               %s\n", tx.TransactionType())
		fmt.Printf("charge frequency:   %s\n", tx.ChargeFrequency())
		fmt.Printf("created:            %s\n", tx.CreateDate().Format(model.DateFormat))
		fmt.Printf("last charge:        %s\n", tx.LastCharge().Format(model.DateFormat))
		fmt.Printf("net price:          %s %s\n", tx.NetPrice().StringFixed(), tx.Currency().Code())
		fmt.Printf("tax:                %s %s\n", tx.Tax().StringFixed(), tx.Currency().Code())
		return nil
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign <id> <email>",
	Short: "Assign a transaction to an email address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		ok, err := client.AssignTransactionToEmail(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("server refused to assign %s to %s", args[0], args[1])
		}

		fmt.Printf("assigned %s to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transactionsCmd, transactionCmd, assignCmd)
}
