package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel the subscription behind a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		ok, err := client.CancelSubscription(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("server refused to cancel %s", args[0])
		}

		fmt.Printf("cancelled %s\n", args[0])
		return nil
	},
}

var refundCmd = &cobra.Command{
	Use:   "refund <id>",
	Short: "Refund a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		refund, err := client.RefundTransaction(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("refund id:        %s\n", refund.ID())
		fmt.Printf("amount total:     %s %s\n", refund.AmountTotal().StringFixed(), refund.Currency().Code())
		fmt.Printf("tax amount:       %s %s\n", refund.TaxAmount().StringFixed(), refund.Currency().Code())
		fmt.Printf("vendor income:    %s %s\n", refund.VendorIncome().StringFixed(), refund.IncomeCurrency().Code())
		fmt.Printf("payment provider: %s\n", refund.PaymentProvider())
		fmt.Printf("invoice:          %s\n", refund.InvoiceLink())
		fmt.Printf("timestamp:        %s\n", refund.Timestamp().Format(time.RFC3339))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cancelCmd, refundCmd)
}
