package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var manageURLCmd = &cobra.Command{
	Use:   "manage-url <email>",
	Short: "Print the hosted page where a customer manages their transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		url, err := client.GetURLToManageTransactions(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(url)
		return nil
	},
}

var adminURLCmd = &cobra.Command{
	Use:   "admin-url",
	Short: "Print a one-time URL to the vendor admin panel",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		url, err := client.GetURLToAdmin(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(url)
		return nil
	},
}

var paymentURLCmd = &cobra.Command{
	Use:   "payment-url <product-id>",
	Short: "Print the hosted checkout URL for a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		fmt.Println(client.PaymentURLForProduct(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manageURLCmd, adminURLCmd, paymentURLCmd)
}
