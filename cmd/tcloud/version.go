package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	transactioncloud "github.com/transactioncloud/transactioncloud-go"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tcloud %s (%s)\n", transactioncloud.Version, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
