package main

import (
	"fmt"

	"github.com/spf13/cobra"

	steg "github.com/zedseven/textsteg"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "steg v%s\n", steg.Version())
		},
	})
}
