package main

import (
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo customers and accounts into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		if err := a.migrate(cmd.Context()); err != nil {
			return err
		}
		return a.seed(cmd.Context())
	},
}
