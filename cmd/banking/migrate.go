package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		if a.cfg.Database.IsMemory() {
			a.server.Logger.Warn().Msg("the memory store is discarded on exit; serve migrates it on startup")
		}

		return a.migrate(cmd.Context())
	},
}
