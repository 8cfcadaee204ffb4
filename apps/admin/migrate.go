package main

import (
	"github.com/spf13/cobra"

	"github.com/unihive/unihive/storage/database"
)

func newMigrateCmd(cli *commandLine) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(cli.db.DB); err != nil {
				return err
			}
			cli.logger.Println("migrations applied")
			return nil
		},
	}
}
