package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idmops/resultant-rights/internal/cli"
	"github.com/idmops/resultant-rights/sqlstore"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the policy store schema to the database",
	Long:  `Apply the object/attribute/relationship store schema to PostgreSQL.`,
	Example: `  # Apply schema using config or environment settings
  resultant-rights migrate

  # Apply schema to a specific server and database
  resultant-rights migrate --server idm.example.com --database policystore`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, err := resolveDSN()
		if err != nil {
			return err
		}

		if err := sqlstore.RunMigrations(dsn); err != nil {
			return cli.GeneralError("migration failed", err)
		}

		if !quiet {
			fmt.Println("Store schema applied successfully.")
		}
		return nil
	},
}

func init() {
	f := migrateCmd.Flags()
	f.StringVar(&flagServer, "server", "", "database server host")
	f.StringVar(&flagDatabase, "database", "", "database name")
}
