package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idmops/resultant-rights/internal/cli"
	"github.com/idmops/resultant-rights/internal/doctor"
)

var doctorVerbose bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on the policy store",
	Long:  `Check connectivity, the expected store relations, and basic data health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, err := resolveDSN()
		if err != nil {
			return err
		}

		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return cli.ConfigError("connecting to database", err)
		}
		defer func() { _ = db.Close() }()

		if !quiet {
			fmt.Println("resultant-rights doctor - Health Check")
		}

		report, err := doctor.New(db).Run(cmd.Context())
		if err != nil {
			return cli.GeneralError("running doctor", err)
		}

		report.Print(os.Stdout, doctorVerbose)

		if report.HasErrors() {
			return cli.GeneralError("health checks failed", nil)
		}
		return nil
	},
}

func init() {
	f := doctorCmd.Flags()
	f.BoolVar(&doctorVerbose, "verbose", false, "show detailed output")
	f.StringVar(&flagServer, "server", "", "database server host")
	f.StringVar(&flagDatabase, "database", "", "database name")
}
