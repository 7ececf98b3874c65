package main

import (
	"database/sql"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	rights "github.com/idmops/resultant-rights"
	"github.com/idmops/resultant-rights/internal/cli"
	"github.com/idmops/resultant-rights/sqlstore"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string

	// Persistent flags
	cfgFile string
	quiet   bool

	// Resolution flags
	flagRequestor string
	flagTarget    string
	flagServer    string
	flagDatabase  string
	flagSeparator string
	flagSummary   bool
	flagFull      bool
)

var rootCmd = &cobra.Command{
	Use:   "resultant-rights",
	Short: "Resolve effective access grants between a requestor and a target",
	Long: `resultant-rights - effective access grants in a policy store

Resolves which management policy rules apply between a requesting identity
and a target resource, via which matching strategy, and what operations and
attributes each rule grants.

Identifiers may be a GUID, a [domain\]account name, or a
type<sep>attribute<sep>value triplet. When omitted, the requestor defaults
to the built-in administrator and the target to the built-in
synchronization account.`,
	Example: `  # Raw records between two accounts
  resultant-rights --requestor 'CONTOSO\alice' --target 'CONTOSO\bob'

  # Grouped summary against an attribute-resolved target
  resultant-rights --requestor 'CONTOSO\alice' \
      --target 'Person:AccountName:bob' --summary

  # Full table on a specific server and database
  resultant-rights --server idm.example.com --database policystore \
      --requestor 7fb2b853-24f0-4498-9534-4e10589723c4 --full`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		return nil
	},
	RunE:          runResolve,
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover resultant-rights.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-result output")

	f := rootCmd.Flags()
	f.StringVar(&flagRequestor, "requestor", "", "requesting identity (default: built-in administrator)")
	f.StringVar(&flagTarget, "target", "", "target resource (default: built-in synchronization account)")
	f.StringVar(&flagServer, "server", "", "database server host")
	f.StringVar(&flagDatabase, "database", "", "database name")
	f.StringVar(&flagSeparator, "separator", "", "triplet identifier separator (default: \":\")")
	f.BoolVar(&flagSummary, "summary", false, "print one grouped line per rule")
	f.BoolVar(&flagFull, "full", false, "print a full rule/action/attribute table")
	rootCmd.MarkFlagsMutuallyExclusive("summary", "full")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	requestor := resolveString(flagRequestor, cfg.Requestor, rights.BuiltinAdministratorID)
	target := resolveString(flagTarget, cfg.Target, rights.BuiltinSyncAccountID)
	separator := resolveString(flagSeparator, cfg.Separator, rights.DefaultSeparator)

	dsn, err := resolveDSN()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return cli.ConfigError("connecting to database", err)
	}
	defer func() { _ = db.Close() }()

	resolver := rights.NewResolver(sqlstore.New(db),
		rights.WithSeparator(separator),
		rights.WithDefaultDomain(cfg.Domain),
	)

	result, err := resolver.Resolve(cmd.Context(), requestor, target)
	if err != nil {
		return cli.GeneralError("resolving rights", err)
	}

	switch {
	case flagSummary:
		rights.WriteSummary(os.Stdout, result.Records)
	case flagFull:
		rights.WriteTable(os.Stdout, result.Records)
	default:
		rights.WriteRaw(os.Stdout, result.Records)
	}
	return nil
}

// resolveDSN gets the database DSN from flags or config, with --server and
// --database overriding the discrete config fields.
func resolveDSN() (string, error) {
	if flagServer != "" {
		cfg.Database.URL = ""
		cfg.Database.Host = flagServer
	}
	if flagDatabase != "" {
		cfg.Database.URL = ""
		cfg.Database.Name = flagDatabase
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return "", cli.ConfigError("database configuration", err)
	}
	return dsn, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
