// Package doctor provides health checks for a resultant-rights policy store.
//
// The doctor command validates that the store is usable for rights
// resolution by checking connectivity, the expected schema relations, and
// basic data health.
//
// Example usage:
//
//	d := doctor.New(db)
//	report, err := d.Run(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report.Print(os.Stdout, true) // verbose=true
package doctor

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	rights "github.com/idmops/resultant-rights"
)

// Status represents the result of a health check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusWarn indicates a non-critical issue.
	StatusWarn
	// StatusFail indicates a critical issue that will cause failures.
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns a status indicator symbol for terminal output.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return "✓"
	case StatusWarn:
		return "⚠"
	case StatusFail:
		return "✗"
	default:
		return "?"
	}
}

// CheckResult represents the outcome of a single health check.
type CheckResult struct {
	// Category groups related checks (e.g., "schema", "data").
	Category string

	// Name is a short identifier for the check.
	Name string

	// Status is the check outcome.
	Status Status

	// Message is a human-readable description of the result.
	Message string

	// Details provides additional information for verbose output.
	Details string

	// FixHint suggests how to resolve issues.
	FixHint string
}

// Report contains all health check results.
type Report struct {
	Checks []CheckResult

	// Summary counts.
	Passed   int
	Warnings int
	Errors   int
}

// AddCheck adds a check result and updates summary counts.
func (r *Report) AddCheck(check CheckResult) {
	r.Checks = append(r.Checks, check)
	switch check.Status {
	case StatusPass:
		r.Passed++
	case StatusWarn:
		r.Warnings++
	case StatusFail:
		r.Errors++
	}
}

// Print writes the report to the given writer.
func (r *Report) Print(w io.Writer, verbose bool) {
	categories := make(map[string][]CheckResult)
	var categoryOrder []string
	for _, check := range r.Checks {
		if _, exists := categories[check.Category]; !exists {
			categoryOrder = append(categoryOrder, check.Category)
		}
		categories[check.Category] = append(categories[check.Category], check)
	}

	for _, cat := range categoryOrder {
		_, _ = fmt.Fprintf(w, "\n%s\n", cat)
		for _, check := range categories[cat] {
			_, _ = fmt.Fprintf(w, "  %s %s\n", check.Status.Symbol(), check.Message)
			if verbose && check.Details != "" {
				for _, line := range strings.Split(check.Details, "\n") {
					_, _ = fmt.Fprintf(w, "      %s\n", line)
				}
			}
			if check.Status != StatusPass && check.FixHint != "" {
				_, _ = fmt.Fprintf(w, "      Fix: %s\n", check.FixHint)
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\nSummary: %d passed, %d warnings, %d errors\n",
		r.Passed, r.Warnings, r.Errors)
}

// HasErrors returns true if any check failed.
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}

// Doctor performs health checks on a policy store database.
type Doctor struct {
	db *sql.DB
}

// New creates a new Doctor instance.
func New(db *sql.DB) *Doctor {
	return &Doctor{db: db}
}

// storeTables are the relations rights resolution queries against.
var storeTables = []string{
	"objects",
	"attribute_types",
	"object_values",
	"computed_members",
	"policy_rules",
}

// Run executes all health checks and returns a report.
func (d *Doctor) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	if !d.checkConnectivity(ctx, report) {
		return report, nil
	}
	d.checkSchema(ctx, report)
	d.checkData(ctx, report)

	return report, nil
}

func (d *Doctor) checkConnectivity(ctx context.Context, report *Report) bool {
	if err := d.db.PingContext(ctx); err != nil {
		report.AddCheck(CheckResult{
			Category: "connection",
			Name:     "ping",
			Status:   StatusFail,
			Message:  "cannot reach the database",
			Details:  err.Error(),
			FixHint:  "check --server/--database and the database settings in resultant-rights.yaml",
		})
		return false
	}
	report.AddCheck(CheckResult{
		Category: "connection",
		Name:     "ping",
		Status:   StatusPass,
		Message:  "database reachable",
	})
	return true
}

func (d *Doctor) checkSchema(ctx context.Context, report *Report) {
	for _, table := range storeTables {
		var exists bool
		err := d.db.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)",
			table,
		).Scan(&exists)

		switch {
		case err != nil:
			report.AddCheck(CheckResult{
				Category: "schema",
				Name:     table,
				Status:   StatusFail,
				Message:  fmt.Sprintf("could not check %s", table),
				Details:  err.Error(),
			})
		case !exists:
			report.AddCheck(CheckResult{
				Category: "schema",
				Name:     table,
				Status:   StatusFail,
				Message:  fmt.Sprintf("%s table missing", table),
				FixHint:  "run 'resultant-rights migrate'",
			})
		default:
			report.AddCheck(CheckResult{
				Category: "schema",
				Name:     table,
				Status:   StatusPass,
				Message:  fmt.Sprintf("%s present", table),
			})
		}
	}
}

func (d *Doctor) checkData(ctx context.Context, report *Report) {
	d.checkCount(ctx, report, "active rules",
		"SELECT COUNT(*) FROM policy_rules WHERE rule_type = 'Request' AND grant_right",
		"no active granting rules; every resolution will come back empty")
	d.checkCount(ctx, report, "set memberships",
		"SELECT COUNT(*) FROM computed_members",
		"no materialized set memberships; set-based matching cannot succeed")
	d.checkCount(ctx, report, "attribute metadata",
		"SELECT COUNT(*) FROM attribute_types",
		"attribute keys will render without display names")

	var exists bool
	err := d.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM objects WHERE object_id = $1)",
		rights.BuiltinAdministratorID).Scan(&exists)
	switch {
	case err != nil:
		report.AddCheck(CheckResult{
			Category: "data",
			Name:     "builtin administrator",
			Status:   StatusFail,
			Message:  "could not check built-in administrator",
			Details:  err.Error(),
		})
	case !exists:
		report.AddCheck(CheckResult{
			Category: "data",
			Name:     "builtin administrator",
			Status:   StatusWarn,
			Message:  "built-in administrator object missing",
			Details:  fmt.Sprintf("expected object %s", rights.BuiltinAdministratorID),
			FixHint:  "the default --requestor will fail until it exists",
		})
	default:
		report.AddCheck(CheckResult{
			Category: "data",
			Name:     "builtin administrator",
			Status:   StatusPass,
			Message:  "built-in administrator present",
		})
	}
}

func (d *Doctor) checkCount(ctx context.Context, report *Report, name, query, emptyHint string) {
	var count int64
	if err := d.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		report.AddCheck(CheckResult{
			Category: "data",
			Name:     name,
			Status:   StatusFail,
			Message:  fmt.Sprintf("could not count %s", name),
			Details:  err.Error(),
		})
		return
	}
	if count == 0 {
		report.AddCheck(CheckResult{
			Category: "data",
			Name:     name,
			Status:   StatusWarn,
			Message:  fmt.Sprintf("no %s", name),
			Details:  emptyHint,
		})
		return
	}
	report.AddCheck(CheckResult{
		Category: "data",
		Name:     name,
		Status:   StatusPass,
		Message:  fmt.Sprintf("%d %s", count, name),
	})
}
