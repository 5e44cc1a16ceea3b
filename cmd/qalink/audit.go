package main

import (
	"fmt"

	"github.com/fwojciec/qalink"
	"github.com/fwojciec/qalink/audit"
)

// Run executes the audit command.
func (c *AuditCmd) Run(deps *Dependencies) error {
	report, err := audit.New(deps.StorePath).Run(deps.Ctx, c.Fix)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qalink.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d questions, %d answers\n", report.Questions, report.Answers)
	for _, warning := range report.Warnings {
		fmt.Fprintf(deps.Stdout, "warning: %s\n", warning)
	}
	for _, msg := range report.Errors {
		fmt.Fprintf(deps.Stdout, "error: %s\n", msg)
	}
	if report.Fixes > 0 {
		fmt.Fprintf(deps.Stdout, "fixed %d link(s)\n", report.Fixes)
	}

	if !report.OK() {
		return qalink.Errorf(qalink.ECONFLICT, "store has %d consistency error(s)", len(report.Errors))
	}
	fmt.Fprintln(deps.Stdout, "store is consistent")
	return nil
}
