package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Report which components are installed",
	Long: `Verify checks every component of the manifest and the verify
section (Python imports and binary versions) without changing anything.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, _ []string) error {
	setup, logger, err := newSetup(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	report, err := setup.Verify(cmd.Context())
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}
	setup.PrintReport(report)
	return nil
}
