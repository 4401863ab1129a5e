package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/axsetup/internal/app"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what apply would change",
	Long: `Plan checks every provisioning step, including the shell launch,
and lists the ones that still need to run. Nothing is changed.`,
	RunE: runPlan,
}

var planExplain bool

func init() {
	planCmd.Flags().BoolVar(&planExplain, "explain", false, "describe each step (add --verbose for details)")
}

func runPlan(cmd *cobra.Command, _ []string) error {
	setup, logger, err := newSetup(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	plan, err := setup.Plan(cmd.Context())
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}
	setup.PrintPlan(plan, app.PlanOptions{Explain: planExplain, Verbose: verbose})
	return nil
}
