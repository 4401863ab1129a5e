package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/axsetup/internal/app"
	"github.com/felixgeelhaar/axsetup/internal/domain/execution"
	"github.com/felixgeelhaar/axsetup/internal/tui"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Provision the system",
	Long: `Apply runs every provisioning step in order:

1. Checks that axsetup is not running as root and finds the package manager
2. Installs packages, builds tools, syncs the Ax-Shell checkout and installs fonts
3. Configures services and shell rc lines
4. Verifies the installation and prints a report
5. Launches the shell, through uwsm when it is installed

Steps that fail are reported with a warning and the run continues.
Use --dry-run to see what would happen without making changes.`,
	RunE: runApply,
}

var (
	applyDryRun   bool
	applyNoLaunch bool
	applyTUI      bool
)

func init() {
	addApplyFlags(applyCmd)
}

// addApplyFlags registers the apply flags. The root command carries them too
// because it runs apply when no subcommand is given.
func addApplyFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Show what would be done without making changes")
	cmd.Flags().BoolVar(&applyNoLaunch, "no-launch", false, "Do not launch the shell after provisioning")
	cmd.Flags().BoolVar(&applyTUI, "tui", false, "Show a live progress view")
}

func runApply(cmd *cobra.Command, _ []string) error {
	setup, logger, err := newSetup(cmd, applyTUI)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := app.ApplyOptions{DryRun: applyDryRun, NoLaunch: applyNoLaunch}

	var summary *app.RunSummary
	if applyTUI {
		_, err = tui.RunProgress(cmd.Context(), tui.ProgressOptions{
			Title:  "Provisioning " + setup.Manifest().App.Name,
			Output: cmd.OutOrStdout(),
		}, func(ctx context.Context, observer execution.Observer) error {
			opts.Observers = append(opts.Observers, observer)
			var runErr error
			summary, runErr = setup.Apply(ctx, opts)
			return runErr
		})
	} else {
		summary, err = setup.Apply(cmd.Context(), opts)
	}

	if summary != nil {
		if len(summary.Result.Results) > 0 {
			setup.PrintResults(summary.Result)
		}
		if summary.Report != nil {
			setup.PrintReport(summary.Report)
		}
		setup.PrintLaunch(summary.Launch)
	}
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	if applyDryRun {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\n[Dry run - no changes made]")
	}
	return nil
}
