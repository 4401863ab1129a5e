package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/axsetup/internal/adapters/logging"
	"github.com/felixgeelhaar/axsetup/internal/app"
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/provider/pathutil"
)

// Exit codes.
const (
	exitOK     = 0
	exitFatal  = 1
	exitConfig = 2
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logFormat string
)

// errInvalidFlag marks a flag value that cannot be used.
var errInvalidFlag = errors.New("invalid flag")

// newDeps builds the host adapters. Tests replace it with mocks.
var newDeps = app.RealDeps

var rootCmd = &cobra.Command{
	Use:   "axsetup",
	Short: "Provision the Ax-Shell desktop shell",
	Long: `axsetup installs Ax-Shell and everything it needs: distribution
packages, source-built tools, fonts, services and shell configuration.

Every step checks the current state first, so running it again only does
what is still missing. Failed steps are reported and the run continues.
Without a subcommand axsetup runs 'apply'.`,
	RunE:          runApply,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// run executes the CLI with args and reports errors to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printErrorTo(stderr, err)
	}
	return exitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "manifest file, .yaml or .toml (default: built-in Ax-Shell manifest)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	addApplyFlags(rootCmd)

	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text\tHuman-readable lines", "json\tOne JSON object per line"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(applyCmd, planCmd, verifyCmd, manifestCmd, versionCmd)
}

// exitCode maps an error to the process exit code. Configuration problems
// exit with 2, everything else that stopped the run with 1.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var (
		userErr *manifest.UserError
		list    *manifest.ErrorList
		stepErr *compiler.StepError
	)
	if errors.As(err, &userErr) || errors.As(err, &list) || errors.As(err, &stepErr) || errors.Is(err, errInvalidFlag) {
		return exitConfig
	}
	return exitFatal
}

// manifestSearch lists where a manifest is looked for when --config is unset.
var manifestSearch = pathutil.ConfigSearchOpts{
	EnvVar:      "AXSETUP_CONFIG",
	XDGSubpaths: []string{"axsetup/axsetup.yaml", "axsetup/axsetup.toml"},
	LegacyPaths: []string{"~/.axsetup.yaml"},
}

// loadManifest reads --config, then a discovered manifest, and falls back
// to the built-in manifest.
func loadManifest() (*manifest.Manifest, error) {
	path := cfgFile
	if path == "" {
		path = pathutil.NewConfigFinder().FindConfig(manifestSearch)
	}
	if path == "" {
		return manifest.Default()
	}
	return manifest.Load(path)
}

// newLogger creates the zap-backed logger selected by the global flags.
func newLogger(w io.Writer, quiet bool) (*logging.ZapLogger, error) {
	var jsonFormat bool
	switch logFormat {
	case "text":
	case "json":
		jsonFormat = true
	default:
		return nil, fmt.Errorf("%w: --log-format must be text or json, got %q", errInvalidFlag, logFormat)
	}

	level := ports.LevelInfo
	switch {
	case verbose:
		level = ports.LevelDebug
	case quiet:
		level = ports.LevelError
	}
	return logging.NewZapLogger(
		logging.WithOutput(w),
		logging.WithLevel(level),
		logging.WithJSONFormat(jsonFormat),
	), nil
}

// newSetup loads the manifest and wires the application for a command.
func newSetup(cmd *cobra.Command, quiet bool) (*app.Setup, *logging.ZapLogger, error) {
	logger, err := newLogger(cmd.ErrOrStderr(), quiet)
	if err != nil {
		return nil, nil, err
	}
	m, err := loadManifest()
	if err != nil {
		return nil, nil, err
	}
	return app.New(m, cmd.OutOrStdout(), newDeps(logger)), logger, nil
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *manifest.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Error()
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	var stepErr *compiler.StepError
	if errors.As(err, &stepErr) && verbose {
		return stepErr.Format()
	}
	return err.Error()
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
