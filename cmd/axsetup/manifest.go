package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the effective manifest",
	Long: `Manifest prints the manifest axsetup would run, with defaults
applied. Without --config this is the built-in Ax-Shell manifest, which makes
a good starting point for a custom one:

  axsetup manifest > axsetup.yaml`,
	RunE: runManifest,
}

var manifestFormat string

func init() {
	manifestCmd.Flags().StringVarP(&manifestFormat, "format", "f", "yaml", "Output format (yaml, toml)")
}

func runManifest(cmd *cobra.Command, _ []string) error {
	format := manifest.Format(manifestFormat)
	if format != manifest.FormatYAML && format != manifest.FormatTOML {
		return fmt.Errorf("%w: --format must be yaml or toml, got %q", errInvalidFlag, manifestFormat)
	}

	m, err := loadManifest()
	if err != nil {
		return err
	}
	data, err := manifest.Marshal(m, format)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
