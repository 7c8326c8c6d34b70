package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Snorps/better-medical-alerts/internal/config"
	"github.com/Snorps/better-medical-alerts/internal/service/eval"
	"github.com/Snorps/better-medical-alerts/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// verbose enables per-actor debug traces.
	verbose bool

	// rootCmd represents the base command for a one-shot evaluation.
	rootCmd = &cobra.Command{
		Use:   "medalert-eval [snapshot-file]",
		Short: "Evaluate a roster snapshot and print its medical alerts.",
		Long: `Reads a roster snapshot, evaluates it locally and prints the label and
explanation of every firing alert. No server is needed.

The settings file is optional; without it the built-in thresholds are used.
The snapshot path defaults to snapshot_file from the settings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var snapshotFile string
			if len(args) > 0 {
				snapshotFile = args[0]
			}

			options := &eval.Options{
				ConfigPath:   configPath,
				SnapshotFile: snapshotFile,
				Verbose:      verbose,
				Output:       cmd.OutOrStdout(),
			}

			return eval.Run(cmd.Context(), options)
		},
	}
)

// Execute runs the medalert-eval CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-actor classification")
}
