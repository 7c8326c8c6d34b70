package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Snorps/better-medical-alerts/internal/config"
	"github.com/Snorps/better-medical-alerts/internal/service/server"
	"github.com/Snorps/better-medical-alerts/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// snapshotFile overrides the watched roster snapshot.
	snapshotFile string

	// rootCmd represents the base command for running the gRPC server.
	rootCmd = &cobra.Command{
		Use:   "medalert-server [listen-address]",
		Short: "Run the medical alert gRPC server.",
		Long: `Starts the gRPC server that evaluates colony rosters for medical alerts.

The server watches the snapshot file written by the game and re-evaluates it on
every change; pollers read the latest report with GetReport. Any roster can be
evaluated on demand with Evaluate.

Only the port from server_addr is used for listening (e.g., :8080). A listen
address argument overrides it (e.g., :9090, 0.0.0.0:8080).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				SnapshotFile:  snapshotFile,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the medalert-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&snapshotFile, "snapshot-file", "s", "", "snapshot JSON to watch (overrides snapshot_file)")
}
