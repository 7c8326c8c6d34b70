package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Snorps/better-medical-alerts/internal/config"
	"github.com/Snorps/better-medical-alerts/internal/service/checker"
	"github.com/Snorps/better-medical-alerts/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// hostProcess names the game process to follow.
	hostProcess string

	// rootCmd represents the base command for polling medical alerts.
	rootCmd = &cobra.Command{
		Use:   "medalert-checker [server-address]",
		Short: "Poll the alert server and log firing medical alerts.",
		Long: `Background service that polls the alert server every 5 seconds and logs
each new report: one line per firing alert with its explanation.

With --host-process the checker exits once the named game process is no longer
running. Server address can be provided as argument or loaded from the
configuration file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var serverAddress string
			if len(args) > 0 {
				serverAddress = args[0]
			}

			checkerOptions := &checker.Options{
				ConfigPath:    configPath,
				ServerAddress: serverAddress,
				HostProcess:   hostProcess,
			}

			return checker.Run(ctx, checkerOptions)
		},
	}
)

// Execute runs the medalert-checker CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&hostProcess, "host-process", "", "exit once this process is gone (e.g. RimWorldWin64)")
}
