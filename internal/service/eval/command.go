package eval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/Snorps/better-medical-alerts/internal/config"
	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/logger"
	repository "github.com/Snorps/better-medical-alerts/internal/repository/snapshot"
	"github.com/Snorps/better-medical-alerts/internal/service/common"
)

// Options controls a one-shot evaluation.
type Options struct {
	// ConfigPath specifies the settings YAML file. A missing file means defaults.
	ConfigPath string
	// SnapshotFile overrides the snapshot JSON path from the settings.
	SnapshotFile string
	// Verbose logs per-actor classification traces.
	Verbose bool
	// Output receives the rendered alerts; defaults to stdout.
	Output io.Writer
}

// Run loads the snapshot, evaluates it and prints every firing alert.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "medalert-eval")

	if opts.Verbose {
		ctx = logger.ToContext(ctx, logger.FromContext(ctx).WithOptions(logger.WithLevel(zap.DebugLevel)))
	}

	cfg, err := loadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}

	snapshotFile := cfg.SnapshotFile
	if opts.SnapshotFile != "" {
		snapshotFile = opts.SnapshotFile
	}

	evaluator, err := common.NewEvaluator(cfg)
	if err != nil {
		return fmt.Errorf("initialise evaluator: %w", err)
	}

	roster, err := repository.NewFileRepository(snapshotFile).Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", snapshotFile, err)
	}

	report := evaluator.Evaluate(ctx, roster)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return Print(out, report)
}

// Print renders the firing alerts of a report as plain text.
func Print(w io.Writer, report *alert.Report) error {
	firing := report.Firing()
	if len(firing) == 0 {
		_, err := fmt.Fprintf(w, "tick %d: no medical alerts\n", report.Tick)

		return err
	}

	for _, res := range firing {
		if _, err := fmt.Fprintf(w, "[%s] %s\n%s\n", res.Priority, res.Label, res.Explanation); err != nil {
			return err
		}
	}

	return nil
}

// loadSettings reads the settings file, falling back to defaults when it
// does not exist. The server address is optional here.
func loadSettings(path string) (*config.Config, error) {
	cfg, err := config.LoadLocal(path)

	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, fs.ErrNotExist):
		return config.Defaults(), nil
	default:
		return nil, fmt.Errorf("load settings: %w", err)
	}
}
