package checker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Snorps/better-medical-alerts/internal/config"
	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/logger"
	"github.com/Snorps/better-medical-alerts/internal/service/common"
	"github.com/Snorps/better-medical-alerts/internal/service/host"
)

// Options controls the checker polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress provides an optional gRPC server address override.
	ServerAddress string
	// HostProcess names the game process; the checker exits once it is gone.
	HostProcess string
	// PollInterval defines the interval between report checks.
	PollInterval time.Duration
	// Detector overrides the process detector used for HostProcess.
	Detector ProcessDetector
}

// DefaultPollInterval defines the polling interval for report checks.
const DefaultPollInterval = 5 * time.Second

// ProcessDetector reports whether a named process is running.
type ProcessDetector interface {
	Running(name string) (bool, error)
}

// reportSource fetches the latest report.
type reportSource interface {
	GetReport(ctx context.Context) (*alert.Report, error)
}

// errHostExited indicates that the watched host process is gone.
var errHostExited = errors.New("host process exited")

// Run polls the alert server and logs every new report until the context is
// canceled or the host process exits.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "medalert-checker")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	// Command line argument overrides config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	detector := opts.Detector
	if detector == nil {
		detector = host.NewDetector()
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Polling medical alerts",
		"server_address", serverAddress,
		"interval", interval.String(),
		"host_process", opts.HostProcess,
	)

	p := &poller{
		source:      client,
		detector:    detector,
		hostProcess: opts.HostProcess,
	}

	return p.run(ctx, interval)
}

// poller holds the state of one polling loop.
type poller struct {
	// source provides the reports.
	source reportSource
	// detector checks the host process.
	detector ProcessDetector
	// hostProcess is the watched process name, empty to disable the check.
	hostProcess string

	// lastSeen is the evaluation time of the last logged report.
	lastSeen time.Time
	// logged counts the reports written to the log.
	logged int
}

// run polls until the context is canceled or the host process exits.
func (p *poller) run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case <-ticker.C:
			if err := p.tick(ctx); err != nil {
				if errors.Is(err, errHostExited) {
					logger.InfoKV(ctx, "Host process exited, stopping", "host_process", p.hostProcess)
					return nil
				}

				logger.ErrorKV(ctx, "Check report failed", "error", err)
			}
		}
	}
}

// tick performs one host check and one report check.
func (p *poller) tick(ctx context.Context) error {
	if p.hostProcess != "" {
		running, err := p.detector.Running(p.hostProcess)

		switch {
		case err != nil:
			logger.WarnKV(ctx, "Host process check failed", "error", err)
		case !running:
			return errHostExited
		}
	}

	report, err := p.source.GetReport(ctx)

	switch {
	case errors.Is(err, alert.ErrNoReport):
		logger.DebugKV(ctx, "No snapshot evaluated yet")
		return nil
	case err != nil:
		return err
	}

	if !report.EvaluatedAt.After(p.lastSeen) {
		return nil
	}

	p.lastSeen = report.EvaluatedAt
	p.logged++

	logReport(ctx, report)

	return nil
}

// logReport writes one entry per firing alert.
func logReport(ctx context.Context, report *alert.Report) {
	firing := report.Firing()
	if len(firing) == 0 {
		logger.InfoKV(ctx, "No medical alerts", "tick", report.Tick)
		return
	}

	for _, res := range firing {
		logger.WarnKV(ctx, res.Label,
			"tick", report.Tick,
			"category", res.Category.String(),
			"priority", string(res.Priority),
			"members", len(res.Members),
			"off_core", res.OffCore,
		)

		logger.Infof(ctx, "%s", strings.TrimRight(res.Explanation, "\n"))
	}
}
