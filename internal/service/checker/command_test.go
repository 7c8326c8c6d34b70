package checker

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/domain/health"
)

var errTestSource = errors.New("test source error")

// fakeSource returns a fixed report or error and counts calls.
type fakeSource struct {
	report *alert.Report
	err    error
	calls  int
}

// GetReport returns the configured report.
func (f *fakeSource) GetReport(context.Context) (*alert.Report, error) {
	f.calls++

	return f.report, f.err
}

// fakeDetector reports the host as running until alive is false.
type fakeDetector struct {
	alive bool
	err   error
}

// Running implements ProcessDetector.
func (f *fakeDetector) Running(string) (bool, error) {
	return f.alive, f.err
}

func firingReport(at time.Time) *alert.Report {
	bleeding := alert.NewResult(alert.Bleeding, []*health.Actor{{ID: "Human1", Name: "Ada"}})
	bleeding.Label = "Bleeding out"
	bleeding.Explanation = "These colonists are bleeding out:\n\n  - Ada\n"

	return &alert.Report{
		Tick:        100,
		EvaluatedAt: at,
		Results:     []*alert.Result{bleeding},
	}
}

// TestPoller_LogsEachReportOnce ensures an unchanged report is not logged twice.
func TestPoller_LogsEachReportOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := &fakeSource{report: firingReport(time.Unix(100, 0))}
	p := &poller{source: source}

	require.NoError(t, p.tick(ctx))
	require.NoError(t, p.tick(ctx))
	require.Equal(t, 1, p.logged)
	require.Equal(t, 2, source.calls)

	source.report = firingReport(time.Unix(200, 0))

	require.NoError(t, p.tick(ctx))
	require.Equal(t, 2, p.logged)
}

// TestPoller_NoReportYet treats a missing report as a quiet tick.
func TestPoller_NoReportYet(t *testing.T) {
	t.Parallel()

	p := &poller{source: &fakeSource{err: alert.ErrNoReport}}

	require.NoError(t, p.tick(context.Background()))
	require.Zero(t, p.logged)
}

// TestPoller_SourceError propagates transport failures.
func TestPoller_SourceError(t *testing.T) {
	t.Parallel()

	p := &poller{source: &fakeSource{err: errTestSource}}

	require.ErrorIs(t, p.tick(context.Background()), errTestSource)
}

// TestPoller_HostProcess stops once the host is gone and tolerates detector errors.
func TestPoller_HostProcess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := &fakeSource{err: alert.ErrNoReport}
	detector := &fakeDetector{alive: true}
	p := &poller{source: source, detector: detector, hostProcess: "RimWorldWin64"}

	require.NoError(t, p.tick(ctx))

	detector.err = errTestSource
	require.NoError(t, p.tick(ctx))

	detector.err = nil
	detector.alive = false
	require.ErrorIs(t, p.tick(ctx), errHostExited)
	require.Equal(t, 2, source.calls)
}

// TestPoller_RunExitsWithHost drives the loop on a fake clock until the host exits.
func TestPoller_RunExitsWithHost(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		source := &fakeSource{report: firingReport(time.Unix(100, 0))}
		detector := &fakeDetector{alive: true}
		p := &poller{source: source, detector: detector, hostProcess: "RimWorldWin64"}

		done := make(chan error, 1)

		go func() {
			done <- p.run(context.Background(), time.Second)
		}()

		time.Sleep(3*time.Second + time.Millisecond)
		synctest.Wait()
		require.Equal(t, 3, source.calls)

		detector.alive = false

		require.NoError(t, <-done)
		require.Equal(t, 1, p.logged)
	})
}

// TestPoller_RunStopsOnCancel returns nil when the context is canceled.
func TestPoller_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		p := &poller{source: &fakeSource{err: alert.ErrNoReport}}

		done := make(chan error, 1)

		go func() {
			done <- p.run(ctx, time.Second)
		}()

		time.Sleep(2500 * time.Millisecond)
		cancel()

		require.NoError(t, <-done)
	})
}
