package host

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

// fakeProcess implements ps.Process.
type fakeProcess struct {
	// executable is the process image name.
	executable string
}

func (f fakeProcess) Pid() int           { return 1 }
func (f fakeProcess) PPid() int          { return 0 }
func (f fakeProcess) Executable() string { return f.executable }

var errListFailed = errors.New("list failed")

// TestDetector_Running matches names regardless of case and extension.
func TestDetector_Running(t *testing.T) {
	t.Parallel()

	d := &Detector{list: func() ([]ps.Process, error) {
		return []ps.Process{fakeProcess{"init"}, fakeProcess{"RimWorldWin64.exe"}}, nil
	}}

	running, err := d.Running("rimworldwin64")
	require.NoError(t, err)
	require.True(t, running)

	running, err = d.Running("RimWorldLinux")
	require.NoError(t, err)
	require.False(t, running)

	running, err = d.Running("")
	require.NoError(t, err)
	require.False(t, running)
}

// TestDetector_ListError propagates enumeration failures.
func TestDetector_ListError(t *testing.T) {
	t.Parallel()

	d := &Detector{list: func() ([]ps.Process, error) { return nil, errListFailed }}

	_, err := d.Running("game")
	require.ErrorIs(t, err, errListFailed)
}

// TestDetector_FindsItself checks the real process table contains the test binary.
func TestDetector_FindsItself(t *testing.T) {
	t.Parallel()

	exe, err := os.Executable()
	require.NoError(t, err)

	running, err := NewDetector().Running(filepath.Base(exe))
	require.NoError(t, err)
	require.True(t, running)
}
