package host

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ProcessLister enumerates running processes.
type ProcessLister func() ([]ps.Process, error)

// Detector looks for a process by executable name.
type Detector struct {
	// list enumerates processes; ps.Processes unless overridden in tests.
	list ProcessLister
}

// NewDetector returns a detector backed by the operating system process table.
func NewDetector() *Detector {
	return &Detector{list: ps.Processes}
}

// Running reports whether a process with the given executable name exists.
// The comparison ignores case and an ".exe" suffix, so "RimWorldWin64"
// matches "RimWorldWin64.exe".
func (d *Detector) Running(name string) (bool, error) {
	want := normalize(name)
	if want == "" {
		return false, nil
	}

	processes, err := d.list()
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}

	for _, p := range processes {
		if normalize(p.Executable()) == want {
			return true, nil
		}
	}

	return false, nil
}

func normalize(name string) string {
	name = strings.ToLower(filepath.Base(strings.TrimSpace(name)))
	if name == "." {
		return ""
	}

	return strings.TrimSuffix(name, ".exe")
}
