package exporter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/wI2L/jsondiff"

	"github.com/mcncl/fixturegen/internal/errors"
)

// Drift compares the fixture on disk with what Export would write
type Drift struct {
	OutputPath string
	UpToDate   bool
	// Missing is set when there is no fixture yet.
	Missing bool
	// Patch turns the current fixture into the expected one. It is empty
	// when only formatting differs or when the current fixture is not JSON.
	Patch jsondiff.Patch
	// Reason summarizes why the fixture is stale.
	Reason string
}

// Lines renders the drift for display, one RFC 6902 operation per line
func (d Drift) Lines() []string {
	if d.UpToDate {
		return nil
	}
	lines := []string{d.Reason}
	for _, op := range d.Patch {
		lines = append(lines, "  "+op.String())
	}
	return lines
}

// Check renders the fixture and compares it with the one on disk without writing
func (e *Exporter) Check() (Drift, error) {
	_, expected, err := e.Render()
	if err != nil {
		return Drift{}, err
	}

	drift := Drift{OutputPath: e.OutputPath}
	current, err := os.ReadFile(e.OutputPath)
	switch {
	case os.IsNotExist(err):
		drift.Missing = true
		drift.Reason = fmt.Sprintf("%s does not exist", e.OutputPath)
	case err != nil:
		return Drift{}, errors.NewCheckError(
			fmt.Sprintf("failed to read fixture '%s'", e.OutputPath), err)
	case bytes.Equal(current, expected):
		drift.UpToDate = true
	default:
		patch, diffErr := jsondiff.CompareJSON(current, expected)
		switch {
		case diffErr != nil:
			drift.Reason = fmt.Sprintf("%s is not valid JSON", e.OutputPath)
		case len(patch) == 0:
			drift.Reason = fmt.Sprintf("%s has the same data but different formatting", e.OutputPath)
		default:
			drift.Patch = patch
			drift.Reason = fmt.Sprintf("%s differs from %s in %d place(s)", e.OutputPath, e.InputPath, len(patch))
		}
	}

	e.log.WithFields(logrus.Fields{
		"output":     e.OutputPath,
		"up_to_date": drift.UpToDate,
		"operations": len(drift.Patch),
	}).Debug("checked fixture")

	return drift, nil
}
