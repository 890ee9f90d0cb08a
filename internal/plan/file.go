package plan

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/planweave/planweave/internal/errors"
)

// PlanFileName is the default file a plan is persisted to, relative to the
// project directory.
const PlanFileName = ".planweave-plan.json"

// planFileVersion is bumped when the on-disk shape changes incompatibly.
const planFileVersion = 1

// planFile is the on-disk envelope around a Result.
type planFile struct {
	Version int     `json:"version"`
	Plan    *Result `json:"plan"`
}

// Save writes a result to path as indented JSON. The write goes through a
// temp file and rename so a crash never leaves a truncated plan behind.
func Save(result *Result, path string) error {
	if result == nil {
		return errors.NewValidationError("result cannot be nil").WithField("result")
	}

	data, err := json.MarshalIndent(planFile{Version: planFileVersion, Plan: result}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode plan")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".planweave-*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp plan file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to write plan")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to close plan file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to move plan into place")
	}
	return nil
}

// Load reads a persisted plan from path.
//
// A missing file returns ErrPlanNotFound; a file that parses but carries
// no plan, or an unsupported version, returns ErrPlanInvalid.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrPlanNotFound, "no plan at %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read plan at %s", path)
	}

	var file planFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.Join(errors.ErrPlanInvalid, err), "failed to parse plan")
	}
	if file.Plan == nil {
		return nil, errors.Wrap(errors.ErrPlanInvalid, "plan file has no plan")
	}
	if file.Version != planFileVersion {
		return nil, errors.Wrapf(errors.ErrPlanInvalid, "unsupported plan version %d", file.Version)
	}
	return file.Plan, nil
}
