package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/planweave/planweave/internal/errors"
)

func TestSaveAndLoad(t *testing.T) {
	d := newTestDecomposer()
	result, err := d.Decompose(Project{ID: "proj-1", Name: "Hub", PRD: webPRD})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	path := filepath.Join(t.TempDir(), PlanFileName)
	if err := Save(result, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ProjectID != result.ProjectID {
		t.Errorf("project id = %q, want %q", loaded.ProjectID, result.ProjectID)
	}
	if loaded.TaskCount() != result.TaskCount() {
		t.Errorf("task count = %d, want %d", loaded.TaskCount(), result.TaskCount())
	}
	if loaded.EstimatedDays != result.EstimatedDays {
		t.Errorf("estimated days = %d, want %d", loaded.EstimatedDays, result.EstimatedDays)
	}
	if len(loaded.DependencyGraph) != len(result.DependencyGraph) {
		t.Errorf("dependency graph size = %d, want %d",
			len(loaded.DependencyGraph), len(result.DependencyGraph))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), PlanFileName))
	if !errors.Is(err, errors.ErrPlanNotFound) {
		t.Errorf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), PlanFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrPlanInvalid) {
		t.Errorf("err = %v, want ErrPlanInvalid", err)
	}
}

func TestLoadEmptyEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), PlanFileName)
	if err := os.WriteFile(path, []byte(`{"version": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrPlanInvalid) {
		t.Errorf("err = %v, want ErrPlanInvalid", err)
	}
}

func TestLoadUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), PlanFileName)
	if err := os.WriteFile(path, []byte(`{"version": 99, "plan": {"project_id": "x"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrPlanInvalid) {
		t.Errorf("err = %v, want ErrPlanInvalid", err)
	}
}

func TestSaveNilResult(t *testing.T) {
	err := Save(nil, filepath.Join(t.TempDir(), PlanFileName))
	if !errors.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}
