package plan

import (
	"time"

	"github.com/planweave/planweave/internal/errors"
	"github.com/planweave/planweave/internal/logging"
)

// Config tunes a Decomposer. The zero value is usable; unset fields fall
// back to the defaults from DefaultConfig.
type Config struct {
	// Estimator carries the duration-estimation constants.
	Estimator EstimatorConfig

	// MilestonePacingDivisor controls how tightly milestone due dates are
	// spaced. Larger values pack phases closer together.
	MilestonePacingDivisor int

	// Templates is the task template library. Nil means the built-ins.
	Templates TemplateLibrary

	// Logger receives structured progress logs. Nil discards them.
	Logger *logging.Logger

	// Recorder, if set, receives a PatternSummary after each successful
	// decomposition. Recorder panics are swallowed.
	Recorder PatternRecorder

	// Now supplies timestamps, overridable for tests. Nil means time.Now.
	Now func() time.Time
}

// DefaultConfig returns the standard decomposer configuration.
func DefaultConfig() Config {
	return Config{
		Estimator:              DefaultEstimatorConfig(),
		MilestonePacingDivisor: 6,
		Templates:              BuiltinTemplates(),
	}
}

// Decomposer turns a project's PRD into a full work-breakdown plan. It is
// stateless between calls and safe for concurrent use.
type Decomposer struct {
	cfg Config
	log *logging.Logger
}

// NewDecomposer creates a Decomposer with the default configuration.
func NewDecomposer() *Decomposer {
	return NewDecomposerWithConfig(DefaultConfig())
}

// NewDecomposerWithConfig creates a Decomposer with explicit configuration.
func NewDecomposerWithConfig(cfg Config) *Decomposer {
	if cfg.Templates == nil {
		cfg.Templates = BuiltinTemplates()
	}
	if cfg.MilestonePacingDivisor <= 0 {
		cfg.MilestonePacingDivisor = 6
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewDiscard()
	}
	return &Decomposer{cfg: cfg, log: log.WithComponent("decomposer")}
}

// Decompose runs the full pipeline over a project: segment the PRD,
// extract requirements, detect the project type, generate tasks, build the
// dependency graph and execution order, estimate duration, derive
// milestones, and identify risks.
//
// A project with an empty ID is rejected. An empty PRD is not an error;
// the description is decomposed instead, and a fully empty project still
// yields the template tasks for the default project type.
func (d *Decomposer) Decompose(project Project) (*Result, error) {
	if project.ID == "" {
		return nil, errors.NewValidationError("project id cannot be empty").WithField("id")
	}

	now := d.cfg.Now()
	log := d.log.WithProject(project.ID)
	source := project.SourceText()

	sections := SegmentPRD(source)
	requirements := ExtractRequirements(project.ID, sections, now)
	projectType := DetectProjectType(project, sections)
	log.Debug("analyzed PRD",
		"sections", len(sections),
		"requirements", len(requirements),
		"project_type", projectType.String())

	tasks, warnings := GenerateTasks(
		project.ID, projectType, d.cfg.Templates.TemplatesFor(projectType), requirements, now)

	result := &Result{
		ProjectID:       project.ID,
		ProjectType:     projectType,
		Requirements:    requirements,
		Tasks:           tasks,
		Milestones:      GenerateMilestones(tasks, now, d.cfg.MilestonePacingDivisor),
		DependencyGraph: BuildDependencyMap(tasks),
		ExecutionOrder:  ComputeExecutionOrder(tasks),
		EstimatedDays:   EstimateDuration(tasks, d.cfg.Estimator),
		RiskFactors:     IdentifyRisks(source+"\n"+project.Description, tasks),
		Warnings:        warnings,
		CreatedAt:       now,
	}

	log.Info("decomposition complete",
		"tasks", result.TaskCount(),
		"milestones", len(result.Milestones),
		"estimated_days", result.EstimatedDays,
		"risks", len(result.RiskFactors),
		"warnings", len(result.Warnings))

	record(d.cfg.Recorder, summarize(project.Name, result))
	return result, nil
}
