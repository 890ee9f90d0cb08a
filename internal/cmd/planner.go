package cmd

import (
	"fmt"

	"github.com/planweave/planweave/internal/config"
	"github.com/planweave/planweave/internal/errors"
	"github.com/planweave/planweave/internal/logging"
	"github.com/planweave/planweave/internal/plan"
)

// loadPlan reads a saved plan, turning the not-found case into a hint
// about how to create one.
func loadPlan(path string) (*plan.Result, error) {
	result, err := plan.Load(path)
	if errors.IsNotFound(err) {
		return nil, fmt.Errorf("no plan found at %s: run \"planweave decompose\" first", path)
	}
	return result, err
}

// buildDecomposer assembles a Decomposer from the loaded configuration.
// The returned logger must be closed by the caller.
func buildDecomposer() (*plan.Decomposer, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	templates := plan.BuiltinTemplates()
	if cfg.Templates.File != "" {
		templates, err = plan.LoadTemplateFile(cfg.Templates.File)
		if err != nil {
			logger.Close()
			return nil, nil, fmt.Errorf("failed to load task templates: %w", err)
		}
	}

	d := plan.NewDecomposerWithConfig(plan.Config{
		Estimator: plan.EstimatorConfig{
			HoursPerDay:      cfg.Planner.HoursPerDay,
			BufferFactor:     cfg.Planner.BufferFactor,
			DefaultTaskHours: cfg.Planner.DefaultTaskHours,
		},
		MilestonePacingDivisor: cfg.Planner.MilestonePacingDivisor,
		Templates:              templates,
		Logger:                 logger,
	})
	return d, logger, nil
}
