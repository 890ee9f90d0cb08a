package plan

import "math"

// EstimatorConfig carries the tunable constants behind duration
// estimation. Zero or negative fields fall back to the defaults.
type EstimatorConfig struct {
	// HoursPerDay converts task hour estimates into working days.
	HoursPerDay float64

	// BufferFactor inflates the critical-path total to absorb overruns.
	BufferFactor float64

	// DefaultTaskHours substitutes for tasks with no hour estimate.
	DefaultTaskHours float64
}

// DefaultEstimatorConfig returns the standard estimation constants:
// 8-hour days, a 20% buffer, and 16 hours for unestimated tasks.
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		HoursPerDay:      8,
		BufferFactor:     1.2,
		DefaultTaskHours: 16,
	}
}

func (c EstimatorConfig) normalized() EstimatorConfig {
	def := DefaultEstimatorConfig()
	if c.HoursPerDay <= 0 {
		c.HoursPerDay = def.HoursPerDay
	}
	if c.BufferFactor <= 0 {
		c.BufferFactor = def.BufferFactor
	}
	if c.DefaultTaskHours <= 0 {
		c.DefaultTaskHours = def.DefaultTaskHours
	}
	return c
}

// taskDays converts one task's hour estimate into days.
func (c EstimatorConfig) taskDays(task *Task) float64 {
	hours := task.Metadata.EstimatedHours
	if hours <= 0 {
		hours = c.DefaultTaskHours
	}
	return hours / c.HoursPerDay
}

// EstimateDuration computes the buffered critical-path duration of the
// task graph in whole days.
//
// The critical path is the longest dependency chain measured in per-task
// days. Dependency chains are walked with memoization; a chain that loops
// back on itself contributes zero, so a malformed graph still produces a
// finite estimate. The buffered total is rounded up, and any non-empty
// task set estimates at least one day.
func EstimateDuration(tasks []Task, cfg EstimatorConfig) int {
	if len(tasks) == 0 {
		return 0
	}
	cfg = cfg.normalized()

	byID := make(map[string]*Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	memo := make(map[string]float64, len(tasks))
	onPath := make(map[string]bool, len(tasks))

	// chainDays returns the task's days plus the longest chain among its
	// dependencies.
	var chainDays func(id string) float64
	chainDays = func(id string) float64 {
		task, ok := byID[id]
		if !ok || onPath[id] {
			return 0
		}
		if days, ok := memo[id]; ok {
			return days
		}

		onPath[id] = true
		longest := 0.0
		for _, dep := range task.DependsOn {
			if days := chainDays(dep); days > longest {
				longest = days
			}
		}
		onPath[id] = false

		days := cfg.taskDays(task) + longest
		memo[id] = days
		return days
	}

	critical := 0.0
	for i := range tasks {
		if days := chainDays(tasks[i].ID); days > critical {
			critical = days
		}
	}

	estimated := int(math.Ceil(critical * cfg.BufferFactor))
	if estimated < 1 {
		estimated = 1
	}
	return estimated
}
