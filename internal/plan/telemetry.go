package plan

import "time"

// PatternSummary is a compact snapshot of a finished decomposition,
// suitable for aggregation across many runs.
type PatternSummary struct {
	ProjectName            string           `json:"project_name"`
	ProjectType            ProjectType      `json:"project_type"`
	TaskCount              int              `json:"task_count"`
	TaskTypeCounts         map[TaskType]int `json:"task_type_counts"`
	AverageDependencyCount float64          `json:"average_dependency_count"`
	Timestamp              time.Time        `json:"timestamp"`
}

// PatternRecorder receives a summary after each successful decomposition.
// Implementations must tolerate concurrent calls.
type PatternRecorder interface {
	RecordPattern(summary PatternSummary)
}

// RecorderFunc adapts a function to the PatternRecorder interface.
type RecorderFunc func(summary PatternSummary)

// RecordPattern calls the wrapped function.
func (f RecorderFunc) RecordPattern(summary PatternSummary) {
	f(summary)
}

// summarize builds a PatternSummary for a result.
func summarize(projectName string, result *Result) PatternSummary {
	totalDeps := 0
	for i := range result.Tasks {
		totalDeps += len(result.Tasks[i].DependsOn)
	}
	avg := 0.0
	if len(result.Tasks) > 0 {
		avg = float64(totalDeps) / float64(len(result.Tasks))
	}
	return PatternSummary{
		ProjectName:            projectName,
		ProjectType:            result.ProjectType,
		TaskCount:              result.TaskCount(),
		TaskTypeCounts:         result.TaskTypeCounts(),
		AverageDependencyCount: avg,
		Timestamp:              result.CreatedAt,
	}
}

// record delivers a summary to the recorder, swallowing panics so a
// misbehaving recorder never aborts a run.
func record(recorder PatternRecorder, summary PatternSummary) {
	if recorder == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	recorder.RecordPattern(summary)
}
