package plan

import "testing"

func estTask(id string, hours float64, deps ...string) Task {
	return Task{
		ID:        id,
		Title:     id,
		Type:      TaskImplementation,
		Priority:  PriorityMedium,
		Status:    StatusPending,
		DependsOn: deps,
		Metadata:  TaskMetadata{EstimatedHours: hours},
	}
}

func TestEstimateDuration(t *testing.T) {
	cfg := DefaultEstimatorConfig()

	tests := []struct {
		name  string
		tasks []Task
		want  int
	}{
		{
			name:  "no tasks",
			tasks: nil,
			want:  0,
		},
		{
			name: "single short task still takes a day",
			// 2h = 0.25 days, buffered 0.3, rounds up to 1.
			tasks: []Task{estTask("a", 2)},
			want:  1,
		},
		{
			name: "unestimated task uses the default",
			// 16h default = 2 days, buffered 2.4, ceil 3.
			tasks: []Task{estTask("a", 0)},
			want:  3,
		},
		{
			name: "parallel tasks do not add up",
			// Critical path is the longest single task: 16h = 2 days,
			// buffered 2.4, ceil 3.
			tasks: []Task{estTask("a", 16), estTask("b", 8), estTask("c", 8)},
			want:  3,
		},
		{
			name: "chain adds along the path",
			// 8 + 16 + 8 = 32h = 4 days, buffered 4.8, ceil 5.
			tasks: []Task{
				estTask("a", 8),
				estTask("b", 16, "a"),
				estTask("c", 8, "b"),
			},
			want: 5,
		},
		{
			name: "diamond takes the longer branch",
			// a(8) -> c(24) -> d(8) = 40h = 5 days, buffered 6.
			tasks: []Task{
				estTask("a", 8),
				estTask("b", 8, "a"),
				estTask("c", 24, "a"),
				estTask("d", 8, "b", "c"),
			},
			want: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateDuration(tt.tasks, cfg); got != tt.want {
				t.Errorf("EstimateDuration = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimateDurationSurvivesCycle(t *testing.T) {
	tasks := []Task{
		estTask("a", 8, "b"),
		estTask("b", 8, "a"),
		estTask("c", 8),
	}
	got := EstimateDuration(tasks, DefaultEstimatorConfig())
	if got < 1 {
		t.Errorf("EstimateDuration = %d, want a finite positive estimate", got)
	}
}

func TestEstimateDurationZeroConfigFallsBack(t *testing.T) {
	got := EstimateDuration([]Task{estTask("a", 0)}, EstimatorConfig{})
	// Defaults apply: 16h / 8 = 2 days, buffered 2.4, ceil 3.
	if got != 3 {
		t.Errorf("EstimateDuration = %d, want 3", got)
	}
}

func TestEstimateDurationCustomConfig(t *testing.T) {
	cfg := EstimatorConfig{HoursPerDay: 4, BufferFactor: 1.0, DefaultTaskHours: 4}
	got := EstimateDuration([]Task{estTask("a", 8)}, cfg)
	if got != 2 {
		t.Errorf("EstimateDuration = %d, want 2", got)
	}
}
