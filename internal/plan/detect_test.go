package plan

import "testing"

func TestDetectProjectType(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		content string
		want    ProjectType
	}{
		{
			name:    "explicit mobile keyword",
			project: Project{Name: "Fitness Tracker"},
			content: "A mobile app for tracking workouts",
			want:    ProjectMobileApp,
		},
		{
			name:    "ios in name",
			project: Project{Name: "iOS Companion"},
			want:    ProjectMobileApp,
		},
		{
			name:    "android signal",
			project: Project{Description: "Ships on Android tablets"},
			want:    ProjectMobileApp,
		},
		{
			name:    "api service",
			project: Project{Name: "Billing"},
			content: "A REST API for invoicing",
			want:    ProjectAPIService,
		},
		{
			name:    "microservice keyword",
			project: Project{Description: "An internal microservice"},
			want:    ProjectAPIService,
		},
		{
			name:    "web dashboard",
			project: Project{Name: "Analytics"},
			content: "A web dashboard for metrics",
			want:    ProjectWebApp,
		},
		{
			name:    "mobile wins over api and web",
			project: Project{Name: "Everything"},
			content: "A mobile app with a web dashboard and a public api",
			want:    ProjectMobileApp,
		},
		{
			name:    "no signal defaults to web",
			project: Project{Name: "Mystery"},
			content: "Some internal tooling",
			want:    ProjectWebApp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := []Section{{Type: SectionOverview, Content: tt.content}}
			if got := DetectProjectType(tt.project, sections); got != tt.want {
				t.Errorf("DetectProjectType = %s, want %s", got, tt.want)
			}
		})
	}
}
