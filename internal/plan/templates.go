package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/planweave/planweave/internal/errors"
)

// TaskTemplate is the hand-authored shape a generated task starts from.
//
// DependsOn names earlier templates by title; templates must be declared
// dependency-before-dependent. A dependency naming a template that has not
// been seen yet resolves to nothing and is reported as a warning.
type TaskTemplate struct {
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description" yaml:"description"`
	Type           TaskType `json:"type" yaml:"type"`
	Priority       Priority `json:"priority" yaml:"priority"`
	EstimatedHours float64  `json:"estimated_hours" yaml:"estimated_hours"`
	Skills         []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	DependsOn      []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// TemplateLibrary maps each project type to its ordered template set.
type TemplateLibrary map[ProjectType][]TaskTemplate

// TemplatesFor returns the template set for a project type, falling back
// to the web-app set for unknown types.
func (l TemplateLibrary) TemplatesFor(projectType ProjectType) []TaskTemplate {
	if templates, ok := l[projectType]; ok {
		return templates
	}
	return l[ProjectWebApp]
}

// LoadTemplateFile reads a YAML template library and merges it over the
// built-in sets: project types present in the file replace the built-in
// set wholesale, absent types keep the defaults.
//
// File shape:
//
//	web-app:
//	  - title: Requirements Analysis
//	    type: requirement
//	    priority: high
//	    estimated_hours: 8
//	  - title: System Design
//	    type: design
//	    depends_on: [Requirements Analysis]
func LoadTemplateFile(path string) (TemplateLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read template file %s", path)
	}

	var overrides map[ProjectType][]TaskTemplate
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, errors.Wrap(err, "failed to parse template file")
	}

	library := BuiltinTemplates()
	for projectType, templates := range overrides {
		for i, tmpl := range templates {
			if tmpl.Title == "" {
				return nil, errors.NewValidationError(
					fmt.Sprintf("template %d for %s has no title", i, projectType)).WithField("title")
			}
			if tmpl.Type != "" && !tmpl.Type.IsValid() {
				return nil, errors.NewValidationError(
					fmt.Sprintf("template %q has unknown type %q", tmpl.Title, tmpl.Type)).WithField("type")
			}
		}
		library[projectType] = templates
	}
	return library, nil
}

// BuiltinTemplates returns the default template library. The returned map
// is freshly allocated so callers may mutate their copy.
func BuiltinTemplates() TemplateLibrary {
	return TemplateLibrary{
		ProjectWebApp:     webAppTemplates(),
		ProjectMobileApp:  mobileAppTemplates(),
		ProjectAPIService: apiServiceTemplates(),
	}
}

func webAppTemplates() []TaskTemplate {
	return []TaskTemplate{
		{
			Title:          "Requirements Analysis",
			Description:    "Review and finalize the extracted requirements, resolve ambiguities, and confirm scope with stakeholders.",
			Type:           TaskRequirement,
			Priority:       PriorityHigh,
			EstimatedHours: 8,
			Skills:         []string{"analysis"},
		},
		{
			Title:          "System Architecture Design",
			Description:    "Design the overall system architecture: components, data flow, and API boundaries.",
			Type:           TaskDesign,
			Priority:       PriorityHigh,
			EstimatedHours: 16,
			Skills:         []string{"architecture"},
			DependsOn:      []string{"Requirements Analysis"},
		},
		{
			Title:          "Database Schema Design",
			Description:    "Model the database schema and migrations for all persisted entities.",
			Type:           TaskDesign,
			Priority:       PriorityHigh,
			EstimatedHours: 12,
			Skills:         []string{"database", "sql"},
			DependsOn:      []string{"Requirements Analysis"},
		},
		{
			Title:          "UI/UX Design",
			Description:    "Produce wireframes and visual design for the primary ui screens and flows.",
			Type:           TaskDesign,
			Priority:       PriorityMedium,
			EstimatedHours: 20,
			Skills:         []string{"design", "ux"},
			DependsOn:      []string{"Requirements Analysis"},
		},
		{
			Title:          "Backend API Development",
			Description:    "Implement the backend api endpoints, business logic, and database access layer.",
			Type:           TaskImplementation,
			Priority:       PriorityHigh,
			EstimatedHours: 40,
			Skills:         []string{"backend", "api"},
			DependsOn:      []string{"System Architecture Design", "Database Schema Design"},
		},
		{
			Title:          "Frontend Development",
			Description:    "Build the web ui components, pages, and state management against the backend api.",
			Type:           TaskImplementation,
			Priority:       PriorityHigh,
			EstimatedHours: 40,
			Skills:         []string{"frontend", "javascript"},
			DependsOn:      []string{"UI/UX Design", "Backend API Development"},
		},
		{
			Title:          "Authentication and Authorization",
			Description:    "Implement user auth: registration, login, session handling, and role-based access control.",
			Type:           TaskImplementation,
			Priority:       PriorityCritical,
			EstimatedHours: 24,
			Skills:         []string{"backend", "security"},
			DependsOn:      []string{"Backend API Development"},
		},
		{
			Title:          "Integration Testing",
			Description:    "Write end-to-end test coverage across frontend, api, and database layers.",
			Type:           TaskTest,
			Priority:       PriorityHigh,
			EstimatedHours: 24,
			Skills:         []string{"testing"},
			DependsOn:      []string{"Frontend Development", "Authentication and Authorization"},
		},
		{
			Title:          "Deployment Pipeline",
			Description:    "Set up the build, deploy, and rollback pipeline plus hosting environment.",
			Type:           TaskDeployment,
			Priority:       PriorityMedium,
			EstimatedHours: 16,
			Skills:         []string{"devops"},
			DependsOn:      []string{"Integration Testing"},
		},
		{
			Title:          "Launch Review",
			Description:    "Final review of the release: verify acceptance criteria, sign off, and deploy to production.",
			Type:           TaskReview,
			Priority:       PriorityMedium,
			EstimatedHours: 8,
			DependsOn:      []string{"Deployment Pipeline"},
		},
	}
}

func mobileAppTemplates() []TaskTemplate {
	return []TaskTemplate{
		{
			Title:          "Requirements Analysis",
			Description:    "Review and finalize the extracted requirements, including platform targets and offline behavior.",
			Type:           TaskRequirement,
			Priority:       PriorityHigh,
			EstimatedHours: 8,
			Skills:         []string{"analysis"},
		},
		{
			Title:          "Mobile App Architecture",
			Description:    "Design the app architecture: navigation, state management, local storage, and api client layers.",
			Type:           TaskDesign,
			Priority:       PriorityHigh,
			EstimatedHours: 16,
			Skills:         []string{"mobile", "architecture"},
			DependsOn:      []string{"Requirements Analysis"},
		},
		{
			Title:          "Mobile UI Design",
			Description:    "Produce platform-appropriate ui designs for all screens, covering both phone and tablet layouts.",
			Type:           TaskDesign,
			Priority:       PriorityHigh,
			EstimatedHours: 20,
			Skills:         []string{"design", "ux"},
			DependsOn:      []string{"Requirements Analysis"},
		},
		{
			Title:          "Backend API Development",
			Description:    "Implement the backend api and database layer serving the mobile clients.",
			Type:           TaskImplementation,
			Priority:       PriorityHigh,
			EstimatedHours: 32,
			Skills:         []string{"backend", "api"},
			DependsOn:      []string{"Mobile App Architecture"},
		},
		{
			Title:          "Mobile App Implementation",
			Description:    "Build the app screens, navigation, and api integration for the target platforms.",
			Type:           TaskImplementation,
			Priority:       PriorityHigh,
			EstimatedHours: 48,
			Skills:         []string{"mobile"},
			DependsOn:      []string{"Mobile UI Design", "Backend API Development"},
		},
		{
			Title:          "Push Notification Setup",
			Description:    "Integrate push notification delivery and device token registration.",
			Type:           TaskImplementation,
			Priority:       PriorityMedium,
			EstimatedHours: 12,
			Skills:         []string{"mobile", "backend"},
			DependsOn:      []string{"Mobile App Implementation"},
		},
		{
			Title:          "Device Testing",
			Description:    "Test across representative devices and OS versions; cover offline and low-connectivity paths.",
			Type:           TaskTest,
			Priority:       PriorityHigh,
			EstimatedHours: 24,
			Skills:         []string{"testing", "mobile"},
			DependsOn:      []string{"Mobile App Implementation"},
		},
		{
			Title:          "App Store Submission",
			Description:    "Prepare store listings, screenshots, and review metadata; submit and shepherd the release through review.",
			Type:           TaskDeployment,
			Priority:       PriorityMedium,
			EstimatedHours: 12,
			Skills:         []string{"mobile"},
			DependsOn:      []string{"Device Testing"},
		},
		{
			Title:          "Launch Review",
			Description:    "Final release review: verify acceptance criteria and monitor the rollout.",
			Type:           TaskReview,
			Priority:       PriorityMedium,
			EstimatedHours: 8,
			DependsOn:      []string{"App Store Submission"},
		},
	}
}

func apiServiceTemplates() []TaskTemplate {
	return []TaskTemplate{
		{
			Title:          "Requirements Analysis",
			Description:    "Review and finalize the extracted requirements, including consumers, SLAs, and data contracts.",
			Type:           TaskRequirement,
			Priority:       PriorityHigh,
			EstimatedHours: 8,
			Skills:         []string{"analysis"},
		},
		{
			Title:          "API Contract Design",
			Description:    "Design the api surface: resources, endpoints, request/response schemas, and versioning strategy.",
			Type:           TaskDesign,
			Priority:       PriorityHigh,
			EstimatedHours: 12,
			Skills:         []string{"api", "architecture"},
			DependsOn:      []string{"Requirements Analysis"},
		},
		{
			Title:          "Database Schema Design",
			Description:    "Model the database schema, indexes, and migrations for the service's data.",
			Type:           TaskDesign,
			Priority:       PriorityHigh,
			EstimatedHours: 12,
			Skills:         []string{"database", "sql"},
			DependsOn:      []string{"Requirements Analysis"},
		},
		{
			Title:          "Service Implementation",
			Description:    "Implement the api endpoints, business logic, and persistence layer.",
			Type:           TaskImplementation,
			Priority:       PriorityHigh,
			EstimatedHours: 40,
			Skills:         []string{"backend", "api"},
			DependsOn:      []string{"API Contract Design", "Database Schema Design"},
		},
		{
			Title:          "Authentication and Rate Limiting",
			Description:    "Implement auth for api consumers plus per-client rate limiting and quotas.",
			Type:           TaskImplementation,
			Priority:       PriorityCritical,
			EstimatedHours: 16,
			Skills:         []string{"backend", "security"},
			DependsOn:      []string{"Service Implementation"},
		},
		{
			Title:          "API Test Suite",
			Description:    "Write contract and integration test coverage for every endpoint, including failure paths.",
			Type:           TaskTest,
			Priority:       PriorityHigh,
			EstimatedHours: 20,
			Skills:         []string{"testing"},
			DependsOn:      []string{"Service Implementation"},
		},
		{
			Title:          "Load Testing",
			Description:    "Benchmark the service under expected and peak load; tune database queries and caching.",
			Type:           TaskTest,
			Priority:       PriorityMedium,
			EstimatedHours: 12,
			Skills:         []string{"testing", "performance"},
			DependsOn:      []string{"API Test Suite"},
		},
		{
			Title:          "Deployment Pipeline",
			Description:    "Set up the deploy pipeline, observability, and rollback procedure for the service.",
			Type:           TaskDeployment,
			Priority:       PriorityMedium,
			EstimatedHours: 16,
			Skills:         []string{"devops"},
			DependsOn:      []string{"Load Testing"},
		},
		{
			Title:          "Launch Review",
			Description:    "Final release review: verify acceptance criteria and confirm monitoring coverage.",
			Type:           TaskReview,
			Priority:       PriorityMedium,
			EstimatedHours: 8,
			DependsOn:      []string{"Deployment Pipeline"},
		},
	}
}
