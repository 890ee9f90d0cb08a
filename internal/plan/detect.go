package plan

import "strings"

// projectTypeRule maps keyword signals to a project type. Rules are
// evaluated in order with case-insensitive substring matching; the first
// match wins, so the mobile check deliberately precedes api and web.
type projectTypeRule struct {
	keywords []string
	result   ProjectType
}

var projectTypeRules = []projectTypeRule{
	{[]string{"mobile", "ios", "android"}, ProjectMobileApp},
	{[]string{"api", "microservice", "backend only"}, ProjectAPIService},
	{[]string{"web", "dashboard", "portal"}, ProjectWebApp},
}

// DetectProjectType classifies the project from keyword signals in the
// segmented PRD plus the project name and description. Projects matching
// no rule default to web-app.
func DetectProjectType(project Project, sections []Section) ProjectType {
	var sb strings.Builder
	sb.WriteString(project.Name)
	sb.WriteString(" ")
	sb.WriteString(project.Description)
	for _, section := range sections {
		sb.WriteString(" ")
		sb.WriteString(section.Content)
	}
	combined := strings.ToLower(sb.String())

	for _, rule := range projectTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(combined, kw) {
				return rule.result
			}
		}
	}
	return ProjectWebApp
}
