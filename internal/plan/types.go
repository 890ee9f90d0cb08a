package plan

import "time"

// -----------------------------------------------------------------------------
// Project Input
// -----------------------------------------------------------------------------

// Project is the input to a decomposition run.
//
// PRD holds the body text to segment; when it is empty or whitespace-only
// the Description is used as the source text instead.
type Project struct {
	// ID uniquely identifies the project owning the generated entities.
	ID string `json:"id"`

	// Name is the human-readable project name. It contributes keyword
	// signals to project-type detection.
	Name string `json:"name"`

	// Description is a short free-text summary of the project.
	Description string `json:"description"`

	// PRD is the product-requirements document text to decompose.
	PRD string `json:"prd,omitempty"`
}

// SourceText returns the text to decompose: the PRD, or the description
// when no PRD was supplied.
func (p Project) SourceText() string {
	if isBlank(p.PRD) {
		return p.Description
	}
	return p.PRD
}

// -----------------------------------------------------------------------------
// Enums
// -----------------------------------------------------------------------------

// SectionType classifies a segmented PRD section.
type SectionType string

const (
	// SectionOverview holds introductory or unclassified content.
	// Text before the first recognized heading lands here.
	SectionOverview SectionType = "overview"

	// SectionRequirements holds functional requirement lists.
	SectionRequirements SectionType = "requirements"

	// SectionUserStories holds user-story style requirement lists.
	SectionUserStories SectionType = "user-stories"

	// SectionTechnical holds technical and architectural requirements.
	SectionTechnical SectionType = "technical"

	// SectionTimeline holds schedule and milestone prose.
	SectionTimeline SectionType = "timeline"

	// SectionAcceptanceCriteria holds acceptance criteria lists.
	SectionAcceptanceCriteria SectionType = "acceptance-criteria"
)

// String returns the string representation of the section type.
func (s SectionType) String() string {
	return string(s)
}

// RequirementType classifies an extracted requirement.
type RequirementType string

const (
	// RequirementFunctional is a plain functional requirement.
	RequirementFunctional RequirementType = "functional"

	// RequirementUserStory is a requirement phrased as a user story.
	RequirementUserStory RequirementType = "user-story"

	// RequirementTechnical is an architectural or platform requirement.
	// Technical requirements always carry high priority.
	RequirementTechnical RequirementType = "technical"
)

// String returns the string representation of the requirement type.
func (r RequirementType) String() string {
	return string(r)
}

// Priority represents the urgency of a requirement or task.
type Priority string

const (
	// PriorityCritical marks work the project cannot ship without.
	PriorityCritical Priority = "critical"

	// PriorityHigh marks important, near-term work.
	PriorityHigh Priority = "high"

	// PriorityMedium is the default when no signal is detected.
	PriorityMedium Priority = "medium"

	// PriorityLow marks nice-to-have work.
	PriorityLow Priority = "low"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid returns true if this is a recognized priority value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// TaskType represents the development phase a task belongs to.
type TaskType string

const (
	// TaskRequirement covers analysis and requirements work.
	TaskRequirement TaskType = "requirement"

	// TaskDesign covers architecture, schema, and UI design work.
	TaskDesign TaskType = "design"

	// TaskImplementation covers feature development work.
	TaskImplementation TaskType = "implementation"

	// TaskTest covers testing and QA work.
	TaskTest TaskType = "test"

	// TaskDeployment covers release and infrastructure work.
	TaskDeployment TaskType = "deployment"

	// TaskReview covers code and plan review work.
	TaskReview TaskType = "review"
)

// String returns the string representation of the task type.
func (t TaskType) String() string {
	return string(t)
}

// IsValid returns true if this is a recognized task type.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskRequirement, TaskDesign, TaskImplementation, TaskTest, TaskDeployment, TaskReview:
		return true
	default:
		return false
	}
}

// ProjectType classifies the kind of project being planned.
// It selects which task template set is instantiated.
type ProjectType string

const (
	// ProjectWebApp is a browser-delivered application. This is the default
	// when no other signal matches.
	ProjectWebApp ProjectType = "web-app"

	// ProjectMobileApp is an iOS/Android application.
	ProjectMobileApp ProjectType = "mobile-app"

	// ProjectAPIService is a backend-only API or microservice.
	ProjectAPIService ProjectType = "api-service"
)

// String returns the string representation of the project type.
func (p ProjectType) String() string {
	return string(p)
}

// Entity status values. The core only ever creates entities as pending;
// downstream collaborators advance them.
const (
	StatusPending = "pending"
	StatusActive  = "active"
)

// -----------------------------------------------------------------------------
// Sections
// -----------------------------------------------------------------------------

// Section is a contiguous, typed slice of the PRD.
type Section struct {
	// Type classifies the section's content.
	Type SectionType `json:"type"`

	// Title is the heading text with leading markup stripped.
	Title string `json:"title"`

	// Content is the trimmed body text between this heading and the next.
	Content string `json:"content"`
}

// -----------------------------------------------------------------------------
// Requirement
// -----------------------------------------------------------------------------

// Requirement is a classified, prioritized atomic need extracted from the PRD.
//
// Requirements are created once per extracted list item and are immutable
// for the remainder of the run. The core never deletes them; deletion is a
// storage-collaborator concern.
type Requirement struct {
	// ID uniquely identifies this requirement.
	ID string `json:"id"`

	// ProjectID references the owning project.
	ProjectID string `json:"project_id"`

	// Type classifies the requirement.
	Type RequirementType `json:"type"`

	// Title is the derived short title, prefixed REQ-<n>: or TECH-<n>:.
	// The derived portion is capped at 50 characters.
	Title string `json:"title"`

	// Description is the full extracted item text.
	Description string `json:"description"`

	// Priority is detected lexically from the description.
	Priority Priority `json:"priority"`

	// Status is the lifecycle state; always pending on creation.
	Status string `json:"status"`

	// CreatedAt is when this requirement was extracted.
	CreatedAt time.Time `json:"created_at"`
}

// -----------------------------------------------------------------------------
// Task
// -----------------------------------------------------------------------------

// TaskMetadata is the metadata bag carried by every task.
type TaskMetadata struct {
	// EstimatedHours drives duration estimation. Zero means unestimated;
	// the estimator substitutes its configured default.
	EstimatedHours float64 `json:"estimated_hours,omitempty"`

	// RequiredSkills lists the skills needed to execute the task.
	RequiredSkills []string `json:"required_skills,omitempty"`

	// SourceRequirement links a derived task back to the requirement
	// that triggered its creation.
	SourceRequirement string `json:"source_requirement,omitempty"`
}

// Task is a unit of work with an estimated duration and dependency set.
//
// The DependsOn sets of all tasks in a plan induce a directed acyclic
// graph. Generation never creates cycles; the refinement path rejects edge
// insertions that would.
type Task struct {
	// ID uniquely identifies this task.
	ID string `json:"id"`

	// ProjectID references the owning project.
	ProjectID string `json:"project_id"`

	// Type is the development phase this task belongs to.
	Type TaskType `json:"type"`

	// Title is a short, human-readable name.
	Title string `json:"title"`

	// Description contains the instructions, enriched with related
	// requirements matched by keyword.
	Description string `json:"description"`

	// DependsOn lists task IDs that must complete before this task starts.
	// IDs are unique within the list, never self-referential, and always
	// resolve to tasks materialized in the same run.
	DependsOn []string `json:"depends_on"`

	// Status is the lifecycle state; always pending on creation.
	Status string `json:"status"`

	// Priority is inherited from the template or triggering requirement.
	Priority Priority `json:"priority"`

	// AssignedAgent optionally references the agent executing this task.
	// The core leaves it unset.
	AssignedAgent string `json:"assigned_agent,omitempty"`

	// Metadata holds estimation and skill information.
	Metadata TaskMetadata `json:"metadata"`

	// CreatedAt is when this task was generated.
	CreatedAt time.Time `json:"created_at"`
}

// HasDependencies returns true if this task depends on other tasks.
func (t *Task) HasDependencies() bool {
	return len(t.DependsOn) > 0
}

// -----------------------------------------------------------------------------
// Milestone
// -----------------------------------------------------------------------------

// Milestone is a named grouping of tasks by development phase.
//
// Due dates follow a coarse linear schedule derived from phase order and
// total task count. They are a rough phase sketch, computed independently
// of the critical-path estimate, and are not authoritative scheduling data.
type Milestone struct {
	// ID uniquely identifies this milestone.
	ID string `json:"id"`

	// Name is the milestone name, e.g. "Design Complete".
	Name string `json:"name"`

	// Description summarizes what completing this milestone means.
	Description string `json:"description"`

	// DueDate is the derived target date.
	DueDate time.Time `json:"due_date"`

	// Status is the lifecycle state; always pending on creation.
	Status string `json:"status"`

	// TaskIDs lists member tasks in generation order. A task may belong
	// to several milestones (its phase milestone plus Project Complete).
	TaskIDs []string `json:"task_ids"`
}

// -----------------------------------------------------------------------------
// Result
// -----------------------------------------------------------------------------

// Result is the aggregate produced by one decomposition or refinement pass.
//
// It is the sole externally observable artifact of the pipeline and is
// never mutated in place: Refine returns a new, fully recomputed instance.
type Result struct {
	// ProjectID references the decomposed project.
	ProjectID string `json:"project_id"`

	// ProjectType is the detected template set.
	ProjectType ProjectType `json:"project_type"`

	// Requirements are the extracted, classified requirements.
	Requirements []Requirement `json:"requirements"`

	// Tasks are all generated tasks, template tasks first in template
	// order, followed by requirement-derived tasks.
	Tasks []Task `json:"tasks"`

	// Milestones groups tasks by phase with derived due dates.
	Milestones []Milestone `json:"milestones"`

	// DependencyGraph maps each task ID with dependencies to its
	// dependency ID list. Tasks with no dependencies are omitted.
	DependencyGraph map[string][]string `json:"dependency_graph"`

	// ExecutionOrder groups task IDs into parallelizable batches via
	// topological sort. Group 0 runs first.
	ExecutionOrder [][]string `json:"execution_order"`

	// EstimatedDays is the buffered critical-path duration in whole days.
	EstimatedDays int `json:"estimated_days"`

	// RiskFactors lists human-readable qualitative risks.
	RiskFactors []string `json:"risk_factors"`

	// Warnings surfaces otherwise-silent data loss: dropped template
	// dependency edges, ignored refinement references, rejected cycle
	// edges. Empty on a clean run.
	Warnings []string `json:"warnings,omitempty"`

	// CreatedAt is when this result generation was produced.
	CreatedAt time.Time `json:"created_at"`
}

// TaskCount returns the total number of tasks in the result.
func (r *Result) TaskCount() int {
	return len(r.Tasks)
}

// GetTask returns the task with the given ID, or nil if not found.
func (r *Result) GetTask(taskID string) *Task {
	for i := range r.Tasks {
		if r.Tasks[i].ID == taskID {
			return &r.Tasks[i]
		}
	}
	return nil
}

// TaskTypeCounts returns the number of tasks per task type.
func (r *Result) TaskTypeCounts() map[TaskType]int {
	counts := make(map[TaskType]int)
	for i := range r.Tasks {
		counts[r.Tasks[i].Type]++
	}
	return counts
}

// Clone returns a deep copy of the result. Refinement operates on clones
// so a prior generation is never mutated.
func (r *Result) Clone() *Result {
	clone := &Result{
		ProjectID:     r.ProjectID,
		ProjectType:   r.ProjectType,
		Requirements:  append([]Requirement(nil), r.Requirements...),
		Tasks:         make([]Task, len(r.Tasks)),
		Milestones:    make([]Milestone, len(r.Milestones)),
		EstimatedDays: r.EstimatedDays,
		RiskFactors:   append([]string(nil), r.RiskFactors...),
		Warnings:      append([]string(nil), r.Warnings...),
		CreatedAt:     r.CreatedAt,
	}
	for i := range r.Tasks {
		clone.Tasks[i] = r.Tasks[i]
		clone.Tasks[i].DependsOn = append([]string(nil), r.Tasks[i].DependsOn...)
		clone.Tasks[i].Metadata.RequiredSkills = append([]string(nil), r.Tasks[i].Metadata.RequiredSkills...)
	}
	for i := range r.Milestones {
		clone.Milestones[i] = r.Milestones[i]
		clone.Milestones[i].TaskIDs = append([]string(nil), r.Milestones[i].TaskIDs...)
	}
	if r.DependencyGraph != nil {
		clone.DependencyGraph = make(map[string][]string, len(r.DependencyGraph))
		for id, deps := range r.DependencyGraph {
			clone.DependencyGraph[id] = append([]string(nil), deps...)
		}
	}
	if r.ExecutionOrder != nil {
		clone.ExecutionOrder = make([][]string, len(r.ExecutionOrder))
		for i, group := range r.ExecutionOrder {
			clone.ExecutionOrder[i] = append([]string(nil), group...)
		}
	}
	return clone
}
