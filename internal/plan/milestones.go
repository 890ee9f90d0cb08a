package plan

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// milestonePhase maps a task type to its phase milestone. Order determines
// both due-date spacing and the position in the returned milestone list.
type milestonePhase struct {
	taskType TaskType
	name     string
	order    int
}

var milestonePhases = []milestonePhase{
	{TaskRequirement, "Requirements Complete", 1},
	{TaskDesign, "Design Complete", 2},
	{TaskImplementation, "Implementation Complete", 3},
	{TaskTest, "Testing Complete", 4},
	{TaskDeployment, "Deployment Complete", 5},
}

// projectCompleteOrder places the final milestone after every phase.
const projectCompleteOrder = 6

// GenerateMilestones groups tasks into phase milestones plus a final
// Project Complete milestone containing every task.
//
// Due dates follow a coarse linear schedule: each phase is due
// pacing-step days after the previous one, where the step scales with
// total task count divided by pacingDivisor. Phases with no tasks
// produce no milestone; review tasks appear only in Project Complete.
func GenerateMilestones(tasks []Task, now time.Time, pacingDivisor int) []Milestone {
	if len(tasks) == 0 {
		return nil
	}
	if pacingDivisor <= 0 {
		pacingDivisor = 6
	}

	step := int(math.Ceil(float64(len(tasks)*2) / float64(pacingDivisor)))
	if step < 1 {
		step = 1
	}
	dueAt := func(order int) time.Time {
		return now.AddDate(0, 0, step*order)
	}

	byType := make(map[TaskType][]string)
	allIDs := make([]string, 0, len(tasks))
	for i := range tasks {
		byType[tasks[i].Type] = append(byType[tasks[i].Type], tasks[i].ID)
		allIDs = append(allIDs, tasks[i].ID)
	}

	var milestones []Milestone
	for _, phase := range milestonePhases {
		ids := byType[phase.taskType]
		if len(ids) == 0 {
			continue
		}
		milestones = append(milestones, Milestone{
			ID:          uuid.NewString(),
			Name:        phase.name,
			Description: fmt.Sprintf("All %s tasks are finished.", phase.taskType),
			DueDate:     dueAt(phase.order),
			Status:      StatusPending,
			TaskIDs:     append([]string(nil), ids...),
		})
	}

	milestones = append(milestones, Milestone{
		ID:          uuid.NewString(),
		Name:        "Project Complete",
		Description: "Every task in the plan is finished.",
		DueDate:     dueAt(projectCompleteOrder),
		Status:      StatusPending,
		TaskIDs:     allIDs,
	})
	return milestones
}
