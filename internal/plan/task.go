package plan

import "github.com/pablasso/tempo/internal/schedule"

// DefaultEstimatedHours is assumed for tasks whose estimate is missing when a
// batch is loaded leniently.
const DefaultEstimatedHours = 2.0

// Task is a task as it appears in a batch file or request body.
type Task struct {
	ID             string   `json:"id"`
	Name           string   `json:"name,omitempty"`
	EstimatedHours float64  `json:"estimated_hours"`
	DependsOn      []string `json:"depends_on,omitempty"`
}

// ToSchedule converts t to the scheduler's input type.
func (t Task) ToSchedule() schedule.Task {
	return schedule.Task{
		ID:             t.ID,
		Name:           t.Name,
		EstimatedHours: t.EstimatedHours,
		DependsOn:      append([]string(nil), t.DependsOn...),
	}
}

// ScheduleTasks converts a slice of tasks.
func ScheduleTasks(tasks []Task) []schedule.Task {
	out := make([]schedule.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.ToSchedule()
	}
	return out
}
