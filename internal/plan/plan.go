package plan

import (
	"errors"

	"github.com/pablasso/tempo/internal/schedule"
)

var ErrNoTasks = errors.New("no tasks found")

// Batch is a named collection of tasks loaded from a file.
type Batch struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Tasks       []Task `json:"tasks"`
	SourceFile  string `json:"-"`
}

// Validate checks that the batch has something to schedule. Structural checks
// on the graph itself happen in the scheduler.
func (b *Batch) Validate() error {
	if len(b.Tasks) == 0 {
		return ErrNoTasks
	}
	return nil
}

// ScheduleTasks returns the batch's tasks in the scheduler's input type.
func (b *Batch) ScheduleTasks() []schedule.Task {
	return ScheduleTasks(b.Tasks)
}
