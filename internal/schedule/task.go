package schedule

// Task is a single unit of work in a scheduling batch.
type Task struct {
	ID             string
	Name           string
	EstimatedHours float64
	DependsOn      []string // IDs of tasks in the same batch
}
