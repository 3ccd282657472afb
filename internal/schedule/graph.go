package schedule

import (
	"math"
	"slices"
	"strings"
)

// MaxTaskHours bounds a single estimate so that work-time arithmetic stays
// well inside int64 seconds.
const MaxTaskHours = 1_000_000

// Graph is the dependency structure of one batch. Nodes are indices into the
// batch, so iteration order always follows input order.
type Graph struct {
	tasks []Task
	index map[string]int
	next  [][]int // dependency -> dependents, ascending
	prev  [][]int // dependent -> dependencies, deduplicated
	indeg []int
}

// BuildGraph validates the batch and builds forward edges and in-degrees.
// Repeated entries in one task's DependsOn count as a single edge.
func BuildGraph(tasks []Task) (*Graph, error) {
	if len(tasks) == 0 {
		return nil, &GraphError{Kind: ErrEmptyBatch}
	}

	g := &Graph{
		tasks: slices.Clone(tasks),
		index: make(map[string]int, len(tasks)),
		next:  make([][]int, len(tasks)),
		prev:  make([][]int, len(tasks)),
		indeg: make([]int, len(tasks)),
	}

	for i, t := range g.tasks {
		if strings.TrimSpace(t.ID) == "" {
			return nil, invalidTask(i, "", "missing id")
		}
		h := t.EstimatedHours
		if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
			return nil, invalidTask(i, t.ID, "estimated hours must be a non-negative number, got %v", h)
		}
		if h > MaxTaskHours {
			return nil, invalidTask(i, t.ID, "estimated hours %v exceeds limit of %d", h, MaxTaskHours)
		}
		if _, dup := g.index[t.ID]; dup {
			return nil, &GraphError{Kind: ErrDuplicateTaskID, IDs: []string{t.ID}}
		}
		g.index[t.ID] = i
	}

	var missing, pairs []string
	seenMissing := make(map[string]bool)
	for i, t := range g.tasks {
		linked := make(map[int]bool, len(t.DependsOn))
		for _, dep := range t.DependsOn {
			j, ok := g.index[dep]
			if !ok {
				pairs = append(pairs, t.ID+" -> "+dep)
				if !seenMissing[dep] {
					seenMissing[dep] = true
					missing = append(missing, dep)
				}
				continue
			}
			if linked[j] {
				continue
			}
			linked[j] = true
			// i grows monotonically, so next[j] stays in input order.
			g.next[j] = append(g.next[j], i)
			g.prev[i] = append(g.prev[i], j)
			g.indeg[i]++
		}
	}
	if len(missing) > 0 {
		return nil, &GraphError{
			Kind: ErrUnknownDependency,
			IDs:  missing,
			Msg:  strings.Join(pairs, ", "),
		}
	}

	return g, nil
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// taskAt returns the task at position i of the batch.
func (g *Graph) taskAt(i int) Task {
	return g.tasks[i]
}

// indexOf returns the batch position of the task with the given ID.
func (g *Graph) indexOf(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// inDegree returns the number of distinct dependencies of task i.
func (g *Graph) inDegree(i int) int {
	return g.indeg[i]
}

// Roots returns the IDs of tasks without dependencies, in input order.
func (g *Graph) Roots() []string {
	var roots []string
	for i, d := range g.indeg {
		if d == 0 {
			roots = append(roots, g.tasks[i].ID)
		}
	}
	return roots
}

// Dependents returns the IDs of tasks that directly depend on id.
func (g *Graph) Dependents(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.next[i]))
	for _, j := range g.next[i] {
		out = append(out, g.tasks[j].ID)
	}
	return out
}
