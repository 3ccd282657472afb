package schedule

import "slices"

// topoOrder runs Kahn's algorithm over batch indices. The FIFO queue is seeded
// with roots in input order and successors are enqueued in input order, so the
// result is stable for equal inputs.
func (g *Graph) topoOrder() ([]int, error) {
	indeg := slices.Clone(g.indeg)

	queue := make([]int, 0, len(indeg))
	for i, d := range indeg {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	done := make([]bool, len(indeg))
	order := make([]int, 0, len(indeg))
	for head := 0; head < len(queue); head++ {
		n := queue[head]
		done[n] = true
		order = append(order, n)
		for _, m := range g.next[n] {
			indeg[m]--
			if indeg[m] == 0 {
				queue = append(queue, m)
			}
		}
	}

	if len(order) < len(indeg) {
		var stuck []string
		for i, ok := range done {
			if !ok {
				stuck = append(stuck, g.tasks[i].ID)
			}
		}
		return nil, &GraphError{
			Kind: ErrDependencyCycle,
			IDs:  stuck,
			Msg:  "tasks could not be ordered",
		}
	}

	return order, nil
}

// Order returns task IDs in topological order, or an ErrDependencyCycle
// GraphError naming every task that could not be ordered.
func (g *Graph) Order() ([]string, error) {
	order, err := g.topoOrder()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(order))
	for k, i := range order {
		ids[k] = g.tasks[i].ID
	}
	return ids, nil
}
