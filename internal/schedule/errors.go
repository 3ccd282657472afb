package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyBatch        = errors.New("empty task batch")
	ErrInvalidTask       = errors.New("invalid task")
	ErrDuplicateTaskID   = errors.New("duplicate task id")
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrDependencyCycle   = errors.New("dependency cycle")
	ErrInvalidWorkHours  = errors.New("invalid working hours")
)

// GraphError reports a structural problem with a task batch. IDs lists the
// identifiers involved, in input order.
type GraphError struct {
	Kind error
	IDs  []string
	Msg  string
}

func (e *GraphError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if len(e.IDs) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.IDs, ", "))
		b.WriteString("]")
	}
	return b.String()
}

func (e *GraphError) Unwrap() error { return e.Kind }

func invalidTask(index int, id, format string, args ...any) error {
	msg := fmt.Sprintf("task #%d: ", index+1) + fmt.Sprintf(format, args...)
	var ids []string
	if id != "" {
		ids = []string{id}
	}
	return &GraphError{Kind: ErrInvalidTask, IDs: ids, Msg: msg}
}

func workHoursError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidWorkHours, fmt.Sprintf(format, args...))
}
