// Package dates resolves the small set of date expressions accepted for plan
// start and deadline values.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISOLayout is the layout of explicit calendar dates.
const ISOLayout = time.DateOnly

// MaxOffset bounds relative offsets ("in N days") to keep results sane.
const MaxOffset = 10000

// MaxYear is the last year a resolved date may fall in. Later times have no
// RFC 3339 form.
const MaxYear = 9999

var ErrInvalidDateExpression = errors.New("invalid date expression")

// ExprError describes an input that matched none of the recognized forms.
type ExprError struct {
	Input  string
	Reason string
}

func (e *ExprError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidDateExpression, e.Input, e.Reason)
}

func (e *ExprError) Unwrap() error { return ErrInvalidDateExpression }

// Kind enumerates the recognized expression forms.
type Kind int

const (
	KindToday Kind = iota
	KindTomorrow
	KindInDays
	KindInWeeks
	KindISODate
)

func (k Kind) String() string {
	switch k {
	case KindToday:
		return "today"
	case KindTomorrow:
		return "tomorrow"
	case KindInDays:
		return "in-days"
	case KindInWeeks:
		return "in-weeks"
	case KindISODate:
		return "iso-date"
	default:
		return "unknown"
	}
}

// Expr is a parsed date expression.
type Expr struct {
	Kind Kind
	N    int // offset for KindInDays and KindInWeeks

	year  int
	month time.Month
	day   int
}

var relativePattern = regexp.MustCompile(`^in\s+(\d+)\s+(days?|weeks?)$`)

// Parse recognizes "today", "tomorrow", "in <N> day(s)|week(s)" and
// YYYY-MM-DD. Matching is case-insensitive and ignores surrounding space.
func Parse(input string) (Expr, error) {
	s := strings.ToLower(strings.TrimSpace(input))

	switch s {
	case "":
		return Expr{}, &ExprError{Input: input, Reason: "empty expression"}
	case "today":
		return Expr{Kind: KindToday}, nil
	case "tomorrow":
		return Expr{Kind: KindTomorrow}, nil
	}

	if m := relativePattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > MaxOffset {
			return Expr{}, &ExprError{Input: input, Reason: fmt.Sprintf("offset must be an integer between 1 and %d", MaxOffset)}
		}
		kind := KindInDays
		if strings.HasPrefix(m[2], "week") {
			kind = KindInWeeks
		}
		return Expr{Kind: kind, N: n}, nil
	}

	if d, err := time.Parse(ISOLayout, s); err == nil {
		return Expr{Kind: KindISODate, year: d.Year(), month: d.Month(), day: d.Day()}, nil
	}

	return Expr{}, &ExprError{Input: input, Reason: `expected "today", "tomorrow", "in N days", "in N weeks" or YYYY-MM-DD`}
}

// Resolve returns midnight of the date the expression names, counted from
// ref's calendar date and expressed in ref's location.
func (e Expr) Resolve(ref time.Time) time.Time {
	y, m, d := ref.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())

	switch e.Kind {
	case KindTomorrow:
		return base.AddDate(0, 0, 1)
	case KindInDays:
		return base.AddDate(0, 0, e.N)
	case KindInWeeks:
		return base.AddDate(0, 0, 7*e.N)
	case KindISODate:
		return time.Date(e.year, e.month, e.day, 0, 0, 0, 0, ref.Location())
	default:
		return base
	}
}

// String renders the expression in canonical form.
func (e Expr) String() string {
	switch e.Kind {
	case KindInDays:
		return plural(e.N, "day")
	case KindInWeeks:
		return plural(e.N, "week")
	case KindISODate:
		return time.Date(e.year, e.month, e.day, 0, 0, 0, 0, time.UTC).Format(ISOLayout)
	default:
		return e.Kind.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "in 1 " + unit
	}
	return fmt.Sprintf("in %d %ss", n, unit)
}

// Resolve parses input and resolves it against ref. A date that lands past
// MaxYear is rejected.
func Resolve(input string, ref time.Time) (time.Time, error) {
	e, err := Parse(input)
	if err != nil {
		return time.Time{}, err
	}
	t := e.Resolve(ref)
	if t.Year() > MaxYear {
		return time.Time{}, &ExprError{Input: input, Reason: fmt.Sprintf("resolves past year %d", MaxYear)}
	}
	return t, nil
}
